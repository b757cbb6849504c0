package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/johnmogi/dungeon-crawler/internal/engine"
	"github.com/johnmogi/dungeon-crawler/internal/infrastructure/storage"
	"github.com/johnmogi/dungeon-crawler/internal/network"
	"github.com/johnmogi/dungeon-crawler/internal/version"
	"github.com/johnmogi/dungeon-crawler/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg     Config
	gameCfg engine.Config // база для NEW. Seed == 0 - новое зерно на каждую партию.
	hub     *network.Broadcaster
	tracer  trace.Tracer
	replays *storage.ReplayService // nil, если журналы не пишем

	mu      sync.RWMutex
	clients map[string]*Client

	log *logrus.Entry
}

func New(cfg Config, gameCfg engine.Config, tracer trace.Tracer) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		gameCfg: gameCfg,
		hub:     network.NewBroadcaster(),
		tracer:  tracer,
		clients: make(map[string]*Client),
		log:     logger.WithComponent("server"),
	}
	if cfg.ReplayDir != "" {
		rs, err := storage.NewReplayService(cfg.ReplayDir)
		if err != nil {
			return nil, err
		}
		s.replays = rs
	}
	return s, nil
}

// Handler собирает роуты. Отдельно от Run, чтобы тесты гоняли его через httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Регистрируем роуты
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	if s.cfg.DebugRoutes {
		NewDebugHandler(s).RegisterRoutes(mux)
	}
	return mux
}

// Run запускает HTTP сервер и гасит его по отмене ctx.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("Dungeon server running on :%s", s.cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		// Разрешаем заголовки, если фронт шлет что-то нестандартное
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Error("Upgrade error")
		return
	}

	client := NewClient(s, conn)
	s.addClient(client)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}

func (s *Server) addClient(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.ID] = c
}

func (s *Server) removeClient(c *Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, c.ID)
}

func (s *Server) client(id string) *Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients[id]
}

// listClients - клиенты по возрастанию ID.
func (s *Server) listClients() []*Client {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
