package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/johnmogi/dungeon-crawler/internal/engine"
	"github.com/johnmogi/dungeon-crawler/pkg/api"
	"github.com/johnmogi/dungeon-crawler/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

var errNoSession = errors.New("no session: send NEW first")

// Client - посредник между Websocket и игровой сессией.
// Одно соединение - одна сессия за раз. Команды читает только readPump,
// поэтому сессия получает их строго по одной.
type Client struct {
	ID   string
	srv  *Server
	Conn *websocket.Conn
	Send chan api.ServerMessage

	mu      sync.Mutex // защищает session от debug-роутов
	session *engine.Session

	log *logrus.Entry
}

func NewClient(srv *Server, conn *websocket.Conn) *Client {
	id := uuid.NewString()
	return &Client{
		ID:   id,
		srv:  srv,
		Conn: conn,
		// Клиент регистрируется в хабе и получает свой канал для ответов.
		Send: srv.hub.Register(id),
		log:  logger.WithComponent("client").WithField("session", id),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.srv.hub.Unregister(c.ID)
		c.srv.removeClient(c)
		c.saveJournal()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	c.log.Info("Client connected")

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Error("WS Error")
			}
			break
		}

		var cmd api.ClientCommand
		if err := json.Unmarshal(raw, &cmd); err != nil {
			c.reply(engine.ErrorMessage(fmt.Errorf("decode command: %w", err)))
			continue
		}
		c.reply(c.handle(context.Background(), cmd))
	}
}

func (c *Client) reply(msg api.ServerMessage) {
	c.srv.hub.SendTo(c.ID, msg)
}

// handle выполняет одну команду и возвращает ответ клиенту.
func (c *Client) handle(ctx context.Context, cmd api.ClientCommand) api.ServerMessage {
	if strings.EqualFold(cmd.Action, api.ActionNew) {
		return c.newSession(ctx, cmd.Payload)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return api.ServerMessage{
			Type:  api.MessageError,
			Error: &api.ErrorView{Code: api.CodeNoSession, Message: errNoSession.Error()},
		}
	}

	domainCmd, err := engine.ParseCommand(cmd)
	if err != nil {
		return engine.ErrorMessage(err)
	}

	_, span := c.srv.tracer.Start(ctx, "session.submit", trace.WithAttributes(
		attribute.String("session.id", c.ID),
		attribute.String("command", domainCmd.String()),
	))
	defer span.End()

	snap, err := c.session.SubmitCommand(domainCmd)
	annotate(span, snap, err)
	return engine.Message(snap, err)
}

// newSession заменяет текущую сессию новой. Журнал старой сохраняется.
func (c *Client) newSession(ctx context.Context, raw json.RawMessage) api.ServerMessage {
	var p api.NewGamePayload
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			return engine.ErrorMessage(fmt.Errorf("decode NEW: %w", err))
		}
	}
	if err := p.Validate(); err != nil {
		return engine.ErrorMessage(err)
	}

	cfg, err := c.srv.gameCfg.WithPayload(p)
	if err != nil {
		return engine.ErrorMessage(err)
	}
	// Зерно не задано ни клиентом, ни сервером - новое на каждую партию.
	if p.Seed == nil && c.srv.gameCfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	_, span := c.srv.tracer.Start(ctx, "session.new", trace.WithAttributes(
		attribute.String("session.id", c.ID),
		attribute.Int64("seed", cfg.Seed),
		attribute.Int("level", cfg.LevelIndex),
	))
	defer span.End()

	s, err := engine.NewSession(cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.log.WithError(err).Warn("Session not created")
		return engine.ErrorMessage(err)
	}

	c.saveJournal()

	c.mu.Lock()
	c.session = s
	c.mu.Unlock()

	snap := s.Snapshot()
	annotate(span, snap, nil)
	c.log.WithFields(logrus.Fields{
		"seed":  cfg.Seed,
		"level": cfg.LevelIndex,
		"win":   cfg.WinCondition.String(),
	}).Info("New session")
	return engine.Message(snap, nil)
}

// annotate вешает на спан итог хода. Отказ команды ошибкой спана не считается.
func annotate(span trace.Span, snap api.Snapshot, err error) {
	span.SetAttributes(
		attribute.String("phase", snap.Phase),
		attribute.Int("turn", snap.Turn),
		attribute.Int("events", len(snap.Events)),
	)
	if err == nil {
		return
	}
	span.SetAttributes(attribute.String("error.code", engine.ErrorCode(err)))
	if engine.ErrorCode(err) == api.CodeInvariant {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// saveJournal пишет журнал текущей сессии, если запись включена и ходы были.
func (c *Client) saveJournal() {
	if c.srv.replays == nil {
		return
	}

	c.mu.Lock()
	s := c.session
	c.mu.Unlock()
	if s == nil {
		return
	}

	j := s.Journal()
	if len(j.Entries) == 0 {
		return
	}
	path, err := c.srv.replays.Save(j, time.Now())
	if err != nil {
		c.log.WithError(err).Error("Failed to save journal")
		return
	}
	c.log.WithField("path", path).Info("Journal saved")
}

// status - срез для debug-роутов.
func (c *Client) status() (SessionSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return SessionSummary{ID: c.ID}, false
	}
	cfg := c.session.Config()
	return SessionSummary{
		ID:          c.ID,
		Active:      true,
		Phase:       c.session.Phase().String(),
		Turn:        c.session.Turn(),
		Seed:        cfg.Seed,
		Level:       cfg.LevelIndex,
		EntityCount: c.session.Registry().Len(),
	}, true
}

func (c *Client) turnQueue() ([]map[string]interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil, false
	}
	return c.session.TurnQueue(), true
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
