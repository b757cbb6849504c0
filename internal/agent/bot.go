package agent

import (
	"encoding/json"

	"github.com/johnmogi/dungeon-crawler/internal/domain"
	"github.com/johnmogi/dungeon-crawler/internal/engine"
	"github.com/johnmogi/dungeon-crawler/internal/network"
	"github.com/johnmogi/dungeon-crawler/pkg/api"
	"github.com/johnmogi/dungeon-crawler/pkg/logger"
	"github.com/sirupsen/logrus"
)

// Bot представляет собой "Игрока-компьютера" (Headless Agent).
// Он видит ровно то же, что и клиент сокета: снимки из своего Inbox.
// По снимку принимает решение и отправляет команду обратно через Submit.
//
// Жизненный цикл:
//  1. NewBot -> Регистрация в хабе, получение личного канала (Inbox).
//  2. Run -> Слушает Inbox, на каждый снимок отвечает одной командой.
//  3. Терминальная фаза или закрытый канал -> выход.
type Bot struct {
	SessionID string
	Inbox     chan api.ServerMessage
	Submit    func(api.ClientCommand)

	log *logrus.Entry
}

func NewBot(sessionID string, hub *network.Broadcaster, submit func(api.ClientCommand)) *Bot {
	l := logger.WithComponent("bot").WithField("session", sessionID)
	l.Debug("Creating agent.")
	return &Bot{
		SessionID: sessionID,
		Inbox:     hub.Register(sessionID),
		Submit:    submit,
		log:       l,
	}
}

// Run запускает цикл жизни бота. Возвращает последний полученный снимок.
func (b *Bot) Run() api.Snapshot {
	var last api.Snapshot

	for msg := range b.Inbox {
		if msg.Snapshot != nil {
			last = *msg.Snapshot
		}
		if msg.Type == api.MessageError {
			switch msg.Error.Code {
			case api.CodeRejected:
				// Отказ не двигает ход. Ждём, чтобы не повторять ту же ошибку.
				b.log.WithField("reason", msg.Error.Message).Debug("Command rejected, waiting.")
				b.Submit(waitCommand())
				continue
			default:
				b.log.WithField("code", msg.Error.Code).Warn("Agent stopped on error.")
				return last
			}
		}
		if last.Phase == domain.PhaseGameOver.String() || last.Phase == domain.PhaseVictory.String() {
			return last
		}
		b.Submit(Decide(last))
	}
	b.log.Debug("Agent shut down.")
	return last
}

// --- Хелперы для сборки команд ---

func command(action string, payload interface{}) api.ClientCommand {
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Log.WithError(err).Error("Bot: marshal payload")
		return waitCommand()
	}
	return api.ClientCommand{Action: action, Payload: raw}
}

func moveCommand(d domain.Direction) api.ClientCommand {
	return command(api.ActionMove, api.DirectionPayload{Direction: d.String()})
}

func attackCommand(targetID string) api.ClientCommand {
	return command(api.ActionAttack, api.EntityPayload{TargetID: targetID})
}

func useCommand(itemID string) api.ClientCommand {
	return command(api.ActionUse, api.ItemPayload{ItemID: itemID})
}

func waitCommand() api.ClientCommand {
	return api.ClientCommand{Action: api.ActionWait}
}

// Result - итог прогона сессии ботом.
type Result struct {
	Snapshot api.Snapshot
	Steps    int
	Err      error
}

// RunSession прогоняет сессию ботом до конца партии или до maxSteps команд.
// Сессия не потокобезопасна, поэтому всё идёт в одной горутине:
// Submit кладёт ответ в буферизованный Inbox, Run забирает его следующей итерацией.
func RunSession(s *engine.Session, hub *network.Broadcaster, sessionID string, maxSteps int) Result {
	var res Result
	done := false

	finish := func(msg api.ServerMessage) {
		hub.SendTo(sessionID, msg)
		hub.Unregister(sessionID)
		done = true
	}

	submit := func(cmd api.ClientCommand) {
		if done {
			return
		}
		c, err := engine.ParseCommand(cmd)
		if err != nil {
			res.Err = err
			finish(engine.ErrorMessage(err))
			return
		}

		snap, err := s.SubmitCommand(c)
		res.Steps++
		msg := engine.Message(snap, err)

		switch {
		case err != nil && msg.Error.Code != api.CodeRejected:
			res.Err = err
			finish(msg)
		case s.Phase().IsTerminal() || res.Steps >= maxSteps:
			finish(msg)
		default:
			hub.SendTo(sessionID, msg)
		}
	}

	bot := NewBot(sessionID, hub, submit)
	hub.SendTo(sessionID, engine.Message(s.Snapshot(), nil))
	res.Snapshot = bot.Run()
	if !done {
		hub.Unregister(sessionID)
	}
	return res
}
