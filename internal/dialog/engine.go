package dialog

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Операции, которые движок обрабатывает сам, без обработчиков окна.
const (
	OpNoop         = "noop"
	OpPage         = "pg"
	OpCalendarPage = "calpg"
)

// Engine сопоставляет состояния окнам и диспетчеризует события.
type Engine struct {
	windows map[string]*Window
	groups  map[string][]State
	store   *SessionStore
	sender  Sender
	logger  zerolog.Logger
}

func NewEngine(sender Sender, logger zerolog.Logger) *Engine {
	return &Engine{
		windows: make(map[string]*Window),
		groups:  make(map[string][]State),
		store:   NewSessionStore(),
		sender:  sender,
		logger:  logger,
	}
}

// RegisterGroup объявляет порядок состояний внутри группы (для Next).
func (e *Engine) RegisterGroup(states ...State) {
	if len(states) == 0 {
		return
	}
	e.groups[states[0].Group] = states
}

// RegisterWindow привязывает окно к состоянию.
func (e *Engine) RegisterWindow(state State, w *Window) {
	e.windows[state.String()] = w
}

// Manager создаёт фасад навигации для одного события пользователя.
func (e *Engine) Manager(userID, chatID int64) *Manager {
	return &Manager{
		engine:  e,
		session: e.store.Get(userID),
		chatID:  chatID,
	}
}

// HandleCallback разбирает callback-данные "d|<intent>|<op>|<arg>" и
// передаёт событие обработчику текущего окна.
func (e *Engine) HandleCallback(ctx context.Context, m *Manager, callbackID, data string) error {
	m.callbackID = callbackID
	m.showMode = ShowAuto

	parts := strings.SplitN(data, "|", 4)
	if len(parts) != 4 || parts[0] != "d" {
		return fmt.Errorf("%w: bad callback data %q", ErrUnknownIntent, data)
	}
	intent, op, arg := parts[1], parts[2], parts[3]

	frame := m.session.Top()
	if frame == nil || frame.Intent != intent {
		return fmt.Errorf("%w: intent %s", ErrOutdatedIntent, intent)
	}

	window, ok := e.windows[frame.State.String()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownState, frame.State)
	}

	switch op {
	case OpNoop:
		return e.finish(ctx, m, ShowNone)
	case OpPage:
		frame.Data[pageDataKey] = arg
	case OpCalendarPage:
		frame.Data[calendarPageKey] = arg
	default:
		handler, ok := window.OnCallback[op]
		if !ok {
			return fmt.Errorf("%w: op %q in state %s", ErrUnknownIntent, op, frame.State)
		}
		if err := handler(ctx, m, arg); err != nil {
			return err
		}
	}

	return e.finish(ctx, m, ShowEdit)
}

// HandleMessage передаёт входящее сообщение обработчику текущего окна.
// Сообщения вне активного диалога игнорируются: команды до движка не доходят.
func (e *Engine) HandleMessage(ctx context.Context, m *Manager, msg *IncomingMessage) error {
	m.showMode = ShowAuto

	frame := m.session.Top()
	if frame == nil {
		e.logger.Debug().Int64("user_id", m.session.UserID).Msg("Message outside of dialog, ignored")
		return nil
	}

	window, ok := e.windows[frame.State.String()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownState, frame.State)
	}
	if window.OnMessage == nil {
		e.logger.Debug().Str("state", frame.State.String()).Msg("Window has no message handler, ignored")
		return nil
	}

	if err := window.OnMessage(ctx, m, msg); err != nil {
		return err
	}

	return e.finish(ctx, m, ShowSend)
}

// finish закрывает обработку события: гасит "часики" на кнопке и
// перерисовывает окно согласно режиму показа.
func (e *Engine) finish(ctx context.Context, m *Manager, autoMode ShowMode) error {
	if m.callbackID != "" && !m.answered {
		if err := e.sender.AnswerCallback(ctx, m.callbackID, "", false); err != nil {
			e.logger.Warn().Err(err).Msg("Failed to answer callback")
		}
		m.answered = true
	}

	mode := m.showMode
	if mode == ShowAuto {
		mode = autoMode
	}
	if mode == ShowNone || m.session.Top() == nil {
		return nil
	}

	return e.show(ctx, m, mode)
}

func (e *Engine) show(ctx context.Context, m *Manager, mode ShowMode) error {
	frame := m.session.Top()
	if frame == nil {
		return nil
	}

	window, ok := e.windows[frame.State.String()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownState, frame.State)
	}

	view, err := window.Render(ctx, m)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", frame.State, err)
	}

	rendered := e.resolve(frame, view)

	// Сообщение с документом нельзя получить редактированием текстового,
	// такие окна всегда уходят новым сообщением.
	if mode == ShowEdit && m.session.MessageID != 0 && rendered.DocumentFileID == "" {
		if err := e.sender.EditView(ctx, m.chatID, m.session.MessageID, rendered); err == nil {
			return nil
		} else {
			e.logger.Debug().Err(err).Msg("Edit failed, sending new window message")
		}
	}

	messageID, err := e.sender.SendView(ctx, m.chatID, rendered)
	if err != nil {
		return fmt.Errorf("failed to send window %s: %w", frame.State, err)
	}
	m.session.MessageID = messageID
	return nil
}

// resolve собирает callback-данные кнопок с intent'ом текущего контекста.
func (e *Engine) resolve(frame *Frame, view *View) *RenderedView {
	rendered := &RenderedView{
		Text:              view.Text,
		DocumentFileID:    view.DocumentFileID,
		DisableWebPreview: view.DisableWebPreview,
	}

	for _, row := range view.Buttons {
		var rrow []RenderedButton
		for _, b := range row {
			rb := RenderedButton{Label: b.Label, URL: b.URL}
			if b.URL == "" {
				rb.Data = fmt.Sprintf("d|%s|%s|%s", frame.Intent, b.Op, b.Arg)
			}
			rrow = append(rrow, rb)
		}
		if len(rrow) > 0 {
			rendered.Keyboard = append(rendered.Keyboard, rrow)
		}
	}

	return rendered
}

// Recover сбрасывает сессию после ошибки навигации.
func (e *Engine) Recover(m *Manager, err error) {
	e.logger.Error().
		Err(err).
		Int64("user_id", m.session.UserID).
		Msg("Dialog error, resetting stack")

	m.session.reset()
}
