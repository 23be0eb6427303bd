package dialog

import (
	"context"
)

// ShowMode определяет, как показывать окно после обработки события.
type ShowMode int

const (
	// ShowAuto — редактировать последнее окно после callback'а, отправлять
	// новое сообщение после текстового ввода.
	ShowAuto ShowMode = iota
	ShowEdit
	ShowSend
	ShowNone
)

// Manager — фасад навигации для обработчиков окон: операции над стеком
// текущей сессии плюс ответы пользователю.
type Manager struct {
	engine     *Engine
	session    *Session
	chatID     int64
	callbackID string
	showMode   ShowMode
	answered   bool
}

func (m *Manager) UserID() int64 {
	return m.session.UserID
}

func (m *Manager) ChatID() int64 {
	return m.chatID
}

// Frame возвращает верхний контекст стека (nil, если диалог не начат).
func (m *Manager) Frame() *Frame {
	return m.session.Top()
}

// StartData — данные запуска текущего контекста.
func (m *Manager) StartData() map[string]any {
	if f := m.session.Top(); f != nil {
		return f.StartData
	}
	return nil
}

// Data — черновик текущего контекста.
func (m *Manager) Data() map[string]any {
	if f := m.session.Top(); f != nil {
		return f.Data
	}
	return nil
}

// Start кладёт новый контекст поверх стека.
func (m *Manager) Start(state State, startData map[string]any) error {
	return m.session.push(newFrame(state, startData))
}

// StartReset сбрасывает стек и начинает новый контекст.
func (m *Manager) StartReset(state State, startData map[string]any) {
	m.session.reset()
	_ = m.session.push(newFrame(state, startData))
}

// Next переводит текущий контекст в следующее состояние группы.
func (m *Manager) Next() error {
	f := m.session.Top()
	if f == nil {
		return ErrUnknownState
	}

	order, ok := m.engine.groups[f.State.Group]
	if !ok {
		return ErrUnknownState
	}
	for i, st := range order {
		if st == f.State {
			if i+1 >= len(order) {
				return ErrUnknownState
			}
			f.State = order[i+1]
			return nil
		}
	}
	return ErrUnknownState
}

// BackState переводит текущий контекст в предыдущее состояние группы.
func (m *Manager) BackState() error {
	f := m.session.Top()
	if f == nil {
		return ErrUnknownState
	}

	order, ok := m.engine.groups[f.State.Group]
	if !ok {
		return ErrUnknownState
	}
	for i, st := range order {
		if st == f.State {
			if i == 0 {
				return ErrUnknownState
			}
			f.State = order[i-1]
			return nil
		}
	}
	return ErrUnknownState
}

// Done завершает текущий контекст. Результат, если он не nil, попадает в
// черновик родительского контекста под ключом "_result".
func (m *Manager) Done(result any) {
	m.session.pop()
	if result != nil {
		if parent := m.session.Top(); parent != nil {
			parent.Data["_result"] = result
		}
	}
}

// Back — завершение без результата (кнопка "Назад").
func (m *Manager) Back() {
	m.session.pop()
}

// Reset сбрасывает стек полностью.
func (m *Manager) Reset() {
	m.session.reset()
}

// SetShowMode переопределяет режим показа окна после текущего события.
func (m *Manager) SetShowMode(mode ShowMode) {
	m.showMode = mode
}

// Show принудительно отправляет текущее окно новым сообщением.
func (m *Manager) Show(ctx context.Context) error {
	if err := m.engine.show(ctx, m, ShowSend); err != nil {
		return err
	}
	m.showMode = ShowNone
	return nil
}

// Notify отправляет пользователю обычное сообщение вне окна.
func (m *Manager) Notify(ctx context.Context, text string) error {
	return m.engine.sender.SendText(ctx, m.chatID, text)
}

// Alert отвечает на callback всплывающим предупреждением.
func (m *Manager) Alert(ctx context.Context, text string) error {
	if m.callbackID == "" {
		return m.Notify(ctx, text)
	}
	m.answered = true
	return m.engine.sender.AnswerCallback(ctx, m.callbackID, text, true)
}

// Toast отвечает на callback коротким уведомлением без алерта.
func (m *Manager) Toast(ctx context.Context, text string) error {
	if m.callbackID == "" {
		return nil
	}
	m.answered = true
	return m.engine.sender.AnswerCallback(ctx, m.callbackID, text, false)
}
