package dialog

import "context"

// CallbackHandler обрабатывает нажатие кнопки окна.
type CallbackHandler func(ctx context.Context, m *Manager, arg string) error

// MessageHandler обрабатывает текст или документ, присланные в окно.
type MessageHandler func(ctx context.Context, m *Manager, msg *IncomingMessage) error

// Window — спецификация окна: функция отрисовки плюс обработчики ввода.
type Window struct {
	Render     func(ctx context.Context, m *Manager) (*View, error)
	OnCallback map[string]CallbackHandler
	OnMessage  MessageHandler
}

// Sender — транспортная сторона отрисовки. Реализуется telegram-ботом.
type Sender interface {
	SendView(ctx context.Context, chatID int64, view *RenderedView) (messageID int, err error)
	EditView(ctx context.Context, chatID int64, messageID int, view *RenderedView) error
	SendText(ctx context.Context, chatID int64, text string) error
	AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error
}
