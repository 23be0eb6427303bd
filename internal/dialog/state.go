// Package dialog реализует навигацию по диалоговым окнам: каждое окно
// привязано к состоянию конечного автомата, пользовательская сессия держит
// стек активных контекстов, переходы выполняются обработчиками кнопок и
// текстового ввода.
package dialog

import "errors"

// State — одно состояние конечного автомата. Состояния объединяются в
// группы (register, main, containers, ...), внутри группы порядок состояний
// задаёт переход Next.
type State struct {
	Group string
	Name  string
}

func (s State) String() string {
	return s.Group + ":" + s.Name
}

func (s State) Zero() bool {
	return s.Group == "" && s.Name == ""
}

// MaxStackDepth ограничивает вложенность диалоговых контекстов.
const MaxStackDepth = 100

// Ошибки навигации. Все четыре перехватываются в цикле обработки апдейтов:
// стек сбрасывается, пользователю предлагают нажать /start.
var (
	ErrUnknownIntent  = errors.New("dialog: unknown intent")
	ErrOutdatedIntent = errors.New("dialog: outdated intent")
	ErrUnknownState   = errors.New("dialog: unknown state")
	ErrStackOverflow  = errors.New("dialog: stack overflow")
)

// IsNavigationError сообщает, относится ли ошибка к восстанавливаемым
// ошибкам навигации.
func IsNavigationError(err error) bool {
	return errors.Is(err, ErrUnknownIntent) ||
		errors.Is(err, ErrOutdatedIntent) ||
		errors.Is(err, ErrUnknownState) ||
		errors.Is(err, ErrStackOverflow)
}
