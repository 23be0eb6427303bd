package dialog

import (
	"sync"

	"github.com/google/uuid"
)

// Frame — один диалоговый контекст в стеке: состояние, данные запуска и
// черновые данные, накопленные окнами этого контекста.
type Frame struct {
	State State

	// Intent инвалидирует callback'и, созданные до перестройки стека.
	Intent string

	// StartData передаётся при старте контекста (например container_id)
	// и не меняется до его завершения.
	StartData map[string]any

	// Data — черновик контекста, живёт до Pop.
	Data map[string]any
}

func newFrame(state State, startData map[string]any) *Frame {
	if startData == nil {
		startData = map[string]any{}
	}
	return &Frame{
		State:     state,
		Intent:    uuid.NewString()[:8],
		StartData: startData,
		Data:      map[string]any{},
	}
}

// StartInt64 достаёт int64 из данных запуска.
func (f *Frame) StartInt64(key string) (int64, bool) {
	v, ok := f.StartData[key]
	if !ok {
		return 0, false
	}
	n, ok := v.(int64)
	return n, ok
}

// Session — навигационное состояние одного пользователя.
type Session struct {
	UserID    int64
	Stack     []*Frame
	MessageID int // последнее отправленное окно, 0 если его ещё нет
}

func (s *Session) Top() *Frame {
	if len(s.Stack) == 0 {
		return nil
	}
	return s.Stack[len(s.Stack)-1]
}

func (s *Session) push(f *Frame) error {
	if len(s.Stack) >= MaxStackDepth {
		return ErrStackOverflow
	}
	s.Stack = append(s.Stack, f)
	return nil
}

func (s *Session) pop() *Frame {
	if len(s.Stack) == 0 {
		return nil
	}
	f := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return f
}

func (s *Session) reset() {
	s.Stack = nil
	s.MessageID = 0
}

// SessionStore хранит сессии в памяти. Состояние диалога восстанавливается
// командой /start, поэтому потеря сессий при рестарте допустима.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]*Session)}
}

func (st *SessionStore) Get(userID int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[userID]
	if !ok {
		s = &Session{UserID: userID}
		st.sessions[userID] = s
	}
	return s
}
