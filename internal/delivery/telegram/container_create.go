package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/yasyapobeda/homework-bot/internal/dialog"
	"github.com/yasyapobeda/homework-bot/internal/locale"
	"github.com/yasyapobeda/homework-bot/internal/service"
)

func (h *Handler) createNameWindow() *dialog.Window {
	return &dialog.Window{
		Render: func(ctx context.Context, m *dialog.Manager) (*dialog.View, error) {
			_, lang, err := h.lang(ctx, m)
			if err != nil {
				return nil, err
			}

			view := &dialog.View{Text: locale.T(lang, "create.name_prompt")}
			view.AddRow(dialog.Btn(locale.T(lang, "common.cancel"), "cancel"))
			return view, nil
		},
		OnCallback: map[string]dialog.CallbackHandler{
			"cancel": func(ctx context.Context, m *dialog.Manager, _ string) error {
				m.Back()
				return nil
			},
		},
		OnMessage: func(ctx context.Context, m *dialog.Manager, msg *dialog.IncomingMessage) error {
			user, lang, err := h.lang(ctx, m)
			if err != nil {
				return err
			}

			name := strings.TrimSpace(msg.Text)
			if name == "" {
				return m.Notify(ctx, locale.T(lang, "common.invalid_input"))
			}

			taken, err := h.containers.NameTaken(ctx, user.ID, name)
			if err != nil {
				return err
			}
			if taken {
				return m.Notify(ctx, locale.T(lang, "create.name_taken"))
			}

			m.Data()["name"] = name
			return m.Next()
		},
	}
}

func (h *Handler) createDescriptionWindow() *dialog.Window {
	return &dialog.Window{
		Render: func(ctx context.Context, m *dialog.Manager) (*dialog.View, error) {
			_, lang, err := h.lang(ctx, m)
			if err != nil {
				return nil, err
			}

			view := &dialog.View{Text: locale.T(lang, "create.description_prompt")}
			view.AddRow(dialog.Btn(locale.T(lang, "common.skip"), "skip"))
			view.AddRow(dialog.Btn(locale.T(lang, "common.back"), "back"))
			return view, nil
		},
		OnCallback: map[string]dialog.CallbackHandler{
			"skip": func(ctx context.Context, m *dialog.Manager, _ string) error {
				delete(m.Data(), "description")
				return m.Next()
			},
			"back": func(ctx context.Context, m *dialog.Manager, _ string) error {
				return m.BackState()
			},
		},
		OnMessage: func(ctx context.Context, m *dialog.Manager, msg *dialog.IncomingMessage) error {
			_, lang, err := h.lang(ctx, m)
			if err != nil {
				return err
			}

			description := strings.TrimSpace(msg.Text)
			if description == "" {
				return m.Notify(ctx, locale.T(lang, "common.invalid_input"))
			}

			m.Data()["description"] = description
			return m.Next()
		},
	}
}

func (h *Handler) createDeadlineWindow() *dialog.Window {
	return &dialog.Window{
		Render: func(ctx context.Context, m *dialog.Manager) (*dialog.View, error) {
			_, lang, err := h.lang(ctx, m)
			if err != nil {
				return nil, err
			}

			now := time.Now().In(h.location)
			view := &dialog.View{
				Text:    locale.T(lang, "create.deadline_prompt"),
				Buttons: dialog.CalendarKeyboard(m.CalendarPage(now), now),
			}
			view.AddRow(dialog.Btn(locale.T(lang, "common.skip"), "skip"))
			view.AddRow(dialog.Btn(locale.T(lang, "common.back"), "back"))
			return view, nil
		},
		OnCallback: map[string]dialog.CallbackHandler{
			dialog.OpCalendarDay: func(ctx context.Context, m *dialog.Manager, arg string) error {
				_, lang, err := h.lang(ctx, m)
				if err != nil {
					return err
				}

				day, err := time.ParseInLocation("2006-01-02", arg, h.location)
				if err != nil {
					return err
				}

				now := time.Now().In(h.location)
				today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.location)
				if day.Before(today) {
					m.SetShowMode(dialog.ShowNone)
					return m.Alert(ctx, locale.T(lang, "create.past_deadline"))
				}

				m.Data()["deadline"] = arg
				return m.Next()
			},
			"skip": func(ctx context.Context, m *dialog.Manager, _ string) error {
				delete(m.Data(), "deadline")
				return m.Next()
			},
			"back": func(ctx context.Context, m *dialog.Manager, _ string) error {
				return m.BackState()
			},
		},
	}
}

func (h *Handler) createConfirmWindow() *dialog.Window {
	return &dialog.Window{
		Render: func(ctx context.Context, m *dialog.Manager) (*dialog.View, error) {
			_, lang, err := h.lang(ctx, m)
			if err != nil {
				return nil, err
			}

			view := &dialog.View{Text: locale.T(lang, "create.confirm")}
			view.AddRow(dialog.Btn(locale.T(lang, "create.submit"), "create"))
			view.AddRow(dialog.Btn(locale.T(lang, "common.back"), "back"))
			return view, nil
		},
		OnCallback: map[string]dialog.CallbackHandler{
			"create": func(ctx context.Context, m *dialog.Manager, _ string) error {
				user, lang, err := h.lang(ctx, m)
				if err != nil {
					return err
				}

				name, _ := m.Data()["name"].(string)

				var description *string
				if d, ok := m.Data()["description"].(string); ok {
					description = &d
				}

				var deadline *time.Time
				if raw, ok := m.Data()["deadline"].(string); ok {
					day, err := time.ParseInLocation("2006-01-02", raw, h.location)
					if err != nil {
						return err
					}
					// Дедлайн наступает в конце выбранного дня.
					at := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 0, 0, h.location)
					deadline = &at
				}

				container, err := h.containers.Create(ctx, user.ID, name, description, deadline)
				if errors.Is(err, service.ErrNameTaken) {
					m.SetShowMode(dialog.ShowNone)
					return m.Alert(ctx, locale.T(lang, "create.name_taken"))
				}
				if err != nil {
					return err
				}

				m.Done(nil)
				return m.Start(ContainersView, map[string]any{"container_id": container.ID})
			},
			"back": func(ctx context.Context, m *dialog.Manager, _ string) error {
				return m.BackState()
			},
		},
	}
}
