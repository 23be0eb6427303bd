package telegram

import (
	"context"
	"errors"

	"github.com/yasyapobeda/homework-bot/internal/dialog"
	"github.com/yasyapobeda/homework-bot/internal/locale"
	"github.com/yasyapobeda/homework-bot/internal/service"
)

func (h *Handler) registerWindow() *dialog.Window {
	return &dialog.Window{
		Render: func(ctx context.Context, m *dialog.Manager) (*dialog.View, error) {
			_, lang, err := h.lang(ctx, m)
			if err != nil {
				return nil, err
			}
			return &dialog.View{Text: locale.T(lang, "register.prompt")}, nil
		},
		OnMessage: func(ctx context.Context, m *dialog.Manager, msg *dialog.IncomingMessage) error {
			user, lang, err := h.lang(ctx, m)
			if err != nil {
				return err
			}

			err = h.users.SetFIO(ctx, user.ID, msg.Text)
			if errors.Is(err, service.ErrInvalidFIO) {
				return m.Notify(ctx, locale.T(lang, "register.invalid_fio"))
			}
			if err != nil {
				return err
			}

			// Регистрация могла быть шагом на пути по ссылке-приглашению.
			if code, ok := m.StartData()["join_code"].(string); ok && code != "" {
				if err := m.Notify(ctx, locale.T(lang, "register.done")); err != nil {
					return err
				}
				user, err = h.users.EnsureUser(ctx, user.ID)
				if err != nil {
					return err
				}
				m.SetShowMode(dialog.ShowNone)
				return h.joinAndOpen(ctx, m, user, code)
			}

			return m.Next()
		},
	}
}

func (h *Handler) registerDoneWindow() *dialog.Window {
	return &dialog.Window{
		Render: func(ctx context.Context, m *dialog.Manager) (*dialog.View, error) {
			_, lang, err := h.lang(ctx, m)
			if err != nil {
				return nil, err
			}

			view := &dialog.View{Text: locale.T(lang, "register.done")}
			view.AddRow(dialog.Btn(locale.T(lang, "common.home"), "home"))
			return view, nil
		},
		OnCallback: map[string]dialog.CallbackHandler{
			"home": func(ctx context.Context, m *dialog.Manager, _ string) error {
				m.StartReset(MainIntro, nil)
				return nil
			},
		},
	}
}

func (h *Handler) mainWindow() *dialog.Window {
	return &dialog.Window{
		Render: func(ctx context.Context, m *dialog.Manager) (*dialog.View, error) {
			user, lang, err := h.lang(ctx, m)
			if err != nil {
				return nil, err
			}

			view := &dialog.View{
				Text:              locale.Tf(lang, "main.greeting", user.FirstName(), figmaURL),
				DisableWebPreview: true,
			}
			view.AddRow(dialog.Btn(locale.T(lang, "main.new_container"), "create"))
			view.AddRow(dialog.Btn(locale.T(lang, "main.containers"), "containers"))
			return view, nil
		},
		OnCallback: map[string]dialog.CallbackHandler{
			"create": func(ctx context.Context, m *dialog.Manager, _ string) error {
				return m.Start(CreateName, nil)
			},
			"containers": func(ctx context.Context, m *dialog.Manager, _ string) error {
				return m.Start(ContainersIntro, nil)
			},
		},
	}
}
