package telegram

import (
	"context"

	"github.com/yasyapobeda/homework-bot/internal/dialog"
	"github.com/yasyapobeda/homework-bot/internal/locale"
)

func (h *Handler) settingsWindow() *dialog.Window {
	return &dialog.Window{
		Render: func(ctx context.Context, m *dialog.Manager) (*dialog.View, error) {
			_, lang, err := h.lang(ctx, m)
			if err != nil {
				return nil, err
			}

			view := &dialog.View{Text: locale.T(lang, "settings.title")}
			view.AddRow(dialog.Btn(locale.T(lang, "settings.change_lang"), "lang"))
			view.AddRow(dialog.Btn(locale.T(lang, "common.home"), "home"))
			return view, nil
		},
		OnCallback: map[string]dialog.CallbackHandler{
			"lang": func(ctx context.Context, m *dialog.Manager, _ string) error {
				return m.Next()
			},
			"home": func(ctx context.Context, m *dialog.Manager, _ string) error {
				m.StartReset(MainIntro, nil)
				return nil
			},
		},
	}
}

func (h *Handler) languageWindow() *dialog.Window {
	return &dialog.Window{
		Render: func(ctx context.Context, m *dialog.Manager) (*dialog.View, error) {
			_, lang, err := h.lang(ctx, m)
			if err != nil {
				return nil, err
			}

			view := &dialog.View{Text: locale.T(lang, "settings.choose_lang")}
			for _, l := range locale.Locales {
				label := l.Flag + " " + l.Name
				if l.Code == lang {
					label = "• " + label + " •"
				}
				view.AddRow(dialog.BtnArg(label, "set", l.Code))
			}
			view.AddRow(dialog.Btn(locale.T(lang, "common.back"), "back"))
			return view, nil
		},
		OnCallback: map[string]dialog.CallbackHandler{
			"set": func(ctx context.Context, m *dialog.Manager, arg string) error {
				if err := h.users.SetLanguage(ctx, m.UserID(), arg); err != nil {
					return err
				}
				return m.BackState()
			},
			"back": func(ctx context.Context, m *dialog.Manager, _ string) error {
				return m.BackState()
			},
		},
	}
}
