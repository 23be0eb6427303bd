package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/yasyapobeda/homework-bot/internal/dialog"
	"github.com/yasyapobeda/homework-bot/internal/locale"
	"github.com/yasyapobeda/homework-bot/internal/models"
	"github.com/yasyapobeda/homework-bot/internal/service"
	"github.com/yasyapobeda/homework-bot/pkg/utils"
)

func (h *Handler) containersWindow() *dialog.Window {
	return &dialog.Window{
		Render: func(ctx context.Context, m *dialog.Manager) (*dialog.View, error) {
			user, lang, err := h.lang(ctx, m)
			if err != nil {
				return nil, err
			}

			containers, err := h.containers.ListVisible(ctx, user.ID)
			if err != nil {
				return nil, err
			}

			page, current, total := dialog.Paginate(containers, m.Page(), dialog.DefaultPageSize)

			view := &dialog.View{Text: locale.T(lang, "containers.title")}
			for _, c := range page {
				label := c.Name
				if c.OwnerID == user.ID {
					label = "⚙️ " + label
				}
				if c.IsArchived {
					label = "🔒 " + label
				}
				view.AddRow(dialog.BtnArg(label, "open", strconv.FormatInt(c.ID, 10)))
			}
			view.AddRow(dialog.PagerRow(current, total)...)
			view.AddRow(dialog.Btn(locale.T(lang, "common.home"), "home"))
			return view, nil
		},
		OnCallback: map[string]dialog.CallbackHandler{
			"open": func(ctx context.Context, m *dialog.Manager, arg string) error {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return err
				}
				return m.Start(ContainersView, map[string]any{"container_id": id})
			},
			"home": func(ctx context.Context, m *dialog.Manager, _ string) error {
				m.StartReset(MainIntro, nil)
				return nil
			},
		},
	}
}

func (h *Handler) containerViewWindow() *dialog.Window {
	return &dialog.Window{
		Render: func(ctx context.Context, m *dialog.Manager) (*dialog.View, error) {
			user, lang, err := h.lang(ctx, m)
			if err != nil {
				return nil, err
			}

			id, ok := m.Frame().StartInt64("container_id")
			if !ok {
				return nil, dialog.ErrUnknownState
			}

			container, err := h.containers.Get(ctx, id)
			if err != nil {
				return nil, err
			}

			var sb strings.Builder
			sb.WriteString(locale.Tf(lang, "containers.view_title", utils.EscapeHTML(container.Name)))
			if container.Description != nil {
				sb.WriteString("\n\n")
				sb.WriteString(utils.EscapeHTML(*container.Description))
			}
			if container.Deadline != nil {
				sb.WriteString("\n\n")
				sb.WriteString(locale.Tf(lang, "containers.deadline", container.Deadline.In(h.location).Format("02.01.2006")))
			}
			if container.IsArchived {
				sb.WriteString("\n\n")
				sb.WriteString(locale.T(lang, "containers.archived"))
			}

			owner := container.OwnerID == user.ID

			var submitted *models.Homework
			if !owner {
				submitted, err = h.homeworks.GetByContainerAndOwner(ctx, id, user.ID)
				if err != nil {
					return nil, err
				}
				if submitted != nil {
					sb.WriteString("\n\n")
					sb.WriteString(locale.Tf(lang, "containers.submitted", submitted.ID))
				}
			}

			view := &dialog.View{Text: sb.String()}
			if owner {
				view.AddRow(dialog.Btn(locale.T(lang, "containers.solutions"), "solutions"))
				view.AddRow(dialog.Btn(locale.T(lang, "containers.share"), "share"))
				if !container.IsArchived {
					view.AddRow(dialog.Btn(locale.T(lang, "containers.archive"), "archive"))
				}
			} else if !container.IsArchived && submitted == nil {
				view.AddRow(dialog.Btn(locale.T(lang, "containers.upload"), "upload"))
			}
			view.AddRow(dialog.Btn(locale.T(lang, "common.back"), "back"))
			return view, nil
		},
		OnCallback: map[string]dialog.CallbackHandler{
			"solutions": func(ctx context.Context, m *dialog.Manager, _ string) error {
				id, _ := m.Frame().StartInt64("container_id")
				return m.Start(HomeworksIntro, map[string]any{"container_id": id})
			},
			"share": func(ctx context.Context, m *dialog.Manager, _ string) error {
				_, lang, err := h.lang(ctx, m)
				if err != nil {
					return err
				}

				id, _ := m.Frame().StartInt64("container_id")
				container, err := h.containers.Get(ctx, id)
				if err != nil {
					return err
				}

				m.SetShowMode(dialog.ShowNone)
				return m.Notify(ctx, locale.Tf(lang, "containers.share_text",
					utils.EscapeHTML(container.Name), h.inviteLink(container.InviteCode)))
			},
			"archive": func(ctx context.Context, m *dialog.Manager, _ string) error {
				id, _ := m.Frame().StartInt64("container_id")
				return m.Start(ContainersArchiveConfirm, map[string]any{"container_id": id})
			},
			"upload": func(ctx context.Context, m *dialog.Manager, _ string) error {
				id, _ := m.Frame().StartInt64("container_id")
				return m.Start(ContainersAddHomework, map[string]any{"container_id": id})
			},
			"back": func(ctx context.Context, m *dialog.Manager, _ string) error {
				m.Back()
				if m.Frame() == nil {
					m.StartReset(ContainersIntro, nil)
				}
				return nil
			},
		},
	}
}

func (h *Handler) archiveConfirmWindow() *dialog.Window {
	return &dialog.Window{
		Render: func(ctx context.Context, m *dialog.Manager) (*dialog.View, error) {
			_, lang, err := h.lang(ctx, m)
			if err != nil {
				return nil, err
			}

			id, _ := m.Frame().StartInt64("container_id")
			container, err := h.containers.Get(ctx, id)
			if err != nil {
				return nil, err
			}

			view := &dialog.View{Text: locale.Tf(lang, "containers.archive_confirm", utils.EscapeHTML(container.Name))}
			view.AddRow(dialog.Btn(locale.T(lang, "containers.archive_yes"), "yes"))
			view.AddRow(dialog.Btn(locale.T(lang, "common.cancel"), "cancel"))
			return view, nil
		},
		OnCallback: map[string]dialog.CallbackHandler{
			"yes": func(ctx context.Context, m *dialog.Manager, _ string) error {
				id, _ := m.Frame().StartInt64("container_id")
				if err := h.containers.Archive(ctx, id); err != nil {
					return err
				}
				m.Back()
				return nil
			},
			"cancel": func(ctx context.Context, m *dialog.Manager, _ string) error {
				m.Back()
				return nil
			},
		},
	}
}

func (h *Handler) addHomeworkWindow() *dialog.Window {
	return &dialog.Window{
		Render: func(ctx context.Context, m *dialog.Manager) (*dialog.View, error) {
			_, lang, err := h.lang(ctx, m)
			if err != nil {
				return nil, err
			}

			view := &dialog.View{Text: locale.Tf(lang, "containers.add_homework", h.limitMB)}
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

			id, _ := m.Frame().StartInt64("container_id")

			req := &service.SubmitRequest{
				ContainerID: id,
				OwnerID:     user.ID,
				OwnerFIO:    *user.FIO,
			}
			switch {
			case msg.Document != nil:
				req.FileID = msg.Document.FileID
				req.FileName = msg.Document.FileName
				req.FileSize = msg.Document.FileSize
			case strings.TrimSpace(msg.Text) != "":
				req.Text = msg.Text
			default:
				return m.Notify(ctx, locale.T(lang, "common.invalid_input"))
			}

			// Классификация PDF занимает десятки секунд, предупреждаем сразу.
			if err := m.Notify(ctx, locale.T(lang, "submit.processing")); err != nil {
				return err
			}

			homework, err := h.homeworks.Submit(ctx, req)
			switch {
			case errors.Is(err, service.ErrFileTooLarge):
				return m.Notify(ctx, locale.Tf(lang, "submit.too_big", h.limitMB))
			case errors.Is(err, service.ErrBadFileName):
				return m.Notify(ctx, locale.T(lang, "submit.bad_name"))
			case err != nil:
				h.logger.Error().Err(err).Int64("container_id", id).Msg("Failed to submit homework")
				return m.Notify(ctx, locale.T(lang, "submit.failed"))
			}

			if err := m.Notify(ctx, locale.Tf(lang, "submit.done", homework.ID)); err != nil {
				return err
			}
			m.Back()
			return nil
		},
	}
}
