package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yasyapobeda/homework-bot/internal/dialog"
	"github.com/yasyapobeda/homework-bot/internal/locale"
	"github.com/yasyapobeda/homework-bot/internal/models"
	"github.com/yasyapobeda/homework-bot/pkg/utils"
)

func (h *Handler) homeworksWindow() *dialog.Window {
	return &dialog.Window{
		Render: func(ctx context.Context, m *dialog.Manager) (*dialog.View, error) {
			_, lang, err := h.lang(ctx, m)
			if err != nil {
				return nil, err
			}

			id, ok := m.Frame().StartInt64("container_id")
			if !ok {
				return nil, dialog.ErrUnknownState
			}

			homeworks, err := h.homeworks.ListByContainer(ctx, id)
			if err != nil {
				return nil, err
			}

			page, current, total := dialog.Paginate(homeworks, m.Page(), dialog.DefaultPageSize)

			view := &dialog.View{Text: locale.T(lang, "homeworks.title")}
			for _, hw := range page {
				label := fmt.Sprintf("%d · %s", hw.ID, utils.ShortFIO(hw.OwnerFIO))
				if hw.Failed() {
					label += " ⛔"
				} else if hw.Graded() {
					label += fmt.Sprintf(" · %d", *hw.Mark)
				}
				view.AddRow(dialog.BtnArg(label, "open", strconv.FormatInt(hw.ID, 10)))
			}
			view.AddRow(dialog.PagerRow(current, total)...)
			if len(homeworks) > 0 {
				view.AddRow(dialog.Btn(locale.T(lang, "homeworks.download_all"), "zip"))
				view.AddRow(dialog.Btn(locale.T(lang, "homeworks.download_table"), "xlsx"))
			}
			view.AddRow(dialog.Btn(locale.T(lang, "common.back"), "back"))
			return view, nil
		},
		OnCallback: map[string]dialog.CallbackHandler{
			"open": func(ctx context.Context, m *dialog.Manager, arg string) error {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return err
				}
				return m.Start(HomeworksView, map[string]any{"homework_id": id})
			},
			"zip":  h.exportArchive,
			"xlsx": h.exportGradeTable,
			"back": func(ctx context.Context, m *dialog.Manager, _ string) error {
				m.Back()
				return nil
			},
		},
	}
}

func (h *Handler) exportArchive(ctx context.Context, m *dialog.Manager, _ string) error {
	_, lang, err := h.lang(ctx, m)
	if err != nil {
		return err
	}

	id, _ := m.Frame().StartInt64("container_id")

	m.SetShowMode(dialog.ShowNone)
	if err := m.Toast(ctx, locale.T(lang, "homeworks.exporting")); err != nil {
		return err
	}

	archive, err := h.exports.BuildArchive(ctx, id)
	if err != nil {
		h.logger.Error().Err(err).Int64("container_id", id).Msg("Failed to build archive")
		return m.Notify(ctx, locale.T(lang, "homeworks.export_failed"))
	}

	if archive.Downloaded > 0 {
		if _, err := h.relay.UploadDocument(ctx, m.ChatID(), archive.Name, archive.Data); err != nil {
			h.logger.Error().Err(err).Int64("container_id", id).Msg("Failed to send archive")
			return m.Notify(ctx, locale.T(lang, "homeworks.export_failed"))
		}
	}

	return m.Notify(ctx, locale.Tf(lang, "homeworks.export_done", archive.Downloaded, archive.Total))
}

func (h *Handler) exportGradeTable(ctx context.Context, m *dialog.Manager, _ string) error {
	_, lang, err := h.lang(ctx, m)
	if err != nil {
		return err
	}

	id, _ := m.Frame().StartInt64("container_id")

	m.SetShowMode(dialog.ShowNone)
	if err := m.Toast(ctx, locale.T(lang, "homeworks.exporting")); err != nil {
		return err
	}

	table, err := h.exports.BuildGradeTable(ctx, id, lang)
	if err != nil {
		h.logger.Error().Err(err).Int64("container_id", id).Msg("Failed to build grade table")
		return m.Notify(ctx, locale.T(lang, "homeworks.export_failed"))
	}

	if _, err := h.relay.UploadDocument(ctx, m.ChatID(), table.Name, table.Data); err != nil {
		h.logger.Error().Err(err).Int64("container_id", id).Msg("Failed to send grade table")
		return m.Notify(ctx, locale.T(lang, "homeworks.export_failed"))
	}
	return nil
}

func (h *Handler) homeworkViewWindow() *dialog.Window {
	return &dialog.Window{
		Render: func(ctx context.Context, m *dialog.Manager) (*dialog.View, error) {
			user, lang, err := h.lang(ctx, m)
			if err != nil {
				return nil, err
			}

			id, ok := m.Frame().StartInt64("homework_id")
			if !ok {
				return nil, dialog.ErrUnknownState
			}

			homework, err := h.homeworks.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			container, err := h.containers.Get(ctx, homework.ContainerID)
			if err != nil {
				return nil, err
			}

			var sb strings.Builder
			sb.WriteString(locale.Tf(lang, "homeworks.view_title",
				utils.EscapeHTML(container.Name),
				homework.ID,
				utils.EscapeHTML(utils.ShortFIO(homework.OwnerFIO)),
				homework.CreatedAt.In(h.location).Format("02.01.2006 15:04"),
			))
			if homework.Failed() {
				sb.WriteString("\n\n")
				sb.WriteString(locale.T(lang, "homeworks.failed"))
			} else if homework.Graded() {
				sb.WriteString("\n\n")
				sb.WriteString(locale.Tf(lang, "homeworks.marked", *homework.Mark))
			}
			if homework.Text != nil {
				sb.WriteString("\n\n")
				sb.WriteString(utils.EscapeHTML(*homework.Text))
			}

			view := &dialog.View{
				Text:           sb.String(),
				DocumentFileID: homework.FileID,
			}
			if container.OwnerID == user.ID && !homework.Graded() {
				view.AddRow(dialog.Btn(locale.T(lang, "homeworks.set_mark"), "mark"))
				view.AddRow(dialog.Btn(locale.T(lang, "homeworks.fail_btn"), "fail"))
			}
			view.AddRow(dialog.Btn(locale.T(lang, "common.back"), "back"))
			return view, nil
		},
		OnCallback: map[string]dialog.CallbackHandler{
			"mark": func(ctx context.Context, m *dialog.Manager, _ string) error {
				id, _ := m.Frame().StartInt64("homework_id")
				return m.Start(HomeworksAddMark, map[string]any{"homework_id": id})
			},
			"fail": func(ctx context.Context, m *dialog.Manager, _ string) error {
				id, _ := m.Frame().StartInt64("homework_id")
				return h.homeworks.SetMark(ctx, id, models.MarkFail)
			},
			"back": func(ctx context.Context, m *dialog.Manager, _ string) error {
				m.Back()
				return nil
			},
		},
	}
}

func (h *Handler) addMarkWindow() *dialog.Window {
	return &dialog.Window{
		Render: func(ctx context.Context, m *dialog.Manager) (*dialog.View, error) {
			_, lang, err := h.lang(ctx, m)
			if err != nil {
				return nil, err
			}

			view := &dialog.View{Text: locale.T(lang, "homeworks.mark_prompt")}
			view.AddRow(dialog.Btn(locale.T(lang, "homeworks.fail_btn"), "fail"))
			view.AddRow(dialog.Btn(locale.T(lang, "common.cancel"), "cancel"))
			return view, nil
		},
		OnCallback: map[string]dialog.CallbackHandler{
			"fail": func(ctx context.Context, m *dialog.Manager, _ string) error {
				id, _ := m.Frame().StartInt64("homework_id")
				if err := h.homeworks.SetMark(ctx, id, models.MarkFail); err != nil {
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
		OnMessage: func(ctx context.Context, m *dialog.Manager, msg *dialog.IncomingMessage) error {
			_, lang, err := h.lang(ctx, m)
			if err != nil {
				return err
			}

			mark, err := strconv.Atoi(strings.TrimSpace(msg.Text))
			if err != nil || mark < 0 {
				return m.Notify(ctx, locale.T(lang, "homeworks.mark_invalid"))
			}

			id, _ := m.Frame().StartInt64("homework_id")
			if err := h.homeworks.SetMark(ctx, id, mark); err != nil {
				return err
			}
			m.Back()
			return nil
		},
	}
}
