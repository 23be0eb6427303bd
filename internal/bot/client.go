package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/yasyapobeda/homework-bot/internal/dialog"
)

// Client оборачивает Bot API: отрисовка окон для диалогового движка и
// перекладывание файлов для сервисов.
type Client struct {
	api    *tgbotapi.BotAPI
	http   *http.Client
	logger zerolog.Logger
}

func NewClient(api *tgbotapi.BotAPI, logger zerolog.Logger) *Client {
	return &Client{
		api:    api,
		http:   &http.Client{},
		logger: logger,
	}
}

func (c *Client) Username() string {
	return c.api.Self.UserName
}

func (c *Client) SendView(ctx context.Context, chatID int64, view *dialog.RenderedView) (int, error) {
	markup := keyboard(view)

	if view.DocumentFileID != "" {
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileID(view.DocumentFileID))
		doc.Caption = view.Text
		doc.ParseMode = tgbotapi.ModeHTML
		if markup != nil {
			doc.ReplyMarkup = *markup
		}

		sent, err := c.api.Send(doc)
		if err != nil {
			return 0, fmt.Errorf("failed to send document message: %w", err)
		}
		return sent.MessageID, nil
	}

	msg := tgbotapi.NewMessage(chatID, view.Text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = view.DisableWebPreview
	if markup != nil {
		msg.ReplyMarkup = *markup
	}

	sent, err := c.api.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("failed to send message: %w", err)
	}
	return sent.MessageID, nil
}

func (c *Client) EditView(ctx context.Context, chatID int64, messageID int, view *dialog.RenderedView) error {
	var edit tgbotapi.EditMessageTextConfig
	if markup := keyboard(view); markup != nil {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, view.Text, *markup)
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, view.Text)
	}
	edit.ParseMode = tgbotapi.ModeHTML
	edit.DisableWebPagePreview = view.DisableWebPreview

	if _, err := c.api.Send(edit); err != nil {
		return fmt.Errorf("failed to edit message: %w", err)
	}
	return nil
}

func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string, alert bool) error {
	callback := tgbotapi.NewCallback(callbackID, text)
	callback.ShowAlert = alert

	if _, err := c.api.Request(callback); err != nil {
		return fmt.Errorf("failed to answer callback: %w", err)
	}
	return nil
}

// DownloadFile скачивает файл с серверов Telegram по file_id.
func (c *Client) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := c.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file body: %w", err)
	}
	return data, nil
}

// UploadDocument отправляет документ в чат и возвращает file_id копии.
func (c *Client) UploadDocument(ctx context.Context, chatID int64, name string, data []byte) (string, error) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  name,
		Bytes: data,
	})

	sent, err := c.api.Send(doc)
	if err != nil {
		return "", fmt.Errorf("failed to upload document: %w", err)
	}
	if sent.Document == nil {
		return "", fmt.Errorf("telegram response has no document")
	}
	return sent.Document.FileID, nil
}

func keyboard(view *dialog.RenderedView) *tgbotapi.InlineKeyboardMarkup {
	if len(view.Keyboard) == 0 {
		return nil
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(view.Keyboard))
	for _, row := range view.Keyboard {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			if b.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(b.Label, b.URL))
			} else {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
			}
		}
		rows = append(rows, buttons)
	}

	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}
