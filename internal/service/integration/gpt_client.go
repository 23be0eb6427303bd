package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Summarizer классифицирует текст домашней работы в короткую метку
// "предмет, тема".
type Summarizer interface {
	SummarizeHomework(ctx context.Context, text string) (string, error)
}

const summarizePrompt = "Ты получаешь на вход текст домашней работы студента. " +
	"Классифицируй домашние работы в подходящую категорию по принципу: предмет, тема. " +
	"В ответе укажи только предмет и тему через запятую. " +
	"Пример вывода номер 1: 'Искусственный интеллект, Сверточные нейронные сети'. " +
	"Пример вывода номер 2: 'Биология, Генетика'. " +
	"Пример вывода номер 3: 'Геометрия, Стереометрия'. " +
	"Выводи строго не больше 3 слов."

type gptClient struct {
	baseURL      string
	apiKey       string
	folderID     string
	model        string
	pollCount    int
	pollInterval time.Duration
	client       *http.Client
	logger       zerolog.Logger
}

// NewGPTClient создаёт клиент асинхронного completion API YandexGPT.
// Ответ забирается опросом операции: каждый запрос идемпотентен по её id,
// исчерпание попыток — жёсткая ошибка.
func NewGPTClient(baseURL, apiKey, folderID, model string, timeout time.Duration, pollCount int, pollInterval time.Duration, logger zerolog.Logger) Summarizer {
	return &gptClient{
		baseURL:      baseURL,
		apiKey:       apiKey,
		folderID:     folderID,
		model:        model,
		pollCount:    pollCount,
		pollInterval: pollInterval,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

type completionRequest struct {
	ModelURI          string            `json:"modelUri"`
	CompletionOptions completionOptions `json:"completionOptions"`
	Messages          []completionMsg   `json:"messages"`
}

type completionOptions struct {
	Stream      bool    `json:"stream"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

type completionMsg struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type operationResponse struct {
	ID       string `json:"id"`
	Done     bool   `json:"done"`
	Response struct {
		Alternatives []struct {
			Message completionMsg `json:"message"`
		} `json:"alternatives"`
	} `json:"response"`
}

func (c *gptClient) SummarizeHomework(ctx context.Context, text string) (string, error) {
	body := completionRequest{
		ModelURI: fmt.Sprintf("gpt://%s/%s", c.folderID, c.model),
		CompletionOptions: completionOptions{
			Stream:      false,
			Temperature: 0,
			MaxTokens:   4000,
		},
		Messages: []completionMsg{
			{Role: "system", Text: summarizePrompt},
			{Role: "user", Text: text},
		},
	}

	operationID, err := c.startCompletion(ctx, &body)
	if err != nil {
		return "", err
	}

	answer, err := c.awaitCompletion(ctx, operationID)
	if err != nil {
		return "", err
	}

	return toLabel(answer), nil
}

func (c *gptClient) startCompletion(ctx context.Context, body *completionRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	url := c.baseURL + "/foundationModels/v1/completionAsync"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Api-Key "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to start completion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API returned status %d", resp.StatusCode)
	}

	var op operationResponse
	if err := json.NewDecoder(resp.Body).Decode(&op); err != nil {
		return "", fmt.Errorf("failed to decode operation: %w", err)
	}
	if op.ID == "" {
		return "", fmt.Errorf("completion API returned empty operation id")
	}

	return op.ID, nil
}

func (c *gptClient) awaitCompletion(ctx context.Context, operationID string) (string, error) {
	url := c.baseURL + "/operations/" + operationID

	for i := 0; i < c.pollCount; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.pollInterval):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", fmt.Errorf("failed to create poll request: %w", err)
		}
		req.Header.Set("Authorization", "Api-Key "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			return "", fmt.Errorf("failed to poll operation: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return "", fmt.Errorf("operations API returned status %d", resp.StatusCode)
		}

		var op operationResponse
		err = json.NewDecoder(resp.Body).Decode(&op)
		resp.Body.Close()
		if err != nil {
			return "", fmt.Errorf("failed to decode operation status: %w", err)
		}

		if op.Done {
			if len(op.Response.Alternatives) == 0 {
				return "", fmt.Errorf("operation %s completed without alternatives", operationID)
			}
			return op.Response.Alternatives[0].Message.Text, nil
		}
	}

	return "", fmt.Errorf("timeout waiting for response for operation %s", operationID)
}

// toLabel превращает ответ модели "Предмет, Тема" в метку "Предмет_Тема".
func toLabel(answer string) string {
	parts := strings.Split(answer, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.ReplaceAll(strings.Join(parts, " "), " ", "_")
}
