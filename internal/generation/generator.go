// Package generation оборачивает Gemini в клиент генерации коротких
// мотивационных текстов. Одна операция — один синхронный вызов без
// повторов и без стриминга.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Fallback — фиксированный текст, который уходит пользователю,
// когда генерация не удалась. Сбой генерации не прерывает слот.
const Fallback = "Oops, something went wrong generating your message."

// Client — клиент генерации текста поверх Gemini API.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewClient создает клиент генерации с ключом API и именем модели.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Client{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Generate выполняет один запрос генерации по промпту и возвращает текст.
// Таймаут клиента ограничивает вызов; ошибка и пустой ответ возвращаются
// вызывающему, политика подмены на Fallback — на его стороне.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	temp := float32(0.8)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: 160,
	}

	res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(res.Text())
	if text == "" {
		return "", errors.New("generation returned empty text")
	}
	return text, nil
}
