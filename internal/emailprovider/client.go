// Package emailprovider реализует клиент Resend-совместимого email API.
// Письмо уходит от имени бадди пользователя, тело оборачивается
// в фиксированное HTML-оформление.
package emailprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"
	"time"
)

var (
	// ErrNotConfigured возвращается, когда ключ API провайдера не задан.
	ErrNotConfigured = errors.New("email provider is not configured")
	// ErrNoAddress возвращается при пустом адресе получателя.
	ErrNoAddress = errors.New("recipient email address is empty")
)

// Client — клиент отправки писем через REST API провайдера.
type Client struct {
	apiKey      string
	fromAddress string
	apiURL      string
	httpClient  *http.Client
}

// NewClient создает новый email-клиент.
func NewClient(apiKey, fromAddress string, timeout time.Duration) *Client {
	return &Client{
		apiKey:      apiKey,
		fromAddress: fromAddress,
		apiURL:      "https://api.resend.com",
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Subject собирает тему письма из метки слота и текущей календарной даты.
func Subject(label string, now time.Time) string {
	return label + " " + now.Format("Monday January 02, 2006")
}

// Send отправляет одно письмо и возвращает идентификатор письма провайдера.
// Поле from подписывается именем бадди, текст уходит внутри <pre>.
func (c *Client) Send(ctx context.Context, to, buddyName, subject, body string) (string, error) {
	if to == "" {
		return "", ErrNoAddress
	}
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	payload := sendRequest{
		From:    fmt.Sprintf("%s <%s>", buddyName, c.fromAddress),
		To:      []string{to},
		Subject: subject,
		HTML:    fmt.Sprintf("<pre style='font-size: 16px'>%s</pre>", html.EscapeString(body)),
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/emails", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", errors.New("email provider: unexpected status " + resp.Status)
	}

	var sent sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sent); err != nil {
		return "", fmt.Errorf("decode email response: %w", err)
	}
	if sent.ID == "" {
		return "", errors.New("email provider did not return a message id")
	}
	return sent.ID, nil
}
