// Package smsprovider реализует клиент Twilio-совместимого SMS API.
// Отсутствие учётных данных и непригодный номер — не исключительные
// ситуации: клиент возвращает типизированные ошибки, которые вызывающий
// превращает в статус "не отправлено".
package smsprovider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrNotConfigured возвращается, когда учётные данные провайдера не заданы.
	ErrNotConfigured = errors.New("sms provider is not configured")
	// ErrInvalidNumber возвращается для номера, который нельзя привести к формату E.164.
	ErrInvalidNumber = errors.New("invalid phone number format")
)

// Client — клиент отправки SMS через REST API провайдера.
type Client struct {
	accountSID string
	authToken  string
	fromNumber string
	simulate   bool
	apiURL     string
	httpClient *http.Client
}

// NewClient создает новый SMS-клиент. При simulate = true отправка
// заменяется локальным no-op с успешным исходом.
func NewClient(accountSID, authToken, fromNumber string, simulate bool, timeout time.Duration) *Client {
	return &Client{
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		simulate:   simulate,
		apiURL:     "https://api.twilio.com/2010-04-01",
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NormalizeNumber приводит номер к формату E.164. Номера с ведущим "+"
// проходят как есть, голые десятизначные дополняются кодом страны по
// умолчанию, всё остальное отвергается.
func NormalizeNumber(raw string) (string, error) {
	if strings.HasPrefix(raw, "+") {
		return raw, nil
	}
	cleaned := strings.NewReplacer("-", "", " ", "", "(", "", ")", "").Replace(strings.TrimSpace(raw))
	if len(cleaned) == 10 && isDigits(cleaned) {
		return "+1" + cleaned, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Send отправляет одно SMS и возвращает идентификатор сообщения провайдера.
func (c *Client) Send(ctx context.Context, to, body string) (string, error) {
	normalized, err := NormalizeNumber(to)
	if err != nil {
		return "", err
	}

	if c.simulate {
		return "simulated", nil
	}
	if c.accountSID == "" || c.authToken == "" || c.fromNumber == "" {
		return "", ErrNotConfigured
	}

	form := url.Values{}
	form.Set("To", normalized)
	form.Set("From", c.fromNumber)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", c.apiURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var msg messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return "", fmt.Errorf("decode sms response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if msg.ErrorMessage != "" {
			return "", fmt.Errorf("sms provider: %s", msg.ErrorMessage)
		}
		return "", errors.New("sms provider: unexpected status " + resp.Status)
	}
	if msg.SID == "" {
		return "", errors.New("sms provider did not return a message sid")
	}
	return msg.SID, nil
}
