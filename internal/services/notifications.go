package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const telegramAPIBaseURL = "https://api.telegram.org"

// Notice is a single user-facing notification.
type Notice struct {
	Key   string
	Title string
	Body  string
}

func (notice Notice) Text() string {
	if notice.Title == "" {
		return notice.Body
	}
	if notice.Body == "" {
		return notice.Title
	}
	return notice.Title + "\n" + notice.Body
}

type Notifier interface {
	Notify(ctx context.Context, notice Notice) error
}

// LogNotifier writes notices to a logger. It is the delivery channel when no
// external one is configured.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{logger: logger}
}

func (notifier *LogNotifier) Notify(_ context.Context, notice Notice) error {
	notifier.logger.Printf("notifications: %s: %s", notice.Key, strings.ReplaceAll(notice.Text(), "\n", " | "))
	return nil
}

type TelegramNotifier struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
}

func NewTelegramNotifier(botToken string, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  telegramAPIBaseURL,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

func (notifier *TelegramNotifier) Notify(ctx context.Context, notice Notice) error {
	values := url.Values{}
	values.Set("chat_id", notifier.chatID)
	values.Set("text", notice.Text())

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(notifier.baseURL, "/"), notifier.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := notifier.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}
