package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MediaKind tells SendMedia how Telegram should present a file.
type MediaKind int

const (
	MediaPhoto MediaKind = iota + 1
	MediaVideo
)

//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go
type Client interface {
	GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()

	SendMessage(chatID int64, text string) (int, error)
	// SendMedia sends a photo or video by URL with an optional MarkdownV2 caption.
	SendMedia(chatID int64, kind MediaKind, url, caption string) error
}
