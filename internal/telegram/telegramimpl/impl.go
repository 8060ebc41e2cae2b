package telegramimpl

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/orgball2608/social-detail-bot/internal/telegram"
	"github.com/orgball2608/social-detail-bot/pkg/config"
	"github.com/orgball2608/social-detail-bot/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type TelegramImpl struct {
	TgBot  *tgbotapi.BotAPI
	Logger logger.Logger
	Config *config.Config
}

func New(opts Opts) (*TelegramImpl, error) {
	tgBot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		opts.Logger.Error("Error creating bot", "Error", err)
		return nil, err
	}

	return &TelegramImpl{
		TgBot:  tgBot,
		Logger: opts.Logger.WithComponent("Telegram"),
		Config: opts.Config,
	}, nil
}

var _ telegram.Client = (*TelegramImpl)(nil)

func (tg *TelegramImpl) GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return tg.TgBot.GetUpdatesChan(u)
}

func (tg *TelegramImpl) StopReceivingUpdates() {
	tg.TgBot.StopReceivingUpdates()
}

func (tg *TelegramImpl) SendMessage(chatID int64, text string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true

	sent, err := tg.TgBot.Send(msg)
	if err != nil {
		tg.Logger.Error("Error sending message", "chatID", chatID, "error", err)
		return 0, fmt.Errorf("failed to send message: %w", err)
	}
	return sent.MessageID, nil
}

func (tg *TelegramImpl) SendMedia(chatID int64, kind telegram.MediaKind, url, caption string) error {
	file := tgbotapi.FileURL(url)

	var msg tgbotapi.Chattable
	switch kind {
	case telegram.MediaPhoto:
		photo := tgbotapi.NewPhoto(chatID, file)
		photo.Caption = caption
		photo.ParseMode = tgbotapi.ModeMarkdownV2
		msg = photo
	case telegram.MediaVideo:
		video := tgbotapi.NewVideo(chatID, file)
		video.Caption = caption
		video.ParseMode = tgbotapi.ModeMarkdownV2
		msg = video
	default:
		return fmt.Errorf("unsupported media kind: %d", kind)
	}

	if _, err := tg.TgBot.Send(msg); err != nil {
		tg.Logger.Error("Error sending media",
			"chatID", chatID,
			"url", url,
			"error", err)
		return fmt.Errorf("failed to send %s: %w", mediaKindName(kind), err)
	}

	tg.Logger.Info("Media sent", "chatID", chatID, "type", mediaKindName(kind))
	return nil
}

func mediaKindName(kind telegram.MediaKind) string {
	switch kind {
	case telegram.MediaPhoto:
		return "photo"
	case telegram.MediaVideo:
		return "video"
	default:
		return "unknown"
	}
}
