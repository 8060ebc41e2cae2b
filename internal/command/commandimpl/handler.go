package commandimpl

import (
	"context"
	"errors"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpMessage = `👋 *Welcome to the Detail Link Bot\!*

Here are the available commands:

/detail <link or segment> \- Show the post, photo, cover, video or story behind a detail link\.
/link <type> <id> <uniqueId> \[name\] \- Build a detail link\. Types: post, photo, cover, video, story\.

Examples:
` + "`/detail post-123-4567890123`" + `
` + "`/link photo 42 0912345678 John Doe`" + `

Type /help at any time to see this guide\.`

const (
	unknownCommandMessage = "Unknown command\\. Type /help to see the list of available commands\\."
	rateLimitedMessage    = "⏳ Too many requests\\. Please wait a few seconds and try again\\."
)

func (c *CommandImpl) HandleCommand(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := c.Telegram.GetUpdatesChan(u)
	c.Logger.Info("Command handler started, listening for updates.")

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Command handler shutting down.")
			c.Telegram.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				c.Logger.Warn("Telegram updates channel closed unexpectedly.")
				return errors.New("telegram updates channel closed")
			}

			go c.handleUpdate(ctx, update)
		}
	}
}

func (c *CommandImpl) handleUpdate(ctx context.Context, u tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			c.Logger.Error("Panic recovered while processing an update", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	if u.Message == nil || !u.Message.IsCommand() {
		return
	}

	c.Logger.Debug("Command received", "chat", u.Message.Chat.ID, "text", u.Message.Text)

	if err := c.processCommand(ctx, u.Message); err != nil {
		c.Logger.Error("Error processing command",
			"command", u.Message.Command(),
			"error", err)
	}
}

func (c *CommandImpl) processCommand(ctx context.Context, msg *tgbotapi.Message) error {
	chatID := msg.Chat.ID

	if msg.From != nil && !c.Limiter.Allow(msg.From.ID) {
		c.Logger.Warn("Rate limit exceeded", "user", msg.From.ID)
		_, err := c.Telegram.SendMessage(chatID, rateLimitedMessage)
		return err
	}

	switch msg.Command() {
	case "start", "help":
		_, err := c.Telegram.SendMessage(chatID, helpMessage)
		return err
	case "detail":
		return c.handleDetailCommand(ctx, chatID, msg.CommandArguments())
	case "link":
		return c.handleLinkCommand(chatID, msg.CommandArguments())
	default:
		_, err := c.Telegram.SendMessage(chatID, unknownCommandMessage)
		return err
	}
}
