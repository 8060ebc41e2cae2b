package commandimpl

import (
	"context"
	"fmt"
	"strings"

	"github.com/orgball2608/social-detail-bot/internal/detail"
	"github.com/orgball2608/social-detail-bot/internal/domain"
	"github.com/orgball2608/social-detail-bot/internal/posturl"
	"github.com/orgball2608/social-detail-bot/internal/telegram"
	"github.com/orgball2608/social-detail-bot/pkg/formatter"
)

const (
	detailUsage = "Please provide a detail link or segment: /detail <link>"
	linkUsage   = "Usage: /link <type> <id> <uniqueId> \\[name\\]\nTypes: post, photo, cover, video, story"
)

func (c *CommandImpl) handleDetailCommand(ctx context.Context, chatID int64, args string) error {
	segment := posturl.SegmentFromLink(args)
	if segment == "" {
		_, err := c.Telegram.SendMessage(chatID, formatter.EscapeMarkdownV2(detailUsage))
		return err
	}

	parsed := detail.Parse(segment)
	result := c.Resolver.Fetch(ctx, parsed)
	if !result.Found() {
		text := fmt.Sprintf("❌ Nothing found for `%s`\\. The post may have been removed or the link is invalid\\.",
			escapeCode(result.OriginalID))
		_, err := c.Telegram.SendMessage(chatID, text)
		return err
	}

	post := *result.Post
	canonical := posturl.Canonical(parsed.Kind, post)
	if canonical == "" {
		canonical = result.OriginalID
	}
	caption := formatter.DetailCaption(detail.Title(parsed.Kind), post, c.link(canonical))

	media := post.Media()
	if media == "" {
		_, err := c.Telegram.SendMessage(chatID, caption)
		return err
	}

	if err := c.Telegram.SendMedia(chatID, mediaKind(parsed.Kind, media), media, caption); err != nil {
		c.Logger.Error("Failed to send detail media, falling back to text", "url", media, "error", err)
		_, err = c.Telegram.SendMessage(chatID, caption)
		return err
	}
	return nil
}

func (c *CommandImpl) handleLinkCommand(chatID int64, args string) error {
	fields := strings.Fields(args)
	if len(fields) < 3 {
		_, err := c.Telegram.SendMessage(chatID, linkUsage)
		return err
	}

	p := posturl.Params{
		Type:       posturl.Type(strings.ToLower(fields[0])),
		ID:         fields[1],
		UniqueID:   fields[2],
		Identifier: posturl.NormalizeIdentifier(strings.Join(fields[3:], " ")),
	}
	segment := posturl.Build(p)

	text := fmt.Sprintf("🔗 `%s`", escapeCode(c.link(segment)))
	_, err := c.Telegram.SendMessage(chatID, text)
	return err
}

// link turns a segment into an absolute URL when a public base is configured.
func (c *CommandImpl) link(segment string) string {
	path := posturl.Path(segment)
	if c.Config == nil || c.Config.Links.BaseURL == "" {
		return path
	}
	return strings.TrimRight(c.Config.Links.BaseURL, "/") + path
}

func mediaKind(kind domain.EntityKind, url string) telegram.MediaKind {
	if kind == domain.KindVideo || strings.Contains(strings.ToLower(url), ".mp4") {
		return telegram.MediaVideo
	}
	return telegram.MediaPhoto
}

// escapeCode escapes text placed inside a MarkdownV2 code span.
func escapeCode(s string) string {
	return strings.NewReplacer("\\", "\\\\", "`", "\\`").Replace(s)
}
