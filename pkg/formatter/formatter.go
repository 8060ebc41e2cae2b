package formatter

import (
	"strings"
	"unicode/utf8"

	"github.com/orgball2608/social-detail-bot/internal/domain"
)

// MaxCaptionContent bounds the post body inside a caption; Telegram rejects
// captions over 1024 characters.
const MaxCaptionContent = 800

// EscapeMarkdownV2 escapes special characters in Markdown V2 format
func EscapeMarkdownV2(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			sb.WriteRune('\\')
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// EscapeMarkdownV2URL escapes the inside of an inline link target, where
// only ')' and '\' are special.
func EscapeMarkdownV2URL(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `)`, `\)`)
	return r.Replace(s)
}

// Truncate cuts s to at most n runes, appending an ellipsis when it does.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimRightFunc(string(runes[:n]), func(r rune) bool { return r == ' ' || r == '\n' }) + "…"
}

// DetailCaption renders a resolved post as a MarkdownV2 caption:
// bold title, author line, the body and an optional link.
func DetailCaption(title string, post domain.Post, link string) string {
	var sb strings.Builder

	sb.WriteString("*")
	sb.WriteString(EscapeMarkdownV2(title))
	sb.WriteString("*")

	if post.UserName != "" {
		sb.WriteString("\n👤 ")
		sb.WriteString(EscapeMarkdownV2(post.UserName))
	}
	if post.CreatedAt != "" {
		sb.WriteString("\n🕒 ")
		sb.WriteString(EscapeMarkdownV2(post.CreatedAt))
	}
	if content := strings.TrimSpace(post.Content); content != "" {
		sb.WriteString("\n\n")
		sb.WriteString(EscapeMarkdownV2(Truncate(content, MaxCaptionContent)))
	}
	if link != "" {
		sb.WriteString("\n\n[Open](")
		sb.WriteString(EscapeMarkdownV2URL(link))
		sb.WriteString(")")
	}

	return sb.String()
}
