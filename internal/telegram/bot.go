package telegram

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-jobapply-automation/internal/listing"
	"go-jobapply-automation/internal/stats"
)

// maxMessageLen is Telegram's limit on one message's text.
const maxMessageLen = 4096

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api    sender
	chatID int64
}

func NewBot(token string, chatID int64) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Bot{api: api, chatID: chatID}, nil
}

// markdownEscaper covers every MarkdownV2 reserved character.
// tgbotapi.EscapeText does not escape the backslash itself.
var markdownEscaper = strings.NewReplacer(
	"\\", "\\\\", "_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
	")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
	"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
	"}", "\\}", ".", "\\.", "!", "\\!",
)

func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// Apply hands a listing that passed every filter to the chat, with a button
// to the posting. Filling in the application is left to the reader.
func (b *Bot) Apply(ctx context.Context, rec listing.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(b.chatID, FormatListing(rec))
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true
	if rec.SourceURL != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("🔗 Apply on "+string(rec.Platform), rec.SourceURL),
			),
		)
	}
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(b.chatID, truncate("ℹ️ "+message))
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) SendError(err error) error {
	msg := tgbotapi.NewMessage(b.chatID, truncate(fmt.Sprintf("❌ Error: %v", err)))
	_, sendErr := b.api.Send(msg)
	return sendErr
}

// SendIgnoreReport posts the brief and full ignore-term tables as
// preformatted text.
func (b *Bot) SendIgnoreReport(brief, full []stats.TermCount) error {
	var sb strings.Builder
	if err := stats.Render(&sb, "Brief Job Listing Ignore Terms", brief); err != nil {
		return err
	}
	if err := stats.Render(&sb, "Job Listing Ignore Terms", full); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(b.chatID, preformatted(sb.String()))
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

// preformatted escapes text for HTML mode and wraps it in <pre>. A body too
// long for one message is cut before wrapping, never inside an entity.
func preformatted(text string) string {
	const open, closing, ellipsis = "<pre>", "</pre>", "…"
	body := []rune(tgbotapi.EscapeText(tgbotapi.ModeHTML, text))
	room := maxMessageLen - utf8.RuneCountInString(open+closing)
	if len(body) > room {
		cut := room - utf8.RuneCountInString(ellipsis)
		if amp := lastIndex(body[:cut], '&'); amp >= 0 && lastIndex(body[amp:cut], ';') < 0 {
			cut = amp
		}
		body = append(body[:cut:cut], []rune(ellipsis)...)
	}
	return open + string(body) + closing
}

func lastIndex(r []rune, c rune) int {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i] == c {
			return i
		}
	}
	return -1
}

// FormatListing renders rec as a MarkdownV2 message.
func FormatListing(rec listing.Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "💼 *%s*\n", escapeMarkdown(rec.Title))
	fmt.Fprintf(&sb, "🏢 %s\n", escapeMarkdown(rec.Company))
	fmt.Fprintf(&sb, "📍 %s\n", escapeMarkdown(rec.Location))
	if pay := formatPayRange(rec.MinPay, rec.MaxPay); pay != "" {
		fmt.Fprintf(&sb, "💰 %s\n", escapeMarkdown(pay))
	}
	if yoe := formatYoeRange(rec.MinYoe, rec.MaxYoe); yoe != "" {
		fmt.Fprintf(&sb, "🎓 %s\n", escapeMarkdown(yoe))
	}
	fmt.Fprintf(&sb, "🔖 Source: %s", escapeMarkdown(string(rec.Platform)))
	return sb.String()
}

func formatPayRange(min, max *float64) string {
	switch {
	case min != nil && max != nil && *min == *max:
		return "$" + humanize.Comma(int64(*min))
	case min != nil && max != nil:
		return "$" + humanize.Comma(int64(*min)) + " - $" + humanize.Comma(int64(*max))
	case max != nil:
		return "up to $" + humanize.Comma(int64(*max))
	case min != nil:
		return "from $" + humanize.Comma(int64(*min))
	}
	return ""
}

func formatYoeRange(min, max *int) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%d-%d years", *min, *max)
	case min != nil:
		return fmt.Sprintf("%d+ years", *min)
	case max != nil:
		return fmt.Sprintf("up to %d years", *max)
	}
	return ""
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxMessageLen {
		return s
	}
	return string(r[:maxMessageLen-1]) + "…"
}
