package repositories

import (
	"context"
	"errors"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/PGV-da/Amazon-Affiliate-Bot/domain"
)

// MessageSender is the slice of the Telegram bot API the client needs.
// *tgbotapi.BotAPI satisfies it.
type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramClient publishes outbound messages to a chat and delivers error
// alerts to the operator. A rate-limit response from the API is surfaced as an
// explicit PublishRateLimited result carrying the required wait, not an error.
type TelegramClient struct {
	bot         MessageSender
	alertUserID int64
}

func NewTelegramClient(bot MessageSender, alertUserID int64) *TelegramClient {
	return &TelegramClient{bot: bot, alertUserID: alertUserID}
}

func (t *TelegramClient) Publish(ctx context.Context, chatID int64, msg domain.OutboundMessage) domain.PublishResult {
	if err := ctx.Err(); err != nil {
		return domain.PublishResult{Status: domain.PublishFailed, Err: err}
	}

	if _, err := t.bot.Send(buildChattable(chatID, msg)); err != nil {
		var tgErr *tgbotapi.Error
		if errors.As(err, &tgErr) && tgErr.RetryAfter > 0 {
			return domain.PublishResult{
				Status:     domain.PublishRateLimited,
				RetryAfter: time.Duration(tgErr.RetryAfter) * time.Second,
			}
		}
		return domain.PublishResult{Status: domain.PublishFailed, Err: err}
	}
	return domain.PublishResult{Status: domain.PublishOK}
}

// SendAlert best-effort delivers an error report to the operator. A failure
// to deliver the alert is only logged, never escalated further.
func (t *TelegramClient) SendAlert(_ context.Context, text string) {
	msg := tgbotapi.NewMessage(t.alertUserID, "🚨 Bot Error Alert\n\n"+text)
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("failed to send error alert: %v", err)
	}
}

func buildChattable(chatID int64, msg domain.OutboundMessage) tgbotapi.Chattable {
	if msg.Media == nil {
		return tgbotapi.NewMessage(chatID, msg.Text)
	}

	file := tgbotapi.FileID(msg.Media.FileID)
	switch msg.Media.Kind {
	case domain.MediaPhoto:
		p := tgbotapi.NewPhoto(chatID, file)
		p.Caption = msg.Text
		return p
	case domain.MediaVideo:
		v := tgbotapi.NewVideo(chatID, file)
		v.Caption = msg.Text
		return v
	case domain.MediaAnimation:
		a := tgbotapi.NewAnimation(chatID, file)
		a.Caption = msg.Text
		return a
	default:
		d := tgbotapi.NewDocument(chatID, file)
		d.Caption = msg.Text
		return d
	}
}

// InboundFromMessage converts a Telegram message into the pipeline's inbound
// shape. Attached media is carried as an opaque file-ID reference; for media
// messages the caption is the text body.
func InboundFromMessage(msg *tgbotapi.Message) domain.InboundMessage {
	in := domain.InboundMessage{
		ChatID: msg.Chat.ID,
		Text:   msg.Text,
	}
	if media := mediaRef(msg); media != nil {
		in.Media = media
		in.Text = msg.Caption
	}
	return in
}

func mediaRef(msg *tgbotapi.Message) *domain.MediaRef {
	switch {
	case len(msg.Photo) > 0:
		// The last entry is the largest size.
		return &domain.MediaRef{Kind: domain.MediaPhoto, FileID: msg.Photo[len(msg.Photo)-1].FileID}
	case msg.Video != nil:
		return &domain.MediaRef{Kind: domain.MediaVideo, FileID: msg.Video.FileID}
	case msg.Animation != nil:
		return &domain.MediaRef{Kind: domain.MediaAnimation, FileID: msg.Animation.FileID}
	case msg.Document != nil:
		return &domain.MediaRef{Kind: domain.MediaDocument, FileID: msg.Document.FileID}
	}
	return nil
}
