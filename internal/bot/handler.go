// Package bot is a Telegram front-end for capture: send the bot a URL
// and it runs the same pipeline the /save route does.
package bot

import (
	"context"
	"fmt"
	"strings"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sirupsen/logrus"

	"linkdrop/internal/capture"
)

// Handler holds dependencies for the Telegram bot handlers.
type Handler struct {
	bot     *tgbot.Bot
	capture *capture.Service
	log     logrus.FieldLogger
}

// NewHandler creates a new bot handler instance.
func NewHandler(token string, captureSvc *capture.Service, logger logrus.FieldLogger) (*Handler, error) {
	log := logger.WithField("component", "bot_handler")

	b, err := tgbot.New(token)
	if err != nil {
		log.WithError(err).Error("Failed to create Telegram bot instance")
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	h := &Handler{
		bot:     b,
		capture: captureSvc,
		log:     log,
	}

	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, h.startHandler)
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "", tgbot.MatchTypeContains, h.saveHandler)

	log.Info("Telegram bot handler initialized")
	return h, nil
}

// Start begins polling for updates from Telegram. Blocks until the
// context is cancelled.
func (h *Handler) Start(ctx context.Context) {
	h.log.Info("Starting Telegram bot polling...")
	h.bot.Start(ctx)
	h.log.Info("Telegram bot polling stopped.")
}

func (h *Handler) startHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.log.WithFields(logrus.Fields{
		"user_id": update.Message.From.ID,
		"command": "/start",
	})
	log.Info("Received /start command")

	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "Send me an article URL and I'll save it to your reading list.",
	})
	if err != nil {
		log.WithError(err).Error("Failed to send welcome message")
	}
}

// saveHandler captures the first URL found in a text message.
func (h *Handler) saveHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	log := h.log.WithField("user_id", update.Message.From.ID)

	url := firstURL(update.Message.Text)
	if url == "" {
		h.reply(ctx, b, update, "That doesn't look like a URL. Send me a link to save.")
		return
	}

	link, err := h.capture.Capture(ctx, url, "")
	if err != nil {
		log.WithError(err).WithField("url", url).Error("Capture via bot failed")
		h.reply(ctx, b, update, "Sorry, I couldn't save that page.")
		return
	}

	h.reply(ctx, b, update, fmt.Sprintf("Saved \"%s\" (%d min read).", link.Title, link.ReadingTime))
}

func (h *Handler) reply(ctx context.Context, b *tgbot.Bot, update *models.Update, text string) {
	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
	if err != nil {
		h.log.WithError(err).Error("Failed to send reply")
	}
}

func firstURL(text string) string {
	for _, field := range strings.Fields(text) {
		if strings.HasPrefix(field, "http://") || strings.HasPrefix(field, "https://") {
			return field
		}
	}
	return ""
}
