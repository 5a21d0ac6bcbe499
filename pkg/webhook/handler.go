// Package webhook implements the inbound Telegram webhook: secret-token
// authentication, update parsing, evidence gathering, classification, and
// the resulting moderation actions.
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mymmrac/telego"

	"github.com/sentinelbot/groupguard/pkg/logger"
	"github.com/sentinelbot/groupguard/pkg/media"
	"github.com/sentinelbot/groupguard/pkg/metrics"
	"github.com/sentinelbot/groupguard/pkg/moderation"
)

// SecretTokenHeader carries the shared webhook secret set via setWebhook.
const SecretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// ChatAPI is the subset of Telegram operations the pipeline needs.
// Implemented by telegram.Bot.
type ChatAPI interface {
	ProfilePhoto(ctx context.Context, userID int64) (*media.Image, error)
	Photo(ctx context.Context, sizes []telego.PhotoSize) (*media.Image, error)
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	BanMember(ctx context.Context, chatID, userID int64) error
}

// Handler processes one webhook delivery per request. It is stateless;
// nothing survives a request, so instances are safe for concurrent use.
type Handler struct {
	secret          string
	chat            ChatAPI
	classifier      moderation.Classifier
	classifyTimeout time.Duration
	downloadTimeout time.Duration
}

func NewHandler(secret string, chat ChatAPI, classifier moderation.Classifier, classifyTimeout, downloadTimeout time.Duration) *Handler {
	return &Handler{
		secret:          secret,
		chat:            chat,
		classifier:      classifier,
		classifyTimeout: classifyTimeout,
		downloadTimeout: downloadTimeout,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(SecretTokenHeader) != h.secret {
		metrics.UpdatesTotal.WithLabelValues("unauthorized").Inc()
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var update telego.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		// Telegram expects a prompt 2xx or it redelivers; a payload this
		// service cannot read will not get better on retry.
		logger.WarnCF("webhook", fmt.Sprintf("Undecodable update payload: %v", err), nil)
		metrics.UpdatesTotal.WithLabelValues("ignored").Inc()
		ack(w)
		return
	}

	msg := update.Message
	if msg == nil || msg.From == nil || !isGroupChat(msg.Chat.Type) {
		metrics.UpdatesTotal.WithLabelValues("ignored").Inc()
		ack(w)
		return
	}

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	if text == "" && len(msg.Photo) == 0 {
		metrics.UpdatesTotal.WithLabelValues("ignored").Inc()
		ack(w)
		return
	}

	reqID := uuid.NewString()[:8]
	sender := msg.From
	name := senderName(sender)

	logger.InfoCF("webhook", "Analyzing message", map[string]interface{}{
		"req":     reqID,
		"chat_id": msg.Chat.ID,
		"user_id": sender.ID,
		"user":    name,
	})
	metrics.UpdatesTotal.WithLabelValues("analyzed").Inc()

	req := moderation.Request{
		Subject: moderation.BuildSubject(name, sender.ID, text),
		Images:  h.gatherImages(r.Context(), reqID, msg),
	}

	verdict := h.classify(r.Context(), reqID, req)
	metrics.VerdictsTotal.WithLabelValues(verdict.Category).Inc()

	if verdict.Flagged() {
		logger.WarnCF("webhook", "Violation detected", map[string]interface{}{
			"req":      reqID,
			"user":     name,
			"category": verdict.Category,
			"reason":   verdict.Reason,
		})
		h.act(r.Context(), reqID, msg.Chat.ID, msg.MessageID, sender.ID)
	}

	ack(w)
}

// gatherImages collects the sender's profile photo and the message's
// attached photo. Each fetch runs under its own deadline and any failure
// degrades to whatever evidence remains.
func (h *Handler) gatherImages(ctx context.Context, reqID string, msg *telego.Message) []*media.Image {
	var images []*media.Image

	fetchCtx, cancel := context.WithTimeout(ctx, h.downloadTimeout)
	profile, err := h.chat.ProfilePhoto(fetchCtx, msg.From.ID)
	cancel()
	if err != nil {
		logger.WarnCF("webhook", fmt.Sprintf("Profile photo fetch failed, continuing without it: %v", err),
			map[string]interface{}{"req": reqID, "user_id": msg.From.ID})
	} else if profile != nil {
		images = append(images, profile)
	}

	if len(msg.Photo) > 0 {
		fetchCtx, cancel := context.WithTimeout(ctx, h.downloadTimeout)
		photo, err := h.chat.Photo(fetchCtx, msg.Photo)
		cancel()
		if err != nil {
			logger.WarnCF("webhook", fmt.Sprintf("Message photo fetch failed, continuing without it: %v", err),
				map[string]interface{}{"req": reqID})
		} else if photo != nil {
			images = append(images, photo)
		}
	}

	return images
}

// classify runs the classifier under its deadline. Any failure, including a
// timeout, fails open: misclassifying a good message as safe is recoverable,
// banning a legitimate user over a classifier hiccup is not.
func (h *Handler) classify(ctx context.Context, reqID string, req moderation.Request) moderation.Verdict {
	classifyCtx, cancel := context.WithTimeout(ctx, h.classifyTimeout)
	defer cancel()

	start := time.Now()
	verdict, err := h.classifier.Classify(classifyCtx, req)
	metrics.ClassifyDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		logger.WarnCF("webhook", fmt.Sprintf("Classification failed, treating as safe: %v", err),
			map[string]interface{}{"req": reqID})
		return moderation.Errored("classification unavailable")
	}
	return verdict
}

// act deletes the message and bans the sender. The two calls are
// independent: the bot may hold permission for one and not the other, and a
// partial cleanup beats none.
func (h *Handler) act(ctx context.Context, reqID string, chatID int64, messageID int, userID int64) {
	if err := h.chat.DeleteMessage(ctx, chatID, messageID); err != nil {
		metrics.ActionsTotal.WithLabelValues("delete", "error").Inc()
		logger.ErrorCF("webhook", fmt.Sprintf("Failed to delete message %d: %v", messageID, err),
			map[string]interface{}{"req": reqID, "chat_id": chatID})
	} else {
		metrics.ActionsTotal.WithLabelValues("delete", "ok").Inc()
	}

	if err := h.chat.BanMember(ctx, chatID, userID); err != nil {
		metrics.ActionsTotal.WithLabelValues("ban", "error").Inc()
		logger.ErrorCF("webhook", fmt.Sprintf("Failed to ban user %d: %v", userID, err),
			map[string]interface{}{"req": reqID, "chat_id": chatID})
	} else {
		metrics.ActionsTotal.WithLabelValues("ban", "ok").Inc()
		logger.WarnCF("webhook", "Banned user", map[string]interface{}{
			"req": reqID, "chat_id": chatID, "user_id": userID,
		})
	}
}

func isGroupChat(chatType string) bool {
	return chatType == telego.ChatTypeGroup || chatType == telego.ChatTypeSupergroup
}

func senderName(u *telego.User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func ack(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
