// Package telegram wraps the Bot API operations the moderation pipeline
// needs: profile photo lookup, file download, message deletion, and bans.
package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/sentinelbot/groupguard/pkg/media"
)

type Bot struct {
	api *telego.Bot
	// Used for file byte fetches so they honor the per-request deadline;
	// telegoutil's downloader takes no context.
	http *http.Client
}

func New(token string) (*Bot, error) {
	api, err := telego.NewBot(token, telego.WithDiscardLogger())
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	return &Bot{api: api, http: &http.Client{}}, nil
}

// ProfilePhoto fetches the bytes of the user's current profile photo,
// picking the largest available size. Returns nil without error when the
// user has no profile photo.
func (b *Bot) ProfilePhoto(ctx context.Context, userID int64) (*media.Image, error) {
	photos, err := b.api.GetUserProfilePhotos(ctx, &telego.GetUserProfilePhotosParams{
		UserID: userID,
		Limit:  1,
	})
	if err != nil {
		return nil, fmt.Errorf("getting profile photos for %d: %w", userID, err)
	}
	if photos == nil || len(photos.Photos) == 0 {
		return nil, nil
	}
	return b.Photo(ctx, photos.Photos[0])
}

// Photo downloads the largest size variant of a photo.
func (b *Bot) Photo(ctx context.Context, sizes []telego.PhotoSize) (*media.Image, error) {
	size, ok := largestPhoto(sizes)
	if !ok {
		return nil, nil
	}
	return b.download(ctx, size.FileID)
}

// DeleteMessage removes a message from a chat. Requires admin rights.
func (b *Bot) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	return b.api.DeleteMessage(ctx, &telego.DeleteMessageParams{
		ChatID:    tu.ID(chatID),
		MessageID: messageID,
	})
}

// BanMember bans a user from a chat. Requires admin rights.
func (b *Bot) BanMember(ctx context.Context, chatID, userID int64) error {
	return b.api.BanChatMember(ctx, &telego.BanChatMemberParams{
		ChatID: tu.ID(chatID),
		UserID: userID,
	})
}

// download resolves a file ID to its temporary URL and fetches the bytes.
func (b *Bot) download(ctx context.Context, fileID string) (*media.Image, error) {
	file, err := b.api.GetFile(ctx, &telego.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("resolving file %s: %w", fileID, err)
	}

	url := b.api.FileDownloadURL(file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building download request: %w", err)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading file %s: status %d", fileID, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, media.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", fileID, err)
	}

	return media.NewImage(data)
}

// largestPhoto returns the biggest size variant. The Bot API orders
// variants smallest first, but sort by area anyway rather than trusting
// slice position.
func largestPhoto(sizes []telego.PhotoSize) (telego.PhotoSize, bool) {
	if len(sizes) == 0 {
		return telego.PhotoSize{}, false
	}
	best := sizes[0]
	for _, s := range sizes[1:] {
		if s.Width*s.Height > best.Width*best.Height {
			best = s
		}
	}
	return best, true
}
