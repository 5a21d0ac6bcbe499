package media

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
)

// MaxImageSize bounds downloaded image payloads (base64 adds ~33% on the
// wire to the classifier).
const MaxImageSize = 15 * 1024 * 1024

// Image is a single image part of a multimodal classification request.
// Passed between the Telegram download path and the classifier providers
// without re-encoding until the wire format is known.
type Image struct {
	MIME string // e.g. "image/jpeg"
	Data []byte // raw bytes
}

// NewImage wraps raw bytes as an Image, sniffing the MIME type from content.
// Rejects empty, oversized, and non-image payloads.
func NewImage(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image payload")
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("image too large: %.1f MB", float64(len(data))/(1024*1024))
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("unsupported content type %q", mime)
	}

	return &Image{MIME: mime, Data: data}, nil
}

// Base64 returns the standard-encoded payload.
func (i *Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURL renders the image as a data: URL for OpenAI-style image parts.
func (i *Image) DataURL() string {
	return "data:" + i.MIME + ";base64," + i.Base64()
}
