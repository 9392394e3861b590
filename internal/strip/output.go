package strip

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/youruser/comicstrip/internal/config"
	imagepkg "github.com/youruser/comicstrip/internal/image"
)

const (
	shareIntentBase = "https://twitter.com/intent/tweet"
	shareText       = "Check out this image!"
	shareTitle      = "Shared Image"
)

// Download is a file ready to hand to the user.
type Download struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Save returns the current artifact as comic_strip.png.
func (s *Session) Save() (Download, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.artifact == nil {
		return Download{}, s.fail(ErrNoArtifact)
	}
	return Download{
		FileName:    config.DefaultOutputFile,
		ContentType: imagepkg.PNGMime,
		Data:        s.artifact.PNG,
	}, nil
}

// Shared is the result of a share: either a file for a native share
// target or an intent URL (with a QR code of it) for the fallback.
type Shared struct {
	Title     string    `json:"title"`
	File      *Download `json:"-"`
	IntentURL string    `json:"intent_url,omitempty"`
	QRCode    []byte    `json:"-"`
}

// Share prepares the current artifact for sharing. When native is false
// the intent URL embeds ref, or the artifact's data URI if ref is empty.
// Failures past the artifact check are logged and never become the
// session error.
func (s *Session) Share(ctx context.Context, native bool, ref string) (Shared, error) {
	s.mu.Lock()
	art := s.artifact
	if art == nil {
		err := s.fail(ErrNoArtifact)
		s.mu.Unlock()
		return Shared{}, err
	}
	s.mu.Unlock()

	out := Shared{Title: shareTitle}
	if native {
		out.File = &Download{FileName: config.ShareFileName, ContentType: imagepkg.PNGMime, Data: art.PNG}
		return out, nil
	}
	if ref == "" {
		ref = art.DataURI()
	}
	out.IntentURL = ShareIntentURL(ref)
	qr, err := imagepkg.QRCodePNG(out.IntentURL, imagepkg.DefaultQRSize)
	if err != nil {
		slog.WarnContext(ctx, "error sharing: qr code", "error", err)
	} else {
		out.QRCode = qr
	}
	return out, nil
}

// ShareIntentURL builds the social share link for ref.
func ShareIntentURL(ref string) string {
	q := url.Values{}
	q.Set("text", shareText)
	q.Set("url", ref)
	return shareIntentBase + "?" + q.Encode()
}
