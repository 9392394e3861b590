package imagepkg

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/patrickmn/go-cache"
	_ "golang.org/x/image/webp"
	"golang.org/x/time/rate"

	"github.com/youruser/comicstrip/internal/util"
)

// BlobScheme prefixes references handed out for uploaded files.
const BlobScheme = "blob:"

var (
	ErrEmptyReference = errors.New("empty image reference")
	ErrUnknownBlob    = errors.New("unknown blob reference")
)

// BlobStore resolves the id part of a blob: reference to file bytes.
type BlobStore interface {
	Get(id string) ([]byte, bool)
}

type FetcherOptions struct {
	Timeout time.Duration
	// Interval between remote fetches; burst allows that many at once.
	Interval time.Duration
	Burst    int
	CacheTTL time.Duration
	Blobs    BlobStore
}

// Fetcher turns image references into decoded images. It understands
// blob:<id> uploads, http(s) URLs, data: URIs and local file paths.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	cache   *cache.Cache
	ttl     time.Duration
	blobs   BlobStore
}

func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	limit := rate.Inf
	if opts.Interval > 0 {
		limit = rate.Every(opts.Interval)
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Minute
	}
	return &Fetcher{
		client:  &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(limit, opts.Burst),
		cache:   cache.New(opts.CacheTTL, 2*opts.CacheTTL),
		ttl:     opts.CacheTTL,
		blobs:   opts.Blobs,
	}
}

// Fetch decodes the image behind ref. Decoded images are cached by reference.
func (f *Fetcher) Fetch(ctx context.Context, ref string) (image.Image, error) {
	if ref == "" {
		return nil, ErrEmptyReference
	}
	if v, ok := f.cache.Get(ref); ok {
		return v.(image.Image), nil
	}
	data, err := f.load(ctx, ref)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	f.cache.Set(ref, img, f.ttl)
	return img, nil
}

func (f *Fetcher) load(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case strings.HasPrefix(ref, BlobScheme):
		if f.blobs == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownBlob, ref)
		}
		b, ok := f.blobs.Get(strings.TrimPrefix(ref, BlobScheme))
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownBlob, ref)
		}
		return b, nil
	case strings.HasPrefix(ref, "data:"):
		return decodeDataURI(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		if _, err := url.Parse(ref); err != nil {
			return nil, err
		}
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		slog.DebugContext(ctx, "fetching remote image", "url", ref)
		return util.GetBytes(ctx, f.client, ref)
	default:
		return os.ReadFile(ref)
	}
}

// Decode decodes image bytes in any registered format, honoring EXIF orientation.
func Decode(data []byte) (image.Image, error) {
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}

func decodeDataURI(ref string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data URI")
	}
	if strings.HasSuffix(meta, ";base64") {
		return base64.StdEncoding.DecodeString(payload)
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}
