package config

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/shouni/go-utils/envutil"
)

const (
	DefaultPort           = "8080"
	DefaultRows           = 2
	DefaultBackground     = "gray"
	DefaultFetchTimeout   = 10 * time.Second
	DefaultFetchInterval  = 200 * time.Millisecond
	DefaultFetchBurst     = 4
	DefaultImageCacheTTL  = 30 * time.Minute
	DefaultMaxUploadBytes = 20 << 20
	DefaultOutputFile     = "comic_strip.png"
	ShareFileName         = "shared_image.png"
)

// Config holds settings read from the environment.
type Config struct {
	Port           string
	FetchTimeout   time.Duration
	FetchInterval  time.Duration
	FetchBurst     int
	ImageCacheTTL  time.Duration
	MaxUploadBytes int64
	LogLevel       slog.Level
}

func Load() *Config {
	return &Config{
		Port:           envutil.GetEnv("PORT", DefaultPort),
		FetchTimeout:   duration("FETCH_TIMEOUT", DefaultFetchTimeout),
		FetchInterval:  duration("FETCH_INTERVAL", DefaultFetchInterval),
		FetchBurst:     integer("FETCH_BURST", DefaultFetchBurst),
		ImageCacheTTL:  duration("IMAGE_CACHE_TTL", DefaultImageCacheTTL),
		MaxUploadBytes: int64(integer("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)),
		LogLevel:       level("LOG_LEVEL", slog.LevelInfo),
	}
}

func duration(key string, def time.Duration) time.Duration {
	v := envutil.GetEnv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func integer(key string, def int) int {
	v := envutil.GetEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func level(key string, def slog.Level) slog.Level {
	v := envutil.GetEnv(key, "")
	if v == "" {
		return def
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		slog.Warn("invalid log level, using default", "key", key, "value", v)
		return def
	}
	return l
}
