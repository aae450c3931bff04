package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/twkenxtis/yt-premium/internal/lang"
)

// Config holds all application configuration.
// Supports environment variables with sensible defaults.
//
// Environment Variables:
// Download Configuration:
// - YTDLP_BINARY: downloader binary name (default: yt-dlp)
// - VIDEO_FORMAT: video format identifier (default: 616)
// - AUDIO_FORMAT: audio format identifier (default: 140)
// - DOWNLOAD_TRANSPORT: external downloader name (default: aria2c)
// - DOWNLOAD_TRANSPORT_ARGS: external downloader args (default: "aria2c:-s 16 -x 16")
// - OUTPUT_TEMPLATE: output naming template (default: "%(title)s [%(id)s].%(ext)s")
//
// Translate Configuration:
// - TARGET_LANGUAGE: translation target tag (default: zh-TW)
// - TRANSLATE_ENDPOINT: translation endpoint URL (default: Google translate single endpoint)
// - TRANSLATE_CLIENT: endpoint client parameter (default: gtx)
// - TRANSLATE_TIMEOUT: per-request timeout in seconds (default: 30)
//
// Mux Configuration:
// - FFMPEG_BINARY: muxer binary name (default: ffmpeg)
// - SUBTITLE_CODEC: subtitle stream codec in the output container (default: webvtt)
// - CONTAINER_EXT: output container extension (default: .mkv)
//
// System Configuration:
// - WORK_DIR: working directory for all artifacts (default: .)
// - LOG_LEVEL: debug/info/warn/error (default: info)
type Config struct {
	Download  DownloadConfig  `json:"download"`
	Translate TranslateConfig `json:"translate"`
	Mux       MuxConfig       `json:"mux"`
	System    SystemConfig    `json:"system"`
}

// DownloadConfig holds the configuration for the external download tool.
type DownloadConfig struct {
	Binary         string `json:"binary"`
	VideoFormat    string `json:"video_format"`
	AudioFormat    string `json:"audio_format"`
	Transport      string `json:"transport"`
	TransportArgs  string `json:"transport_args"`
	OutputTemplate string `json:"output_template"`
}

// TranslateConfig holds the configuration for the translation endpoint.
type TranslateConfig struct {
	TargetLanguage lang.Tag `json:"target_language"`
	Endpoint       string   `json:"endpoint"`
	Client         string   `json:"client"`
	Timeout        int      `json:"timeout"`
}

// MuxConfig holds the configuration for the external muxer.
type MuxConfig struct {
	Binary        string `json:"binary"`
	SubtitleCodec string `json:"subtitle_codec"`
	ContainerExt  string `json:"container_ext"`
}

// SystemConfig holds run-wide settings.
type SystemConfig struct {
	WorkDir  string `json:"work_dir"`
	LogLevel string `json:"log_level"`
}

// Option is a function type for configuring Config
type Option func(*Config)

// NewFromEnv creates a new Config instance with values from environment
// variables and options
func NewFromEnv(opts ...Option) (*Config, error) {
	config := &Config{
		Download: DownloadConfig{
			Binary:         getEnvString("YTDLP_BINARY", "yt-dlp"),
			VideoFormat:    getEnvString("VIDEO_FORMAT", "616"),
			AudioFormat:    getEnvString("AUDIO_FORMAT", "140"),
			Transport:      getEnvString("DOWNLOAD_TRANSPORT", "aria2c"),
			TransportArgs:  getEnvString("DOWNLOAD_TRANSPORT_ARGS", "aria2c:-s 16 -x 16"),
			OutputTemplate: getEnvString("OUTPUT_TEMPLATE", "%(title)s [%(id)s].%(ext)s"),
		},
		Translate: TranslateConfig{
			TargetLanguage: lang.Tag(getEnvString("TARGET_LANGUAGE", "zh-TW")),
			Endpoint:       getEnvString("TRANSLATE_ENDPOINT", "https://translate.googleapis.com/translate_a/single"),
			Client:         getEnvString("TRANSLATE_CLIENT", "gtx"),
			Timeout:        getEnvInt("TRANSLATE_TIMEOUT", 30),
		},
		Mux: MuxConfig{
			Binary:        getEnvString("FFMPEG_BINARY", "ffmpeg"),
			SubtitleCodec: getEnvString("SUBTITLE_CODEC", "webvtt"),
			ContainerExt:  getEnvString("CONTAINER_EXT", ".mkv"),
		},
		System: SystemConfig{
			WorkDir:  getEnvString("WORK_DIR", "."),
			LogLevel: getEnvString("LOG_LEVEL", "info"),
		},
	}

	// Apply custom options
	for _, opt := range opts {
		opt(config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	if c.Download.VideoFormat == "" || c.Download.AudioFormat == "" {
		return fmt.Errorf("VIDEO_FORMAT and AUDIO_FORMAT are required")
	}
	if c.Translate.Endpoint == "" {
		return fmt.Errorf("TRANSLATE_ENDPOINT is required")
	}
	if c.Translate.Timeout <= 0 {
		return fmt.Errorf("TRANSLATE_TIMEOUT must be positive")
	}
	return nil
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
