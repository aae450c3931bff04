package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/twkenxtis/yt-premium/internal/config"
	"github.com/twkenxtis/yt-premium/internal/lang"
	"github.com/twkenxtis/yt-premium/internal/pipeline"
	"github.com/twkenxtis/yt-premium/pkg/log"
)

func newRootCommand() *cobra.Command {
	var (
		videoFormat string
		audioFormat string
		targetLang  string
		workDir     string
		logLevel    string
	)

	rootCmd := &cobra.Command{
		Use:           "yt-premium [url]",
		Short:         "Download a YouTube video with subtitles, translate them, and mux one MKV",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.NewFromEnv(func(c *config.Config) {
				if cmd.Flags().Changed("video-format") {
					c.Download.VideoFormat = videoFormat
				}
				if cmd.Flags().Changed("audio-format") {
					c.Download.AudioFormat = audioFormat
				}
				if cmd.Flags().Changed("target-lang") {
					c.Translate.TargetLanguage = lang.Tag(targetLang)
				}
				if cmd.Flags().Changed("workdir") {
					c.System.WorkDir = workDir
				}
				if cmd.Flags().Changed("log-level") {
					c.System.LogLevel = logLevel
				}
			})
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			logger := log.NewLogger(log.ParseLevel(cfg.System.LogLevel))

			var url string
			if len(args) == 1 {
				url = args[0]
			}
			url, err = resolveURL(url, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			output, err := pipeline.New(cfg, logger).Run(cmd.Context(), url)
			if err != nil {
				logger.Error("Run failed: %v", err)
				return err
			}

			logger.Info("Done: %s", output)
			return nil
		},
	}

	rootCmd.Flags().StringVar(&videoFormat, "video-format", "616", "Video format identifier passed to the downloader")
	rootCmd.Flags().StringVar(&audioFormat, "audio-format", "140", "Audio format identifier passed to the downloader")
	rootCmd.Flags().StringVar(&targetLang, "target-lang", "zh-TW", "Subtitle translation target language")
	rootCmd.Flags().StringVar(&workDir, "workdir", ".", "Working directory for downloaded artifacts")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	return rootCmd
}

// resolveURL validates the positional URL when present, otherwise keeps
// prompting until the operator supplies a valid one. Malformed input is
// never surfaced as a failure, only re-prompted.
func resolveURL(url string, in io.Reader, out io.Writer) (string, error) {
	if url != "" {
		if err := pipeline.ValidateSourceURL(url); err != nil {
			return "", err
		}
		return url, nil
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Enter a YouTube URL (https://youtu.be/...): ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("no URL supplied")
		}
		candidate := strings.TrimSpace(scanner.Text())
		if err := pipeline.ValidateSourceURL(candidate); err != nil {
			fmt.Fprintln(out, "Invalid URL, please try again.")
			continue
		}
		return candidate, nil
	}
}
