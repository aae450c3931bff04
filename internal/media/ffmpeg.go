// Package media wraps the external ffmpeg muxer. The binary is a black
// box consuming ordered input files and producing one output container.
package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/twkenxtis/yt-premium/internal/lang"
)

var commandContext = exec.CommandContext

// SubtitleStream pairs one subtitle input file with the language tag its
// output stream will carry.
type SubtitleStream struct {
	Path     string
	Language lang.Tag
}

// Option configures the ffmpeg wrapper.
type Option func(*Ffmpeg)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(ff *Ffmpeg) {
		if binary != "" {
			ff.binary = binary
		}
	}
}

// WithSubtitleCodec sets the codec subtitle streams are transcoded into.
func WithSubtitleCodec(codec string) Option {
	return func(ff *Ffmpeg) {
		if codec != "" {
			ff.subtitleCodec = codec
		}
	}
}

// Ffmpeg invokes the muxer binary.
type Ffmpeg struct {
	binary        string
	subtitleCodec string
}

// NewFfmpeg constructs the wrapper with defaults.
func NewFfmpeg(opts ...Option) Ffmpeg {
	ff := Ffmpeg{
		binary:        "ffmpeg",
		subtitleCodec: "webvtt",
	}
	for _, opt := range opts {
		opt(&ff)
	}
	return ff
}

// Merge muxes the video, audio and subtitle inputs into output. Video and
// audio codecs are copied verbatim; subtitle streams are transcoded into
// the configured codec. A non-zero exit is returned with the process's
// diagnostic text attached.
func (ff Ffmpeg) Merge(ctx context.Context, video, audio string, subtitles []SubtitleStream, output string) error {
	cmd := commandContext(ctx, ff.binary, ff.mergeArgs(video, audio, subtitles, output)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s merge failed: %w: %s",
			ff.binary, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// mergeArgs builds the muxer argument list: video from input 0, audio from
// input 1, subtitle k from input 2+k, each subtitle stream tagged with its
// classified language.
func (ff Ffmpeg) mergeArgs(video, audio string, subtitles []SubtitleStream, output string) []string {
	args := []string{
		"-i", video,
		"-i", audio,
	}
	for _, sub := range subtitles {
		args = append(args, "-i", sub.Path)
	}

	args = append(args,
		"-map", "0:v",
		"-map", "1:a",
	)
	for i := range subtitles {
		args = append(args, "-map", fmt.Sprintf("%d:s", i+2))
	}
	for i, sub := range subtitles {
		args = append(args,
			fmt.Sprintf("-metadata:s:s:%d", i),
			fmt.Sprintf("language=%s", sub.Language))
	}

	args = append(args,
		"-c:v", "copy",
		"-c:a", "copy",
		"-c:s", ff.subtitleCodec,
		output,
	)
	return args
}
