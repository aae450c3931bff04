// Package ytdlp wraps the yt-dlp binary. The tool is treated as a black
// box: given a format identifier and URL it writes a file matching the
// configured naming template and reports the final path on stdout.
package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/tidwall/gjson"
)

var commandContext = exec.CommandContext

// SourceInfo describes one video source: its identifier, title and the
// catalogue of human-authored (non-synthetic) subtitle tracks.
type SourceInfo struct {
	ID                string
	Title             string
	SubtitleLanguages []string
}

// SubtitleOptions mirrors the recognized subtitle download option set and
// renders it to yt-dlp flags.
type SubtitleOptions struct {
	SkipDownload      bool
	WriteSubtitles    bool
	WriteAutomaticSub bool
	SubtitlesFormat   string
	SubtitlesLangs    []string
	OutTmpl           string
}

func (o SubtitleOptions) args() []string {
	var args []string
	if o.SkipDownload {
		args = append(args, "--skip-download")
	}
	if o.WriteSubtitles {
		args = append(args, "--write-subs")
	}
	if !o.WriteAutomaticSub {
		args = append(args, "--no-write-auto-subs")
	}
	if o.SubtitlesFormat != "" {
		args = append(args, "--sub-format", o.SubtitlesFormat)
	}
	if len(o.SubtitlesLangs) > 0 {
		args = append(args, "--sub-langs", strings.Join(o.SubtitlesLangs, ","))
	}
	if o.OutTmpl != "" {
		args = append(args, "-o", o.OutTmpl)
	}
	return args
}

// Client defines the downloader behaviour consumed by the pipeline.
type Client interface {
	Probe(ctx context.Context, url string) (SourceInfo, error)
	FetchTrack(ctx context.Context, formatID, url string) (string, error)
	DownloadSubtitles(ctx context.Context, url string, opts SubtitleOptions) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithTransport sets the external accelerated-download transport and its
// argument string.
func WithTransport(name, args string) Option {
	return func(c *CLI) {
		c.transport = name
		c.transportArgs = args
	}
}

// WithOutputTemplate overrides the output naming template.
func WithOutputTemplate(tmpl string) Option {
	return func(c *CLI) {
		if tmpl != "" {
			c.outputTemplate = tmpl
		}
	}
}

// WithWorkDir sets the directory the tool runs in; all artifacts land there.
func WithWorkDir(dir string) Option {
	return func(c *CLI) {
		c.workDir = dir
	}
}

// CLI wraps the yt-dlp command-line downloader.
type CLI struct {
	binary         string
	transport      string
	transportArgs  string
	outputTemplate string
	workDir        string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{
		binary:         "yt-dlp",
		transport:      "aria2c",
		transportArgs:  "aria2c:-s 16 -x 16",
		outputTemplate: "%(title)s [%(id)s].%(ext)s",
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Probe queries source metadata without downloading anything. Only
// human-authored tracks appear under the subtitles key; auto-generated
// captions are reported elsewhere and ignored here.
func (c *CLI) Probe(ctx context.Context, url string) (SourceInfo, error) {
	out, err := c.run(ctx, "-J", "--skip-download", url)
	if err != nil {
		return SourceInfo{}, err
	}

	info := SourceInfo{
		ID:    gjson.GetBytes(out, "id").String(),
		Title: gjson.GetBytes(out, "title").String(),
	}
	gjson.GetBytes(out, "subtitles").ForEach(func(key, _ gjson.Result) bool {
		info.SubtitleLanguages = append(info.SubtitleLanguages, key.String())
		return true
	})

	return info, nil
}

// FetchTrack downloads one track in the given format and returns the final
// artifact path reported by the tool itself, so downstream stages never
// have to re-derive it by scanning the working directory.
func (c *CLI) FetchTrack(ctx context.Context, formatID, url string) (string, error) {
	args := []string{
		"-f", formatID,
		"--external-downloader", c.transport,
		"--external-downloader-args", c.transportArgs,
		"-o", c.outputTemplate,
		"--no-simulate",
		"--print", "after_move:filepath",
		url,
	}

	out, err := c.run(ctx, args...)
	if err != nil {
		return "", err
	}

	path := lastLine(out)
	if path == "" {
		return "", fmt.Errorf("yt-dlp reported no output path for format %s", formatID)
	}
	return path, nil
}

// DownloadSubtitles runs one batched subtitle download honoring opts.
func (c *CLI) DownloadSubtitles(ctx context.Context, url string, opts SubtitleOptions) error {
	_, err := c.run(ctx, append(opts.args(), url)...)
	return err
}

func (c *CLI) run(ctx context.Context, args ...string) ([]byte, error) {
	cmd := commandContext(ctx, c.binary, args...)
	cmd.Dir = c.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s %s failed: %w: %s",
			c.binary, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) == 0 {
		return ""
	}
	return strings.TrimSpace(lines[len(lines)-1])
}

var _ Client = (*CLI)(nil)
