// Package resolver enumerates and downloads the human-authored subtitle
// tracks of a source and picks the translation source by the fixed language
// priority.
package resolver

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/twkenxtis/yt-premium/internal/lang"
	"github.com/twkenxtis/yt-premium/internal/ytdlp"
	"github.com/twkenxtis/yt-premium/pkg/log"
)

// Result carries the outcome of one subtitle resolution: the language
// identifiers the source offered and the downloaded files as explicit
// artifact handles, positionally aligned with Languages.
type Result struct {
	Languages []string
	Files     []string
}

// Resolver lists and downloads subtitle tracks through the downloader
// client.
type Resolver struct {
	client  ytdlp.Client
	workDir string
	outTmpl string
	log     *log.Logger
}

// New creates a Resolver writing into workDir with the given naming
// template.
func New(client ytdlp.Client, workDir, outTmpl string, logger *log.Logger) *Resolver {
	return &Resolver{
		client:  client,
		workDir: workDir,
		outTmpl: outTmpl,
		log:     logger,
	}
}

// ListAndDownload queries the source for its catalogue of human-authored
// subtitle tracks and downloads all of them in one batched call. A source
// without human subtitles returns an empty Result immediately, with no
// download invoked.
func (r *Resolver) ListAndDownload(ctx context.Context, url string) (Result, error) {
	info, err := r.client.Probe(ctx, url)
	if err != nil {
		return Result{}, err
	}

	if len(info.SubtitleLanguages) == 0 {
		r.log.Info("No human-authored subtitles available")
		return Result{}, nil
	}

	r.log.Info("Downloading subtitles: %s", strings.Join(info.SubtitleLanguages, ", "))

	opts := ytdlp.SubtitleOptions{
		SkipDownload:      true,
		WriteSubtitles:    true,
		WriteAutomaticSub: false,
		SubtitlesFormat:   "vtt",
		SubtitlesLangs:    []string{"all"},
		OutTmpl:           r.outTmpl,
	}
	if err := r.client.DownloadSubtitles(ctx, url, opts); err != nil {
		return Result{}, err
	}

	files := make([]string, len(info.SubtitleLanguages))
	for i, language := range info.SubtitleLanguages {
		files[i] = filepath.Join(r.workDir,
			fmt.Sprintf("%s [%s].%s.vtt", info.Title, info.ID, language))
	}

	return Result{Languages: info.SubtitleLanguages, Files: files}, nil
}

// SelectTranslationSource picks the file to translate. When a file tagged
// with the exact target language already exists no translation is needed
// and "" is returned. Otherwise the fixed priority list zh > en > ja is
// scanned and the first downloaded file carrying that marker wins; "" means
// no candidate matched.
func SelectTranslationSource(downloadedFiles []string, target lang.Tag) string {
	for _, f := range downloadedFiles {
		if strings.Contains(filepath.Base(f), target.String()) {
			return ""
		}
	}

	for _, candidate := range lang.TranslationPriority {
		for _, f := range downloadedFiles {
			if strings.Contains(filepath.Base(f), candidate.String()) {
				return f
			}
		}
	}
	return ""
}
