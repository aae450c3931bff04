package translate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/twkenxtis/yt-premium/internal/lang"
	"github.com/twkenxtis/yt-premium/internal/subtitle"
	"github.com/twkenxtis/yt-premium/pkg/log"
)

// langSuffixPattern matches a trailing language-code suffix on a subtitle
// file stem, e.g. ".en" or ".zh-Hant".
var langSuffixPattern = regexp.MustCompile(`\.[A-Za-z]{2,3}(-[A-Za-z]{2,4})?$`)

// Engine dispatches one translation request per cue concurrently and
// reassembles the results by request index. A single failed cue fails the
// whole file; no partial translated file is ever written.
type Engine struct {
	translator Translator
	flight     singleflight.Group
	log        *log.Logger
}

// NewEngine creates an Engine on top of a Translator.
func NewEngine(translator Translator, logger *log.Logger) *Engine {
	return &Engine{
		translator: translator,
		log:        logger,
	}
}

// TranslateAll translates every cue text, all requests outstanding
// concurrently against the shared client. The returned slice is positionally
// aligned with the cues regardless of completion order. Identical cue texts
// in flight at the same time share one request.
func (e *Engine) TranslateAll(ctx context.Context, doc subtitle.Document, target lang.Tag) ([]string, error) {
	if doc.Empty() {
		return nil, nil
	}

	results := make([]string, len(doc.Cues))

	g, ctx := errgroup.WithContext(ctx)
	for i, cue := range doc.Cues {
		i, cue := i, cue
		g.Go(func() error {
			v, err, _ := e.flight.Do(target.String()+"\x00"+cue.Text, func() (interface{}, error) {
				return e.translator.Translate(ctx, cue.Text, target)
			})
			if err != nil {
				return fmt.Errorf("cue %d translation failed: %w", i+1, err)
			}
			results[i] = v.(string)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// TranslateFile translates one subtitle file and writes the reassembled SRT
// content next to it under the target-language name. Returns the written
// path, or "" when the source document holds no cues (a no-op, not an
// error).
func (e *Engine) TranslateFile(ctx context.Context, path string, target lang.Tag) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read subtitle file: %w", err)
	}
	if strings.TrimSpace(string(content)) == "" {
		e.log.Info("Subtitle file %s is empty, nothing to translate", filepath.Base(path))
		return "", nil
	}

	doc := subtitle.ParseVTT(string(content))
	if doc.Empty() {
		e.log.Info("Subtitle file %s holds no cues, nothing to translate", filepath.Base(path))
		return "", nil
	}

	e.log.Info("Translating %d cues of %s to %s (detected source language: %s)",
		len(doc.Cues), filepath.Base(path), target, subtitle.DetectLanguage(doc))

	texts, err := e.TranslateAll(ctx, doc, target)
	if err != nil {
		return "", err
	}

	out, err := subtitle.ComposeSRT(doc, texts)
	if err != nil {
		return "", err
	}

	outPath := TranslatedName(path, target)
	if err := os.WriteFile(outPath, []byte(out), 0644); err != nil {
		return "", fmt.Errorf("failed to write translated subtitle: %w", err)
	}

	e.log.Info("Translated subtitle saved as %s", filepath.Base(outPath))
	return outPath, nil
}

// TranslatedName derives the output filename for a translated subtitle from
// the source file's stem and the target language tag. Any trailing
// language-code suffix on the stem is stripped first, so
// "Title [id].en.vtt" becomes "Title [id].zh-TW.vtt".
func TranslatedName(path string, target lang.Tag) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	stem = langSuffixPattern.ReplaceAllString(stem, "")
	return stem + "." + target.String() + ext
}
