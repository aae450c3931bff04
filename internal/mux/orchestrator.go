// Package mux drives the final multiplex step: verify the gathered track
// artifacts, classify subtitle languages, invoke the external muxer, verify
// the output, and clean up the inputs on success.
package mux

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/twkenxtis/yt-premium/internal/lang"
	"github.com/twkenxtis/yt-premium/internal/media"
	"github.com/twkenxtis/yt-premium/pkg/file"
	"github.com/twkenxtis/yt-premium/pkg/log"
)

// Spec names the input artifacts of one multiplex run. Subtitles keep the
// order they were resolved in; stream tags are assigned positionally during
// classification.
type Spec struct {
	Video     string
	Audio     string
	Subtitles []string
}

// IntegrityError reports artifacts that were missing or empty at a
// verification checkpoint.
type IntegrityError struct {
	Paths []string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("missing or empty artifacts: %v", e.Paths)
}

// Merger is the external muxer invocation, implemented by media.Ffmpeg.
type Merger interface {
	Merge(ctx context.Context, video, audio string, subtitles []media.SubtitleStream, output string) error
}

// Orchestrator runs the multiplex state machine.
type Orchestrator struct {
	merger       Merger
	containerExt string
	log          *log.Logger
}

// New creates an Orchestrator producing containers with the given
// extension.
func New(merger Merger, containerExt string, logger *log.Logger) *Orchestrator {
	if containerExt == "" {
		containerExt = ".mkv"
	}
	return &Orchestrator{
		merger:       merger,
		containerExt: containerExt,
		log:          logger,
	}
}

// Run executes the linear state machine with early-exit failure states:
// Gather, Verify-Inputs, Classify, Invoke-Mux, Verify-Output, Cleanup.
// Failure before the muxer invocation (*IntegrityError) leaves everything
// untouched; failure during or after the invocation leaves all inputs in
// place for inspection. Inputs are deleted only after the output is
// verified present and non-empty.
func (o *Orchestrator) Run(ctx context.Context, spec Spec) (string, error) {
	// Gather
	inputs := append([]string{spec.Video, spec.Audio}, spec.Subtitles...)

	// Verify-Inputs
	var missing []string
	for _, in := range inputs {
		if !file.IsNonEmpty(in) {
			missing = append(missing, in)
		}
	}
	if len(missing) > 0 {
		return "", &IntegrityError{Paths: missing}
	}

	// Classify
	subtitles := make([]media.SubtitleStream, len(spec.Subtitles))
	for i, path := range spec.Subtitles {
		subtitles[i] = media.SubtitleStream{
			Path:     path,
			Language: lang.Classify(filepath.Base(path)),
		}
		o.log.Info("Subtitle stream %d: %s tagged %s", i, filepath.Base(path), subtitles[i].Language)
	}

	// Invoke-Mux
	output := o.outputPath(spec.Video)
	o.log.Info("Muxing %d subtitle stream(s) into %s", len(subtitles), filepath.Base(output))
	if err := o.merger.Merge(ctx, spec.Video, spec.Audio, subtitles, output); err != nil {
		return "", err
	}

	// Verify-Output
	if !file.IsNonEmpty(output) {
		return "", &IntegrityError{Paths: []string{output}}
	}
	o.log.Info("Mux complete: %s", output)

	// Cleanup
	o.cleanup(inputs)
	return output, nil
}

// outputPath derives the container path from the video filename by
// stripping the trailing "[<id>].<ext>" suffix.
func (o *Orchestrator) outputPath(video string) string {
	return filepath.Join(filepath.Dir(video), file.BaseTitle(video)+o.containerExt)
}

// cleanup deletes the consumed inputs, best-effort per file. Files already
// absent are skipped silently; other failures are logged and the remaining
// deletions continue.
func (o *Orchestrator) cleanup(inputs []string) {
	for _, in := range inputs {
		if err := os.Remove(in); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			o.log.Warn("Failed to delete %s: %v", in, err)
			continue
		}
		o.log.Info("Deleted %s", in)
	}
}
