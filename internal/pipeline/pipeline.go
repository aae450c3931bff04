// Package pipeline ties the stages of one run together: subtitle
// resolution, optional translation, concurrent track acquisition, and the
// final multiplex.
package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/twkenxtis/yt-premium/internal/config"
	"github.com/twkenxtis/yt-premium/internal/lang"
	"github.com/twkenxtis/yt-premium/internal/media"
	"github.com/twkenxtis/yt-premium/internal/mux"
	"github.com/twkenxtis/yt-premium/internal/resolver"
	"github.com/twkenxtis/yt-premium/internal/translate"
	"github.com/twkenxtis/yt-premium/internal/ytdlp"
	"github.com/twkenxtis/yt-premium/pkg/log"
)

// sourceURLPattern accepts only short-form YouTube share links.
var sourceURLPattern = regexp.MustCompile(`^https://youtu\.be/[A-Za-z0-9_-]{11}$`)

// ValidateSourceURL checks a source reference supplied by the operator.
func ValidateSourceURL(url string) error {
	if !sourceURLPattern.MatchString(url) {
		return NewError(ErrInputValidation, "not a valid https://youtu.be/ video URL")
	}
	return nil
}

// Pipeline owns the components of one run.
type Pipeline struct {
	cfg          *config.Config
	resolver     *resolver.Resolver
	engine       *translate.Engine
	acquisition  *Acquisition
	orchestrator *mux.Orchestrator
	log          *log.Logger
}

// New wires a Pipeline from configuration: a yt-dlp client shared by the
// resolver and the acquisition coordinator, the translation engine on the
// remote endpoint, and the ffmpeg-backed multiplex orchestrator.
func New(cfg *config.Config, logger *log.Logger) *Pipeline {
	downloader := ytdlp.NewCLI(
		ytdlp.WithBinary(cfg.Download.Binary),
		ytdlp.WithTransport(cfg.Download.Transport, cfg.Download.TransportArgs),
		ytdlp.WithOutputTemplate(cfg.Download.OutputTemplate),
		ytdlp.WithWorkDir(cfg.System.WorkDir),
	)

	translator := translate.NewHTTPClient(
		cfg.Translate.Endpoint,
		cfg.Translate.Client,
		time.Duration(cfg.Translate.Timeout)*time.Second,
	)

	merger := media.NewFfmpeg(
		media.WithBinary(cfg.Mux.Binary),
		media.WithSubtitleCodec(cfg.Mux.SubtitleCodec),
	)

	return &Pipeline{
		cfg:          cfg,
		resolver:     resolver.New(downloader, cfg.System.WorkDir, cfg.Download.OutputTemplate, logger),
		engine:       translate.NewEngine(translator, logger),
		acquisition:  NewAcquisition(downloader, logger),
		orchestrator: mux.New(merger, cfg.Mux.ContainerExt, logger),
		log:          logger,
	}
}

// Run processes one video: resolve subtitles, then translate the selected
// source while the video and audio tracks download concurrently, then mux
// and clean up. Translation failures degrade to muxing without a translated
// track; everything else is terminal for the run.
func (p *Pipeline) Run(ctx context.Context, url string) (string, error) {
	if err := ValidateSourceURL(url); err != nil {
		return "", err
	}

	target := p.cfg.Translate.TargetLanguage

	p.log.Info("Resolving subtitle tracks")
	subtitles, err := p.resolver.ListAndDownload(ctx, url)
	if err != nil {
		return "", WrapError(err, ErrExternalProcess, "subtitle download failed")
	}

	subtitleFiles := subtitles.Files

	var tracks Tracks
	var translated string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p.log.Info("Acquiring video and audio tracks")
		acquired, err := p.acquisition.Acquire(gctx, url, p.cfg.Download.VideoFormat, p.cfg.Download.AudioFormat)
		if err != nil {
			return err
		}
		tracks = acquired
		return nil
	})
	g.Go(func() error {
		translated = p.translateSource(gctx, subtitleFiles, target)
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	if translated != "" {
		subtitleFiles = append(subtitleFiles, translated)
	}

	p.log.Info("Muxing tracks and subtitles")
	output, err := p.orchestrator.Run(ctx, mux.Spec{
		Video:     tracks.Video,
		Audio:     tracks.Audio,
		Subtitles: subtitleFiles,
	})
	if err != nil {
		var integrityErr *mux.IntegrityError
		if errors.As(err, &integrityErr) {
			return "", WrapError(err, ErrIntegrity, "artifact verification failed")
		}
		return "", WrapError(err, ErrExternalProcess, "mux failed")
	}

	return output, nil
}

// translateSource picks the translation source by language priority and
// translates it. A translation failure is logged and degrades the run to
// the original-language subtitles; it never aborts the pipeline.
func (p *Pipeline) translateSource(ctx context.Context, subtitleFiles []string, target lang.Tag) string {
	source := resolver.SelectTranslationSource(subtitleFiles, target)
	if source == "" {
		p.log.Info("No translation needed")
		return ""
	}

	p.log.Info("Translating %s to %s", filepath.Base(source), target)
	translated, err := p.engine.TranslateFile(ctx, source, target)
	if err != nil {
		p.log.Error("%v", WrapError(err, ErrTranslation, "subtitle translation failed"))
		return ""
	}
	return translated
}
