package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/twkenxtis/yt-premium/internal/ytdlp"
	"github.com/twkenxtis/yt-premium/pkg/log"
)

// Tracks holds the artifact paths produced by one acquisition.
type Tracks struct {
	Video string
	Audio string
}

// Acquisition runs the video-track and audio-track downloads as two
// independent units of work. Each download is a single blocking external
// invocation writing its own output file; no shared state exists between
// them.
type Acquisition struct {
	client ytdlp.Client
	log    *log.Logger
}

// NewAcquisition creates the coordinator on top of a downloader client.
func NewAcquisition(client ytdlp.Client, logger *log.Logger) *Acquisition {
	return &Acquisition{
		client: client,
		log:    logger,
	}
}

// Acquire launches exactly two concurrent downloads, one per format
// identifier, and blocks until both finish. Either failing aborts the
// acquisition; the external exit status is propagated, not interpreted.
func (a *Acquisition) Acquire(ctx context.Context, url, videoFormat, audioFormat string) (Tracks, error) {
	var tracks Tracks

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		path, err := a.client.FetchTrack(ctx, videoFormat, url)
		if err != nil {
			return err
		}
		a.log.Info("Video track downloaded: %s", path)
		tracks.Video = path
		return nil
	})
	g.Go(func() error {
		path, err := a.client.FetchTrack(ctx, audioFormat, url)
		if err != nil {
			return err
		}
		a.log.Info("Audio track downloaded: %s", path)
		tracks.Audio = path
		return nil
	})

	if err := g.Wait(); err != nil {
		return Tracks{}, WrapError(err, ErrExternalProcess, "track acquisition failed")
	}
	return tracks, nil
}
