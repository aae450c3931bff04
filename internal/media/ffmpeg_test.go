package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twkenxtis/yt-premium/internal/lang"
)

func TestMergeArgs(t *testing.T) {
	ff := NewFfmpeg()
	subs := []SubtitleStream{
		{Path: "v [id].en.vtt", Language: lang.English},
		{Path: "v [id].zh-TW.vtt", Language: lang.ChineseTraditional},
	}

	args := ff.mergeArgs("v [id].mp4", "v [id].m4a", subs, "v.mkv")

	assert.Equal(t, []string{
		"-i", "v [id].mp4",
		"-i", "v [id].m4a",
		"-i", "v [id].en.vtt",
		"-i", "v [id].zh-TW.vtt",
		"-map", "0:v",
		"-map", "1:a",
		"-map", "2:s",
		"-map", "3:s",
		"-metadata:s:s:0", "language=en",
		"-metadata:s:s:1", "language=zh-TW",
		"-c:v", "copy",
		"-c:a", "copy",
		"-c:s", "webvtt",
		"v.mkv",
	}, args)
}

func TestMergeArgsNoSubtitles(t *testing.T) {
	ff := NewFfmpeg(WithSubtitleCodec("srt"))
	args := ff.mergeArgs("a.mp4", "a.m4a", nil, "a.mkv")

	assert.Equal(t, []string{
		"-i", "a.mp4",
		"-i", "a.m4a",
		"-map", "0:v",
		"-map", "1:a",
		"-c:v", "copy",
		"-c:a", "copy",
		"-c:s", "srt",
		"a.mkv",
	}, args)
}

func TestMergeFailureIncludesDiagnostics(t *testing.T) {
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "FFMPEG_HELPER_MODE=failure")
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})

	err := NewFfmpeg().Merge(context.Background(), "a.mp4", "a.m4a", nil, "a.mkv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid data found")
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("FFMPEG_HELPER_MODE") {
	case "failure":
		fmt.Fprintln(os.Stderr, "Invalid data found when processing input")
		os.Exit(1)
	default:
		os.Exit(0)
	}
}
