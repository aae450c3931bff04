package translate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twkenxtis/yt-premium/internal/lang"
	"github.com/twkenxtis/yt-premium/internal/subtitle"
	"github.com/twkenxtis/yt-premium/pkg/log"
)

type fakeTranslator struct {
	delays map[string]time.Duration
	fail   map[string]error
	calls  atomic.Int64
}

func (f *fakeTranslator) Translate(ctx context.Context, text string, target lang.Tag) (string, error) {
	f.calls.Add(1)
	if d, ok := f.delays[text]; ok {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err, ok := f.fail[text]; ok {
		return "", err
	}
	return "[" + target.String() + "]" + text, nil
}

func testLogger() *log.Logger {
	return log.NewLogger(log.LevelError)
}

func TestTranslateAllPreservesOrder(t *testing.T) {
	doc := subtitle.Document{Cues: []subtitle.Cue{
		{Text: "first"},
		{Text: "second"},
		{Text: "third"},
	}}

	// Reverse the completion order so positional reassembly is observable.
	ft := &fakeTranslator{delays: map[string]time.Duration{
		"first":  60 * time.Millisecond,
		"second": 30 * time.Millisecond,
		"third":  0,
	}}

	engine := NewEngine(ft, testLogger())
	out, err := engine.TranslateAll(context.Background(), doc, lang.ChineseTraditional)
	require.NoError(t, err)
	assert.Equal(t, []string{"[zh-TW]first", "[zh-TW]second", "[zh-TW]third"}, out)
}

func TestTranslateAllEmptyDocument(t *testing.T) {
	engine := NewEngine(&fakeTranslator{}, testLogger())
	out, err := engine.TranslateAll(context.Background(), subtitle.Document{}, lang.ChineseTraditional)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestTranslateAllSingleFailureAbortsBatch(t *testing.T) {
	doc := subtitle.Document{Cues: []subtitle.Cue{
		{Text: "ok"},
		{Text: "broken"},
		{Text: "also ok"},
	}}

	ft := &fakeTranslator{fail: map[string]error{"broken": errors.New("remote refused")}}

	engine := NewEngine(ft, testLogger())
	out, err := engine.TranslateAll(context.Background(), doc, lang.ChineseTraditional)
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "remote refused")
}

func TestTranslateAllDeduplicatesIdenticalCues(t *testing.T) {
	cues := make([]subtitle.Cue, 20)
	for i := range cues {
		cues[i] = subtitle.Cue{Text: "[Music]"}
	}

	ft := &fakeTranslator{delays: map[string]time.Duration{"[Music]": 30 * time.Millisecond}}
	engine := NewEngine(ft, testLogger())

	out, err := engine.TranslateAll(context.Background(), subtitle.Document{Cues: cues}, lang.ChineseTraditional)
	require.NoError(t, err)
	require.Len(t, out, 20)
	for _, text := range out {
		assert.Equal(t, "[zh-TW][Music]", text)
	}
	assert.Less(t, ft.calls.Load(), int64(20), "identical in-flight cues should share requests")
}

func TestTranslateFile(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "My Video [dQw4w9WgXcQ].en.vtt")
	content := strings.Join([]string{
		"WEBVTT",
		"",
		"00:00:01.000 --> 00:00:02.000",
		"hello",
		"",
		"00:00:03.000 --> 00:00:04.000",
		"world",
		"",
	}, "\n")
	require.NoError(t, os.WriteFile(src, []byte(content), 0o644))

	engine := NewEngine(&fakeTranslator{}, testLogger())
	outPath, err := engine.TranslateFile(context.Background(), src, lang.ChineseTraditional)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "My Video [dQw4w9WgXcQ].zh-TW.vtt"), outPath)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "00:00:01,000 --> 00:00:02,000")
	assert.Contains(t, string(data), "[zh-TW]hello")
}

func TestTranslateFileEmptySourceIsNoop(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "empty.en.vtt")
	require.NoError(t, os.WriteFile(src, []byte("  \n"), 0o644))

	engine := NewEngine(&fakeTranslator{}, testLogger())
	outPath, err := engine.TranslateFile(context.Background(), src, lang.ChineseTraditional)
	require.NoError(t, err)
	assert.Empty(t, outPath)
}

func TestTranslateFileFailureWritesNothing(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "a.en.vtt")
	require.NoError(t, os.WriteFile(src, []byte("00:00:01.000 --> 00:00:02.000\nbroken\n"), 0o644))

	ft := &fakeTranslator{fail: map[string]error{"broken": fmt.Errorf("boom")}}
	engine := NewEngine(ft, testLogger())

	outPath, err := engine.TranslateFile(context.Background(), src, lang.ChineseTraditional)
	require.Error(t, err)
	assert.Empty(t, outPath)

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no partial translated file may be written")
}

func TestTranslatedName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "strips language suffix", in: "My Video [id].en.vtt", want: "My Video [id].zh-TW.vtt"},
		{name: "strips regional suffix", in: "My Video [id].zh-Hant.vtt", want: "My Video [id].zh-TW.vtt"},
		{name: "no language suffix", in: "My Video [id].vtt", want: "My Video [id].zh-TW.vtt"},
		{name: "dot inside title survives", in: "Ep.12 [id].vtt", want: "Ep.12 [id].zh-TW.vtt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TranslatedName(tt.in, lang.ChineseTraditional))
		})
	}
}
