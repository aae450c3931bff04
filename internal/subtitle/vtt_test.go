package subtitle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleVTT = `WEBVTT
Kind: captions
Language: en

00:00:01.000 --> 00:00:03.500
Hello there
General Kenobi

00:00:04.000 --> 00:00:06.000
Second cue

00:00:07.250 --> 00:00:09.000
Third cue
`

func TestParseVTT(t *testing.T) {
	doc := ParseVTT(sampleVTT)

	require.Len(t, doc.Cues, 3)

	assert.Equal(t, "00:00:01.000", doc.Cues[0].StartTime)
	assert.Equal(t, "00:00:03.500", doc.Cues[0].EndTime)
	assert.Equal(t, "Hello there\nGeneral Kenobi", doc.Cues[0].Text)

	assert.Equal(t, "Second cue", doc.Cues[1].Text)
	assert.Equal(t, "00:00:07.250", doc.Cues[2].StartTime)
	assert.Equal(t, "Third cue", doc.Cues[2].Text)
}

func TestParseVTTSkipsNonCueLines(t *testing.T) {
	doc := ParseVTT("WEBVTT\n\nNOTE a comment\n\nstray text without timing\n")
	assert.True(t, doc.Empty())
}

func TestParseVTTCueAtEOF(t *testing.T) {
	doc := ParseVTT("00:00:01.000 --> 00:00:02.000\nlast line")
	require.Len(t, doc.Cues, 1)
	assert.Equal(t, "last line", doc.Cues[0].Text)
}

func TestParseVTTMalformedTimingLineIsSkipped(t *testing.T) {
	doc := ParseVTT("00:00:01.000 no arrow here\n\n00:00:02.000 --> 00:00:03.000\nok\n")
	require.Len(t, doc.Cues, 1)
	assert.Equal(t, "ok", doc.Cues[0].Text)
}

func TestParseVTTEmptyDocument(t *testing.T) {
	assert.True(t, ParseVTT("").Empty())
	assert.True(t, ParseVTT("   \n\n").Empty())
}

func TestDocumentTexts(t *testing.T) {
	doc := ParseVTT(sampleVTT)
	texts := doc.Texts()
	require.Len(t, texts, 3)
	assert.Equal(t, "Second cue", texts[1])
}
