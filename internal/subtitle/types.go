package subtitle

// Cue represents a single timed caption entry. Start and end keep the
// textual form found in the source document; the SRT serializer adapts the
// fractional-second separator on output. A Cue is immutable once parsed.
type Cue struct {
	StartTime string
	EndTime   string
	Text      string
}

// Document is the ordered cue sequence parsed from one caption file. The
// positional index of a cue is the join key with its translated text.
type Document struct {
	Cues []Cue
}

// Empty reports whether the document holds no cues.
func (d Document) Empty() bool {
	return len(d.Cues) == 0
}

// Texts returns the cue texts in display order.
func (d Document) Texts() []string {
	texts := make([]string, len(d.Cues))
	for i, cue := range d.Cues {
		texts[i] = cue.Text
	}
	return texts
}
