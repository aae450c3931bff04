package subtitle

import (
	"fmt"
	"strings"
)

// AlignmentError reports a cue/translation count mismatch on reassembly.
type AlignmentError struct {
	Cues  int
	Texts int
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("cue/translation misalignment: %d cues, %d translated texts", e.Cues, e.Texts)
}

// ComposeSRT reassembles a parsed document and its translated texts into an
// SRT document: 1-based index, timing line with the fractional-second
// separator converted from '.' to ',', the translated text, and a blank
// separator line per cue. The translated texts must align positionally with
// the cues; a length mismatch fails with *AlignmentError and nothing is
// emitted.
func ComposeSRT(doc Document, translatedTexts []string) (string, error) {
	if len(translatedTexts) != len(doc.Cues) {
		return "", &AlignmentError{Cues: len(doc.Cues), Texts: len(translatedTexts)}
	}

	var lines []string
	for i, cue := range doc.Cues {
		lines = append(lines, fmt.Sprintf("%d", i+1))
		lines = append(lines, fmt.Sprintf("%s%s%s",
			strings.ReplaceAll(cue.StartTime, ".", ","),
			timingSeparator,
			strings.ReplaceAll(cue.EndTime, ".", ",")))
		lines = append(lines, translatedTexts[i])
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n"), nil
}
