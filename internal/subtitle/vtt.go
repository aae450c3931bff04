package subtitle

import (
	"regexp"
	"strings"
)

// cueTimingPattern marks the line that opens a cue block.
var cueTimingPattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}`)

const timingSeparator = " --> "

// ParseVTT scans a WebVTT document into a Document. A line starting with an
// HH:MM:SS timecode opens a cue: the line is split on the arrow separator
// into start and end, the following up-to-two lines are joined and trimmed
// as the cue text, and the parser resumes after the fixed 3-line block.
// Lines that do not open a cue block (headers, cue identifiers, blanks) are
// skipped individually and are never an error.
func ParseVTT(content string) Document {
	lines := strings.Split(content, "\n")

	var cues []Cue
	for i := 0; i < len(lines); {
		if !cueTimingPattern.MatchString(lines[i]) {
			i++
			continue
		}

		start, end, ok := splitTiming(lines[i])
		if !ok {
			i++
			continue
		}

		textEnd := i + 3
		if textEnd > len(lines) {
			textEnd = len(lines)
		}
		text := strings.TrimSpace(strings.Join(lines[i+1:textEnd], "\n"))

		cues = append(cues, Cue{
			StartTime: start,
			EndTime:   end,
			Text:      text,
		})
		i += 3
	}

	return Document{Cues: cues}
}

func splitTiming(line string) (start, end string, ok bool) {
	parts := strings.SplitN(line, timingSeparator, 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}
