package subtitle

import (
	"github.com/abadojack/whatlanggo"
	"golang.org/x/text/language"
)

// DetectLanguage guesses the dominant language of a document by majority
// vote over per-cue detection. Used as a sanity check on the chosen
// translation source, never as the stream tag.
func DetectLanguage(doc Document) language.Tag {
	if doc.Empty() {
		return language.Und
	}

	counts := make(map[string]int)
	for _, cue := range doc.Cues {
		if cue.Text == "" {
			continue
		}
		iso := whatlanggo.DetectLang(cue.Text).Iso6391()
		counts[iso]++
	}

	var topLang string
	var topCount int
	for iso, count := range counts {
		if count > topCount {
			topLang = iso
			topCount = count
		}
	}

	if topLang == "" {
		return language.Und
	}
	return language.All.Make(topLang)
}
