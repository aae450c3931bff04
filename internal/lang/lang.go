// Package lang holds the closed set of language identifiers the pipeline
// understands, the filename classification used when tagging mux streams,
// and the fallback priority used to pick a translation source.
package lang

import (
	"strings"

	"golang.org/x/text/language"
)

// Tag identifies a subtitle language. The set is closed: tracks outside it
// are labelled Undetermined.
type Tag string

const (
	ChineseTraditional Tag = "zh-TW"
	Chinese            Tag = "zh"
	English            Tag = "en"
	Japanese           Tag = "ja"
	Undetermined       Tag = "und"
)

// classifyOrder lists markers in match priority. zh-TW must precede zh so
// the longer marker wins on traditional-Chinese filenames.
var classifyOrder = []Tag{ChineseTraditional, Chinese, English, Japanese}

// TranslationPriority is the fallback order used to pick a translation
// source when no target-language track exists.
var TranslationPriority = []Tag{Chinese, English, Japanese}

func (t Tag) String() string {
	return string(t)
}

// Canonical maps the pipeline tag onto an x/text language.Tag.
func (t Tag) Canonical() language.Tag {
	if t == Undetermined || t == "" {
		return language.Und
	}
	return language.Make(string(t))
}

// Classify assigns a Tag to a subtitle filename by substring match in fixed
// priority order, first match wins. Filenames carrying none of the known
// markers classify as Undetermined.
func Classify(filename string) Tag {
	for _, tag := range classifyOrder {
		if strings.Contains(filename, string(tag)) {
			return tag
		}
	}
	return Undetermined
}

// ClassifyAll tags every filename in order.
func ClassifyAll(filenames []string) []Tag {
	tags := make([]Tag, len(filenames))
	for i, name := range filenames {
		tags[i] = Classify(name)
	}
	return tags
}
