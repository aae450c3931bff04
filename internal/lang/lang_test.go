package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		file string
		want Tag
	}{
		{name: "traditional chinese beats plain zh", file: "My Video [id].zh-TW.vtt", want: ChineseTraditional},
		{name: "simplified chinese", file: "My Video [id].zh.vtt", want: Chinese},
		{name: "english", file: "My Video [id].en.vtt", want: English},
		{name: "japanese", file: "My Video [id].ja.vtt", want: Japanese},
		{name: "unknown marker", file: "My Video [id].ko.vtt", want: Undetermined},
		{name: "no marker", file: "My Video [id].vtt", want: Undetermined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.file))
		})
	}
}

func TestClassifyAllPreservesOrder(t *testing.T) {
	got := ClassifyAll([]string{"a.en.vtt", "a.zh-TW.vtt", "a.vtt"})
	assert.Equal(t, []Tag{English, ChineseTraditional, Undetermined}, got)
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, language.Und, Undetermined.Canonical())
	assert.Equal(t, language.Und, Tag("").Canonical())
	assert.Equal(t, "zh-TW", ChineseTraditional.Canonical().String())
	assert.Equal(t, "en", English.Canonical().String())
}
