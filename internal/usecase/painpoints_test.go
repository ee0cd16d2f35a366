package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocessPainPoints(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "keeps clean input", input: []string{"資料分散", "決策速度慢"}, want: []string{"資料分散", "決策速度慢"}},
		{name: "strips numbered markers", input: []string{"1. 資料分散", "2) 決策速度慢", "3、人才短缺"}, want: []string{"資料分散", "決策速度慢", "人才短缺"}},
		{name: "strips bullets", input: []string{"- 資料分散", "• 決策速度慢"}, want: []string{"資料分散", "決策速度慢"}},
		{name: "strips chinese enumerators", input: []string{"（一）資料分散"}, want: []string{"資料分散"}},
		{name: "drops empties and duplicates", input: []string{"", "  ", "Data silo", "data  silo"}, want: []string{"Data silo"}},
		{name: "nil input", input: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreprocessPainPoints(tt.input))
		})
	}
}

func TestPreprocessPainPoints_LongInput(t *testing.T) {
	long := strings.Repeat("痛", maxPainPointRunes+50)
	got := PreprocessPainPoints([]string{long})
	assert.Len(t, []rune(got[0]), maxPainPointRunes)
}
