package interpreter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fakecheck-ai/verdict-engine/pkg/models"
)

func TestInterpret_Confidence(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{
			name: "highly true uppercase",
			raw:  "This is HIGHLY TRUE based on evidence",
			want: 95,
		},
		{
			name: "strongly true",
			raw:  "The statement is strongly true.",
			want: 95,
		},
		{
			name: "likely true",
			raw:  "Likely True: multiple sources confirm this.",
			want: 85,
		},
		{
			name: "bare true",
			raw:  "The claim appears to be true.",
			want: 75,
		},
		{
			name: "uncertain",
			raw:  "Uncertain - not enough evidence either way.",
			want: 50,
		},
		{
			name: "likely false wins over bare false",
			raw:  "Likely false claim",
			want: 60,
		},
		{
			name: "bare false",
			raw:  "This statement is false.",
			want: 80,
		},
		{
			name: "no keyword",
			raw:  "Cannot determine anything from this text.",
			want: 50,
		},
		{
			name: "empty string",
			raw:  "",
			want: 50,
		},
		{
			name: "fallback response",
			raw:  "No response received.",
			want: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Interpret(tt.raw)
			assert.Equal(t, tt.want, got.Confidence)
		})
	}
}

func TestInterpret_LabelTruncation(t *testing.T) {
	long := strings.Repeat("a", models.MaxLabelLength+200)

	got := Interpret(long)

	assert.Len(t, got.Label, models.MaxLabelLength)
	// No truncation indicator is appended.
	assert.Equal(t, long[:models.MaxLabelLength], got.Label)
}

func TestInterpret_LabelTruncationMultibyte(t *testing.T) {
	// A run of 3-byte runes that does not divide MaxLabelLength evenly
	// must not be cut mid-rune.
	long := strings.Repeat("€", 400)

	got := Interpret(long)

	assert.True(t, len(got.Label) <= models.MaxLabelLength)
	assert.True(t, strings.HasPrefix(long, got.Label))
}

func TestInterpret_ShortLabelKept(t *testing.T) {
	got := Interpret("Likely True: confirmed.")
	assert.Equal(t, "Likely True: confirmed.", got.Label)
}

func TestInterpret_ConfidenceRange(t *testing.T) {
	for _, raw := range []string{"", "true", "false", "likely true", "likely false", "uncertain", "garbage"} {
		got := Interpret(raw)
		assert.GreaterOrEqual(t, got.Confidence, 0)
		assert.LessOrEqual(t, got.Confidence, 100)
	}
}
