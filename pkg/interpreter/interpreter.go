// Package interpreter turns raw classifier output into a display label
// and a numeric confidence score.
package interpreter

import (
	"strings"
	"unicode/utf8"

	"github.com/fakecheck-ai/verdict-engine/pkg/models"
)

// Result is the structured interpretation of one raw verdict text.
type Result struct {
	Label      string
	Confidence int
}

// DefaultConfidence is used when no keyword matches, including for
// empty input.
const DefaultConfidence = 50

// rule maps a phrase found in the raw text to a confidence score.
// Rules are evaluated in order and the first match wins: "likely false"
// must be tested before "false", and the "true" variants before "true",
// or the shorter substring would shadow the longer phrase at a
// different score.
type rule struct {
	phrase     string
	confidence int
}

var rules = []rule{
	{"highly true", 95},
	{"strongly true", 95},
	{"likely true", 85},
	{"true", 75},
	{"uncertain", 50},
	{"likely false", 60},
	{"false", 80},
}

// Interpret scans rawText for the ordered keyword rules and returns the
// label (rawText bounded to models.MaxLabelLength) and the confidence
// of the first matching rule. It never fails: any input, including the
// empty string, maps to a deterministic result.
func Interpret(rawText string) Result {
	lower := strings.ToLower(rawText)

	confidence := DefaultConfidence
	for _, r := range rules {
		if strings.Contains(lower, r.phrase) {
			confidence = r.confidence
			break
		}
	}

	return Result{
		Label:      truncate(rawText, models.MaxLabelLength),
		Confidence: confidence,
	}
}

// truncate bounds s to at most max bytes without splitting a UTF-8
// sequence. No truncation indicator is appended.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := s[:max]
	for !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
