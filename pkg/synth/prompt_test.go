package synth_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"jobtion/pkg/synth"
)

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		n    int
		want string
	}{
		{"abcdef", 4, "abcd"},
		{"abcdef", 6, "abcdef"},
		{"abcdef", 10, "abcdef"},
		{"héllo", 2, "h"},  // é is 2 bytes; cap lands mid-rune
		{"héllo", 3, "hé"},
		{"日本語", 4, "日"}, // 3 bytes per rune
		{"", 5, ""},
	}
	for _, c := range cases {
		got := synth.Truncate(c.in, c.n)
		if got != c.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", c.in, c.n, got, c.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("Truncate(%q, %d) produced invalid UTF-8", c.in, c.n)
		}
	}
}

func TestPrompt_AssemblesSections(t *testing.T) {
	p := synth.NewPrompt("Extract job posting details from the following text.").
		Input("Text from https://example.com/job", "We are hiring a Go engineer.").
		Shape(`{"title": "job title"}`).
		Rule("title must be the exact posting title")

	got := p.String()

	for _, want := range []string{
		"Extract job posting details from the following text.",
		"Text from https://example.com/job:\nWe are hiring a Go engineer.",
		"Return a JSON object with this exact structure:\n{\"title\": \"job title\"}",
		"Rules:\n- title must be the exact posting title",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q in:\n%s", want, got)
		}
	}
	if !strings.HasSuffix(got, "Respond with only valid JSON, no markdown formatting.") {
		t.Errorf("prompt must end with the JSON-only instruction, got:\n%s", got)
	}
}

func TestPrompt_NoShapeNoRules(t *testing.T) {
	got := synth.NewPrompt("Summarize.").String()
	if strings.Contains(got, "Return a JSON object") || strings.Contains(got, "Rules:") {
		t.Errorf("empty shape/rules must not emit their headers:\n%s", got)
	}
}
