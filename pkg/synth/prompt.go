package synth

import (
	"strings"
	"unicode/utf8"
)

// Sampling temperatures used across the pipeline: extraction stages want
// near-deterministic output, tailoring tolerates light creativity.
const (
	TempExtract float32 = 0.1
	TempTailor  float32 = 0.3
)

// Truncate caps s at n bytes without splitting a multi-byte rune, so capped
// input text stays valid UTF-8 all the way into the prompt.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// Prompt assembles the user prompt for a synthesis call. All three pipeline
// stages share it so the "respond with only valid JSON" contract cannot
// drift between call sites.
type Prompt struct {
	intro    string
	sections []section
	shape    string
	rules    []string
}

type section struct {
	name string
	text string
}

// NewPrompt starts a prompt with an opening instruction line.
func NewPrompt(intro string) *Prompt {
	return &Prompt{intro: intro}
}

// Input adds a named block of free text (resume text, scraped posting, ...).
func (p *Prompt) Input(name, text string) *Prompt {
	p.sections = append(p.sections, section{name: name, text: text})
	return p
}

// Shape declares the exact JSON structure the model must return.
func (p *Prompt) Shape(jsonSkeleton string) *Prompt {
	p.shape = jsonSkeleton
	return p
}

// Rule appends one constraint line to the trailing rules list.
func (p *Prompt) Rule(rule string) *Prompt {
	p.rules = append(p.rules, rule)
	return p
}

func (p *Prompt) String() string {
	var b strings.Builder
	b.WriteString(p.intro)
	b.WriteString("\n")
	for _, s := range p.sections {
		b.WriteString("\n")
		b.WriteString(s.name)
		b.WriteString(":\n")
		b.WriteString(s.text)
		b.WriteString("\n")
	}
	if p.shape != "" {
		b.WriteString("\nReturn a JSON object with this exact structure:\n")
		b.WriteString(p.shape)
		b.WriteString("\n")
	}
	if len(p.rules) > 0 {
		b.WriteString("\nRules:\n")
		for _, r := range p.rules {
			b.WriteString("- ")
			b.WriteString(r)
			b.WriteString("\n")
		}
	}
	b.WriteString("\nRespond with only valid JSON, no markdown formatting.")
	return b.String()
}
