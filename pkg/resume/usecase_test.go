package resume_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"jobtion/pkg/fault"
	"jobtion/pkg/resume"
	"jobtion/pkg/synth"
)

type stubExtractor struct {
	text   string
	err    error
	called int
}

func (s *stubExtractor) Extract(_ []byte) (string, error) {
	s.called++
	return s.text, s.err
}

// stubSynth unmarshals a canned JSON payload into out, mimicking a model
// that returned exactly that document.
type stubSynth struct {
	payload string
	err     error
	called  int
	lastReq synth.Request
}

func (s *stubSynth) Synthesize(_ context.Context, req synth.Request, out any) error {
	s.called++
	s.lastReq = req
	if s.err != nil {
		return s.err
	}
	return json.Unmarshal([]byte(s.payload), out)
}

const johnDoeParsed = `{
  "profile": {"name": "John Doe", "email": "john@example.com", "phone": "", "linkedin": "", "website": ""},
  "experiences": [
    {"company": "Acme", "role": "Engineer", "start": "Jan 2022", "end": "Present", "bullets": ["Built things"]},
    {"company": "Globex", "role": "Intern", "start": "2021", "end": "2022", "bullets": null}
  ],
  "projects": [{"name": "Sidecar", "tech": "Go, Redis", "bullets": ["Wrote a cache"]}],
  "education": [{"school": "State U", "degree": "BSc CS", "period": "2018 - 2022", "gpa": "3.8"}],
  "skills": {"categories": [{"name": "Languages", "items": ["Go", "SQL"]}]}
}`

func TestParse_StructuresDocumentAndAssignsIDs(t *testing.T) {
	ext := &stubExtractor{text: "John Doe resume text"}
	syn := &stubSynth{payload: johnDoeParsed}
	svc := resume.NewParseService(ext, syn)

	doc, err := svc.Parse(context.Background(), "resume.pdf", []byte("%PDF-"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Profile.Name != "John Doe" {
		t.Errorf("profile name = %q, want John Doe", doc.Profile.Name)
	}
	if len(doc.Experiences) != 2 || len(doc.Projects) != 1 || len(doc.Education) != 1 {
		t.Fatalf("section sizes = %d/%d/%d, want 2/1/1",
			len(doc.Experiences), len(doc.Projects), len(doc.Education))
	}

	seen := map[string]bool{}
	for _, e := range doc.Experiences {
		if !strings.HasPrefix(e.ID, "exp-") {
			t.Errorf("experience id %q must start with exp-", e.ID)
		}
		if seen[e.ID] {
			t.Errorf("duplicate id %q", e.ID)
		}
		seen[e.ID] = true
	}
	for _, p := range doc.Projects {
		if !strings.HasPrefix(p.ID, "proj-") {
			t.Errorf("project id %q must start with proj-", p.ID)
		}
	}
	for _, e := range doc.Education {
		if !strings.HasPrefix(e.ID, "edu-") {
			t.Errorf("education id %q must start with edu-", e.ID)
		}
	}
	if !strings.HasPrefix(doc.Skills.ID, "skills-") {
		t.Errorf("skills id %q must start with skills-", doc.Skills.ID)
	}
}

func TestParse_NullBulletsBecomeEmptySlice(t *testing.T) {
	ext := &stubExtractor{text: "text"}
	syn := &stubSynth{payload: johnDoeParsed}
	svc := resume.NewParseService(ext, syn)

	doc, err := svc.Parse(context.Background(), "resume.pdf", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Experiences[1].Bullets == nil {
		t.Error("missing bullets must serialize as [], not null")
	}
}

func TestParse_RejectsNonPDFWithoutTouchingPipeline(t *testing.T) {
	ext := &stubExtractor{text: "text"}
	syn := &stubSynth{payload: johnDoeParsed}
	svc := resume.NewParseService(ext, syn)

	_, err := svc.Parse(context.Background(), "resume.docx", []byte("PK"))
	if !fault.IsKind(err, fault.InvalidInput) {
		t.Fatalf("expected invalid_input, got %v", err)
	}
	if ext.called != 0 || syn.called != 0 {
		t.Errorf("extractor/synth called %d/%d times, want 0/0", ext.called, syn.called)
	}
}

func TestParse_ExtractorErrorPassthrough(t *testing.T) {
	ext := &stubExtractor{err: fault.New(fault.ExtractionEmpty, "could not extract text from PDF")}
	syn := &stubSynth{payload: johnDoeParsed}
	svc := resume.NewParseService(ext, syn)

	_, err := svc.Parse(context.Background(), "scan.pdf", []byte("%PDF-"))
	if !fault.IsKind(err, fault.ExtractionEmpty) {
		t.Fatalf("expected extraction_empty, got %v", err)
	}
	if syn.called != 0 {
		t.Errorf("synth called %d times after extraction failure, want 0", syn.called)
	}
}

func TestParse_TruncatesLongTextInPrompt(t *testing.T) {
	long := strings.Repeat("a", 20_000)
	ext := &stubExtractor{text: long}
	syn := &stubSynth{payload: johnDoeParsed}
	svc := resume.NewParseService(ext, syn)

	if _, err := svc.Parse(context.Background(), "resume.pdf", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(syn.lastReq.User, strings.Repeat("a", 12_001)) {
		t.Error("prompt carries more than the extraction cap")
	}
	if !strings.Contains(syn.lastReq.User, strings.Repeat("a", 12_000)) {
		t.Error("prompt must carry the capped extraction text")
	}
}

func TestParse_CapKeepsValidUTF8(t *testing.T) {
	// An odd prefix pushes the byte cap off the 3-byte rune grid.
	ext := &stubExtractor{text: "a" + strings.Repeat("日", 5_000)}
	syn := &stubSynth{payload: johnDoeParsed}
	svc := resume.NewParseService(ext, syn)

	if _, err := svc.Parse(context.Background(), "resume.pdf", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !utf8.ValidString(syn.lastReq.User) {
		t.Error("capped resume text left invalid UTF-8 in the prompt")
	}
}

func TestParse_UsesExtractionTemperature(t *testing.T) {
	ext := &stubExtractor{text: "text"}
	syn := &stubSynth{payload: johnDoeParsed}
	svc := resume.NewParseService(ext, syn)

	if _, err := svc.Parse(context.Background(), "resume.pdf", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if syn.lastReq.Temperature != synth.TempExtract {
		t.Errorf("temperature = %v, want %v", syn.lastReq.Temperature, synth.TempExtract)
	}
}
