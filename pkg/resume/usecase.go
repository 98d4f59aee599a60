package resume

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"jobtion/pkg/fault"
	"jobtion/pkg/synth"
)

// ParseService turns an uploaded PDF into a structured Document with every
// entry carrying a fresh unique id.
type ParseService interface {
	Parse(ctx context.Context, filename string, data []byte) (Document, error)
}

type parseService struct {
	extractor      TextExtractor
	synth          synth.Synthesizer
	maxPromptChars int
}

func NewParseService(extractor TextExtractor, s synth.Synthesizer) ParseService {
	return &parseService{
		extractor:      extractor,
		synth:          s,
		maxPromptChars: 12_000,
	}
}

// parsedDocument mirrors the shape the model is asked for, before ids are
// assigned. Pointer-free: missing fields simply zero out and get defaulted.
type parsedDocument struct {
	Profile     Profile `json:"profile"`
	Experiences []struct {
		Company string   `json:"company"`
		Role    string   `json:"role"`
		Start   string   `json:"start"`
		End     string   `json:"end"`
		Bullets []string `json:"bullets"`
	} `json:"experiences"`
	Projects []struct {
		Name    string   `json:"name"`
		Tech    string   `json:"tech"`
		Bullets []string `json:"bullets"`
	} `json:"projects"`
	Education []struct {
		School string `json:"school"`
		Degree string `json:"degree"`
		Period string `json:"period"`
		GPA    string `json:"gpa"`
	} `json:"education"`
	Skills struct {
		Categories []SkillCategory `json:"categories"`
	} `json:"skills"`
}

const parseSystemPrompt = "You are an expert resume parser. Extract structured information accurately. Always respond with valid JSON only."

const parseShape = `{
  "profile": {
    "name": "Full Name",
    "phone": "Phone number or empty string",
    "email": "Email address or empty string",
    "linkedin": "LinkedIn URL or username or empty string",
    "website": "Personal website or portfolio URL or empty string"
  },
  "experiences": [
    {
      "company": "Company Name",
      "role": "Job Title",
      "start": "Start date (e.g., Jan 2022)",
      "end": "End date or Present",
      "bullets": ["Achievement 1", "Achievement 2", "Achievement 3"]
    }
  ],
  "projects": [
    {
      "name": "Project Name",
      "tech": "Technologies used (comma-separated)",
      "bullets": ["Description 1", "Description 2"]
    }
  ],
  "education": [
    {
      "school": "University/School Name",
      "degree": "Degree and Major",
      "period": "Time period (e.g., 2018 - 2022)",
      "gpa": "GPA if mentioned, otherwise empty string"
    }
  ],
  "skills": {
    "categories": [
      {
        "name": "Category Name (e.g., Languages, Frameworks, Tools)",
        "items": ["Skill 1", "Skill 2", "Skill 3"]
      }
    ]
  }
}`

const parseSchema = `{
  "type": "object",
  "properties": {
    "profile": {"type": "object"},
    "experiences": {"type": "array", "items": {"type": "object"}},
    "projects": {"type": "array", "items": {"type": "object"}},
    "education": {"type": "array", "items": {"type": "object"}},
    "skills": {"type": "object"}
  }
}`

func (s *parseService) Parse(ctx context.Context, filename string, data []byte) (Document, error) {
	if strings.ToLower(filepath.Ext(filename)) != ".pdf" {
		return Document{}, fault.New(fault.InvalidInput, "file must be a PDF")
	}

	text, err := s.extractor.Extract(data)
	if err != nil {
		return Document{}, err
	}
	text = synth.Truncate(text, s.maxPromptChars)

	prompt := synth.NewPrompt("Extract resume information from the following text and return a structured JSON object.").
		Input("RESUME TEXT", text).
		Shape(parseShape).
		Rule("Extract ALL experiences, projects, and education entries found").
		Rule("For experiences, extract 3-5 bullet points per role if available").
		Rule("Group skills into logical categories (Languages, Frameworks, Tools, etc.)").
		Rule("If a section is not found, return an empty array for that section").
		Rule("Keep all information factual - do not fabricate or embellish").
		Rule(`Dates should be formatted consistently (e.g., "Jan 2022" or "2022")`)

	var parsed parsedDocument
	err = s.synth.Synthesize(ctx, synth.Request{
		Task:        "parse-resume",
		System:      parseSystemPrompt,
		User:        prompt.String(),
		Temperature: synth.TempExtract,
		Schema:      parseSchema,
	}, &parsed)
	if err != nil {
		return Document{}, err
	}

	return assignIDs(parsed, time.Now()), nil
}

// assignIDs stamps a fresh unique id onto every entry and the skills block,
// and fills every hole so the UI never receives an undefined shape.
// Ids combine a timestamp with the entry index, unique within one parse call.
func assignIDs(p parsedDocument, now time.Time) Document {
	ts := now.UnixMilli()
	doc := Document{
		Profile:     p.Profile,
		Experiences: make([]ExperienceEntry, 0, len(p.Experiences)),
		Projects:    make([]ProjectEntry, 0, len(p.Projects)),
		Education:   make([]EducationEntry, 0, len(p.Education)),
	}
	for i, exp := range p.Experiences {
		doc.Experiences = append(doc.Experiences, ExperienceEntry{
			ID:      fmt.Sprintf("exp-%d-%d", ts, i),
			Company: exp.Company,
			Role:    exp.Role,
			Start:   exp.Start,
			End:     exp.End,
			Bullets: orEmpty(exp.Bullets),
		})
	}
	for i, proj := range p.Projects {
		doc.Projects = append(doc.Projects, ProjectEntry{
			ID:      fmt.Sprintf("proj-%d-%d", ts, i),
			Name:    proj.Name,
			Tech:    proj.Tech,
			Bullets: orEmpty(proj.Bullets),
		})
	}
	for i, edu := range p.Education {
		doc.Education = append(doc.Education, EducationEntry{
			ID:     fmt.Sprintf("edu-%d-%d", ts, i),
			School: edu.School,
			Degree: edu.Degree,
			Period: edu.Period,
			GPA:    edu.GPA,
		})
	}
	doc.Skills = SkillsBlock{
		ID:         fmt.Sprintf("skills-%d", ts),
		Categories: make([]SkillCategory, 0, len(p.Skills.Categories)),
	}
	for _, cat := range p.Skills.Categories {
		doc.Skills.Categories = append(doc.Skills.Categories, SkillCategory{
			Name:  cat.Name,
			Items: orEmpty(cat.Items),
		})
	}
	return doc
}

func orEmpty(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
