package tailor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"jobtion/pkg/fault"
	"jobtion/pkg/resume"
	"jobtion/pkg/synth"
	"jobtion/pkg/vacancy"
)

// Fragment is the tailored slice of a resume: prose and skill ordering only.
// Education is untouched by tailoring and therefore not part of the contract.
type Fragment struct {
	Experiences []resume.ExperienceEntry `json:"experiences"`
	Projects    []resume.ProjectEntry    `json:"projects"`
	Skills      resume.SkillsBlock       `json:"skills"`
	Summary     string                   `json:"summary,omitempty"`
}

// Input carries the resume plus either a job URL or an already-extracted
// posting. When both are present the posting wins and no fetch happens.
type Input struct {
	Resume resume.Document
	JobURL string
	Job    *vacancy.JobPosting
}

// Result pairs the tailored fragment with the posting it was tailored
// against, so the UI can display "optimized for: <title> at <company>".
type Result struct {
	Optimized Fragment           `json:"optimized"`
	Job       vacancy.JobPosting `json:"job"`
}

// Service rewrites a resume's prose to match a target job while preserving
// every identifier and factual field.
type Service interface {
	Tailor(ctx context.Context, in Input) (Result, error)
}

type service struct {
	extractor vacancy.ExtractService
	synth     synth.Synthesizer
}

func NewService(extractor vacancy.ExtractService, s synth.Synthesizer) Service {
	return &service{extractor: extractor, synth: s}
}

const tailorSystemPrompt = "You are an expert resume optimizer. Tailor resumes to job postings while maintaining factual accuracy. Always respond with valid JSON only."

const tailorShape = `{
  "experiences": [
    {
      "id": "keep-original-id",
      "company": "keep-original",
      "role": "keep-original",
      "start": "keep-original",
      "end": "keep-original",
      "bullets": ["optimized bullet 1", "optimized bullet 2", "optimized bullet 3"]
    }
  ],
  "projects": [
    {
      "id": "keep-original-id",
      "name": "keep-original",
      "tech": "keep-original-or-slightly-reorder",
      "bullets": ["optimized bullet 1", "optimized bullet 2"]
    }
  ],
  "skills": {
    "id": "keep-original-id",
    "categories": [
      {
        "name": "Category Name",
        "items": ["skill1", "skill2", "skill3"]
      }
    ]
  },
  "summary": "A 2-3 sentence professional summary tailored to this specific role (optional, for display purposes)"
}`

const tailorSchema = `{
  "type": "object",
  "properties": {
    "experiences": {"type": "array", "items": {"type": "object"}},
    "projects": {"type": "array", "items": {"type": "object"}},
    "skills": {"type": "object"},
    "summary": {"type": ["string", "null"]}
  }
}`

func (s *service) Tailor(ctx context.Context, in Input) (Result, error) {
	job, err := s.resolveJob(ctx, in)
	if err != nil {
		// Tailoring against no job context is meaningless; the whole
		// operation fails with the extraction error.
		return Result{}, err
	}

	resumeJSON, err := json.MarshalIndent(in.Resume, "", "  ")
	if err != nil {
		return Result{}, err
	}

	prompt := synth.NewPrompt("You are an expert resume writer. Optimize this resume for the target job posting.").
		Input("CURRENT RESUME DATA", string(resumeJSON)).
		Input("TARGET JOB", formatJob(job)).
		Shape(tailorShape).
		Rule("Rewrite experience bullet points to incorporate relevant keywords from the job posting naturally, emphasize achievements that align with job requirements, use action verbs, and quantify results where possible").
		Rule("Rewrite project bullet points similarly").
		Rule("Reorder skills categories to prioritize skills mentioned in the job posting; add missing skills from the job requirements only when the candidate likely has them based on their experience; deprioritize skills not relevant to this role").
		Rule("Keep ALL original IDs exactly as provided").
		Rule("Keep all dates, company names, school names, and other factual details EXACTLY the same").
		Rule("Only modify bullet point text and skills ordering/content").
		Rule("Do not add fabricated experiences or projects")

	var out Fragment
	err = s.synth.Synthesize(ctx, synth.Request{
		Task:        "tailor-resume",
		System:      tailorSystemPrompt,
		User:        prompt.String(),
		Temperature: synth.TempTailor,
		Schema:      tailorSchema,
	}, &out)
	if err != nil {
		return Result{}, err
	}

	if err := verifyIDs(in.Resume, out); err != nil {
		return Result{}, err
	}
	restoreFacts(in.Resume, &out)

	return Result{Optimized: out, Job: job}, nil
}

func (s *service) resolveJob(ctx context.Context, in Input) (vacancy.JobPosting, error) {
	if in.Job != nil {
		return *in.Job, nil
	}
	if strings.TrimSpace(in.JobURL) == "" {
		return vacancy.JobPosting{}, fault.New(fault.InvalidInput, "job URL or job details are required")
	}
	return s.extractor.Extract(ctx, in.JobURL)
}

func formatJob(job vacancy.JobPosting) string {
	return fmt.Sprintf("Title: %s\nCompany: %s\nDescription: %s\nRequirements: %s\nKeywords: %s",
		orNotSpecified(job.Title),
		orNotSpecified(job.Company),
		orNotSpecified(job.Description),
		orNotSpecified(strings.Join(job.Requirements, ", ")),
		orNotSpecified(strings.Join(job.Keywords, ", ")),
	)
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

// verifyIDs enforces the identity contract the prompt asks of the model:
// the id set of every tailored section must equal the input's. The model is
// untrusted; accepting corrupted identity silently would poison UI state.
func verifyIDs(in resume.Document, out Fragment) error {
	if err := compareIDSets("experiences", experienceIDs(in.Experiences), experienceIDs(out.Experiences)); err != nil {
		return err
	}
	if err := compareIDSets("projects", projectIDs(in.Projects), projectIDs(out.Projects)); err != nil {
		return err
	}
	if in.Skills.ID != "" && out.Skills.ID != in.Skills.ID {
		return fault.Newf(fault.ContractViolation,
			"model altered the skills block id (%q -> %q)", in.Skills.ID, out.Skills.ID)
	}
	return nil
}

func experienceIDs(es []resume.ExperienceEntry) []string {
	ids := make([]string, 0, len(es))
	for _, e := range es {
		ids = append(ids, e.ID)
	}
	return ids
}

func projectIDs(ps []resume.ProjectEntry) []string {
	ids := make([]string, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids
}

func compareIDSets(section string, want, got []string) error {
	wantSet := make(map[string]struct{}, len(want))
	for _, id := range want {
		wantSet[id] = struct{}{}
	}
	gotSet := make(map[string]struct{}, len(got))
	for _, id := range got {
		gotSet[id] = struct{}{}
	}
	for id := range wantSet {
		if _, ok := gotSet[id]; !ok {
			return fault.Newf(fault.ContractViolation, "model dropped %s id %q", section, id)
		}
	}
	for id := range gotSet {
		if _, ok := wantSet[id]; !ok {
			return fault.Newf(fault.ContractViolation, "model invented %s id %q", section, id)
		}
	}
	return nil
}

// restoreFacts copies the factual fields back from the input byte-for-byte,
// keyed by id. Only bullets, tech and skill items may differ from the input.
func restoreFacts(in resume.Document, out *Fragment) {
	exps := make(map[string]resume.ExperienceEntry, len(in.Experiences))
	for _, e := range in.Experiences {
		exps[e.ID] = e
	}
	for i := range out.Experiences {
		if src, ok := exps[out.Experiences[i].ID]; ok {
			out.Experiences[i].Company = src.Company
			out.Experiences[i].Role = src.Role
			out.Experiences[i].Start = src.Start
			out.Experiences[i].End = src.End
		}
	}
	projs := make(map[string]resume.ProjectEntry, len(in.Projects))
	for _, p := range in.Projects {
		projs[p.ID] = p
	}
	for i := range out.Projects {
		if src, ok := projs[out.Projects[i].ID]; ok {
			out.Projects[i].Name = src.Name
		}
	}
}
