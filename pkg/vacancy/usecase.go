package vacancy

import (
	"context"

	"jobtion/pkg/fault"
	"jobtion/pkg/synth"
)

// ExtractService turns a posting URL into a structured JobPosting.
type ExtractService interface {
	Extract(ctx context.Context, rawURL string) (JobPosting, error)
}

type extractService struct {
	fetcher PageFetcher
	synth   synth.Synthesizer
}

func NewExtractService(fetcher PageFetcher, s synth.Synthesizer) ExtractService {
	return &extractService{fetcher: fetcher, synth: s}
}

const extractSystemPrompt = "You are a helpful assistant that extracts structured job posting information. Always respond with valid JSON only."

const extractShape = `{
  "title": "job title",
  "company": "company name",
  "location": "job location (remote, city, etc.)",
  "description": "a 2-3 sentence summary of the role",
  "requirements": ["key requirement or qualification (max 10 items)"],
  "keywords": ["important technical skill, tool, or buzzword mentioned (max 15 items)"],
  "salary": "salary range if mentioned, otherwise empty string"
}`

const extractSchema = `{
  "type": "object",
  "properties": {
    "title": {"type": "string"},
    "company": {"type": "string"},
    "location": {"type": "string"},
    "description": {"type": "string"},
    "requirements": {"type": "array", "items": {"type": "string"}},
    "keywords": {"type": "array", "items": {"type": "string"}},
    "salary": {"type": ["string", "null"]}
  }
}`

func (s *extractService) Extract(ctx context.Context, rawURL string) (JobPosting, error) {
	text, err := s.fetcher.FetchText(ctx, rawURL)
	if err != nil {
		// Fallback UX, not fallback logic: the caller is told to paste the
		// description manually instead of relying on the URL.
		if k := fault.KindOf(err); k == fault.UpstreamFetchFailure || k == fault.Timeout {
			return JobPosting{}, fault.Wrap(k,
				"could not fetch job posting - try pasting the job description directly", err)
		}
		return JobPosting{}, err
	}

	prompt := synth.NewPrompt("Extract job posting details from the following text.").
		Input("Text from "+rawURL, text).
		Shape(extractShape).
		Rule("description must be a 2-3 sentence summary of the role").
		Rule("requirements: key requirements/qualifications, max 10 items").
		Rule("keywords: important technical skills, tools, and buzzwords mentioned, max 15 items")

	var job JobPosting
	err = s.synth.Synthesize(ctx, synth.Request{
		Task:        "extract-job",
		System:      extractSystemPrompt,
		User:        prompt.String(),
		Temperature: synth.TempExtract,
		Schema:      extractSchema,
	}, &job)
	if err != nil {
		return JobPosting{}, err
	}

	if len(job.Requirements) > MaxRequirements {
		job.Requirements = job.Requirements[:MaxRequirements]
	}
	if len(job.Keywords) > MaxKeywords {
		job.Keywords = job.Keywords[:MaxKeywords]
	}
	return job, nil
}
