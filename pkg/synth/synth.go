package synth

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"jobtion/pkg/fault"
	"jobtion/pkg/llm"
)

// Request describes one structured-synthesis call.
type Request struct {
	// Task labels the call in server logs ("parse-resume", "extract-job", ...).
	Task string
	// System is the system instruction; it should already demand JSON-only output.
	System string
	// User is the full user prompt, normally built with Prompt.
	User string
	// Temperature is the sampling temperature for this call.
	Temperature float32
	// Schema, when non-empty, is a JSON Schema the cleaned output must satisfy
	// before deserialization. Model output is untrusted input; drift, fences
	// and partial JSON are expected-case failures here.
	Schema string
}

// Synthesizer turns free text plus a shape contract into a schema-conformant
// value by way of a single chat completion.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request, out any) error
}

type service struct {
	model llm.ChatModel
}

// New wraps a chat model into a Synthesizer.
func New(model llm.ChatModel) Synthesizer {
	return &service{model: model}
}

func (s *service) Synthesize(ctx context.Context, req Request, out any) error {
	// Credential check happens before any network call so a missing key is a
	// fast, clear configuration error rather than an upstream 401.
	if !s.model.Configured() {
		return fault.New(fault.SynthesisUnavailable, "GROQ_API_KEY not configured")
	}

	raw, err := s.model.Ask(ctx, req.System, req.User, req.Temperature)
	if err != nil {
		if fault.KindOf(err) != fault.Internal {
			return err
		}
		return fault.Wrap(fault.SynthesisUnavailable, "model completion failed", err)
	}

	cleaned := StripFences(raw)

	if !json.Valid([]byte(cleaned)) {
		log.Printf("synth[%s]: model returned non-JSON content: %s", req.Task, raw)
		return fault.New(fault.MalformedModelOutput, "failed to parse AI response")
	}
	if req.Schema != "" {
		res, err := gojsonschema.Validate(
			gojsonschema.NewStringLoader(req.Schema),
			gojsonschema.NewStringLoader(cleaned),
		)
		if err != nil {
			log.Printf("synth[%s]: schema validation error: %v; content: %s", req.Task, err, raw)
			return fault.Wrap(fault.MalformedModelOutput, "failed to validate AI response", err)
		}
		if !res.Valid() {
			log.Printf("synth[%s]: model output failed schema validation: %v; content: %s", req.Task, res.Errors(), raw)
			return fault.New(fault.MalformedModelOutput, "AI response did not match the expected shape")
		}
	}
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		log.Printf("synth[%s]: unmarshal error: %v; content: %s", req.Task, err, raw)
		return fault.Wrap(fault.MalformedModelOutput, "failed to parse AI response", err)
	}
	return nil
}

// StripFences removes leading/trailing markdown code fence markers, with or
// without a "json" language tag, which chat models like to wrap output in.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json\n", "")
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```\n", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
