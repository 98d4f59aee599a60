package llm

import "context"

// ChatModel is a minimal abstraction for chat-based LLMs used by the pipeline.
// It intentionally hides concrete providers to preserve dependency direction.
// Temperature is per call: extraction stages run cold, tailoring slightly warm.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string, temperature float32) (string, error)
	// Configured reports whether a credential is present, so callers can
	// fail fast before building prompts or touching the network.
	Configured() bool
}
