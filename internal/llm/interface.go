package llm

import "context"

// Completer is an interface for a single text completion call against
// the external language-model provider.
type Completer interface {
	// Complete sends the instruction and user message to the provider
	// and returns the trimmed generated text.
	Complete(ctx context.Context, system, user string) (string, error)
}
