// Package embedding defines the optional embedding provider used to attach
// vectors to conversation history before preprocessing. The core pipeline
// never calls a provider; callers embed history off the hot path and pass
// the vectors in.
package embedding

import (
	"context"
	"fmt"

	"github.com/coursemesh/nlp-preprocess/config"
	"github.com/coursemesh/nlp-preprocess/schema"
)

// Provider produces embeddings for a batch of texts. Implementations must
// return one vector per input text, in order.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
}

// NewProvider builds a provider from config. An empty provider name returns
// (nil, nil): embeddings are optional.
func NewProvider(cfg config.EmbeddingConfig) (Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}

// AttachEmbeddings fills in the Embedding field of any message that lacks
// one, in a single batched provider call. Messages that already carry an
// embedding are left untouched. The input slice is modified in place and
// returned for convenience.
func AttachEmbeddings(ctx context.Context, p Provider, messages []schema.ConversationMessage) ([]schema.ConversationMessage, error) {
	if p == nil {
		return messages, nil
	}
	var texts []string
	var missing []int
	for i, msg := range messages {
		if len(msg.Embedding) == 0 && msg.Content != "" {
			texts = append(texts, msg.Content)
			missing = append(missing, i)
		}
	}
	if len(texts) == 0 {
		return messages, nil
	}
	vectors, err := p.Embed(ctx, texts)
	if err != nil {
		return messages, fmt.Errorf("embed history: %w", err)
	}
	if len(vectors) != len(texts) {
		return messages, fmt.Errorf("embed history: got %d vectors for %d texts", len(vectors), len(texts))
	}
	for n, i := range missing {
		messages[i].Embedding = vectors[n]
	}
	return messages, nil
}
