package cache

import (
	"context"

	"github.com/variphi/kbseed/internal/embed"
	"github.com/variphi/kbseed/internal/hashutil"
	"github.com/variphi/kbseed/internal/logging"
)

// CachedEmbedder decorates an Embedder with an EmbeddingCache. Cache hits
// skip the backend; misses are embedded in one batch and written back.
// Cache errors degrade to misses so a flaky Redis never fails a run.
type CachedEmbedder struct {
	inner embed.Embedder
	cache EmbeddingCache
	model string
}

func NewCachedEmbedder(inner embed.Embedder, c EmbeddingCache, model string) *CachedEmbedder {
	return &CachedEmbedder{inner: inner, cache: c, model: model}
}

func (e *CachedEmbedder) Name() string { return e.inner.Name() }

func (e *CachedEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	missIdx := make([]int, 0, len(texts))
	missTexts := make([]string, 0, len(texts))

	for i, text := range texts {
		vec, ok, err := e.cache.Get(ctx, e.key(text))
		if err != nil {
			logging.Warnf("embedding cache get: %v", err)
		}
		if ok {
			out[i] = vec
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	if len(missTexts) > 0 {
		vecs, err := e.inner.EmbedBatch(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		for j, vec := range vecs {
			out[missIdx[j]] = vec
			if err := e.cache.Set(ctx, e.key(missTexts[j]), vec); err != nil {
				logging.Warnf("embedding cache set: %v", err)
			}
		}
	}

	return out, nil
}

// EmbedQuery is never cached: probe queries are one-off and caching them
// would only age out document entries sooner.
func (e *CachedEmbedder) EmbedQuery(ctx context.Context, texts []string) ([][]float32, error) {
	return e.inner.EmbedQuery(ctx, texts)
}

func (e *CachedEmbedder) key(text string) string {
	return hashutil.HashStrings(e.model, text)
}
