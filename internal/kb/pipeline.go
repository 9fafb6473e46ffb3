package kb

import (
	"context"
	"errors"
	"fmt"

	"github.com/variphi/kbseed/internal/chroma"
	"github.com/variphi/kbseed/internal/embed"
	"github.com/variphi/kbseed/internal/logging"
)

// Store is the slice of the Chroma client the pipeline uses.
type Store interface {
	Heartbeat(ctx context.Context) error
	GetCollection(ctx context.Context, name string) (*chroma.Collection, error)
	DeleteCollection(ctx context.Context, name string) error
	CreateCollection(ctx context.Context, name string, metadata map[string]any) (*chroma.Collection, error)
	Add(ctx context.Context, collectionID string, req chroma.AddRequest) error
	Count(ctx context.Context, collectionID string) (int, error)
	Query(ctx context.Context, collectionID string, req chroma.QueryRequest) (*chroma.QueryResponse, error)
}

// Deps carries the pipeline's collaborators.
type Deps struct {
	Store    Store
	Embedder embed.Embedder
}

// Report summarizes a completed run. Warning holds a non-fatal verification
// problem; an empty Warning means the probe query succeeded.
type Report struct {
	Collection    string
	Inserted      int
	Count         int
	ProbeIDs      []string
	ProbeDistance float32
	Warning       string
}

// Run seeds one dataset: liveness check, delete-then-recreate of the
// collection, one batched insert, then an advisory probe query. Steps run
// strictly in order and the first failure aborts the run.
//
// Two concurrent runs against the same collection name race on the
// delete-then-create step; the later creator wins. The tool is a one-shot
// seeder, so no locking is provided.
func Run(ctx context.Context, deps Deps, ds Dataset) (*Report, error) {
	if err := ds.Validate(); err != nil {
		return nil, &ConfigError{Cause: err}
	}

	if err := deps.Store.Heartbeat(ctx); err != nil {
		return nil, &ConnectionError{Cause: err}
	}
	logging.Infof("[seed-%s] chroma is up", ds.Name)

	col, err := EnsureCollection(ctx, deps.Store, ds.Collection, deps.Embedder)
	if err != nil {
		return nil, err
	}

	inserted, err := Load(ctx, deps, col, ds)
	if err != nil {
		return nil, err
	}
	logging.Infof("[seed-%s] inserted %d documents into %s", ds.Name, inserted, ds.Collection)

	report := &Report{Collection: ds.Collection, Inserted: inserted}
	Verify(ctx, deps, col, ds, report)
	return report, nil
}

// EnsureCollection makes the named collection exist with the given embedder
// configuration. An existing collection is deleted and recreated rather than
// reused: vectors written under a different embedding configuration are not
// comparable, and merging would corrupt similarity search silently.
func EnsureCollection(ctx context.Context, store Store, name string, embedder embed.Embedder) (*chroma.Collection, error) {
	existing, err := store.GetCollection(ctx, name)
	switch {
	case err == nil:
		count, countErr := store.Count(ctx, existing.ID)
		if countErr != nil {
			logging.Debugf("count of existing %s failed: %v", name, countErr)
		} else {
			logging.Infof("collection %s already exists with %d documents, recreating", name, count)
		}
		if err := store.DeleteCollection(ctx, name); err != nil {
			return nil, &ProvisionError{Collection: name, Cause: fmt.Errorf("delete existing: %w", err)}
		}
	case errors.Is(err, chroma.ErrNotFound):
		logging.Infof("collection %s not found, creating", name)
	default:
		return nil, &ProvisionError{Collection: name, Cause: err}
	}

	col, err := store.CreateCollection(ctx, name, map[string]any{
		"hnsw:space":         "cosine",
		"embedding_function": embedder.Name(),
	})
	if err != nil {
		return nil, &ProvisionError{Collection: name, Cause: err}
	}
	return col, nil
}

// Load embeds every document text in one batch and inserts ids, texts,
// metadata and vectors with a single Add call. The four arrays stay
// positionally aligned by construction.
func Load(ctx context.Context, deps Deps, col *chroma.Collection, ds Dataset) (int, error) {
	ids := make([]string, len(ds.Documents))
	texts := make([]string, len(ds.Documents))
	metadatas := make([]map[string]any, len(ds.Documents))
	for i, doc := range ds.Documents {
		ids[i] = doc.ID
		texts[i] = doc.Text
		meta := make(map[string]any, len(doc.Metadata))
		for k, v := range doc.Metadata {
			meta[k] = v
		}
		metadatas[i] = meta
	}

	embeddings, err := deps.Embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, &LoadError{Collection: ds.Collection, Cause: err}
	}
	if len(embeddings) != len(ids) {
		return 0, &LoadError{
			Collection: ds.Collection,
			Cause:      fmt.Errorf("embedder returned %d vectors for %d documents", len(embeddings), len(ids)),
		}
	}

	req := chroma.AddRequest{
		IDs:        ids,
		Documents:  texts,
		Metadatas:  metadatas,
		Embeddings: embeddings,
	}
	if err := deps.Store.Add(ctx, col.ID, req); err != nil {
		return 0, &LoadError{Collection: ds.Collection, Cause: err}
	}
	return len(ids), nil
}

// Verify re-reads the document count and issues one probe query. It is
// advisory: problems land on report.Warning and the insert stands.
func Verify(ctx context.Context, deps Deps, col *chroma.Collection, ds Dataset, report *Report) {
	count, err := deps.Store.Count(ctx, col.ID)
	if err != nil {
		report.Warning = fmt.Sprintf("count failed: %v", err)
		logging.Warnf("[seed-%s] %s", ds.Name, report.Warning)
		return
	}
	report.Count = count

	if ds.ProbeText == "" {
		return
	}
	vecs, err := deps.Embedder.EmbedQuery(ctx, []string{ds.ProbeText})
	if err != nil {
		report.Warning = fmt.Sprintf("probe embedding failed: %v", err)
		logging.Warnf("[seed-%s] %s", ds.Name, report.Warning)
		return
	}
	resp, err := deps.Store.Query(ctx, col.ID, chroma.QueryRequest{
		QueryEmbeddings: vecs,
		NResults:        1,
		Include:         []string{"distances"},
	})
	if err != nil {
		report.Warning = fmt.Sprintf("probe query failed: %v", err)
		logging.Warnf("[seed-%s] %s", ds.Name, report.Warning)
		return
	}
	if len(resp.IDs) == 0 || len(resp.IDs[0]) == 0 {
		report.Warning = "probe query returned no results"
		logging.Warnf("[seed-%s] %s", ds.Name, report.Warning)
		return
	}
	report.ProbeIDs = resp.IDs[0]
	if len(resp.Distances) > 0 && len(resp.Distances[0]) > 0 {
		report.ProbeDistance = resp.Distances[0][0]
	}
	logging.Infof("[seed-%s] probe %q -> %s (distance %.4f)",
		ds.Name, ds.ProbeText, report.ProbeIDs[0], report.ProbeDistance)
}
