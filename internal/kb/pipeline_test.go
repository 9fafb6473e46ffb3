package kb

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/variphi/kbseed/internal/chroma"
	"github.com/variphi/kbseed/internal/embed"
)

// fakeStore is an in-memory Store. Query ranks stored vectors by cosine
// distance, so retrieval behaves like the real server.
type fakeStore struct {
	nextID      int
	collections map[string]*fakeCollection

	heartbeatErr error
	createErr    error
	addErr       error
	queryErr     error

	deleted []string
}

type fakeCollection struct {
	id         string
	metadata   map[string]any
	ids        []string
	embeddings [][]float32
}

func newFakeStore() *fakeStore {
	return &fakeStore{collections: make(map[string]*fakeCollection)}
}

func (s *fakeStore) Heartbeat(context.Context) error { return s.heartbeatErr }

func (s *fakeStore) GetCollection(_ context.Context, name string) (*chroma.Collection, error) {
	col, ok := s.collections[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", chroma.ErrNotFound, name)
	}
	return &chroma.Collection{ID: col.id, Name: name}, nil
}

func (s *fakeStore) DeleteCollection(_ context.Context, name string) error {
	if _, ok := s.collections[name]; !ok {
		return fmt.Errorf("collection %s does not exist", name)
	}
	delete(s.collections, name)
	s.deleted = append(s.deleted, name)
	return nil
}

func (s *fakeStore) CreateCollection(_ context.Context, name string, metadata map[string]any) (*chroma.Collection, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if _, ok := s.collections[name]; ok {
		return nil, fmt.Errorf("collection %s already exists", name)
	}
	s.nextID++
	col := &fakeCollection{id: fmt.Sprintf("col-%d", s.nextID), metadata: metadata}
	s.collections[name] = col
	return &chroma.Collection{ID: col.id, Name: name}, nil
}

func (s *fakeStore) byID(id string) *fakeCollection {
	for _, col := range s.collections {
		if col.id == id {
			return col
		}
	}
	return nil
}

func (s *fakeStore) Add(_ context.Context, collectionID string, req chroma.AddRequest) error {
	if s.addErr != nil {
		return s.addErr
	}
	col := s.byID(collectionID)
	if col == nil {
		return fmt.Errorf("unknown collection id %s", collectionID)
	}
	col.ids = append(col.ids, req.IDs...)
	col.embeddings = append(col.embeddings, req.Embeddings...)
	return nil
}

func (s *fakeStore) Count(_ context.Context, collectionID string) (int, error) {
	col := s.byID(collectionID)
	if col == nil {
		return 0, fmt.Errorf("unknown collection id %s", collectionID)
	}
	return len(col.ids), nil
}

func (s *fakeStore) Query(_ context.Context, collectionID string, req chroma.QueryRequest) (*chroma.QueryResponse, error) {
	if s.queryErr != nil {
		return nil, s.queryErr
	}
	col := s.byID(collectionID)
	if col == nil {
		return nil, fmt.Errorf("unknown collection id %s", collectionID)
	}

	type hit struct {
		id       string
		distance float32
	}
	hits := make([]hit, len(col.ids))
	for i := range col.ids {
		hits[i] = hit{id: col.ids[i], distance: cosineDistance(req.QueryEmbeddings[0], col.embeddings[i])}
	}
	sort.Slice(hits, func(a, b int) bool { return hits[a].distance < hits[b].distance })

	n := req.NResults
	if n > len(hits) {
		n = len(hits)
	}
	resp := &chroma.QueryResponse{IDs: [][]string{{}}, Distances: [][]float32{{}}}
	for _, h := range hits[:n] {
		resp.IDs[0] = append(resp.IDs[0], h.id)
		resp.Distances[0] = append(resp.Distances[0], h.distance)
	}
	return resp, nil
}

func cosineDistance(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return float32(1 - dot/(math.Sqrt(na)*math.Sqrt(nb)))
}

// stubEmbedder assigns each distinct text its own basis vector, except for
// aliases, which reuse another text's vector. Aliasing a probe to a document
// makes that document the deterministic nearest neighbor.
type stubEmbedder struct {
	dim     int
	next    int
	vectors map[string][]float32
	aliases map[string]string
	err     error
}

func newStubEmbedder(dim int) *stubEmbedder {
	return &stubEmbedder{
		dim:     dim,
		vectors: make(map[string][]float32),
		aliases: make(map[string]string),
	}
}

func (s *stubEmbedder) Name() string { return "stub" }

func (s *stubEmbedder) vectorFor(text string) []float32 {
	if target, ok := s.aliases[text]; ok {
		text = target
	}
	if vec, ok := s.vectors[text]; ok {
		return vec
	}
	vec := make([]float32, s.dim)
	vec[s.next%s.dim] = 1
	s.next++
	s.vectors[text] = vec
	return vec
}

func (s *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = s.vectorFor(text)
	}
	return out, nil
}

func (s *stubEmbedder) EmbedQuery(ctx context.Context, texts []string) ([][]float32, error) {
	return s.EmbedBatch(ctx, texts)
}

var _ embed.Embedder = (*stubEmbedder)(nil)
var _ Store = (*fakeStore)(nil)

func testDataset() Dataset {
	return Dataset{
		Name:       "test",
		Collection: "test_docs",
		ProbeText:  "how do I stream video?",
		Documents: []Document{
			{ID: "doc_a", Text: "streaming setup guide", Metadata: map[string]string{"topic": "streaming"}},
			{ID: "doc_b", Text: "recording retention policy", Metadata: map[string]string{"topic": "recording"}},
			{ID: "doc_c", Text: "playback controls overview", Metadata: map[string]string{"topic": "playback"}},
		},
	}
}

func testDeps() (Deps, *fakeStore, *stubEmbedder) {
	store := newFakeStore()
	embedder := newStubEmbedder(8)
	return Deps{Store: store, Embedder: embedder}, store, embedder
}

func TestRunSeedsAllDocuments(t *testing.T) {
	deps, store, embedder := testDeps()
	ds := testDataset()
	embedder.aliases[ds.ProbeText] = "streaming setup guide"

	report, err := Run(context.Background(), deps, ds)
	require.NoError(t, err)
	assert.Equal(t, len(ds.Documents), report.Count)
	assert.Equal(t, len(ds.Documents), report.Inserted)
	assert.Empty(t, report.Warning)

	col := store.collections[ds.Collection]
	require.NotNil(t, col)
	assert.Equal(t, "cosine", col.metadata["hnsw:space"])
	assert.Equal(t, "stub", col.metadata["embedding_function"])
}

func TestRunProbeFindsAliasedDocument(t *testing.T) {
	deps, _, embedder := testDeps()
	ds := testDataset()
	embedder.aliases[ds.ProbeText] = "streaming setup guide"

	report, err := Run(context.Background(), deps, ds)
	require.NoError(t, err)
	require.NotEmpty(t, report.ProbeIDs)
	assert.Equal(t, "doc_a", report.ProbeIDs[0])
	assert.InDelta(t, 0, report.ProbeDistance, 1e-6)
}

func TestRunIsIdempotentByReplacement(t *testing.T) {
	deps, store, _ := testDeps()
	ds := testDataset()

	first, err := Run(context.Background(), deps, ds)
	require.NoError(t, err)
	second, err := Run(context.Background(), deps, ds)
	require.NoError(t, err)

	assert.Equal(t, first.Count, second.Count)
	assert.Equal(t, len(ds.Documents), second.Count, "reseeding must not double-insert")
	assert.Equal(t, []string{ds.Collection}, store.deleted, "second run replaces the collection")
}

func TestRunHeartbeatFailure(t *testing.T) {
	deps, store, _ := testDeps()
	store.heartbeatErr = errors.New("connection refused")

	_, err := Run(context.Background(), deps, testDataset())
	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Empty(t, store.collections, "no provisioning after a failed heartbeat")
}

func TestRunCreateFailure(t *testing.T) {
	deps, store, _ := testDeps()
	store.createErr = errors.New("disk full")

	_, err := Run(context.Background(), deps, testDataset())
	var provErr *ProvisionError
	require.ErrorAs(t, err, &provErr)
}

func TestRunAddFailure(t *testing.T) {
	deps, store, _ := testDeps()
	store.addErr = errors.New("payload too large")

	_, err := Run(context.Background(), deps, testDataset())
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestRunEmbedFailureIsLoadError(t *testing.T) {
	deps, _, embedder := testDeps()
	embedder.err = errors.New("backend down")

	_, err := Run(context.Background(), deps, testDataset())
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestRunVerificationFailureIsNonFatal(t *testing.T) {
	deps, store, _ := testDeps()
	store.queryErr = errors.New("query endpoint broken")

	report, err := Run(context.Background(), deps, testDataset())
	require.NoError(t, err, "verification is advisory")
	assert.NotEmpty(t, report.Warning)
	assert.Equal(t, len(testDataset().Documents), report.Count)
}

func TestRunInvalidDataset(t *testing.T) {
	deps, _, _ := testDeps()
	ds := testDataset()
	ds.Documents = append(ds.Documents, ds.Documents[0]) // duplicate id

	_, err := Run(context.Background(), deps, ds)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestEnsureCollectionFirstRun(t *testing.T) {
	_, store, embedder := testDeps()

	col, err := EnsureCollection(context.Background(), store, "fresh", embedder)
	require.NoError(t, err)
	assert.NotEmpty(t, col.ID)
	assert.Empty(t, store.deleted)
}

func TestEnsureCollectionReplacesExisting(t *testing.T) {
	_, store, embedder := testDeps()
	ctx := context.Background()

	first, err := EnsureCollection(ctx, store, "docs", embedder)
	require.NoError(t, err)
	second, err := EnsureCollection(ctx, store, "docs", embedder)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []string{"docs"}, store.deleted)
}
