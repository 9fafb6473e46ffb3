// Package seedcli is the shared body of the seeding commands. The commands
// differ only in the dataset they pass in.
package seedcli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/variphi/kbseed/internal/announce"
	"github.com/variphi/kbseed/internal/cache"
	"github.com/variphi/kbseed/internal/chroma"
	"github.com/variphi/kbseed/internal/embed"
	"github.com/variphi/kbseed/internal/history"
	"github.com/variphi/kbseed/internal/kb"
	"github.com/variphi/kbseed/internal/logging"
)

const runTimeout = 2 * time.Minute

// Run seeds one dataset and returns the process exit code: 0 on success
// (verification warnings included), 1 on any fatal pipeline error.
func Run(ds kb.Dataset) int {
	if err := godotenv.Load(); err != nil {
		logging.Debugf("no .env file loaded: %v", err)
	}
	logging.InitFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	embedder, err := buildEmbedder()
	if err != nil {
		logging.Errorf("[seed-%s] %v", ds.Name, &kb.ConfigError{Cause: err})
		return 1
	}

	store := chroma.NewClient(os.Getenv("CHROMA_URL"))

	start := time.Now()
	report, err := kb.Run(ctx, kb.Deps{Store: store, Embedder: embedder}, ds)
	if err != nil {
		logging.Errorf("[seed-%s] %v", ds.Name, err)
		var connErr *kb.ConnectionError
		if errors.As(err, &connErr) {
			logging.Errorf("start ChromaDB first: docker compose up -d chromadb")
			logging.Errorf("or: docker run -d -p 8000:8000 chromadb/chroma:latest")
		}
		recordRun(ds, history.Run{
			Dataset:    ds.Name,
			Collection: ds.Collection,
			Status:     "failed",
			Warning:    err.Error(),
			Duration:   time.Since(start),
		})
		return 1
	}

	status := "ok"
	if report.Warning != "" {
		status = "warning"
	}
	recordRun(ds, history.Run{
		Dataset:    ds.Name,
		Collection: ds.Collection,
		Count:      report.Count,
		Status:     status,
		Warning:    report.Warning,
		Duration:   time.Since(start),
	})
	announceReseed(ctx, ds, report)

	fmt.Printf("seeded %s: %d documents in %s\n", ds.Collection, report.Count, time.Since(start).Round(time.Millisecond))
	return 0
}

func buildEmbedder() (embed.Embedder, error) {
	embedder, err := embed.New(embed.Config{
		APIKey:    os.Getenv("OPENROUTER_API_KEY"),
		BaseURL:   os.Getenv("OPENROUTER_BASE_URL"),
		Model:     os.Getenv("EMBEDDINGS_MODEL"),
		ForceREST: os.Getenv("EMBEDDINGS_CLIENT") == "rest",
	})
	if err != nil {
		return nil, err
	}

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return embedder, nil
	}
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	emcache, err := cache.NewRedisEmbeddingCache(addr, os.Getenv("REDIS_PASSWORD"), db, 0, "")
	if err != nil {
		logging.Warnf("embedding cache disabled: %v", err)
		return embedder, nil
	}
	model := getenv("EMBEDDINGS_MODEL", "text-embedding-3-small")
	return cache.NewCachedEmbedder(embedder, emcache, model), nil
}

func recordRun(ds kb.Dataset, run history.Run) {
	if os.Getenv("KBSEED_HISTORY") == "off" {
		return
	}
	ledger, err := history.Open(os.Getenv("KBSEED_DB"))
	if err != nil {
		logging.Warnf("[seed-%s] open run ledger: %v", ds.Name, err)
		return
	}
	defer ledger.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ledger.RecordRun(ctx, run); err != nil {
		logging.Warnf("[seed-%s] record run: %v", ds.Name, err)
	}
}

func announceReseed(ctx context.Context, ds kb.Dataset, report *kb.Report) {
	brokers := announce.Brokers()
	if len(brokers) == 0 {
		return
	}
	pub := announce.NewPublisher(brokers, os.Getenv("KB_KAFKA_TOPIC"))
	defer pub.Close()

	pubCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	err := pub.PublishReseed(pubCtx, announce.Event{
		Dataset:    ds.Name,
		Collection: ds.Collection,
		Count:      report.Count,
	})
	if err != nil {
		logging.Warnf("[seed-%s] announce reseed: %v", ds.Name, err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
