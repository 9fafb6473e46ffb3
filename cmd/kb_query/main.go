package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/variphi/kbseed/internal/chroma"
	"github.com/variphi/kbseed/internal/embed"
)

func main() {
	godotenv.Load()
	collection := flag.String("collection", "", "Collection name to query")
	query := flag.String("q", "", "Query text")
	topK := flag.Int("k", 3, "Number of results to return")
	flag.Parse()

	if *collection == "" || *query == "" {
		log.Fatal("usage: kb_query -collection <name> -q <text> [-k <n>]")
	}

	embedder, err := embed.New(embed.Config{
		APIKey:    os.Getenv("OPENROUTER_API_KEY"),
		BaseURL:   os.Getenv("OPENROUTER_BASE_URL"),
		Model:     os.Getenv("EMBEDDINGS_MODEL"),
		ForceREST: os.Getenv("EMBEDDINGS_CLIENT") == "rest",
	})
	if err != nil {
		log.Fatalf("embedder: %v", err)
	}

	client := chroma.NewClient(os.Getenv("CHROMA_URL"))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := client.Heartbeat(ctx); err != nil {
		log.Fatalf("chroma unreachable: %v", err)
	}

	col, err := client.GetCollection(ctx, *collection)
	if err != nil {
		log.Fatalf("get collection %s: %v", *collection, err)
	}

	vecs, err := embedder.EmbedQuery(ctx, []string{*query})
	if err != nil {
		log.Fatalf("embed query: %v", err)
	}

	resp, err := client.Query(ctx, col.ID, chroma.QueryRequest{
		QueryEmbeddings: vecs,
		NResults:        *topK,
		Include:         []string{"documents", "metadatas", "distances"},
	})
	if err != nil {
		log.Fatalf("query failed: %v", err)
	}

	if len(resp.IDs) == 0 || len(resp.IDs[0]) == 0 {
		fmt.Println("No results.")
		return
	}

	fmt.Printf("Top %d matches in %s for %q:\n\n", len(resp.IDs[0]), *collection, *query)
	for i := range resp.IDs[0] {
		fmt.Printf("[%d] Distance: %.4f | ID: %s\n", i+1, resp.Distances[0][i], resp.IDs[0][i])
		fmt.Printf("    %s\n\n", snippet(resp.Documents[0][i], 160))
	}
}

func snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
