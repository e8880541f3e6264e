// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/retrievit"
	"github.com/poiesic/retrievit/ai"
	"github.com/poiesic/retrievit/ai/cache"
	"github.com/poiesic/retrievit/ai/openai"
	"github.com/poiesic/retrievit/chunk"
	"github.com/poiesic/retrievit/core"
	"github.com/poiesic/retrievit/source"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "retrievit",
		Usage: "Hybrid semantic and fuzzy search over a folder of documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "query",
				Usage:     "Index a document folder and answer queries against it",
				ArgsUsage: "[query...]",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "documents",
						Aliases:  []string{"d"},
						Usage:    "Path to the folder of .txt/.md documents to index",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "embeddinggemma",
					},
					&cli.IntFlag{
						Name:  "embedding-dimension",
						Usage: "Vector length the embedding model produces",
						Value: 768,
					},
					&cli.StringFlag{
						Name:  "api-key",
						Usage: "API key for the embedding host",
						Value: "none",
					},
					&cli.StringFlag{
						Name:  "embedding-cache",
						Usage: "Path to a persistent embedding cache directory (disabled when empty)",
					},
					&cli.IntFlag{
						Name:    "results",
						Aliases: []string{"k"},
						Usage:   "Number of results per search strategy",
						Value:   5,
					},
					&cli.IntFlag{
						Name:  "sentences",
						Usage: "Sentences per chunk",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "overlap",
						Usage: "Sentences shared between consecutive chunks",
						Value: 0,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per embedding call",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()

	strategy, err := chunk.NewSentence(c.Int("sentences"), c.Int("overlap"))
	if err != nil {
		return fmt.Errorf("invalid chunking configuration: %w", err)
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithEmbeddingDimension(c.Int("embedding-dimension")),
		ai.WithAPIKey(c.String("api-key")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	embedder, err = ai.WithRetry(embedder, c.Int("max-retries"), c.Duration("retry-delay"))
	if err != nil {
		return fmt.Errorf("invalid retry configuration: %w", err)
	}

	if cachePath := c.String("embedding-cache"); cachePath != "" {
		cached, err := cache.OpenBadgerCache(cachePath, embedder)
		if err != nil {
			return fmt.Errorf("failed to open embedding cache: %w", err)
		}
		defer cached.Close()
		embedder = cached
	}

	folder, err := source.NewFolder(c.String("documents"))
	if err != nil {
		return fmt.Errorf("failed to open document folder: %w", err)
	}

	database, err := retrievit.New(embedder, strategy)
	if err != nil {
		return fmt.Errorf("failed to create document database: %w", err)
	}
	defer database.Close()

	fuzzy, err := retrievit.NewFuzzySearchIndex(retrievit.WithStrategy(strategy))
	if err != nil {
		return fmt.Errorf("failed to create fuzzy index: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexing %s...\n", c.String("documents"))
	if err := database.ExtendSource(ctx, folder); err != nil {
		return fmt.Errorf("semantic indexing failed: %w", err)
	}
	if err := fuzzy.ExtendSource(ctx, folder); err != nil {
		return fmt.Errorf("fuzzy indexing failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Indexed %d chunks\n\n", database.Len())

	k := c.Int("results")

	if c.Args().Present() {
		return runQuery(ctx, database, fuzzy, strings.Join(c.Args().Slice(), " "), k)
	}

	// No query given: interactive loop until EOF.
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("query> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}

		if err := runQuery(ctx, database, fuzzy, query, k); err != nil {
			fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
		}
	}
}

func runQuery(ctx context.Context, database *retrievit.DocumentDatabase, fuzzy *retrievit.FuzzySearchIndex, query string, k int) error {
	semantic, err := database.Search(ctx, query, k)
	if err != nil {
		return err
	}

	fmt.Println("vector:")
	printResults(semantic)

	fmt.Println("fuzzy:")
	printResults(fuzzy.Search(query, k))

	return nil
}

func printResults(results []core.SearchResult) {
	if len(results) == 0 {
		fmt.Println("  (no results)")
		return
	}
	for _, hit := range results {
		fmt.Printf("  %d: %q [%0.3f]\n", hit.Rank, hit.Chunk.Text, hit.Score)
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
