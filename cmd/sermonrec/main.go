// Copyright 2025 Lampstand Labs
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
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	sermonrec "github.com/lampstand/sermonrec"
	"github.com/lampstand/sermonrec/config"
	"github.com/lampstand/sermonrec/core"
	"github.com/lampstand/sermonrec/recommend"
)

func main() {
	app := &cli.App{
		Name:  "sermonrec",
		Usage: "Sermon recommendation engine operations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Ingest sermon material files into the store and index",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "materials",
						Aliases: []string{"m"},
						Usage:   "Directory of material .txt files (default from MATERIALS_PATH)",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Run retrieval only and dump the raw candidates",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of candidates to retrieve",
						Value: config.DefaultTopK,
					},
				},
			},
			{
				Name:      "recommend",
				Usage:     "Run the full recommendation pipeline for a topic",
				ArgsUsage: "<topic>",
				Action:    recommendCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "count",
						Aliases: []string{"n"},
						Usage:   "Number of sermons to recommend",
						Value:   config.DefaultRecommendationCount,
					},
				},
			},
			{
				Name:   "reindex",
				Usage:  "Rebuild the vector index from the content store",
				Action: reindexCommand,
			},
			{
				Name:   "stats",
				Usage:  "Show sermon counts, total and per channel",
				Action: statsCommand,
			},
			{
				Name:   "clear",
				Usage:  "Delete every sermon from the store and the index",
				Action: clearCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Confirm the deletion",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openAdvisor loads the environment configuration and wires the full stack.
func openAdvisor() (*sermonrec.Advisor, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	advisor, err := sermonrec.NewAdvisor(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open advisor: %w", err)
	}
	return advisor, cfg, nil
}

func ingestCommand(c *cli.Context) error {
	advisor, cfg, err := openAdvisor()
	if err != nil {
		return err
	}
	defer advisor.Close()

	dir := c.String("materials")
	if dir == "" {
		dir = cfg.MaterialsPath
	}

	pipeline, err := advisor.NewPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	loader, err := advisor.NewMaterialsLoader(dir, pipeline)
	if err != nil {
		return fmt.Errorf("failed to create loader: %w", err)
	}

	stats, err := loader.LoadAll(context.Background())
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("Scanned:  %d\n", stats.Scanned)
	fmt.Printf("Ingested: %d\n", stats.Ingested)
	fmt.Printf("Skipped:  %d\n", stats.Skipped)
	fmt.Printf("Failed:   %d\n", stats.Failed)
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	advisor, _, err := openAdvisor()
	if err != nil {
		return err
	}
	defer advisor.Close()

	retriever, err := recommend.NewRetriever(
		advisor.Provider().Embedder(), advisor.Index(), c.Int("top"), nil)
	if err != nil {
		return fmt.Errorf("failed to create retriever: %w", err)
	}

	hits := retriever.Retrieve(context.Background(), query)
	if len(hits) == 0 {
		fmt.Println("No candidates found.")
		return nil
	}

	for i, hit := range hits {
		fmt.Printf("%2d. [%.3f] %s\n    %s\n", i+1, hit.Similarity, hit.Sermon.Title, hit.Sermon.MessageLink)
	}
	return nil
}

func recommendCommand(c *cli.Context) error {
	topic := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if topic == "" {
		return fmt.Errorf("topic is required")
	}

	advisor, _, err := openAdvisor()
	if err != nil {
		return err
	}
	defer advisor.Close()

	hits, err := advisor.Engine().Recommend(context.Background(), 0, topic, c.Int("count"))
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	for i, hit := range hits {
		fmt.Printf("%d. %s\n", i+1, hit.Sermon.Title)
		if hit.Sermon.Theme != "" {
			fmt.Printf("   Theme: %s\n", hit.Sermon.Theme)
		}
		fmt.Printf("   %s\n", hit.Sermon.MessageLink)
	}
	return nil
}

func reindexCommand(c *cli.Context) error {
	advisor, _, err := openAdvisor()
	if err != nil {
		return err
	}
	defer advisor.Close()

	pipeline, err := advisor.NewPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	count, err := pipeline.Reindex(context.Background())
	if err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}

	fmt.Printf("Reindexed %d sermons.\n", count)
	return nil
}

func statsCommand(c *cli.Context) error {
	advisor, _, err := openAdvisor()
	if err != nil {
		return err
	}
	defer advisor.Close()
	ctx := context.Background()

	total, err := advisor.Store().CountSermons(ctx)
	if err != nil {
		return fmt.Errorf("failed to count sermons: %w", err)
	}

	indexed, err := advisor.Index().Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count index entries: %w", err)
	}

	sermons, err := advisor.Store().ListSermons(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sermons: %w", err)
	}

	fmt.Printf("Sermons stored:  %d\n", total)
	fmt.Printf("Sermons indexed: %d\n", indexed)
	fmt.Println("\nBy channel:")
	for _, line := range channelCounts(sermons) {
		fmt.Println("  " + line)
	}
	return nil
}

func clearCommand(c *cli.Context) error {
	if !c.Bool("yes") {
		return fmt.Errorf("refusing to delete everything without --yes")
	}

	advisor, _, err := openAdvisor()
	if err != nil {
		return err
	}
	defer advisor.Close()
	ctx := context.Background()

	if err := advisor.Store().DeleteAllSermons(ctx); err != nil {
		return fmt.Errorf("failed to clear store: %w", err)
	}
	if err := advisor.Index().Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}

	fmt.Println("Store and index cleared.")
	return nil
}

// channelCounts renders per-channel sermon counts, largest first.
func channelCounts(sermons []*core.Sermon) []string {
	counts := make(map[string]int)
	for _, s := range sermons {
		counts[s.Channel]++
	}

	channels := make([]string, 0, len(counts))
	for channel := range counts {
		channels = append(channels, channel)
	}
	sort.Slice(channels, func(i, j int) bool {
		if counts[channels[i]] != counts[channels[j]] {
			return counts[channels[i]] > counts[channels[j]]
		}
		return channels[i] < channels[j]
	})

	lines := make([]string, len(channels))
	for i, channel := range channels {
		lines[i] = fmt.Sprintf("%-20s %d", channel, counts[channel])
	}
	return lines
}

func setupLogger(c *cli.Context) error {
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
