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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/poiesic/chatindex"
	"github.com/poiesic/chatindex/ai"
	"github.com/poiesic/chatindex/summarize"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "chatindex",
		Usage: "Index chat transcripts for semantic search, knowledge graphs and summaries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to the index data directory",
				EnvVars: []string{"CHATINDEX_DATA"},
				Value:   "./chatindex-data",
			},
			&cli.StringFlag{
				Name:    "transcripts",
				Aliases: []string{"t"},
				Usage:   "Path to the raw transcript directory",
				EnvVars: []string{"CHATINDEX_TRANSCRIPTS"},
			},
			&cli.StringFlag{
				Name:    "ai-host",
				Usage:   "OpenAI-compatible service host URL for all AI services",
				EnvVars: []string{"CHATINDEX_AI_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				EnvVars: []string{"CHATINDEX_EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "extractor-model",
				Usage:   "Entity extraction model name",
				EnvVars: []string{"CHATINDEX_EXTRACTOR_MODEL"},
			},
			&cli.StringFlag{
				Name:    "generator-model",
				Usage:   "Text generation model name",
				EnvVars: []string{"CHATINDEX_GENERATOR_MODEL"},
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "index",
				Usage:     "Index a transcript file by chat ID",
				ArgsUsage: "CHAT_ID",
				Action:    indexCommand,
			},
			{
				Name:      "search",
				Usage:     "Search within a single chat",
				ArgsUsage: "CHAT_ID QUERY",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
				},
			},
			{
				Name:      "search-all",
				Usage:     "Search across every indexed chat",
				ArgsUsage: "QUERY",
				Action:    searchAllCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results per chat",
						Value:   5,
					},
				},
			},
			{
				Name:      "export-graph",
				Usage:     "Export a chat's knowledge graph for visualization",
				ArgsUsage: "CHAT_ID",
				Action:    exportGraphCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (json or cytoscape)",
						Value:   "json",
					},
				},
			},
			{
				Name:      "summarize",
				Usage:     "Summarize a transcript file by chat ID",
				ArgsUsage: "CHAT_ID",
				Action:    summarizeCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "type",
						Usage: "Summary type (gist or key_points)",
						Value: string(summarize.TypeGist),
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List indexed chat IDs",
				Action: listCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// setup loads environment defaults and configures logging before any
// command runs.
func setup(c *cli.Context) error {
	// A missing .env file is fine; environment variables still apply
	_ = godotenv.Load()
	return setupLogger(c)
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

// openIndex builds the Index from global flags.
func openIndex(c *cli.Context) (*chatindex.Index, error) {
	configOpts := []ai.ConfigOption{}
	if host := c.String("ai-host"); host != "" {
		configOpts = append(configOpts, ai.WithHost(host))
	}
	if model := c.String("embedding-model"); model != "" {
		configOpts = append(configOpts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("extractor-model"); model != "" {
		configOpts = append(configOpts, ai.WithExtractorModel(model))
	}
	if model := c.String("generator-model"); model != "" {
		configOpts = append(configOpts, ai.WithGeneratorModel(model))
	}

	config := ai.NewConfig(configOpts...)

	opts := []chatindex.IndexOption{chatindex.WithAIConfig(config)}
	if dir := c.String("transcripts"); dir != "" {
		opts = append(opts, chatindex.WithTranscriptDir(dir))
	}

	return chatindex.NewIndex(c.String("data"), opts...)
}

func indexCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: chatindex index CHAT_ID")
	}

	ix, err := openIndex(c)
	if err != nil {
		return err
	}
	defer ix.Close()

	chatID, err := ix.IndexChatFile(c.Context, c.Args().Get(0))
	if err != nil {
		return err
	}

	fmt.Printf("indexed chat %s\n", chatID)
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: chatindex search CHAT_ID QUERY")
	}

	ix, err := openIndex(c)
	if err != nil {
		return err
	}
	defer ix.Close()

	hits, err := ix.Search(c.Context, c.Args().Get(1), c.Args().Get(0), c.Int("top"))
	if err != nil {
		return err
	}

	return printJSON(hits)
}

func searchAllCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: chatindex search-all QUERY")
	}

	ix, err := openIndex(c)
	if err != nil {
		return err
	}
	defer ix.Close()

	results, err := ix.SearchAll(c.Context, c.Args().Get(0), c.Int("top"))
	if err != nil {
		return err
	}

	return printJSON(results)
}

func exportGraphCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: chatindex export-graph CHAT_ID")
	}

	ix, err := openIndex(c)
	if err != nil {
		return err
	}
	defer ix.Close()

	graph, err := ix.ExportGraph(c.Context, c.Args().Get(0), c.String("format"))
	if err != nil {
		return err
	}

	return printJSON(graph)
}

func summarizeCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: chatindex summarize CHAT_ID")
	}

	ix, err := openIndex(c)
	if err != nil {
		return err
	}
	defer ix.Close()

	summary, err := ix.SummarizeChat(c.Context, c.Args().Get(0), summarize.SummaryType(c.String("type")))
	if err != nil {
		return err
	}

	fmt.Println(summary)
	return nil
}

func listCommand(c *cli.Context) error {
	ix, err := openIndex(c)
	if err != nil {
		return err
	}
	defer ix.Close()

	chats, err := ix.ListChats(c.Context)
	if err != nil {
		return err
	}

	for _, chatID := range chats {
		fmt.Println(chatID)
	}
	return nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
