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
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/filedrop/compose"
	"github.com/poiesic/filedrop/core"
	"github.com/poiesic/filedrop/ingestion"
	"github.com/tmc/langchaingo/llms"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "filedrop",
		Usage: "Attach files to an outgoing chat message",
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
				Name:      "attach",
				Usage:     "Validate, classify and load files, then print the resulting entries",
				ArgsUsage: "FILE [FILE...]",
				Action:    attachCommand,
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:  "max-file-size",
						Usage: "Per-file size limit in bytes",
						Value: ingestion.DefaultMaxFileSize,
					},
					&cli.IntFlag{
						Name:  "max-files",
						Usage: "Maximum number of files accepted",
						Value: ingestion.DefaultMaxFiles,
					},
					&cli.StringSliceFlag{
						Name:    "accept",
						Aliases: []string{"a"},
						Usage:   "Accepted file extension (repeatable); empty accepts everything",
					},
					&cli.StringFlag{
						Name:  "policy",
						Usage: "Path to a YAML policy file (flags override its values)",
					},
					&cli.BoolFlag{
						Name:  "compose",
						Usage: "Print the composed message built from completed entries",
					},
					&cli.StringFlag{
						Name:  "prompt",
						Usage: "Prompt text appended after the attachments when composing",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func attachCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file argument is required")
	}

	opts, err := pipelineOptions(c)
	if err != nil {
		return err
	}

	rejections := 0
	opts = append(opts, ingestion.WithErrorSink(func(message string) {
		rejections++
		fmt.Fprintf(os.Stderr, "rejected: %s\n", message)
	}))

	pipeline, err := ingestion.NewPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	batch := make([]core.FileDescriptor, 0, c.NArg())
	for _, path := range c.Args().Slice() {
		fd, err := describeFile(path)
		if err != nil {
			return err
		}
		batch = append(batch, fd)
	}

	if filter := pipeline.AcceptFilter(); filter != "" {
		slog.Debug("accepting", "filter", filter)
	}

	pipeline.AddFiles(context.Background(), batch)
	pipeline.Wait()

	printEntries(pipeline.Snapshot())

	if c.Bool("compose") {
		message, err := compose.Message(c.String("prompt"), pipeline.CompletedFiles())
		if err != nil {
			return fmt.Errorf("compose failed: %w", err)
		}
		printMessage(message)
	}

	if rejections > 0 {
		return fmt.Errorf("%d file(s) rejected", rejections)
	}
	return nil
}

func pipelineOptions(c *cli.Context) ([]ingestion.Option, error) {
	var opts []ingestion.Option

	if path := c.String("policy"); path != "" {
		policy, err := loadPolicy(path)
		if err != nil {
			return nil, err
		}
		if policy.MaxFileSize > 0 {
			opts = append(opts, ingestion.WithMaxFileSize(policy.MaxFileSize))
		}
		if policy.MaxFiles > 0 {
			opts = append(opts, ingestion.WithMaxFiles(policy.MaxFiles))
		}
		if len(policy.AcceptedFileTypes) > 0 {
			opts = append(opts, ingestion.WithAcceptedTypes(policy.AcceptedFileTypes...))
		}
	}

	// Flags override the policy file.
	if c.IsSet("max-file-size") {
		opts = append(opts, ingestion.WithMaxFileSize(c.Int64("max-file-size")))
	}
	if c.IsSet("max-files") {
		opts = append(opts, ingestion.WithMaxFiles(c.Int("max-files")))
	}
	if accept := c.StringSlice("accept"); len(accept) > 0 {
		opts = append(opts, ingestion.WithAcceptedTypes(accept...))
	}

	return opts, nil
}

// describeFile builds a descriptor for a file on disk, sniffing the MIME
// type from the extension where possible.
func describeFile(path string) (core.FileDescriptor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return core.FileDescriptor{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return core.FileDescriptor{}, fmt.Errorf("%s is a directory", path)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	return core.FileDescriptor{
		Name:     filepath.Base(path),
		Size:     info.Size(),
		MIMEType: mimeType,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

func printEntries(entries []core.Entry) {
	for _, entry := range entries {
		short := entry.Checksum
		if len(short) > 12 {
			short = short[:12]
		}
		fmt.Printf("%-10s %-12s %-8s %8d  %s", entry.Status, entry.Language, entry.Kind, entry.Size, entry.Name)
		if short != "" {
			fmt.Printf("  %s", short)
		}
		if entry.Error != "" {
			fmt.Printf("  (%s)", entry.Error)
		}
		fmt.Println()
	}
}

func printMessage(message llms.MessageContent) {
	fmt.Println("--- composed message ---")
	for _, part := range message.Parts {
		switch v := part.(type) {
		case llms.TextContent:
			fmt.Println(v.Text)
		case llms.BinaryContent:
			fmt.Printf("[binary attachment: %s, %d bytes]\n", v.MIMEType, len(v.Data))
		}
	}
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
