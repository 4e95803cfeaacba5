package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"crec-parser-go/internal/aggregator"
	"crec-parser-go/internal/config"
	"crec-parser-go/internal/logger"
	"crec-parser-go/internal/patterns"
	"crec-parser-go/internal/pipeline"
	"crec-parser-go/internal/source"
	"github.com/spf13/cobra"
)

type parseResult struct {
	Path string            `json:"path"`
	Doc  pipeline.Document `json:"document"`
	Err  error             `json:"-"`
}

func newParseCmd() *cobra.Command {
	var (
		format  string
		outDir  string
		workers int
		summary bool
	)
	cmd := &cobra.Command{
		Use:   "parse FILE|URL...",
		Short: "Parse record files or URLs (plain text or GovInfo HTML) into JSON documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Workers = workers
			}
			log := logger.New().WithComponent("crparse")
			asm, err := pipeline.FromConfig(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return fmt.Errorf("create output dir: %w", err)
				}
			}

			results := parseFiles(cmd.Context(), asm, cfg, args, format)

			failed := 0
			var sums []aggregator.Summary
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			for _, res := range results {
				if res.Err != nil {
					failed++
					log.WithError(res.Err).WithField("path", res.Path).Error("parse failed")
					continue
				}
				sums = append(sums, res.Doc.Summary)
				if outDir == "" {
					if err := enc.Encode(res); err != nil {
						return err
					}
					continue
				}
				if err := writeJSON(outPath(outDir, res.Path), res.Doc); err != nil {
					failed++
					log.WithError(err).WithField("path", res.Path).Error("write failed")
				}
			}
			if summary {
				if err := enc.Encode(aggregator.Merge(sums...)); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "input format: text or html (default: by file extension)")
	cmd.Flags().StringVar(&outDir, "out", "", "write one JSON file per input into this directory")
	cmd.Flags().IntVar(&workers, "workers", 0, "files parsed concurrently (default from config)")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a combined summary after the documents")
	cmd.Flags().String("patterns", "", "pattern table YAML (default: built-in table)")
	cmd.Flags().String("speakers", "", "speaker directory (.json or .xlsx)")
	return cmd
}

// parseFiles assembles each input on its own goroutine, at most cfg.Workers
// at a time. Results come back in argument order.
func parseFiles(ctx context.Context, asm *pipeline.Assembler, cfg config.Config, paths []string, format string) []parseResult {
	results := make([]parseResult, len(paths))
	sem := make(chan struct{}, cfg.Workers)
	var wg sync.WaitGroup
	for i, p := range paths {
		wg.Add(1)
		go func(i int, p string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			doc, err := parseFile(ctx, asm, p, inputFormat(p, format), cfg)
			results[i] = parseResult{Path: p, Doc: doc, Err: err}
		}(i, p)
	}
	wg.Wait()
	return results
}

func parseFile(ctx context.Context, asm *pipeline.Assembler, in, format string, cfg config.Config) (pipeline.Document, error) {
	var (
		lines source.Lines
		err   error
	)
	switch {
	case isURL(in):
		if lines, err = source.FetchLines(ctx, in, format == config.FormatHTML); err != nil {
			return pipeline.Document{}, err
		}
	default:
		f, openErr := os.Open(in)
		if openErr != nil {
			return pipeline.Document{}, fmt.Errorf("open: %w", openErr)
		}
		defer f.Close()
		if format == config.FormatHTML {
			if lines, err = source.FromHTML(f); err != nil {
				return pipeline.Document{}, err
			}
		} else {
			lines = source.FromReader(f)
		}
	}
	return asm.AssembleWithTimeout(ctx, lines, cfg.DocumentTimeout)
}

func isURL(in string) bool {
	return strings.HasPrefix(in, "http://") || strings.HasPrefix(in, "https://")
}

// inputPath is the file path of in, or the path part of a URL.
func inputPath(in string) string {
	if isURL(in) {
		if u, err := url.Parse(in); err == nil {
			return u.Path
		}
	}
	return in
}

func inputFormat(in, flag string) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	switch strings.ToLower(filepath.Ext(inputPath(in))) {
	case ".htm", ".html":
		return config.FormatHTML
	default:
		return config.FormatText
	}
}

func outPath(dir, in string) string {
	p := inputPath(in)
	base := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	return filepath.Join(dir, base+".json")
}

func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func newKindsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the pattern table's item kinds in precedence order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			tbl, err := patterns.LoadOrDefault(cfg.PatternsFile)
			if err != nil {
				return err
			}
			for i, r := range tbl.Rules() {
				mode := fmt.Sprintf("literal %q", r.Speaker)
				if r.CaptureSpeaker {
					mode = "captured group " + r.SpeakerGroup
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%d patterns\t%s\n", i+1, r.Kind, r.PatternCount(), mode)
			}
			return nil
		},
	}
	cmd.Flags().String("patterns", "", "pattern table YAML (default: built-in table)")
	return cmd
}
