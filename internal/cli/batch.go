package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/clinstack/coref/internal/pipeline"
	"github.com/clinstack/coref/internal/worker"
	"github.com/spf13/cobra"
)

var concurrency int

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list_file>",
	Short: "Resolve multiple CoNLL documents in parallel",
	Long: `Batch resolves multiple documents concurrently:
- Read input file paths from a list file (one per line)
- Resolve documents in parallel with configurable worker count
- Each document is an independent run with its own cluster state
- Output goes next to each input as <input>.coref

Documents sharing a parse directory reuse cached parse trees.

Example:
  coref batch documents.txt
  coref batch documents.txt --concurrency 8 --doc-tags`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().BoolVar(&docTags, "doc-tags", false, "emit #begin/#end document markers")
	batchCmd.Flags().StringVar(&parsesDir, "parses", "", "parse-tree directory shared by all documents")
	batchCmd.Flags().StringVar(&sieveList, "sieves", "", "comma-separated sieve sequence")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parse-tree cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	listFile := args[0]

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	cfg.Batch.Workers = concurrency

	inputs, err := readInputList(listFile)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input files in %s", listFile)
	}

	fmt.Fprintf(os.Stderr, "Resolving %d documents with %d workers\n", len(inputs), cfg.Batch.Workers)

	// One pipeline serves all jobs: it holds no per-document state, and the
	// shared loader lets documents reuse cached parse trees.
	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	jobs := make([]worker.Job, 0, len(inputs))
	for _, input := range inputs {
		jobs = append(jobs, worker.Job{
			Input:  input,
			Output: input + ".coref",
			Run: func(input, output string) error {
				_, err := p.ResolveFile(input, output)
				return err
			},
		})
	}

	pool := worker.NewPool(cfg.Batch.Workers)
	results := pool.Run(context.Background(), jobs)

	failures := 0
	for _, result := range results {
		if result.Err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Input, result.Err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s\n", result.Input)
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d resolved, %d failed\n", len(results)-failures, failures)
	if failures > 0 {
		return fmt.Errorf("%d of %d documents failed", failures, len(results))
	}
	return nil
}

// readInputList reads one input path per line, skipping blanks and comments.
func readInputList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open list file: %w", err)
	}
	defer f.Close()

	var inputs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		inputs = append(inputs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read list file: %w", err)
	}
	return inputs, nil
}
