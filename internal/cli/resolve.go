package cli

import (
	"fmt"
	"os"

	"github.com/clinstack/coref/internal/model"
	"github.com/clinstack/coref/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	docTags   bool
	parsesDir string
	sieveList string
	noCache   bool
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <input_file> <output_file>",
	Short: "Resolve coreference in a single CoNLL document",
	Long: `Resolve reads a CoNLL-formatted token file and its per-sentence Alpino
parse trees, extracts candidate mentions, clusters them through the
configured sieve sequence, and writes bracket-annotated CoNLL output.

Parse trees are expected in <input_file>.parses/ unless --parses is given.

Example:
  coref resolve WR77.conll WR77.coref
  coref resolve WR77.conll WR77.coref --doc-tags
  coref resolve WR77.conll WR77.coref --sieves string-match,head-match:3`,
	Args: cobra.ExactArgs(2),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().BoolVar(&docTags, "doc-tags", false, "emit #begin/#end document markers")
	resolveCmd.Flags().StringVar(&parsesDir, "parses", "", "parse-tree directory (default: <input_file>.parses)")
	resolveCmd.Flags().StringVar(&sieveList, "sieves", "", "comma-separated sieve sequence, e.g. string-match,head-match:3")
	resolveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parse-tree cache")
}

func runResolve(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Resolving: %s\n", input)
		fmt.Fprintf(os.Stderr, "Parses:    %s\n", cfg.ParseDirFor(input))
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	result, err := p.ResolveFile(input, output)
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "✓ Resolved %d mentions into %d clusters\n", len(result.Order), result.Store.NumClusters())
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", output)
	}

	return nil
}

// buildConfig layers the resolution configuration: defaults, then config
// file / environment (viper), then flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if viper.IsSet("input.doc_column") {
		cfg.Input.DocColumn = viper.GetInt("input.doc_column")
	}
	if viper.IsSet("input.word_column") {
		cfg.Input.WordColumn = viper.GetInt("input.word_column")
	}
	if viper.IsSet("parses.cache_ttl") {
		cfg.Parses.CacheTTL = viper.GetDuration("parses.cache_ttl")
	}
	if viper.IsSet("batch.workers") {
		cfg.Batch.Workers = viper.GetInt("batch.workers")
	}
	if viper.IsSet("sieves") {
		specs, err := model.ParseSieveSpecs(viper.GetString("sieves"))
		if err != nil {
			return nil, err
		}
		cfg.Sieves = specs
	}

	cfg.Output.Verbose = verbose
	cfg.Output.DocTags = docTags
	if parsesDir != "" {
		cfg.Parses.Dir = parsesDir
	}
	if noCache {
		cfg.Parses.CacheEnabled = false
	}
	if sieveList != "" {
		specs, err := model.ParseSieveSpecs(sieveList)
		if err != nil {
			return nil, err
		}
		cfg.Sieves = specs
	}

	return cfg, nil
}
