// Package pipeline drives one document through the full resolution run:
// read, load trees, extract mentions, initialize clusters, run the sieve
// sequence, render.
package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/clinstack/coref/internal/cluster"
	"github.com/clinstack/coref/internal/conll"
	"github.com/clinstack/coref/internal/detect"
	"github.com/clinstack/coref/internal/model"
	"github.com/clinstack/coref/internal/parse"
	"github.com/clinstack/coref/internal/sieve"
)

// Pipeline orchestrates the complete resolution process. It holds no
// per-document state: the mention table and cluster store are rebuilt for
// every run, so one pipeline can serve many documents.
type Pipeline struct {
	reader   *conll.Reader
	loader   *parse.Loader
	detector *detect.Detector
	sieves   []sieve.Sieve
	renderer *conll.Renderer
	config   *model.Config
	diag     io.Writer
}

// New creates a pipeline from the configuration. An unknown sieve name in
// the configured sequence fails here, before any document is touched.
func New(cfg *model.Config) (*Pipeline, error) {
	sieves, err := sieve.Build(cfg.Sieves)
	if err != nil {
		return nil, fmt.Errorf("build sieves: %w", err)
	}

	diag := io.Discard
	if cfg.Output.Verbose {
		diag = os.Stderr
	}
	warn := func(format string, args ...interface{}) {
		fmt.Fprintf(diag, "warning: "+format+"\n", args...)
	}

	return &Pipeline{
		reader:   conll.NewReader(cfg.Input.DocColumn, cfg.Input.WordColumn),
		loader:   parse.NewLoader(cfg.Parses.CacheTTL, cfg.Parses.CacheEnabled),
		detector: detect.NewDetector(warn),
		sieves:   sieves,
		renderer: conll.NewRenderer(cfg.Output.DocTags),
		config:   cfg,
		diag:     diag,
	}, nil
}

// Result contains the complete state of one finished run.
type Result struct {
	Document *model.Document
	Order    []int
	Mentions map[int]*model.Mention
	Store    *cluster.Store
}

// ResolveFile resolves one document end to end and writes the annotated
// output. Any stage error aborts the run; no partial output is written.
func (p *Pipeline) ResolveFile(inputPath, outputPath string) (*Result, error) {
	// 1. Read the token annotations
	doc, err := p.reader.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	fmt.Fprintf(p.diag, "read %d sentences from %s\n", doc.NumSentences(), inputPath)

	// 2. Load the per-sentence parse trees
	parseDir := p.config.ParseDirFor(inputPath)
	trees, err := p.loader.LoadDir(parseDir, doc.NumSentences())
	if err != nil {
		return nil, fmt.Errorf("load parses: %w", err)
	}

	// 3. Extract the canonical mention set
	detected, err := p.detector.Detect(trees, doc.NumSentences())
	if err != nil {
		return nil, fmt.Errorf("detect mentions: %w", err)
	}
	fmt.Fprintf(p.diag, "extracted %d mentions\n", len(detected.Order))
	p.printMentions(detected)

	// 4. Initialize one singleton cluster per mention
	store := cluster.NewStore()
	if err := store.Init(detected.Order, detected.Mentions); err != nil {
		return nil, fmt.Errorf("initialize clusters: %w", err)
	}

	// 5. Run the sieve sequence, each stage seeing the cumulative clustering
	for _, s := range p.sieves {
		merges, err := s.Apply(detected.Order, detected.Mentions, store)
		if err != nil {
			return nil, fmt.Errorf("sieve %s: %w", s.Name(), err)
		}
		fmt.Fprintf(p.diag, "sieve %-14s %d merges, %d clusters\n", s.Name(), merges, store.NumClusters())
	}

	// 6. Render and write
	if outputPath != "" {
		if err := p.renderer.WriteFile(outputPath, doc, detected.Order, detected.Mentions); err != nil {
			return nil, fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(p.diag, "wrote %s\n", outputPath)
	}

	return &Result{
		Document: doc,
		Order:    detected.Order,
		Mentions: detected.Mentions,
		Store:    store,
	}, nil
}

// printMentions lists the extracted mentions on the diagnostic stream.
func (p *Pipeline) printMentions(detected *detect.Result) {
	if p.diag == io.Discard {
		return
	}
	for _, id := range detected.Order {
		m := detected.Mentions[id]
		fmt.Fprintf(p.diag, "  mention %3d  s%d [%d,%d) %-8s %q\n",
			m.ID, m.SentenceIndex, m.Begin, m.End, m.Type, m.Text())
	}
}
