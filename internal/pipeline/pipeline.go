// Package pipeline drives the chunk -> analyze -> validate -> merge flow for
// one document.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/callsight/internal/analysis"
	"github.com/dgallion1/callsight/internal/chunker"
)

// ErrEmptyText is returned when a document has no usable text to analyze.
var ErrEmptyText = errors.New("no usable text to analyze")

// Stages at which a chunk can fail.
const (
	StageAnalyze  = "analyze"
	StageValidate = "validate"
)

// ChunkError reports which chunk failed and at which stage, with enough
// detail for the caller to retry. Any single chunk failure aborts the whole
// document: dropping a chunk's contribution silently would hide data loss.
type ChunkError struct {
	Chunk int
	Stage string
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk %d: %s: %v", e.Chunk, e.Stage, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

// Analyzer is the external inference collaborator: one system+user prompt
// in, one raw candidate JSON (or failure) out.
type Analyzer interface {
	Complete(ctx context.Context, system, prompt string) (json.RawMessage, error)
}

// Pipeline analyzes a document's text through the external Analyzer.
type Pipeline struct {
	analyzer Analyzer
	chunkCfg chunker.Config
	timeout  time.Duration
	log      *slog.Logger
}

func New(a Analyzer, chunkCfg chunker.Config, timeout time.Duration, log *slog.Logger) *Pipeline {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		analyzer: a,
		chunkCfg: chunkCfg,
		timeout:  timeout,
		log:      log,
	}
}

// Analyze runs the full pipeline for one document. Chunks are sent to the
// Analyzer strictly one at a time, in order. The external endpoint rate
// limits, and concurrent in-flight calls for one document would trip it.
// Each raw result is validated before it ever reaches the merger, and the
// merged result is validated once more before it is returned.
func (p *Pipeline) Analyze(ctx context.Context, text string) (*analysis.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	chunks := chunker.Split(text, p.chunkCfg)
	p.log.Info("chunked document", "chunks", len(chunks), "text_len", len(text))

	results := make([]analysis.Result, 0, len(chunks))
	for _, ch := range chunks {
		callCtx, cancel := context.WithTimeout(ctx, p.timeout)
		raw, err := p.analyzer.Complete(callCtx, analysis.SystemPrompt, analysis.BuildPrompt(ch.Text))
		cancel()
		if err != nil {
			p.log.Error("analyzer call failed", "chunk", ch.Index, "error", err)
			return nil, &ChunkError{Chunk: ch.Index, Stage: StageAnalyze, Err: err}
		}

		res, err := analysis.Validate(raw)
		if err != nil {
			p.log.Error("chunk result rejected", "chunk", ch.Index, "error", err)
			return nil, &ChunkError{Chunk: ch.Index, Stage: StageValidate, Err: err}
		}
		results = append(results, *res)
	}

	merged, err := analysis.Merge(results)
	if err != nil {
		return nil, err
	}
	if err := analysis.CheckResult(merged); err != nil {
		return nil, fmt.Errorf("merged result failed validation: %w", err)
	}
	return &merged, nil
}
