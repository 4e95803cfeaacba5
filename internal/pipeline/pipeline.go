// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"time"

	"crec-parser-go/internal/aggregator"
	"crec-parser-go/internal/logger"
	"crec-parser-go/internal/patterns"
	"crec-parser-go/internal/processor"
	"crec-parser-go/internal/source"
	"crec-parser-go/internal/speakers"
	"crec-parser-go/internal/types"
	"github.com/google/uuid"
)

// Document is the finished, ordered item sequence for one record file.
type Document struct {
	ID         string             `json:"id"`
	Content    []types.Item       `json:"content"`
	Summary    aggregator.Summary `json:"summary"`
	DurationMs int64              `json:"duration_ms"`
}

// Assembler drives the item builder over whole documents. It is safe to
// share between goroutines; each Assemble call owns its cursor.
type Assembler struct {
	tbl *patterns.Table
	dir speakers.Directory
}

func New(tbl *patterns.Table, dir speakers.Directory) *Assembler {
	return &Assembler{tbl: tbl, dir: dir}
}

// Assemble segments src until it is exhausted. Turns are assigned in order
// starting at 0. If ctx ends between items, the items built so far are
// returned along with the context error.
func (a *Assembler) Assemble(ctx context.Context, src source.Lines) (Document, error) {
	start := time.Now()
	doc := Document{ID: uuid.New().String()}
	log := logger.New().WithComponent("pipeline").WithDocument(doc.ID)

	b := processor.NewBuilder(a.tbl, a.dir, log)
	cur := processor.NewCursor(src)
	var err error
	for !cur.Done() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("document %s cut short after %d items: %w", doc.ID, len(doc.Content), ctxErr)
			break
		}
		it, ok := b.Next(cur)
		if !ok {
			break
		}
		it.Turn = len(doc.Content)
		doc.Content = append(doc.Content, it)
	}
	if sl, ok := src.(*source.ScannerLines); ok && sl.Err() != nil && err == nil {
		err = fmt.Errorf("read document: %w", sl.Err())
	}

	doc.Summary = aggregator.Aggregate(doc.Content)
	doc.DurationMs = time.Since(start).Milliseconds()
	entry := log.WithField("items", len(doc.Content)).WithField("duration_ms", doc.DurationMs)
	if err != nil {
		entry.WithField("error", err.Error()).Warn("document assembly stopped early")
		return doc, err
	}
	entry.Info("document assembled")
	return doc, nil
}

// AssembleWithTimeout runs Assemble under an overall time budget derived
// from ctx.
func (a *Assembler) AssembleWithTimeout(ctx context.Context, src source.Lines, timeout time.Duration) (Document, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return a.Assemble(ctx, src)
}
