// Package render encodes slab sheets into fabrication and review formats:
// DXF and SVG vector documents, PNG and PDF renderings and STL solids.
//
// Renderers that may be slow or depend on external programs implement
// Renderer and are run asynchronously with Start.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Renderer converts a Document into another format.
type Renderer interface {
	Render(ctx context.Context, doc Document) ([]byte, error)
}

// Result is the outcome of an asynchronous render. Exactly one of
// Data and Err is meaningful: a non-nil Err marks a failed render.
type Result struct {
	Data []byte
	Err  error
}

// Start runs r on doc in a new goroutine. The returned channel receives
// exactly one Result and is then closed. A panicking renderer yields a
// failed Result.
func Start(ctx context.Context, r Renderer, doc Document) <-chan Result {
	ch := make(chan Result, 1)
	log := zerolog.Ctx(ctx)
	go func() {
		defer close(ch)
		start := time.Now()
		res := run(ctx, r, doc)
		ev := log.Debug()
		if res.Err != nil {
			ev = log.Warn().Err(res.Err)
		}
		ev.Str("renderer", fmt.Sprintf("%T", r)).Int("bytes", len(res.Data)).
			Dur("elapsed", time.Since(start)).Msg("render finished")
		ch <- res
	}()
	return ch
}

func run(ctx context.Context, r Renderer, doc Document) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{Err: fmt.Errorf("render: renderer panicked: %v", p)}
		}
	}()
	if err := ctx.Err(); err != nil {
		return Result{Err: err}
	}
	data, err := r.Render(ctx, doc)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Data: data}
}

// Func adapts an ordinary function to the Renderer interface.
type Func func(ctx context.Context, doc Document) ([]byte, error)

// Render calls f(ctx, doc).
func (f Func) Render(ctx context.Context, doc Document) ([]byte, error) {
	return f(ctx, doc)
}
