package pipeline

import (
	"context"
	"sync"

	"github.com/lehigh-university-libraries/bookstruct/pkg/ocr"
)

// AnnotatePages runs geometric annotation over the pages with a bounded
// worker pool. Results are written into an index-addressed slice, so the
// returned annotations are in page order regardless of which worker
// finishes first.
func (p *Pipeline) AnnotatePages(ctx context.Context, pages []ocr.Page) ([][]ocr.Line, error) {
	results := make([][]ocr.Line, len(pages))
	sem := make(chan struct{}, p.opts.Workers)
	var wg sync.WaitGroup

	for i := range pages {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = ocr.AnnotatePage(pages[i], p.opts.Detection)
		}(i)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
