package export

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Amorizz/portfolio/internal/content"
)

// Batch runs one export per language. Jobs share nothing, so one language
// failing never stops the others.
type Batch struct {
	Exporter Exporter
	// Parallelism caps concurrent jobs; 0 or less means one per language.
	Parallelism int
}

// Run exports every language and returns the results in the order of langs.
func (b *Batch) Run(ctx context.Context, langs []content.Lang) []Result {
	results := make([]Result, len(langs))

	// A plain Group: a failed job must not cancel its siblings.
	var g errgroup.Group
	if b.Parallelism > 0 {
		g.SetLimit(b.Parallelism)
	}

	for i, lang := range langs {
		g.Go(func() error {
			log.Printf("[EXPORT] %s: started", lang)
			results[i] = b.Exporter.Export(ctx, lang)
			if results[i].Err != nil {
				log.Printf("[EXPORT] %s: %s: %v", lang, results[i].State, results[i].Err)
			} else {
				log.Printf("[EXPORT] %s: wrote %s in %s", lang, results[i].PDFPath, results[i].Duration.Round(time.Millisecond))
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// FailedResults returns the results that did not produce a PDF.
func FailedResults(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.OK() {
			failed = append(failed, r)
		}
	}
	return failed
}
