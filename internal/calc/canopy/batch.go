package canopy

import (
	"context"
	"runtime"
	"sync"
)

// BatchItem is the outcome of one configuration in a batch. Row is the
// source row for imported configurations, zero otherwise.
type BatchItem struct {
	Index  int     `json:"index"`
	Row    int     `json:"row,omitempty"`
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// CalculateBatch runs independent calculations on at most workers goroutines
// and returns one item per config in input order. Items not started before
// ctx is cancelled carry the context error.
func CalculateBatch(ctx context.Context, cfgs []Config, workers int) []BatchItem {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	items := make([]BatchItem, len(cfgs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, cfg := range cfgs {
		items[i].Index = i
		wg.Add(1)
		go func(i int, cfg Config) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			select {
			case <-ctx.Done():
				items[i].Error = ctx.Err().Error()
			default:
				res, err := Calculate(cfg)
				if err != nil {
					items[i].Error = err.Error()
					return
				}
				items[i].Result = res
			}
		}(i, cfg)
	}
	wg.Wait()
	return items
}

// Failed counts the items that carry an error.
func Failed(items []BatchItem) int {
	n := 0
	for _, it := range items {
		if it.Error != "" {
			n++
		}
	}
	return n
}
