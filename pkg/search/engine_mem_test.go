//go:build test

package search

import (
	"context"
	"fmt"
	"runtime"
	"testing"

	"github.com/bastiangx/anagram/pkg/letters"
)

func TestMemoryStableAcrossRuns(t *testing.T) {
	iterations := []int{50, 200, 500}

	for _, iterCount := range iterations {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			runMemoryTest(t, iterCount)
		})
	}
}

func runMemoryTest(t *testing.T, iterations int) {
	engine := New(Options{Mode: Combinations, ShowPartial: true})

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	totalOps := 0
	for i := 0; i < iterations; i++ {
		for _, phrase := range benchPhrases {
			budget, err := letters.FromPhrase(phrase)
			if err != nil {
				t.Fatal(err)
			}
			engine.opts.StartTotal = budget.Total()
			_ = engine.Search(context.Background(), budget, propertyDict, func(Result) bool { return true })
			totalOps++
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	memDelta := int64(final.Alloc) - int64(baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		iterations, totalOps, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive memory retained per search: %.2f bytes", memPerOp)
	}
	if goroutineDelta > 0 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}
