//go:build test

package mem

import (
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/furlang/coretor/pkg/dictionary"
	"github.com/furlang/coretor/pkg/speller"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var testTokens = []string{
	"cjasse", "l'aghe", "un'ore", "d'aghe",
	"cjase-parol", "furlane", "parole", "aghis",
	"FURLAN", "Cjasse", "ôre", "l'ôre",
}

func buildTestEngine(t testing.TB) *speller.Engine {
	words := make([]dictionary.WordPair, 0, 2000)
	base := []string{"aghe", "la", "ore", "une", "di", "cjase", "parol", "furlan", "lenghe", "peraule"}
	for i, w := range base {
		words = append(words, dictionary.WordPair{Word: w, Frequency: 255 - i})
	}
	// pad with synthetic forms so the trie and the phonetic index carry
	// realistic bucket sizes
	for i := 0; i < 1500; i++ {
		words = append(words, dictionary.WordPair{
			Word:      fmt.Sprintf("peraule%d", i),
			Frequency: i % 100,
		})
	}

	snap, err := speller.BuildSnapshot(words,
		[]dictionary.ErrorEntry{{Wrong: "cjasse", Corrections: []string{"cjase"}}},
		[]string{"aghe", "ore"})
	if err != nil {
		t.Fatalf("snapshot build failed: %v", err)
	}
	engine := speller.New(speller.DefaultOptions())
	engine.Swap(snap)
	return engine
}

func TestMemoryLeakBasic(t *testing.T) {
	iterations := []int{100, 500, 1000, 2500}

	for _, iterCount := range iterations {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			runBasicMemoryTest(t, iterCount, testTokens)
		})
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 1000},
		{workers: 2, iterationsPerWorker: 500},
		{workers: 4, iterationsPerWorker: 250},
		{workers: 8, iterationsPerWorker: 125},
	}

	for _, config := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", config.workers, config.iterationsPerWorker), func(t *testing.T) {
			runConcurrentMemoryTest(t, config.workers, config.iterationsPerWorker)
		})
	}
}

func TestMemoryStabilitySwap(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping snapshot swap stability test in short mode")
	}

	engine := buildTestEngine(t)

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)

	// repeated rebuild and swap must not pin old generations
	for cycle := 0; cycle < 25; cycle++ {
		fresh := buildTestEngine(t)
		_ = fresh
		for _, token := range testTokens {
			if _, err := engine.Suggest(token, 10); err != nil {
				t.Fatalf("suggest failed: %v", err)
			}
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)

	memDelta := int64(final.Alloc - baseline.Alloc)
	t.Logf("swap cycles=25 mem_delta=%d bytes", memDelta)

	if memDelta > 50*1024*1024 {
		t.Errorf("excessive retained memory after swaps: %d bytes", memDelta)
	}
}

func runBasicMemoryTest(t *testing.T, iterations int, tokens []string) {
	engine := buildTestEngine(t)

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	for i := 0; i < iterations; i++ {
		for _, token := range tokens {
			suggestions, err := engine.Suggest(token, 10)
			if err != nil {
				t.Fatalf("suggest failed: %v", err)
			}
			_ = suggestions
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	memDelta := int64(final.Alloc - baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	totalOps := iterations * len(tokens)
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		iterations, totalOps, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}

	if goroutineDelta > 2 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

func runConcurrentMemoryTest(t *testing.T, workers, iterationsPerWorker int) {
	engine := buildTestEngine(t)

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	var wg sync.WaitGroup

	for worker := 0; worker < workers; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for iter := 0; iter < iterationsPerWorker; iter++ {
				for _, token := range testTokens {
					suggestions, err := engine.Suggest(token, 10)
					if err != nil {
						t.Errorf("suggest failed: %v", err)
						return
					}
					_ = suggestions
				}
			}
		}()
	}

	wg.Wait()

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	memDelta := int64(final.Alloc - baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	totalOps := workers * iterationsPerWorker * len(testTokens)
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("workers=%d iter_per_worker=%d total_ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		workers, iterationsPerWorker, totalOps, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}

	if goroutineDelta > 3 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}
