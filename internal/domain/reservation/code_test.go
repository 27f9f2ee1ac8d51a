package reservation

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeGenerator_FirstCodeOfDay(t *testing.T) {
	clock := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	gen := NewCodeGeneratorWithClock(func() time.Time { return clock })

	code := gen.NextCode()
	assert.Equal(t, "Num2026031410000000", code)
}

func TestCodeGenerator_StrictlyIncreasingWithinDay(t *testing.T) {
	clock := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	gen := NewCodeGeneratorWithClock(func() time.Time { return clock })

	var codes []string
	for i := 0; i < 50; i++ {
		codes = append(codes, gen.NextCode())
	}

	for i := 1; i < len(codes); i++ {
		assert.Greater(t, codes[i], codes[i-1], "codes must increase in issuance order")
	}
	assert.Equal(t, "Num2026031410000049", codes[49])
}

func TestCodeGenerator_DayRolloverResetsSequence(t *testing.T) {
	clock := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	gen := NewCodeGeneratorWithClock(func() time.Time { return clock })

	first := gen.NextCode()
	second := gen.NextCode()
	require.Equal(t, "Num2026031410000000", first)
	require.Equal(t, "Num2026031410000001", second)

	clock = clock.Add(2 * time.Minute) // past midnight

	afterMidnight := gen.NextCode()
	assert.Equal(t, "Num2026031510000000", afterMidnight)
}

func TestCodeGenerator_ConcurrentCallersGetUniqueCodes(t *testing.T) {
	clock := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	gen := NewCodeGeneratorWithClock(func() time.Time { return clock })

	const workers = 32
	const perWorker = 25

	var mu sync.Mutex
	seen := make(map[string]bool)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				code := gen.NextCode()
				mu.Lock()
				seen[code] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker, "every issued code must be unique")
}
