package reservation

import (
	"strconv"
	"sync"
	"time"
)

const (
	codePrefix        = "Num"
	codeSequenceFloor = 10000000
)

// CodeGenerator issues unique, day-scoped, strictly increasing reservation
// codes in the form "Num" + YYYYMMDD + sequence. The sequence starts at the
// floor value on the first issuance of a calendar day and resets when the
// generator's clock rolls over to a new day.
type CodeGenerator struct {
	mu  sync.Mutex
	now func() time.Time

	day time.Time
	seq int64
}

// NewCodeGenerator creates a CodeGenerator using the wall clock.
func NewCodeGenerator() *CodeGenerator {
	return NewCodeGeneratorWithClock(time.Now)
}

// NewCodeGeneratorWithClock creates a CodeGenerator with an injected clock.
func NewCodeGeneratorWithClock(now func() time.Time) *CodeGenerator {
	return &CodeGenerator{now: now}
}

// NextCode returns the next reservation code. The day-rollover check and the
// increment happen under one lock so concurrent callers never share a code.
func (g *CodeGenerator) NextCode() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	today := ToDate(g.now())
	if g.day.Equal(today) {
		g.seq++
	} else {
		g.day = today
		g.seq = codeSequenceFloor
	}

	return codePrefix + today.Format("20060102") + strconv.FormatInt(g.seq, 10)
}
