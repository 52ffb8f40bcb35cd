package util

import (
	"sync"
	"time"
)

// QuestionIDGenerator hands out timestamp-derived ids (microseconds since epoch)
// that are strictly increasing within the process.
type QuestionIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewQuestionIDGenerator() *QuestionIDGenerator {
	return &QuestionIDGenerator{now: time.Now}
}

func (g *QuestionIDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.now().UnixMicro()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe makes every later id greater than floor. Bulk writers pass the
// current MAX(id) so ids handed out by other processes are skipped.
func (g *QuestionIDGenerator) Observe(floor int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if floor > g.last {
		g.last = floor
	}
}

var defaultQuestionIDs = NewQuestionIDGenerator()

// NewQuestionID returns the next id from the process-wide generator.
func NewQuestionID() int64 {
	return defaultQuestionIDs.Next()
}

// ObserveQuestionID raises the floor of the process-wide generator.
func ObserveQuestionID(floor int64) {
	defaultQuestionIDs.Observe(floor)
}
