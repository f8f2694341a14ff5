package mocks

import (
	"fmt"

	"github.com/darknight08zz/protocol456/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// IDResults is a queue of results to return from NewID
	IDResults []string
	idIndex   int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// NewID returns the next queued result, or a sequential fallback ID
func (r *MockRandom) NewID() string {
	if r.idIndex >= len(r.IDResults) {
		r.idIndex++
		return fmt.Sprintf("mock-id-%d", r.idIndex)
	}
	result := r.IDResults[r.idIndex]
	r.idIndex++
	return result
}

// QueueID adds values to the NewID result queue
func (r *MockRandom) QueueID(values ...string) {
	r.IDResults = append(r.IDResults, values...)
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IDResults = nil
	r.idIndex = 0
}
