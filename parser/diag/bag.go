package diag

import (
	"fmt"
	"io"
	"sync"
)

// Bag collects parse errors in the order they were reported.
type Bag struct {
	mu     sync.Mutex
	errors []*ParseError
	counts map[Code]int
}

// NewBag creates an empty Bag.
func NewBag() *Bag {
	return &Bag{counts: make(map[Code]int)}
}

// Add appends err to the bag.
func (b *Bag) Add(err *ParseError) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.errors = append(b.errors, err)
	b.counts[err.Code]++
}

// Len returns the number of collected errors.
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.errors)
}

// Count returns how many errors with the given code were collected.
func (b *Bag) Count(code Code) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.counts[code]
}

// Has reports whether at least one error with the given code was collected.
func (b *Bag) Has(code Code) bool {
	return b.Count(code) > 0
}

// Errors returns a copy of the collected errors.
func (b *Bag) Errors() []*ParseError {
	b.mu.Lock()
	defer b.mu.Unlock()

	errs := make([]*ParseError, len(b.errors))
	copy(errs, b.errors)
	return errs
}

// Codes returns the collected codes in report order, duplicates included.
func (b *Bag) Codes() []Code {
	b.mu.Lock()
	defer b.mu.Unlock()

	codes := make([]Code, 0, len(b.errors))
	for _, err := range b.errors {
		codes = append(codes, err.Code)
	}
	return codes
}

// Reset drops every collected error.
func (b *Bag) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.errors = nil
	b.counts = make(map[Code]int)
}

// WriteTo writes one line per error followed by its source context, if any.
func (b *Bag) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, err := range b.Errors() {
		n, werr := fmt.Fprintln(w, err.Error())
		total += int64(n)
		if werr != nil {
			return total, werr
		}
		if err.Context == "" {
			continue
		}
		n, werr = fmt.Fprintln(w, err.Context)
		total += int64(n)
		if werr != nil {
			return total, werr
		}
	}
	return total, nil
}
