// Package sequence allocates human-facing sequential record numbers.
//
// A namespace is the set of identifier strings already in use, possibly
// drawn from more than one table (invoice numbers span both invoices and
// bulk timesheets). Identifiers wrap a positive integer, zero-padded to a
// fixed width, optionally carrying a known textual prefix ("INV-000042").
// Uniqueness is enforced on the numeric value, not the textual form.
package sequence

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Source exposes a namespace's existing identifiers.
type Source interface {
	// Identifiers returns every identifier currently in the namespace.
	Identifiers(ctx context.Context) ([]string, error)
	// Exists reports whether any of the given identifier strings is
	// already present in the namespace.
	Exists(ctx context.Context, ids ...string) (bool, error)
}

// DefaultWidth is the zero-padded width of generated identifiers.
const DefaultWidth = 6

// Allocator mints the smallest unused number in a namespace.
type Allocator struct {
	width    int
	prefixes []string
}

// New creates an Allocator producing identifiers of the given width.
// Known prefixes are stripped when parsing existing identifiers and
// included in the collision recheck.
func New(width int, prefixes ...string) *Allocator {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Allocator{width: width, prefixes: prefixes}
}

// Next returns the smallest positive integer not numerically present in
// the namespace, formatted as a zero-padded string.
//
// Before returning, the candidate is rechecked against the source in both
// bare and prefixed forms. If a concurrent allocation claimed it since the
// scan, the candidate is bumped by one and returned without repeating the
// full scan. This protects against a single interleaved writer only; the
// insert path must still treat a uniqueness violation as a retry signal.
func (a *Allocator) Next(ctx context.Context, src Source) (string, error) {
	existing, err := src.Identifiers(ctx)
	if err != nil {
		return "", fmt.Errorf("fetch namespace identifiers: %w", err)
	}

	taken := make([]int, 0, len(existing))
	for _, id := range existing {
		if n, ok := a.numericValue(id); ok {
			taken = append(taken, n)
		}
	}
	sort.Ints(taken)

	candidate := lowestGap(taken)

	formatted := a.Format(candidate)
	inUse, err := src.Exists(ctx, a.variants(formatted)...)
	if err != nil {
		return "", fmt.Errorf("recheck candidate %s: %w", formatted, err)
	}
	if inUse {
		formatted = a.Format(candidate + 1)
	}

	return formatted, nil
}

// Format renders n as a zero-padded identifier.
func (a *Allocator) Format(n int) string {
	return fmt.Sprintf("%0*d", a.width, n)
}

// numericValue strips any known prefix from id and parses the remainder.
// Unparseable identifiers are ignored by the scan.
func (a *Allocator) numericValue(id string) (int, bool) {
	s := strings.TrimSpace(id)
	for _, p := range a.prefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimPrefix(s, p)
			break
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// variants returns the identifier forms the recheck must consider: the
// bare candidate plus each known prefixed spelling.
func (a *Allocator) variants(formatted string) []string {
	out := make([]string, 0, len(a.prefixes)+1)
	out = append(out, formatted)
	for _, p := range a.prefixes {
		out = append(out, p+formatted)
	}
	return out
}

// lowestGap returns the first integer ≥ 1 missing from the sorted slice.
func lowestGap(sorted []int) int {
	next := 1
	for _, n := range sorted {
		switch {
		case n < next:
			// duplicates or values below the scan point
			continue
		case n == next:
			next++
		default:
			return next
		}
	}
	return next
}
