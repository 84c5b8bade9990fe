package tripdata

import (
	"cmp"
	"slices"
	"time"
)

// Record is one half-hour bucket of trip counts.
type Record struct {
	// HalfHourStart is the start of the 30-minute bucket.
	HalfHourStart time.Time
	// TripCount is the number of trips that started within the bucket.
	TripCount int
	// Line is the 1-based input line the record was read from.
	Line int
}

// Pair is a (timestamp, count) tuple extracted from a [Record].
type Pair struct {
	Start time.Time
	Count int
}

// Table is an ordered sequence of [Record]s read from a single source.
type Table struct {
	// Header holds the column names exactly as they appeared in the input.
	Header []string
	// TimeColumn is the header name used for bucket start times.
	TimeColumn string
	// CountColumn is the header name used for trip counts.
	CountColumn string
	Records     []Record
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}

// Sort orders the records by ascending [Record.HalfHourStart]. Records with
// identical timestamps keep their original relative order.
func (t *Table) Sort() {
	slices.SortStableFunc(t.Records, func(a, b Record) int {
		return a.HalfHourStart.Compare(b.HalfHourStart)
	})
}

// IsSorted reports whether the records are in non-decreasing time order.
func (t *Table) IsSorted() bool {
	return slices.IsSortedFunc(t.Records, func(a, b Record) int {
		return a.HalfHourStart.Compare(b.HalfHourStart)
	})
}

// Pairs returns the (timestamp, count) pairs in table order.
func (t *Table) Pairs() []Pair {
	pairs := make([]Pair, 0, len(t.Records))
	for _, r := range t.Records {
		pairs = append(pairs, Pair{Start: r.HalfHourStart, Count: r.TripCount})
	}

	return pairs
}

// Total returns the sum of all trip counts.
func (t *Table) Total() int {
	total := 0
	for _, r := range t.Records {
		total += r.TripCount
	}

	return total
}

// MaxCount returns the largest trip count, or zero for an empty table.
func (t *Table) MaxCount() int {
	if len(t.Records) == 0 {
		return 0
	}

	return slices.MaxFunc(t.Records, func(a, b Record) int {
		return cmp.Compare(a.TripCount, b.TripCount)
	}).TripCount
}
