// Package topk implements the fixed-size bounded top-K structure spec.md
// §4.8/§9 calls for: K=5 globally, with insertion requiring one comparison
// against the current minimum before a full re-sort.
package topk

import (
	"sort"

	"github.com/relicware/gearsolve/internal/solver/item"
)

// Result is one ranked candidate set: its score and the sorted-by-id list
// of equipped item ids (spec.md §4.8, §9's tie-break rule).
type Result struct {
	Score float64
	Items []item.ID
}

// sortedIDs returns a copy of ids in ascending order, leaving ids untouched.
func sortedIDs(ids []item.ID) []item.ID {
	out := make([]item.ID, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewResult builds a Result with Items normalized to id-sorted order.
func NewResult(score float64, ids []item.ID) Result {
	return Result{Score: score, Items: sortedIDs(ids)}
}

// less reports whether a ranks strictly before b: higher score wins;
// ties break lexicographically on the sorted item-id list (spec.md §9
// open question, resolved as lexicographic tie-break).
func less(a, b Result) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	n := len(a.Items)
	if len(b.Items) < n {
		n = len(b.Items)
	}
	for i := 0; i < n; i++ {
		if a.Items[i] != b.Items[i] {
			return a.Items[i] < b.Items[i]
		}
	}
	return len(a.Items) < len(b.Items)
}

// TopK is a bounded, score-descending accumulator of at most K results.
// Not safe for concurrent use; each search worker owns a private TopK and
// results are merged afterward via Merge.
type TopK struct {
	k       int
	results []Result
}

// New returns an empty TopK bounded to k entries.
func New(k int) *TopK {
	return &TopK{k: k}
}

// Insert adds r if it qualifies for the top k, evicting the current worst
// entry when already full. A single comparison against the current worst
// short-circuits inserts that wouldn't make the cut once full.
func (t *TopK) Insert(r Result) {
	if len(t.results) < t.k {
		t.results = append(t.results, r)
		if len(t.results) == t.k {
			t.sort()
		}
		return
	}
	worst := t.results[len(t.results)-1]
	if !less(r, worst) {
		return
	}
	t.results[len(t.results)-1] = r
	t.sort()
}

func (t *TopK) sort() {
	sort.SliceStable(t.results, func(i, j int) bool {
		return less(t.results[i], t.results[j])
	})
}

// Results returns the accumulated results, score-descending.
func (t *TopK) Results() []Result {
	t.sort()
	out := make([]Result, len(t.results))
	copy(out, t.results)
	return out
}

// Len reports how many results are currently held.
func (t *TopK) Len() int { return len(t.results) }

// Merge combines several per-pair top-K lists (already each bounded and
// sorted, or not) into a single global top-K of size k, as spec.md §4.8
// describes for the aggregator stage.
func Merge(lists [][]Result, k int) []Result {
	merged := New(k)
	for _, list := range lists {
		for _, r := range list {
			merged.Insert(r)
		}
	}
	return merged.Results()
}
