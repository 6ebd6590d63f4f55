package topk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relicware/gearsolve/internal/solver/item"
)

func TestInsertKeepsOnlyTopK(t *testing.T) {
	tk := New(2)
	tk.Insert(NewResult(1.0, []item.ID{1}))
	tk.Insert(NewResult(3.0, []item.ID{2}))
	tk.Insert(NewResult(2.0, []item.ID{3}))

	results := tk.Results()
	require.Len(t, results, 2)
	assert.Equal(t, 3.0, results[0].Score)
	assert.Equal(t, 2.0, results[1].Score)
}

func TestInsertEvictsWorstWhenFull(t *testing.T) {
	tk := New(1)
	tk.Insert(NewResult(1.0, []item.ID{1}))
	tk.Insert(NewResult(5.0, []item.ID{2}))

	results := tk.Results()
	require.Len(t, results, 1)
	assert.Equal(t, 5.0, results[0].Score)
}

func TestTieBreaksLexicographicOnSortedItemIDs(t *testing.T) {
	tk := New(2)
	tk.Insert(NewResult(1.0, []item.ID{5, 9}))
	tk.Insert(NewResult(1.0, []item.ID{1, 2}))

	results := tk.Results()
	require.Len(t, results, 2)
	assert.Equal(t, []item.ID{1, 2}, results[0].Items)
	assert.Equal(t, []item.ID{5, 9}, results[1].Items)
}

func TestNewResultSortsItemIDs(t *testing.T) {
	r := NewResult(1.0, []item.ID{9, 1, 5})
	assert.Equal(t, []item.ID{1, 5, 9}, r.Items)
}

func TestMergeCombinesMultipleListsBoundedToK(t *testing.T) {
	listA := []Result{NewResult(10, []item.ID{1}), NewResult(8, []item.ID{2})}
	listB := []Result{NewResult(9, []item.ID{3}), NewResult(20, []item.ID{4})}

	merged := Merge([][]Result{listA, listB}, 3)
	require.Len(t, merged, 3)
	assert.Equal(t, 20.0, merged[0].Score)
	assert.Equal(t, 10.0, merged[1].Score)
	assert.Equal(t, 9.0, merged[2].Score)
}
