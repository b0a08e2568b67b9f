package aggregation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreerrors "github.com/smottahedi/find-political-donors/internal/core/errors"
)

func TestRecord_RunningStatistics(t *testing.T) {
	key := Key{Grouping: GroupingZip, RecipientID: "C001", Secondary: "90001"}

	r := NewRecord(key, 100, 1)
	assert.Equal(t, Summary{RecipientID: "C001", Secondary: "90001", Median: 100, Count: 1, Total: 100}, r.Summary())

	require.NoError(t, r.Append(250, 2))
	assert.Equal(t, Summary{RecipientID: "C001", Secondary: "90001", Median: 175, Count: 2, Total: 350}, r.Summary())

	require.NoError(t, r.Append(100, 3))
	assert.Equal(t, Summary{RecipientID: "C001", Secondary: "90001", Median: 100, Count: 3, Total: 450}, r.Summary())

	assert.Equal(t, []int64{100, 250, 100}, r.Amounts)
	assert.Equal(t, int64(3), r.LastSequence)
}

func TestRecord_EvenMedianRoundsHalfUp(t *testing.T) {
	r := NewRecord(Key{Grouping: GroupingDate, RecipientID: "C001", Secondary: "01312017"}, 10, 1)
	require.NoError(t, r.Append(15, 2))
	require.Equal(t, int64(13), r.Median())
}

func TestRecord_RestoreRebuildsDerivedState(t *testing.T) {
	key := Key{Grouping: GroupingDate, RecipientID: "C001", Secondary: "01312017"}
	r := RestoreRecord(key, []int64{384, 230, 333}, 7)

	require.Equal(t, int64(333), r.Median())
	require.Equal(t, int64(947), r.Total())
	require.Equal(t, int64(3), r.Count())

	require.NoError(t, r.Append(40, 8))
	require.Equal(t, int64(282), r.Median())
	require.Equal(t, int64(987), r.Total())
	require.Equal(t, int64(8), r.LastSequence)
}

func TestRecord_CloneIsIndependent(t *testing.T) {
	r := NewRecord(Key{Grouping: GroupingZip, RecipientID: "C001", Secondary: "90001"}, 1, 1)
	c := r.Clone()
	require.NoError(t, c.Append(99, 2))

	require.Equal(t, []int64{1}, r.Amounts)
	require.Equal(t, int64(1), r.Total())
	require.Equal(t, []int64{1, 99}, c.Amounts)
}

func TestRecord_MedianMatchesFullSort(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	r := &Record{Key: Key{Grouping: GroupingZip, RecipientID: "C001", Secondary: "90001"}}

	for i := 0; i < 500; i++ {
		require.NoError(t, r.Append(rng.Int63n(1000), int64(i+1)))
		require.Equal(t, RoundHalfUp(MedianOf(r.Amounts)), r.Median(), "after %d amounts", i+1)
	}
}

func TestKey_String(t *testing.T) {
	k := Key{Grouping: GroupingDate, RecipientID: "C001", Secondary: "01312017"}
	require.Equal(t, "date:C001 01312017", k.String())
}

func TestRecord_AppendRejectsTotalOverflow(t *testing.T) {
	key := Key{Grouping: GroupingZip, RecipientID: "C001", Secondary: "90001"}
	r := NewRecord(key, math.MaxInt64, 1)

	err := r.Append(1, 2)
	require.ErrorIs(t, err, coreerrors.ErrInvalidAmount)

	// The failed append leaves the record untouched.
	require.Equal(t, []int64{math.MaxInt64}, r.Amounts)
	require.Equal(t, int64(math.MaxInt64), r.Total())
	require.Equal(t, int64(math.MaxInt64), r.Median())
	require.Equal(t, int64(1), r.LastSequence)

	// Totals close to the limit stay exact.
	r = NewRecord(key, math.MaxInt64-10, 1)
	require.NoError(t, r.Append(10, 2))
	require.Equal(t, int64(math.MaxInt64), r.Total())
	require.Equal(t, int64(math.MaxInt64/2+1), r.Median()) // 4611686018427387903.5 rounds up
}
