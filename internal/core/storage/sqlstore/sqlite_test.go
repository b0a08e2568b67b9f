package sqlstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smottahedi/find-political-donors/internal/core/aggregation"
	"github.com/smottahedi/find-political-donors/internal/core/storage"
)

func openSQLite(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(context.Background(), Options{Driver: DriverSQLite, DSN: path, MaxOpenConns: 1, AutoMigrate: true})
	require.NoError(t, err)
	return s
}

func TestSQLite_RoundTripAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "donors.db")

	s := openSQLite(t, path)
	key := aggregation.Key{Grouping: aggregation.GroupingZip, RecipientID: "C001", Secondary: "90001"}
	rec := aggregation.NewRecord(key, 100, 1)
	require.NoError(t, rec.Append(250, 2))
	require.NoError(t, rec.Append(100, 3))

	cp := storage.Checkpoint{RunID: "run-1", Sequence: 3, Flushes: 1, FlushedAt: time.Now()}
	require.NoError(t, s.Flush(ctx, []*aggregation.Record{rec}, cp))
	require.NoError(t, s.Close())

	s = openSQLite(t, path)
	t.Cleanup(func() { s.Close() })

	got, ok, err := s.Fetch(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, aggregation.Summary{RecipientID: "C001", Secondary: "90001", Median: 100, Count: 3, Total: 450}, got.Summary())

	latest, ok, err := s.LatestCheckpoint(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "run-1", latest.RunID)
	require.Equal(t, int64(3), latest.Sequence)
}

func TestSQLite_FlushOverwritesAndIgnoresStale(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t, filepath.Join(t.TempDir(), "donors.db"))
	t.Cleanup(func() { s.Close() })

	key := aggregation.Key{Grouping: aggregation.GroupingDate, RecipientID: "C1", Secondary: "01032017"}
	require.NoError(t, s.Flush(ctx,
		[]*aggregation.Record{aggregation.RestoreRecord(key, []int64{10}, 1)},
		storage.Checkpoint{RunID: "r", Sequence: 1, Flushes: 1, FlushedAt: time.Now()}))
	require.NoError(t, s.Flush(ctx,
		[]*aggregation.Record{aggregation.RestoreRecord(key, []int64{10, 20}, 2)},
		storage.Checkpoint{RunID: "r", Sequence: 2, Flushes: 2, FlushedAt: time.Now()}))
	// Replaying an older flush of the same run changes nothing.
	require.NoError(t, s.Flush(ctx,
		[]*aggregation.Record{aggregation.RestoreRecord(key, []int64{99}, 1)},
		storage.Checkpoint{RunID: "r", Sequence: 1, Flushes: 1, FlushedAt: time.Now()}))

	got, ok, err := s.Fetch(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int64{10, 20}, got.Amounts)
}

func TestSQLite_EachListAndReset(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t, filepath.Join(t.TempDir(), "donors.db"))
	t.Cleanup(func() { s.Close() })

	records := []*aggregation.Record{
		aggregation.NewRecord(aggregation.Key{Grouping: aggregation.GroupingDate, RecipientID: "C2", Secondary: "01012018"}, 1, 1),
		aggregation.NewRecord(aggregation.Key{Grouping: aggregation.GroupingDate, RecipientID: "C1", Secondary: "12312017"}, 2, 2),
		aggregation.NewRecord(aggregation.Key{Grouping: aggregation.GroupingDate, RecipientID: "C1", Secondary: "01012018"}, 3, 3),
		aggregation.NewRecord(aggregation.Key{Grouping: aggregation.GroupingZip, RecipientID: "C1", Secondary: "90017"}, 4, 4),
	}
	require.NoError(t, s.Flush(ctx, records, storage.Checkpoint{RunID: "r", Sequence: 4, Flushes: 1, FlushedAt: time.Now()}))

	var keys []string
	require.NoError(t, s.Each(ctx, aggregation.GroupingDate, func(r *aggregation.Record) error {
		keys = append(keys, r.Key.String())
		return nil
	}))
	require.Equal(t, []string{"date:C1 01012018", "date:C1 12312017", "date:C2 01012018"}, keys)

	list, err := s.ListByRecipient(ctx, aggregation.GroupingZip, "C1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, int64(4), list[0].Total())

	require.NoError(t, s.Reset(ctx))
	list, err = s.ListByRecipient(ctx, aggregation.GroupingDate, "C1")
	require.NoError(t, err)
	require.Empty(t, list)
	_, ok, err := s.LatestCheckpoint(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLite_TemporaryDatabaseRemovedOnClose(t *testing.T) {
	s, err := Open(context.Background(), Options{Driver: DriverSQLite})
	require.NoError(t, err)
	require.NotEmpty(t, s.tempDir)
	dir := s.tempDir

	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())

	_, err = os.Stat(dir)
	require.True(t, os.IsNotExist(err))
}

func TestOpen_RejectsBadOptions(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "mysql"})
	require.ErrorContains(t, err, `unsupported store driver "mysql"`)

	_, err = Open(context.Background(), Options{Driver: DriverPostgres})
	require.ErrorContains(t, err, "requires a DSN")
}
