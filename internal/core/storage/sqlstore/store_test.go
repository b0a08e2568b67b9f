package sqlstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/smottahedi/find-political-donors/internal/core/aggregation"
	"github.com/smottahedi/find-political-donors/internal/core/storage"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock, *sqlmock.ExpectedPrepare) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	prep := mock.ExpectPrepare(regexp.QuoteMeta(queryFetchAggregate))
	s, err := New(context.Background(), db, DriverSQLite)
	require.NoError(t, err)
	return s, mock, prep
}

func TestStore_FetchFound(t *testing.T) {
	s, mock, prep := newMockStore(t)
	key := aggregation.Key{Grouping: aggregation.GroupingZip, RecipientID: "C1", Secondary: "90017"}

	prep.ExpectQuery().
		WithArgs("zip", "C1", "90017").
		WillReturnRows(sqlmock.NewRows([]string{"amounts", "last_sequence"}).AddRow([]byte("[100,250]"), int64(7)))

	rec, ok, err := s.Fetch(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int64{100, 250}, rec.Amounts)
	require.Equal(t, int64(7), rec.LastSequence)
	require.Equal(t, int64(175), rec.Median())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FetchMissing(t *testing.T) {
	s, mock, prep := newMockStore(t)
	key := aggregation.Key{Grouping: aggregation.GroupingDate, RecipientID: "C1", Secondary: "01012017"}

	prep.ExpectQuery().
		WithArgs("date", "C1", "01012017").
		WillReturnRows(sqlmock.NewRows([]string{"amounts", "last_sequence"}))

	rec, ok, err := s.Fetch(context.Background(), key)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, rec)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FetchCorruptAmounts(t *testing.T) {
	s, mock, prep := newMockStore(t)
	key := aggregation.Key{Grouping: aggregation.GroupingZip, RecipientID: "C1", Secondary: "90017"}

	prep.ExpectQuery().
		WithArgs("zip", "C1", "90017").
		WillReturnRows(sqlmock.NewRows([]string{"amounts", "last_sequence"}).AddRow([]byte("{"), int64(1)))

	_, _, err := s.Fetch(context.Background(), key)
	require.ErrorContains(t, err, "failed to unmarshal amounts")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FlushWritesCheckpointAndRecords(t *testing.T) {
	s, mock, _ := newMockStore(t)
	flushedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	records := []*aggregation.Record{
		aggregation.RestoreRecord(aggregation.Key{Grouping: aggregation.GroupingZip, RecipientID: "C1", Secondary: "90017"}, []int64{100, 250}, 2),
		aggregation.RestoreRecord(aggregation.Key{Grouping: aggregation.GroupingDate, RecipientID: "C1", Secondary: "01032017"}, []int64{100}, 1),
	}
	cp := storage.Checkpoint{RunID: "run-1", Sequence: 2, Flushes: 1, FlushedAt: flushedAt}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(queryUpsertCheckpoint)).
		WithArgs("run-1", int64(2), int64(1), flushedAt.UnixMilli()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	upsert := mock.ExpectPrepare(regexp.QuoteMeta(queryUpsertAggregate))
	upsert.ExpectExec().
		WithArgs("zip", "C1", "90017", []byte("[100,250]"), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	upsert.ExpectExec().
		WithArgs("date", "C1", "01032017", []byte("[100]"), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.Flush(context.Background(), records, cp))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FlushSkipsStaleCheckpoint(t *testing.T) {
	s, mock, _ := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(queryUpsertCheckpoint)).
		WithArgs("run-1", int64(5), int64(2), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	records := []*aggregation.Record{
		aggregation.NewRecord(aggregation.Key{Grouping: aggregation.GroupingZip, RecipientID: "C1", Secondary: "90017"}, 1, 5),
	}
	err := s.Flush(context.Background(), records, storage.Checkpoint{RunID: "run-1", Sequence: 5, Flushes: 2, FlushedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FlushRollsBackOnUpsertError(t *testing.T) {
	s, mock, _ := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(queryUpsertCheckpoint)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectPrepare(regexp.QuoteMeta(queryUpsertAggregate)).
		ExpectExec().
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	records := []*aggregation.Record{
		aggregation.NewRecord(aggregation.Key{Grouping: aggregation.GroupingZip, RecipientID: "C1", Secondary: "90017"}, 1, 1),
	}
	err := s.Flush(context.Background(), records, storage.Checkpoint{RunID: "run-1", Sequence: 1, Flushes: 1, FlushedAt: time.Now()})
	require.ErrorContains(t, err, "flush: upsert zip:C1 90017: disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Each(t *testing.T) {
	s, mock, _ := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(queryEachAggregate)).
		WithArgs("date").
		WillReturnRows(sqlmock.NewRows([]string{"recipient_id", "secondary", "amounts", "last_sequence"}).
			AddRow("C1", "01032017", []byte("[10,20,30]"), int64(3)).
			AddRow("C2", "12312016", []byte("[5]"), int64(4)))

	var summaries []aggregation.Summary
	err := s.Each(context.Background(), aggregation.GroupingDate, func(r *aggregation.Record) error {
		summaries = append(summaries, r.Summary())
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []aggregation.Summary{
		{RecipientID: "C1", Secondary: "01032017", Median: 20, Count: 3, Total: 60},
		{RecipientID: "C2", Secondary: "12312016", Median: 5, Count: 1, Total: 5},
	}, summaries)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LatestCheckpoint(t *testing.T) {
	s, mock, _ := newMockStore(t)
	flushedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(queryLatestCheckpoint)).
		WillReturnRows(sqlmock.NewRows([]string{"run_id", "sequence", "flushes", "flushed_at"}).
			AddRow("run-1", int64(2000), int64(2), flushedAt.UnixMilli()))

	cp, ok, err := s.LatestCheckpoint(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, storage.Checkpoint{RunID: "run-1", Sequence: 2000, Flushes: 2, FlushedAt: flushedAt}, cp)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Reset(t *testing.T) {
	s, mock, _ := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(queryDeleteAggregates)).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta(queryDeleteCheckpoints)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.Reset(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRebind(t *testing.T) {
	q := "SELECT a FROM t WHERE x = ? AND y = ?"
	require.Equal(t, q, rebind(DriverSQLite, q))
	require.Equal(t, "SELECT a FROM t WHERE x = $1 AND y = $2", rebind(DriverPostgres, q))
}
