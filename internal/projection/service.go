package projection

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	v1 "github.com/smottahedi/find-political-donors/internal/api/v1"
	"github.com/smottahedi/find-political-donors/internal/core/aggregation"
	"github.com/smottahedi/find-political-donors/internal/core/storage"
)

const zipFilterLength = 5

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid aggregate query")

// Service implements the read-only query layer over persisted aggregates.
// It only sees what has been flushed; buffered updates of a running
// process are invisible until the next flush.
type Service struct {
	repo storage.Repository
}

// NewService creates a new projection service.
func NewService(repo storage.Repository) *Service {
	if repo == nil {
		panic("projection.NewService: repository is nil")
	}
	return &Service{repo: repo}
}

// ZipAggregates returns the zip aggregates of a recipient ordered by zip.
func (s *Service) ZipAggregates(ctx context.Context, req ZipQueryRequest) (*AggregateQueryResponse, error) {
	if req.RecipientID == "" {
		return nil, invalidQueryf("recipient_id is required")
	}
	if req.Zip != "" && utf8.RuneCountInString(req.Zip) != zipFilterLength {
		return nil, invalidQueryf("invalid zip %q (must be %d characters)", req.Zip, zipFilterLength)
	}

	records, err := s.repo.ListByRecipient(ctx, aggregation.GroupingZip, req.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("list zip aggregates: %w", err)
	}

	selected := records[:0]
	for _, rec := range records {
		if req.Zip == "" || rec.Key.Secondary == req.Zip {
			selected = append(selected, rec)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Key.Secondary < selected[j].Key.Secondary
	})

	return &AggregateQueryResponse{
		RecipientID: req.RecipientID,
		Grouping:    string(aggregation.GroupingZip),
		Values:      convertToValues(selected),
	}, nil
}

// DateAggregates returns the date aggregates of a recipient in chronological
// order, or a single rolled-up aggregate for granularity "total".
func (s *Service) DateAggregates(ctx context.Context, req DateQueryRequest) (*AggregateQueryResponse, error) {
	req, start, end, err := normalizeAndValidate(req)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.ListByRecipient(ctx, aggregation.GroupingDate, req.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("list date aggregates: %w", err)
	}

	type dated struct {
		rec *aggregation.Record
		at  time.Time
	}
	selected := make([]dated, 0, len(records))
	for _, rec := range records {
		at, parseErr := aggregation.ParseDate(rec.Key.Secondary)
		if parseErr != nil {
			// Only gated dates are stored.
			return nil, fmt.Errorf("stored date aggregate %s: %w", rec.Key, parseErr)
		}
		if (!start.IsZero() && at.Before(start)) || (!end.IsZero() && at.After(end)) {
			continue
		}
		selected = append(selected, dated{rec: rec, at: at})
	}
	sort.SliceStable(selected, func(i, j int) bool { return selected[i].at.Before(selected[j].at) })

	ordered := make([]*aggregation.Record, len(selected))
	for i, d := range selected {
		ordered[i] = d.rec
	}

	var values []v1.AggregateView
	if req.Granularity == GranularityTotal {
		if values, err = rollupTotal(ordered); err != nil {
			return nil, err
		}
	} else {
		values = convertToValues(ordered)
	}

	return &AggregateQueryResponse{
		RecipientID: req.RecipientID,
		Grouping:    string(aggregation.GroupingDate),
		Granularity: req.Granularity,
		Start:       req.Start,
		End:         req.End,
		Values:      values,
	}, nil
}

// Checkpoint returns the most recent flush checkpoint. ok is false when the
// store has never been flushed.
func (s *Service) Checkpoint(ctx context.Context) (view v1.CheckpointView, ok bool, err error) {
	cp, ok, err := s.repo.LatestCheckpoint(ctx)
	if err != nil || !ok {
		return v1.CheckpointView{}, ok, err
	}
	return v1.CheckpointView{
		RunID:     cp.RunID,
		Sequence:  cp.Sequence,
		Flushes:   cp.Flushes,
		FlushedAt: cp.FlushedAt.UTC().UnixMilli(),
	}, true, nil
}

func normalizeAndValidate(req DateQueryRequest) (DateQueryRequest, time.Time, time.Time, error) {
	var start, end time.Time

	if req.Granularity == "" {
		req.Granularity = GranularityDay
	}
	if req.RecipientID == "" {
		return req, start, end, invalidQueryf("recipient_id is required")
	}

	switch req.Granularity {
	case GranularityDay, GranularityTotal:
	default:
		return req, start, end, invalidQueryf("invalid granularity: %s (must be day or total)", req.Granularity)
	}

	var err error
	if req.Start != "" {
		if start, err = aggregation.ParseDate(req.Start); err != nil {
			return req, start, end, invalidQueryf("start: %v", err)
		}
	}
	if req.End != "" {
		if end, err = aggregation.ParseDate(req.End); err != nil {
			return req, start, end, invalidQueryf("end: %v", err)
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return req, start, end, invalidQueryf("end date must not be before start date")
	}

	return req, start, end, nil
}

func invalidQueryf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
