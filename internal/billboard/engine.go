// Package billboard maintains the weekly popularity rankings driven by
// ticket purchases. Entries are keyed by (media, week, year) with the
// media type stored redundantly; ranks are dense, 1-based and assigned
// by descending ticket count within a (week, year, type) partition.
//
// Ranking is advisory display state: concurrent reranks are tolerated as
// last-write-wins on the rank column and no partition locking is taken.
package billboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mediatrack/media-billboard/internal/model"
)

// ErrInvalidWeek is returned by GetByWeekYear when the requested week
// number is outside [1, 52]. Handlers translate it into HTTP 400.
var ErrInvalidWeek = errors.New("week must be between 1 and 52")

// Entry is a billboard row joined with the media it ranks, plus the
// display annotations computed for the current board: movies carry an
// estimated TotalRevenue (tickets × first available venue price), books
// carry Popularity as an alias of the ticket count.
type Entry struct {
	model.BillboardEntry
	MediaTitle   string   `json:"media_title"`
	TotalRevenue *float64 `json:"total_revenue,omitempty"`
	Popularity   *uint64  `json:"popularity,omitempty"`
}

// Store is the persistence surface the engine needs. It is implemented
// by repository.BillboardRepo; tests substitute an in-memory fake.
// ListPartition and SeedCandidates accept an empty media type meaning
// "both types". ListPartition returns rows ordered by descending ticket
// count; SeedCandidates returns media with a valid type ordered by
// descending total tickets, ties broken newest-created first.
type Store interface {
	IncrementEntry(ctx context.Context, mediaID uint64, week, year int, delta uint64) (bool, error)
	InsertEntry(ctx context.Context, e *model.BillboardEntry) error
	PartitionCount(ctx context.Context, week, year int, mediaType model.MediaType) (int, error)
	ListPartition(ctx context.Context, week, year int, mediaType model.MediaType) ([]Entry, error)
	UpdateRank(ctx context.Context, entryID uint64, rank int) error
	SeedCandidates(ctx context.Context, mediaType model.MediaType) ([]model.Media, error)
	FirstAvailableVenue(ctx context.Context, mediaID uint64) (*model.Venue, error)
	IncrementViewCount(ctx context.Context, mediaID uint64) error
}

// Engine coordinates counter updates, rank maintenance and lazy seeding
// over a Store. The clock is injectable so tests can pin the week.
type Engine struct {
	store Store
	top   int // entries returned by GetCurrent; <=0 means unlimited
	now   func() time.Time
}

// New constructs an Engine. top bounds how many entries GetCurrent
// returns per call.
func New(store Store, top int) *Engine {
	return &Engine{store: store, top: top, now: time.Now}
}

// WithClock overrides the engine clock. Intended for tests.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// RecordTicketSale applies a ticket-count delta to the current-week
// entry for the given media, creating the entry when absent with a
// provisional rank of partition-count+1, then recomputes the partition's
// ranks. The media's own running total is updated by the purchase
// transaction before this is called.
func (e *Engine) RecordTicketSale(ctx context.Context, mediaID uint64, mediaType model.MediaType, delta uint64) error {
	if !mediaType.IsValid() {
		return fmt.Errorf("record ticket sale: invalid media type %q", mediaType)
	}
	week, year := CurrentWeek(e.now())

	found, err := e.store.IncrementEntry(ctx, mediaID, week, year, delta)
	if err != nil {
		return fmt.Errorf("increment billboard entry: %w", err)
	}
	if !found {
		count, err := e.store.PartitionCount(ctx, week, year, mediaType)
		if err != nil {
			return fmt.Errorf("count billboard partition: %w", err)
		}
		entry := &model.BillboardEntry{
			MediaID:      mediaID,
			MediaType:    mediaType,
			Week:         week,
			Year:         year,
			TotalTickets: delta,
			Rank:         count + 1,
			LastUpdated:  e.now().UTC(),
		}
		if err := e.store.InsertEntry(ctx, entry); err != nil {
			return fmt.Errorf("insert billboard entry: %w", err)
		}
	}
	return e.Rerank(ctx, week, year, mediaType)
}

// Rerank fetches the partition ordered by descending ticket count and
// assigns dense ranks 1..N, persisting only rows whose rank actually
// changed.
func (e *Engine) Rerank(ctx context.Context, week, year int, mediaType model.MediaType) error {
	entries, err := e.store.ListPartition(ctx, week, year, mediaType)
	if err != nil {
		return fmt.Errorf("list billboard partition: %w", err)
	}
	for i, ent := range entries {
		want := i + 1
		if ent.Rank == want {
			continue
		}
		if err := e.store.UpdateRank(ctx, ent.ID, want); err != nil {
			return fmt.Errorf("update rank for entry %d: %w", ent.ID, err)
		}
	}
	return nil
}

// EnsureSeeded lazily populates an empty (week, year, type) partition
// from existing media ordered by total tickets, newest first on ties.
// It is idempotent: a non-empty partition is left untouched. An empty
// mediaType seeds both partitions, each with its own rank sequence.
func (e *Engine) EnsureSeeded(ctx context.Context, week, year int, mediaType model.MediaType) error {
	types := []model.MediaType{mediaType}
	if mediaType == "" {
		types = []model.MediaType{model.MediaTypeMovie, model.MediaTypeBook}
	}
	for _, mt := range types {
		count, err := e.store.PartitionCount(ctx, week, year, mt)
		if err != nil {
			return fmt.Errorf("count billboard partition: %w", err)
		}
		if count > 0 {
			continue
		}
		candidates, err := e.store.SeedCandidates(ctx, mt)
		if err != nil {
			return fmt.Errorf("load seed candidates: %w", err)
		}
		rank := 0
		for _, m := range candidates {
			if !m.Type.IsValid() {
				continue
			}
			rank++
			entry := &model.BillboardEntry{
				MediaID:      m.ID,
				MediaType:    m.Type,
				Week:         week,
				Year:         year,
				TotalTickets: m.TotalTickets,
				Rank:         rank,
				LastUpdated:  e.now().UTC(),
			}
			if err := e.store.InsertEntry(ctx, entry); err != nil {
				return fmt.Errorf("seed billboard entry: %w", err)
			}
		}
	}
	return nil
}

// GetCurrent returns the current week's board, seeding the partition
// first when it is empty, annotated for display. Revenue and popularity
// figures only consider venues whose availability flag is set.
func (e *Engine) GetCurrent(ctx context.Context, mediaType model.MediaType) ([]Entry, error) {
	week, year := CurrentWeek(e.now())
	if err := e.EnsureSeeded(ctx, week, year, mediaType); err != nil {
		return nil, err
	}
	entries, err := e.store.ListPartition(ctx, week, year, mediaType)
	if err != nil {
		return nil, fmt.Errorf("list billboard partition: %w", err)
	}
	if e.top > 0 && len(entries) > e.top {
		entries = entries[:e.top]
	}
	for i := range entries {
		if err := e.annotate(ctx, &entries[i]); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// GetByWeekYear is the bounded historical lookup: it validates the week
// range, never seeds, and returns an empty slice when the partition has
// no entries.
func (e *Engine) GetByWeekYear(ctx context.Context, week, year int, mediaType model.MediaType) ([]Entry, error) {
	if week < 1 || week > 52 {
		return nil, ErrInvalidWeek
	}
	entries, err := e.store.ListPartition(ctx, week, year, mediaType)
	if err != nil {
		return nil, fmt.Errorf("list billboard partition: %w", err)
	}
	return entries, nil
}

// RecordView bumps the media's view counter and makes sure the media
// has a current-week entry so first views create board presence. Both
// writes are plain increments/upserts and safe to retry if one of the
// two fails.
func (e *Engine) RecordView(ctx context.Context, mediaID uint64, mediaType model.MediaType) error {
	if err := e.store.IncrementViewCount(ctx, mediaID); err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	week, year := CurrentWeek(e.now())
	found, err := e.store.IncrementEntry(ctx, mediaID, week, year, 0)
	if err != nil {
		return fmt.Errorf("touch billboard entry: %w", err)
	}
	if !found && mediaType.IsValid() {
		count, err := e.store.PartitionCount(ctx, week, year, mediaType)
		if err != nil {
			return fmt.Errorf("count billboard partition: %w", err)
		}
		entry := &model.BillboardEntry{
			MediaID:     mediaID,
			MediaType:   mediaType,
			Week:        week,
			Year:        year,
			Rank:        count + 1,
			LastUpdated: e.now().UTC(),
		}
		if err := e.store.InsertEntry(ctx, entry); err != nil {
			return fmt.Errorf("insert billboard entry: %w", err)
		}
	}
	return nil
}

func (e *Engine) annotate(ctx context.Context, ent *Entry) error {
	switch ent.MediaType {
	case model.MediaTypeMovie:
		venue, err := e.store.FirstAvailableVenue(ctx, ent.MediaID)
		if err != nil {
			return fmt.Errorf("load venue for media %d: %w", ent.MediaID, err)
		}
		if venue != nil {
			revenue := float64(ent.TotalTickets) * venue.Price
			ent.TotalRevenue = &revenue
		}
	case model.MediaTypeBook:
		pop := ent.TotalTickets
		ent.Popularity = &pop
	}
	return nil
}
