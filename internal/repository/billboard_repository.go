package repository // repository backing the billboard engine

import (
	"context"      // context for managing deadlines
	"database/sql" // sql provides DB interfaces
	"errors"
	"time"

	"github.com/mediatrack/media-billboard/internal/billboard"
	"github.com/mediatrack/media-billboard/internal/model"
)

// BillboardRepo implements billboard.Store over MySQL. It owns the
// billboard_entries table and the read-only media/venue queries the
// engine needs for seeding and revenue annotation.
type BillboardRepo struct {
	db *sql.DB
}

// NewBillboardRepo constructs a BillboardRepo given a DB handle.
func NewBillboardRepo(db *sql.DB) *BillboardRepo {
	return &BillboardRepo{db: db}
}

var _ billboard.Store = (*BillboardRepo)(nil)

// IncrementEntry adds delta tickets to the (media, week, year) entry.
// The bool result reports whether a row existed; the engine inserts one
// when it did not.
func (r *BillboardRepo) IncrementEntry(ctx context.Context, mediaID uint64, week, year int, delta uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE billboard_entries
		SET total_tickets = total_tickets + ?, last_updated = ?
		WHERE media_id = ? AND week = ? AND year = ?`,
		delta, time.Now().UTC(), mediaID, week, year,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// InsertEntry writes a new billboard row.
func (r *BillboardRepo) InsertEntry(ctx context.Context, e *model.BillboardEntry) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO billboard_entries (media_id, media_type, week, year, total_tickets, `+"`rank`"+`, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.MediaID, string(e.MediaType), e.Week, e.Year, e.TotalTickets, e.Rank, e.LastUpdated,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// PartitionCount counts entries in a (week, year, type) partition.
func (r *BillboardRepo) PartitionCount(ctx context.Context, week, year int, mediaType model.MediaType) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM billboard_entries
		WHERE week = ? AND year = ? AND media_type = ?`,
		week, year, string(mediaType),
	).Scan(&n)
	return n, err
}

// ListPartition returns the entries of a partition joined with their
// media title, ordered by descending ticket count (rank order input).
// An empty media type spans both types.
func (r *BillboardRepo) ListPartition(ctx context.Context, week, year int, mediaType model.MediaType) ([]billboard.Entry, error) {
	query := `
		SELECT b.id, b.media_id, b.media_type, b.week, b.year, b.total_tickets, b.` + "`rank`" + `, b.last_updated, m.title
		FROM billboard_entries b
		JOIN media m ON m.id = b.media_id
		WHERE b.week = ? AND b.year = ?`
	args := []interface{}{week, year}
	if mediaType != "" {
		query += ` AND b.media_type = ?`
		args = append(args, string(mediaType))
	}
	query += ` ORDER BY b.total_tickets DESC, b.media_id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]billboard.Entry, 0)
	for rows.Next() {
		var e billboard.Entry
		var mt string
		err := rows.Scan(
			&e.ID,
			&e.MediaID,
			&mt,
			&e.Week,
			&e.Year,
			&e.TotalTickets,
			&e.Rank,
			&e.LastUpdated,
			&e.MediaTitle,
		)
		if err != nil {
			return nil, err
		}
		e.MediaType = model.MediaType(mt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateRank persists a recomputed rank for one entry.
func (r *BillboardRepo) UpdateRank(ctx context.Context, entryID uint64, rank int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE billboard_entries SET `+"`rank`"+` = ?, last_updated = ? WHERE id = ?`,
		rank, time.Now().UTC(), entryID,
	)
	return err
}

// SeedCandidates returns media eligible for lazy seeding, ordered by
// total tickets descending with newer items winning ties. The type
// filter is optional.
func (r *BillboardRepo) SeedCandidates(ctx context.Context, mediaType model.MediaType) ([]model.Media, error) {
	query := `
		SELECT id, title, type, total_tickets, created_at
		FROM media
		WHERE type IN ('movie', 'book')`
	args := []interface{}{}
	if mediaType != "" {
		query = `
		SELECT id, title, type, total_tickets, created_at
		FROM media
		WHERE type = ?`
		args = append(args, string(mediaType))
	}
	query += ` ORDER BY total_tickets DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Media, 0)
	for rows.Next() {
		var m model.Media
		var typ string
		if err := rows.Scan(&m.ID, &m.Title, &typ, &m.TotalTickets, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Type = model.MediaType(typ)
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FirstAvailableVenue returns the first available venue attached to the
// media item, or nil when it has none. Used for revenue annotation.
func (r *BillboardRepo) FirstAvailableVenue(ctx context.Context, mediaID uint64) (*model.Venue, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+prefixedVenueColumns("v")+`
		FROM media_venues mv
		JOIN venues v ON v.id = mv.venue_id
		WHERE mv.media_id = ? AND v.is_available = 1
		ORDER BY v.id ASC
		LIMIT 1`, mediaID)
	v, err := scanVenue(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

// IncrementViewCount bumps the media's view counter.
func (r *BillboardRepo) IncrementViewCount(ctx context.Context, mediaID uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE media SET view_count = view_count + 1 WHERE id = ?`,
		mediaID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMediaNotFound
	}
	return nil
}
