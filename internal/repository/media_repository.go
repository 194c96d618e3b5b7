package repository // repository for media persistence

import (
	"context"      // context for managing deadlines
	"database/sql" // sql provides DB interfaces
	"errors"
	"strings"
	"time"

	"github.com/mediatrack/media-billboard/internal/model"
)

const mediaColumns = `id, title, type, status, age_category, genre, rating, review,
	duration_minutes, page_count, release_date, image_url, view_count, total_tickets,
	created_at, updated_at`

// MediaRepo encapsulates database operations for media items and their
// venue attachments.
type MediaRepo struct {
	db *sql.DB
}

// NewMediaRepo constructs a MediaRepo given a DB handle.
func NewMediaRepo(db *sql.DB) *MediaRepo {
	return &MediaRepo{db: db}
}

// DB exposes the underlying handle so callers can open transactions
// that span media, venue and ticket tables.
func (r *MediaRepo) DB() *sql.DB { return r.db }

// Create inserts a media item and returns its new ID. Timestamps
// default in the database.
func (r *MediaRepo) Create(ctx context.Context, m *model.Media) (uint64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO media (title, type, status, age_category, genre, rating, review,
			duration_minutes, page_count, release_date, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Title, string(m.Type), string(m.Status), string(m.AgeCategory), nullGenre(m.Genre),
		m.Rating, m.Review, m.Duration, m.PageCount, m.ReleaseDate, m.ImageURL,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a media item with its venues resolved. Returns
// ErrMediaNotFound when the id is unknown.
func (r *MediaRepo) GetByID(ctx context.Context, id uint64) (*model.Media, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = ?`, id)
	m, err := scanMedia(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, err
	}
	if err := r.populateVenues(ctx, []*model.Media{m}); err != nil {
		return nil, err
	}
	return m, nil
}

// List returns media restricted to the given category set, newest
// first, with venues resolved. An empty set returns nothing rather than
// everything so a misconfigured identity cannot widen visibility.
func (r *MediaRepo) List(ctx context.Context, allowed []model.AgeCategory) ([]*model.Media, error) {
	return r.query(ctx, "", "", allowed)
}

// Filter returns media of one type restricted to the category set.
func (r *MediaRepo) Filter(ctx context.Context, mediaType model.MediaType, allowed []model.AgeCategory) ([]*model.Media, error) {
	return r.query(ctx, mediaType, "", allowed)
}

// Search performs a case-insensitive text lookup over title and review
// within the category set.
func (r *MediaRepo) Search(ctx context.Context, q string, allowed []model.AgeCategory) ([]*model.Media, error) {
	return r.query(ctx, "", q, allowed)
}

func (r *MediaRepo) query(ctx context.Context, mediaType model.MediaType, search string, allowed []model.AgeCategory) ([]*model.Media, error) {
	if len(allowed) == 0 {
		return []*model.Media{}, nil
	}
	where := []string{}
	args := []interface{}{}

	marks := make([]string, len(allowed))
	for i, cat := range allowed {
		marks[i] = "?"
		args = append(args, string(cat))
	}
	where = append(where, "age_category IN ("+strings.Join(marks, ", ")+")")

	if mediaType != "" {
		where = append(where, "type = ?")
		args = append(args, string(mediaType))
	}
	if search != "" {
		where = append(where, "(LOWER(title) LIKE ? OR LOWER(COALESCE(review, '')) LIKE ?)")
		needle := "%" + strings.ToLower(search) + "%"
		args = append(args, needle, needle)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+mediaColumns+` FROM media
		WHERE `+strings.Join(where, " AND ")+`
		ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*model.Media, 0)
	for rows.Next() {
		m, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.populateVenues(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Update rewrites the mutable columns of a media item. Callers load the
// row, merge the changed fields and validate the whole record first so
// cross-field invariants hold on the stored result.
func (r *MediaRepo) Update(ctx context.Context, m *model.Media) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE media
		SET title = ?, type = ?, status = ?, age_category = ?, genre = ?, rating = ?,
			review = ?, duration_minutes = ?, page_count = ?, release_date = ?,
			image_url = ?, updated_at = ?
		WHERE id = ?`,
		m.Title, string(m.Type), string(m.Status), string(m.AgeCategory), nullGenre(m.Genre),
		m.Rating, m.Review, m.Duration, m.PageCount, m.ReleaseDate, m.ImageURL,
		time.Now().UTC(), m.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMediaNotFound
	}
	return nil
}

// Delete removes a media item along with its venue attachments and
// billboard entries.
func (r *MediaRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM media_venues WHERE media_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM billboard_entries WHERE media_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM media WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMediaNotFound
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// AttachVenue links a venue to a media item. The insert is idempotent
// so attaching the same venue twice is not an error.
func (r *MediaRepo) AttachVenue(ctx context.Context, mediaID, venueID uint64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT IGNORE INTO media_venues (media_id, venue_id) VALUES (?, ?)`,
		mediaID, venueID,
	)
	return err
}

// IncrementTotalTicketsTx bumps the media's running ticket total inside
// the purchase transaction.
func (r *MediaRepo) IncrementTotalTicketsTx(ctx context.Context, tx *sql.Tx, id uint64, qty int) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE media SET total_tickets = total_tickets + ?, updated_at = ? WHERE id = ?`,
		qty, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMediaNotFound
	}
	return nil
}

// populateVenues resolves the media_venues attachments for a batch of
// items in one query.
func (r *MediaRepo) populateVenues(ctx context.Context, items []*model.Media) error {
	if len(items) == 0 {
		return nil
	}
	byID := make(map[uint64]*model.Media, len(items))
	marks := make([]string, 0, len(items))
	args := make([]interface{}, 0, len(items))
	for _, m := range items {
		byID[m.ID] = m
		m.Venues = []model.Venue{}
		marks = append(marks, "?")
		args = append(args, m.ID)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT mv.media_id, `+prefixedVenueColumns("v")+`
		FROM media_venues mv
		JOIN venues v ON v.id = mv.venue_id
		WHERE mv.media_id IN (`+strings.Join(marks, ", ")+`)
		ORDER BY mv.media_id, v.id`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var mediaID uint64
		var v model.Venue
		if err := scanVenueWith(rows, &mediaID, &v); err != nil {
			return err
		}
		if m, ok := byID[mediaID]; ok {
			m.Venues = append(m.Venues, v)
		}
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMedia(row rowScanner) (*model.Media, error) {
	var m model.Media
	var typ, status, cat string
	var genre sql.NullString
	err := row.Scan(
		&m.ID,
		&m.Title,
		&typ,
		&status,
		&cat,
		&genre,
		&m.Rating,
		&m.Review,
		&m.Duration,
		&m.PageCount,
		&m.ReleaseDate,
		&m.ImageURL,
		&m.ViewCount,
		&m.TotalTickets,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Type = model.MediaType(typ)
	m.Status = model.MediaStatus(status)
	m.AgeCategory = model.AgeCategory(cat)
	if genre.Valid {
		m.Genre = model.Genre(genre.String)
	}
	return &m, nil
}

func nullGenre(g model.Genre) interface{} {
	if g == "" {
		return nil
	}
	return string(g)
}
