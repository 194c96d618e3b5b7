package repository // repository for venue persistence

import (
	"context"      // context for managing deadlines
	"database/sql" // sql provides DB interfaces
	"errors"

	"github.com/mediatrack/media-billboard/internal/model"
)

const venueColumns = `id, name, type, location, price, capacity, available_seats, book_stock, is_available, created_at`

// prefixedVenueColumns returns the venue column list qualified with a
// table alias for use in joins.
func prefixedVenueColumns(alias string) string {
	return alias + ".id, " + alias + ".name, " + alias + ".type, " + alias + ".location, " +
		alias + ".price, " + alias + ".capacity, " + alias + ".available_seats, " +
		alias + ".book_stock, " + alias + ".is_available, " + alias + ".created_at"
}

// VenueRepo encapsulates database operations for venues, including the
// inventory decrements used by ticket purchases.
type VenueRepo struct {
	db *sql.DB
}

// NewVenueRepo constructs a VenueRepo given a DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// Create inserts a venue and returns its new ID.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) (uint64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO venues (name, type, location, price, capacity, available_seats, book_stock, is_available)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.Name, string(v.Type), v.Location, v.Price, v.Capacity, v.AvailableSeats, v.BookStock, v.IsAvailable,
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

// GetByID fetches a venue by primary key. Returns ErrVenueNotFound when
// the id is unknown.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ?`, id)
	v, err := scanVenue(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// GetByIDTx is GetByID inside an open transaction, locking the row so a
// concurrent purchase cannot pass the availability check against state
// this transaction is about to change.
func (r *VenueRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Venue, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+venueColumns+` FROM venues WHERE id = ? FOR UPDATE`, id)
	v, err := scanVenue(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return v, nil
}

// IsAttached reports whether the venue is linked to the media item.
func (r *VenueRepo) IsAttached(ctx context.Context, mediaID, venueID uint64) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM media_venues WHERE media_id = ? AND venue_id = ?`,
		mediaID, venueID,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DecrementSeatsTx takes quantity seats from a cinema venue. The WHERE
// guard makes the decrement conditional: when the venue no longer holds
// enough seats the statement matches nothing and the purchase aborts
// with ErrInsufficientInventory.
func (r *VenueRepo) DecrementSeatsTx(ctx context.Context, tx *sql.Tx, id uint64, qty int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE venues
		SET available_seats = available_seats - ?
		WHERE id = ? AND type = 'cinema' AND available_seats >= ?`,
		qty, id, qty,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrInsufficientInventory
	}
	return nil
}

// DecrementStockTx takes quantity copies from a bookstore venue, with
// the same conditional guard as DecrementSeatsTx.
func (r *VenueRepo) DecrementStockTx(ctx context.Context, tx *sql.Tx, id uint64, qty int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE venues
		SET book_stock = book_stock - ?
		WHERE id = ? AND type = 'bookstore' AND book_stock >= ?`,
		qty, id, qty,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrInsufficientInventory
	}
	return nil
}

func scanVenue(row rowScanner) (*model.Venue, error) {
	var v model.Venue
	var typ string
	err := row.Scan(
		&v.ID,
		&v.Name,
		&typ,
		&v.Location,
		&v.Price,
		&v.Capacity,
		&v.AvailableSeats,
		&v.BookStock,
		&v.IsAvailable,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Type = model.VenueType(typ)
	return &v, nil
}

// scanVenueWith scans a join row of (media_id, venue columns).
func scanVenueWith(row rowScanner, mediaID *uint64, v *model.Venue) error {
	var typ string
	err := row.Scan(
		mediaID,
		&v.ID,
		&v.Name,
		&typ,
		&v.Location,
		&v.Price,
		&v.Capacity,
		&v.AvailableSeats,
		&v.BookStock,
		&v.IsAvailable,
		&v.CreatedAt,
	)
	if err != nil {
		return err
	}
	v.Type = model.VenueType(typ)
	return nil
}
