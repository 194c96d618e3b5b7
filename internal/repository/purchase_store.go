package repository // transactional store behind the ticket purchase flow

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mediatrack/media-billboard/internal/model"
)

// Tx is the transaction handle the purchase flow runs under. *sql.Tx
// satisfies it directly; test fakes provide their own.
type Tx interface {
	Commit() error
	Rollback() error
}

// PurchaseStore bundles the repositories a ticket purchase touches
// behind one transactional surface. It satisfies the service layer's
// store interface.
type PurchaseStore struct {
	db      *sql.DB
	media   *MediaRepo
	venues  *VenueRepo
	tickets *TicketRepo
}

// NewPurchaseStore constructs a PurchaseStore over one DB handle.
func NewPurchaseStore(db *sql.DB, media *MediaRepo, venues *VenueRepo, tickets *TicketRepo) *PurchaseStore {
	return &PurchaseStore{db: db, media: media, venues: venues, tickets: tickets}
}

// Begin opens the purchase transaction.
func (s *PurchaseStore) Begin(ctx context.Context) (Tx, error) {
	return s.db.BeginTx(ctx, nil)
}

// MediaByID loads the media item being purchased.
func (s *PurchaseStore) MediaByID(ctx context.Context, id uint64) (*model.Media, error) {
	return s.media.GetByID(ctx, id)
}

// VenueAttached reports whether the venue is linked to the media item.
func (s *PurchaseStore) VenueAttached(ctx context.Context, mediaID, venueID uint64) (bool, error) {
	return s.venues.IsAttached(ctx, mediaID, venueID)
}

// VenueForUpdate locks and loads the venue row inside the transaction.
func (s *PurchaseStore) VenueForUpdate(ctx context.Context, tx Tx, venueID uint64) (*model.Venue, error) {
	sqlTx, err := asSQLTx(tx)
	if err != nil {
		return nil, err
	}
	return s.venues.GetByIDTx(ctx, sqlTx, venueID)
}

// DecrementSeats conditionally takes seats from a cinema venue.
func (s *PurchaseStore) DecrementSeats(ctx context.Context, tx Tx, venueID uint64, qty int) error {
	sqlTx, err := asSQLTx(tx)
	if err != nil {
		return err
	}
	return s.venues.DecrementSeatsTx(ctx, sqlTx, venueID, qty)
}

// DecrementStock conditionally takes stock from a bookstore venue.
func (s *PurchaseStore) DecrementStock(ctx context.Context, tx Tx, venueID uint64, qty int) error {
	sqlTx, err := asSQLTx(tx)
	if err != nil {
		return err
	}
	return s.venues.DecrementStockTx(ctx, sqlTx, venueID, qty)
}

// InsertTicket writes the purchase record inside the transaction.
func (s *PurchaseStore) InsertTicket(ctx context.Context, tx Tx, t *model.Ticket) (uint64, error) {
	sqlTx, err := asSQLTx(tx)
	if err != nil {
		return 0, err
	}
	return s.tickets.InsertTx(ctx, sqlTx, t)
}

// IncrementMediaTickets bumps the media's running total inside the
// transaction.
func (s *PurchaseStore) IncrementMediaTickets(ctx context.Context, tx Tx, mediaID uint64, qty int) error {
	sqlTx, err := asSQLTx(tx)
	if err != nil {
		return err
	}
	return s.media.IncrementTotalTicketsTx(ctx, sqlTx, mediaID, qty)
}

func asSQLTx(tx Tx) (*sql.Tx, error) {
	sqlTx, ok := tx.(*sql.Tx)
	if !ok {
		return nil, fmt.Errorf("unexpected transaction type %T", tx)
	}
	return sqlTx, nil
}
