package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mediatrack/media-billboard/internal/billboard"
	"github.com/mediatrack/media-billboard/internal/model"
	"github.com/mediatrack/media-billboard/internal/queue"
	"github.com/mediatrack/media-billboard/internal/repository"
	"github.com/mediatrack/media-billboard/pkg/logger"
)

// ErrInvalidQuantity is returned for purchase requests with a quantity
// below one.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// PurchaseStore is the persistence surface the ticket service needs.
// The production implementation wraps the SQL repositories (see
// repository.NewPurchaseStore); tests substitute an in-memory fake.
// All mutating methods run inside the transaction so a failed step
// leaves no partial decrement and no ticket.
type PurchaseStore interface {
	Begin(ctx context.Context) (repository.Tx, error)
	MediaByID(ctx context.Context, id uint64) (*model.Media, error)
	VenueAttached(ctx context.Context, mediaID, venueID uint64) (bool, error)
	VenueForUpdate(ctx context.Context, tx repository.Tx, venueID uint64) (*model.Venue, error)
	DecrementSeats(ctx context.Context, tx repository.Tx, venueID uint64, qty int) error
	DecrementStock(ctx context.Context, tx repository.Tx, venueID uint64, qty int) error
	InsertTicket(ctx context.Context, tx repository.Tx, t *model.Ticket) (uint64, error)
	IncrementMediaTickets(ctx context.Context, tx repository.Tx, mediaID uint64, qty int) error
}

var _ PurchaseStore = (*repository.PurchaseStore)(nil)

// Publisher announces a completed purchase to the broker. Failures are
// advisory; the purchase has already committed when it runs.
type Publisher func(ctx context.Context, event queue.TicketPurchasedEvent) error

// TicketService coordinates the purchase transaction, the billboard
// counter update and the purchase event publish.
type TicketService struct {
	store   PurchaseStore
	board   *billboard.Engine
	publish Publisher
	log     *zap.Logger
}

// NewTicketService constructs a TicketService. publish may be nil when
// no broker is configured.
func NewTicketService(store PurchaseStore, board *billboard.Engine, publish Publisher) *TicketService {
	return &TicketService{
		store:   store,
		board:   board,
		publish: publish,
		log:     logger.WithComponent("ticket-service"),
	}
}

// Purchase buys quantity tickets for a media item at one of its venues.
//
// Inside a single transaction it locks the venue row, verifies
// availability, conditionally decrements the venue's inventory (seats
// for cinemas, stock for bookstores), writes the immutable ticket and
// bumps the media's running total. Any failure rolls the whole
// transaction back. After commit the billboard counter is updated and a
// ticket.purchased event is published; both are advisory and do not
// undo a committed purchase.
func (s *TicketService) Purchase(ctx context.Context, userID, mediaID, venueID uint64, quantity int) (*model.Ticket, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	media, err := s.store.MediaByID(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	attached, err := s.store.VenueAttached(ctx, mediaID, venueID)
	if err != nil {
		return nil, err
	}
	if !attached {
		return nil, repository.ErrVenueNotAttached
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin purchase: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	venue, err := s.store.VenueForUpdate(ctx, tx, venueID)
	if err != nil {
		return nil, err
	}
	if !venue.IsAvailable {
		return nil, repository.ErrVenueUnavailable
	}

	switch venue.Type {
	case model.VenueCinema:
		err = s.store.DecrementSeats(ctx, tx, venueID, quantity)
	case model.VenueBookstore:
		err = s.store.DecrementStock(ctx, tx, venueID, quantity)
	default:
		err = fmt.Errorf("unknown venue type %q", venue.Type)
	}
	if err != nil {
		return nil, err
	}

	ticket := &model.Ticket{
		Reference:    uuid.NewString(),
		UserID:       userID,
		MediaID:      mediaID,
		VenueID:      venueID,
		Quantity:     quantity,
		TotalPrice:   venue.Price * float64(quantity),
		Status:       model.TicketCompleted,
		PurchaseDate: time.Now().UTC(),
	}
	id, err := s.store.InsertTicket(ctx, tx, ticket)
	if err != nil {
		return nil, err
	}
	ticket.ID = id

	if err := s.store.IncrementMediaTickets(ctx, tx, mediaID, quantity); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit purchase: %w", err)
	}
	committed = true

	// Ranking is advisory display state; a failed counter update is
	// logged but does not fail the already-committed purchase.
	if err := s.board.RecordTicketSale(ctx, mediaID, media.Type, uint64(quantity)); err != nil {
		s.log.Error("billboard update failed", zap.Uint64("media_id", mediaID), zap.Error(err))
	}

	if s.publish != nil {
		_ = s.publish(ctx, queue.TicketPurchasedEvent{
			TicketID:    ticket.ID,
			Reference:   ticket.Reference,
			UserID:      userID,
			MediaID:     mediaID,
			MediaTitle:  media.Title,
			MediaType:   string(media.Type),
			VenueID:     venueID,
			VenueName:   venue.Name,
			Quantity:    quantity,
			TotalPrice:  ticket.TotalPrice,
			PurchasedAt: ticket.PurchaseDate.Format(time.RFC3339),
		})
	}

	return ticket, nil
}
