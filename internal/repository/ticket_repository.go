package repository // repository for ticket purchase records

import (
	"context"      // context for managing deadlines
	"database/sql" // sql provides DB interfaces

	"github.com/mediatrack/media-billboard/internal/model"
)

// TicketRepo encapsulates database operations for tickets. Tickets are
// immutable once written; there are no update methods.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo constructs a TicketRepo given a DB handle.
func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

// InsertTx writes the purchase record inside the purchase transaction
// so the ticket only exists if the inventory decrement committed.
func (r *TicketRepo) InsertTx(ctx context.Context, tx *sql.Tx, t *model.Ticket) (uint64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO tickets (reference, user_id, media_id, venue_id, quantity, total_price, status, purchase_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Reference, t.UserID, t.MediaID, t.VenueID, t.Quantity, t.TotalPrice, string(t.Status), t.PurchaseDate,
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

// ListByUser returns a user's purchase history, newest first.
func (r *TicketRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, reference, user_id, media_id, venue_id, quantity, total_price, status, purchase_date
		FROM tickets
		WHERE user_id = ?
		ORDER BY purchase_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]model.Ticket, 0)
	for rows.Next() {
		var t model.Ticket
		var status string
		err := rows.Scan(
			&t.ID,
			&t.Reference,
			&t.UserID,
			&t.MediaID,
			&t.VenueID,
			&t.Quantity,
			&t.TotalPrice,
			&status,
			&t.PurchaseDate,
		)
		if err != nil {
			return nil, err
		}
		t.Status = model.TicketStatus(status)
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}
