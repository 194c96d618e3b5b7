package model

import "time"

// TicketStatus is the lifecycle state of a purchase record.
type TicketStatus string

const (
	TicketPending   TicketStatus = "pending"
	TicketCompleted TicketStatus = "completed"
	TicketCancelled TicketStatus = "cancelled"
)

// IsValid reports whether the status is a known value.
func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketPending, TicketCompleted, TicketCancelled:
		return true
	}
	return false
}

// Ticket is an immutable purchase record as stored in the `tickets`
// table. TotalPrice captures venue price × quantity at purchase time so
// later venue price changes do not rewrite history. Reference is a uuid
// handed back to the client as a receipt identifier.
type Ticket struct {
	ID           uint64       // tickets.id
	Reference    string       // tickets.reference (uuid)
	UserID       uint64       // tickets.user_id
	MediaID      uint64       // tickets.media_id
	VenueID      uint64       // tickets.venue_id
	Quantity     int          // tickets.quantity
	TotalPrice   float64      // tickets.total_price
	Status       TicketStatus // tickets.status
	PurchaseDate time.Time    // tickets.purchase_date
}
