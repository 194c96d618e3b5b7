// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// TicketPurchasedEvent is published after a ticket purchase commits.
// It contains enough information for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type TicketPurchasedEvent struct {
	TicketID    uint64  `json:"ticket_id"`
	Reference   string  `json:"reference"`
	UserID      uint64  `json:"user_id"`
	MediaID     uint64  `json:"media_id"`
	MediaTitle  string  `json:"media_title"`
	MediaType   string  `json:"media_type"`
	VenueID     uint64  `json:"venue_id"`
	VenueName   string  `json:"venue_name"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"total_price"`
	PurchasedAt string  `json:"purchased_at"`
}
