package model

import "time"

// VenueType distinguishes the two kinds of purchase points.
type VenueType string

const (
	VenueCinema    VenueType = "cinema"
	VenueBookstore VenueType = "bookstore"
)

// IsValid reports whether the venue type is a known value.
func (t VenueType) IsValid() bool {
	switch t {
	case VenueCinema, VenueBookstore:
		return true
	}
	return false
}

// Venue represents a purchasable point of availability for a media item
// as stored in the `venues` table. The capacity model is mutually
// exclusive per type: cinemas track Capacity/AvailableSeats, bookstores
// track BookStock; the unused columns stay NULL. Venues are attached to
// media through the media_venues join table and are not owned
// exclusively by any single item.
type Venue struct {
	ID             uint64    // venues.id
	Name           string    // venues.name
	Type           VenueType // venues.type
	Location       string    // venues.location
	Price          float64   // venues.price
	Capacity       *int      // venues.capacity (cinema only)
	AvailableSeats *int      // venues.available_seats (cinema only)
	BookStock      *int      // venues.book_stock (bookstore only)
	IsAvailable    bool      // venues.is_available
	CreatedAt      time.Time // venues.created_at
}

// Remaining returns the sellable inventory for the venue's type.
func (v *Venue) Remaining() int {
	switch v.Type {
	case VenueCinema:
		if v.AvailableSeats != nil {
			return *v.AvailableSeats
		}
	case VenueBookstore:
		if v.BookStock != nil {
			return *v.BookStock
		}
	}
	return 0
}

// Validate checks the venue's cross-field invariants: enum membership,
// positive pricing and the mutually exclusive capacity model.
func (v *Venue) Validate() (string, bool) {
	if v.Name == "" {
		return "venue name is required", false
	}
	if !v.Type.IsValid() {
		return "venue type must be either 'cinema' or 'bookstore'", false
	}
	if v.Location == "" {
		return "venue location is required", false
	}
	if v.Price < 0 {
		return "venue price must not be negative", false
	}
	switch v.Type {
	case VenueCinema:
		if v.BookStock != nil {
			return "book_stock is not valid for cinemas", false
		}
		if v.Capacity == nil || *v.Capacity <= 0 {
			return "capacity must be a positive number for cinemas", false
		}
		if v.AvailableSeats == nil || *v.AvailableSeats < 0 || *v.AvailableSeats > *v.Capacity {
			return "available_seats must be between 0 and capacity", false
		}
	case VenueBookstore:
		if v.Capacity != nil || v.AvailableSeats != nil {
			return "capacity fields are not valid for bookstores", false
		}
		if v.BookStock == nil || *v.BookStock < 0 {
			return "book_stock must be zero or a positive number", false
		}
	}
	return "", true
}
