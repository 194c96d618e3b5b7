package model

import "time"

// BillboardEntry is one row of the weekly popularity ranking as stored
// in the `billboard_entries` table. Identity is (MediaID, Week, Year);
// MediaType is stored redundantly so a partition can be filtered without
// joining media. Rank is 1-based and dense, assigned by descending
// TotalTickets within the same (week, year, mediaType) partition.
type BillboardEntry struct {
	ID           uint64    // billboard_entries.id
	MediaID      uint64    // billboard_entries.media_id
	MediaType    MediaType // billboard_entries.media_type
	Week         int       // billboard_entries.week
	Year         int       // billboard_entries.year
	TotalTickets uint64    // billboard_entries.total_tickets
	Rank         int       // billboard_entries.rank
	LastUpdated  time.Time // billboard_entries.last_updated
}
