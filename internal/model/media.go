package model

import "time"

// MediaType distinguishes the two kinds of tracked media.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeBook  MediaType = "book"
)

// IsValid reports whether the media type is a known value.
func (t MediaType) IsValid() bool {
	switch t {
	case MediaTypeMovie, MediaTypeBook:
		return true
	}
	return false
}

// MediaStatus tracks where an item sits in the user's consumption flow.
type MediaStatus string

const (
	StatusPlan      MediaStatus = "plan"
	StatusWatched   MediaStatus = "watched"
	StatusRead      MediaStatus = "read"
	StatusCompleted MediaStatus = "completed"
)

// IsValid reports whether the status is a known value.
func (s MediaStatus) IsValid() bool {
	switch s {
	case StatusPlan, StatusWatched, StatusRead, StatusCompleted:
		return true
	}
	return false
}

// AllowsRating reports whether an item in this status may carry a rating.
// Only consumed items (watched, read, completed) can be rated.
func (s MediaStatus) AllowsRating() bool {
	switch s {
	case StatusWatched, StatusRead, StatusCompleted:
		return true
	}
	return false
}

// AgeCategory is the coarse content rating tier gating visibility and
// write access. "all" is the least restrictive tier and is only visible
// to adult accounts alongside every other tier.
type AgeCategory string

const (
	CategoryAll   AgeCategory = "all"
	CategoryKids  AgeCategory = "kids"
	CategoryTeen  AgeCategory = "teen"
	CategoryAdult AgeCategory = "adult"
)

// IsValid reports whether the category is a known value.
func (a AgeCategory) IsValid() bool {
	switch a {
	case CategoryAll, CategoryKids, CategoryTeen, CategoryAdult:
		return true
	}
	return false
}

// Genre is the single genre label attached to a media item.
type Genre string

const (
	GenreComedy      Genre = "comedy"
	GenreRomance     Genre = "romance"
	GenreAction      Genre = "action"
	GenreAdult       Genre = "adult"
	GenreHorror      Genre = "horror"
	GenreDrama       Genre = "drama"
	GenreThriller    Genre = "thriller"
	GenreDocumentary Genre = "documentary"
	GenreFantasy     Genre = "fantasy"
	GenreMystery     Genre = "mystery"
)

// IsValid reports whether the genre is a known value.
func (g Genre) IsValid() bool {
	switch g {
	case GenreComedy, GenreRomance, GenreAction, GenreAdult, GenreHorror,
		GenreDrama, GenreThriller, GenreDocumentary, GenreFantasy, GenreMystery:
		return true
	}
	return false
}

// Media represents a tracked movie or book as stored in the `media`
// table. Exactly one of Duration (movies, minutes) or PageCount (books)
// is populated, matching Type. Rating is optional and only valid when
// Status allows it (see MediaStatus.AllowsRating).
//
// Venues holds the venues attached to this item, resolved through the
// media_venues join table; it is populated by the repository on reads
// that request it and is nil otherwise.
type Media struct {
	ID           uint64      // media.id
	Title        string      // media.title
	Type         MediaType   // media.type
	Status       MediaStatus // media.status
	AgeCategory  AgeCategory // media.age_category
	Genre        Genre       // media.genre
	Rating       *int        // media.rating (nullable, 1..5)
	Review       *string     // media.review (nullable)
	Duration     *int        // media.duration_minutes (movies only)
	PageCount    *int        // media.page_count (books only)
	ReleaseDate  *time.Time  // media.release_date (nullable)
	ImageURL     *string     // media.image_url (nullable)
	ViewCount    uint64      // media.view_count
	TotalTickets uint64      // media.total_tickets
	CreatedAt    time.Time   // media.created_at
	UpdatedAt    time.Time   // media.updated_at

	Venues []Venue // resolved from media_venues; nil when not requested
}

// Validate checks the cross-field invariants that cannot be expressed as
// column constraints: enum membership, the rating/status rule and the
// type-specific length field. It returns a human-readable reason when a
// rule is violated, suitable for a 400 response.
func (m *Media) Validate() (string, bool) {
	if m.Title == "" || len(m.Title) > 100 {
		return "title is required and must be at most 100 characters", false
	}
	if !m.Type.IsValid() {
		return "type must be either 'movie' or 'book'", false
	}
	if !m.Status.IsValid() {
		return "status must be one of 'plan', 'watched', 'read', 'completed'", false
	}
	if !m.AgeCategory.IsValid() {
		return "valid age category is required (all, kids, teen, adult)", false
	}
	if m.Genre != "" && !m.Genre.IsValid() {
		return "unknown genre", false
	}
	if m.Rating != nil {
		if *m.Rating < 1 || *m.Rating > 5 {
			return "rating must be between 1 and 5", false
		}
		if !m.Status.AllowsRating() {
			return "rating can only be set for watched/read/completed items", false
		}
	}
	if m.Review != nil && len(*m.Review) > 1000 {
		return "review must be at most 1000 characters", false
	}
	// Exactly one of duration/page_count is populated, matching the type.
	switch m.Type {
	case MediaTypeMovie:
		if m.PageCount != nil {
			return "page_count is not valid for movies", false
		}
		if m.Duration == nil || *m.Duration <= 0 {
			return "duration must be a positive number of minutes", false
		}
	case MediaTypeBook:
		if m.Duration != nil {
			return "duration is not valid for books", false
		}
		if m.PageCount == nil || *m.PageCount <= 0 {
			return "page_count must be a positive number of pages", false
		}
	}
	return "", true
}
