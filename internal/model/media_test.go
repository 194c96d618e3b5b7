package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func validMovie() Media {
	return Media{
		Title:       "a movie",
		Type:        MediaTypeMovie,
		Status:      StatusPlan,
		AgeCategory: CategoryTeen,
		Duration:    intPtr(120),
	}
}

func validBook() Media {
	return Media{
		Title:       "a book",
		Type:        MediaTypeBook,
		Status:      StatusRead,
		AgeCategory: CategoryAll,
		PageCount:   intPtr(300),
	}
}

func TestMediaValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(m *Media)
		ok     bool
	}{
		{"valid movie", func(m *Media) {}, true},
		{"empty title", func(m *Media) { m.Title = "" }, false},
		{"title too long", func(m *Media) { m.Title = strings.Repeat("x", 101) }, false},
		{"title at limit", func(m *Media) { m.Title = strings.Repeat("x", 100) }, true},
		{"unknown type", func(m *Media) { m.Type = "podcast" }, false},
		{"unknown status", func(m *Media) { m.Status = "paused" }, false},
		{"unknown category", func(m *Media) { m.AgeCategory = "everyone" }, false},
		{"unknown genre", func(m *Media) { m.Genre = "noir" }, false},
		{"known genre", func(m *Media) { m.Genre = GenreThriller }, true},
		{"rating on planned item", func(m *Media) { m.Rating = intPtr(4) }, false},
		{"rating on watched item", func(m *Media) { m.Status = StatusWatched; m.Rating = intPtr(4) }, true},
		{"rating too low", func(m *Media) { m.Status = StatusWatched; m.Rating = intPtr(0) }, false},
		{"rating too high", func(m *Media) { m.Status = StatusWatched; m.Rating = intPtr(6) }, false},
		{"review too long", func(m *Media) { m.Review = strPtr(strings.Repeat("x", 1001)) }, false},
		{"review at limit", func(m *Media) { m.Review = strPtr(strings.Repeat("x", 1000)) }, true},
		{"movie without duration", func(m *Media) { m.Duration = nil }, false},
		{"movie with zero duration", func(m *Media) { m.Duration = intPtr(0) }, false},
		{"movie with page count", func(m *Media) { m.PageCount = intPtr(100) }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := validMovie()
			tc.mutate(&m)
			msg, ok := m.Validate()
			assert.Equal(t, tc.ok, ok, msg)
		})
	}
}

func TestMediaValidateBook(t *testing.T) {
	b := validBook()
	if msg, ok := b.Validate(); !ok {
		t.Fatalf("expected valid book: %s", msg)
	}

	noPages := validBook()
	noPages.PageCount = nil
	_, ok := noPages.Validate()
	assert.False(t, ok)

	withDuration := validBook()
	withDuration.Duration = intPtr(90)
	_, ok = withDuration.Validate()
	assert.False(t, ok)
}

func TestVenueValidate(t *testing.T) {
	capacity := 50
	seats := 40
	stock := 12

	cinema := Venue{
		Name: "main hall", Type: VenueCinema, Location: "downtown",
		Price: 10, Capacity: &capacity, AvailableSeats: &seats,
	}
	if msg, ok := cinema.Validate(); !ok {
		t.Fatalf("expected valid cinema: %s", msg)
	}

	bookstore := Venue{
		Name: "corner shop", Type: VenueBookstore, Location: "uptown",
		Price: 15, BookStock: &stock,
	}
	if msg, ok := bookstore.Validate(); !ok {
		t.Fatalf("expected valid bookstore: %s", msg)
	}

	cases := []struct {
		name   string
		mutate func(v *Venue)
		base   Venue
	}{
		{"missing name", func(v *Venue) { v.Name = "" }, cinema},
		{"unknown type", func(v *Venue) { v.Type = "arena" }, cinema},
		{"missing location", func(v *Venue) { v.Location = "" }, cinema},
		{"negative price", func(v *Venue) { v.Price = -1 }, cinema},
		{"cinema without capacity", func(v *Venue) { v.Capacity = nil }, cinema},
		{"cinema with stock", func(v *Venue) { v.BookStock = &stock }, cinema},
		{"seats above capacity", func(v *Venue) { s := 60; v.AvailableSeats = &s }, cinema},
		{"bookstore without stock", func(v *Venue) { v.BookStock = nil }, bookstore},
		{"bookstore with seats", func(v *Venue) { v.AvailableSeats = &seats }, bookstore},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := tc.base
			tc.mutate(&v)
			_, ok := v.Validate()
			assert.False(t, ok)
		})
	}
}

func TestStatusAllowsRating(t *testing.T) {
	assert.False(t, StatusPlan.AllowsRating())
	assert.True(t, StatusWatched.AllowsRating())
	assert.True(t, StatusRead.AllowsRating())
	assert.True(t, StatusCompleted.AllowsRating())
}
