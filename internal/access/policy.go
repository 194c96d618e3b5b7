// Package access implements the age-based content policy: deriving the
// set of categories a user may see from their age, and gating read and
// write operations on media by category. The policy is pure; it never
// touches user or media state.
package access

import (
	"errors"

	"github.com/mediatrack/media-billboard/internal/model"
)

// ErrDenied is returned when an identity is not allowed to perform the
// requested operation on the requested category. Handlers translate it
// into an HTTP 403 response.
var ErrDenied = errors.New("access denied")

// Age bounds accepted at registration. Outside this range the request
// is rejected at input validation and no user record is created.
const (
	MinAge = 3
	MaxAge = 120
)

// CategoriesForAge maps an age to the set of categories that user may
// view and create content in:
//
//	3–12   → {kids}
//	13–17  → {kids, teen}
//	18–120 → {kids, teen, adult, all}
//
// Ages outside [MinAge, MaxAge] return nil; callers must reject those
// before a user record exists.
func CategoriesForAge(age int) []model.AgeCategory {
	switch {
	case age < MinAge || age > MaxAge:
		return nil
	case age <= 12:
		return []model.AgeCategory{model.CategoryKids}
	case age <= 17:
		return []model.AgeCategory{model.CategoryKids, model.CategoryTeen}
	default:
		return []model.AgeCategory{model.CategoryKids, model.CategoryTeen, model.CategoryAdult, model.CategoryAll}
	}
}

// Identity is the caller's resolved access identity, passed explicitly
// into handlers and core functions instead of being read from implicit
// request state. A guest (no token) has Guest=true and is restricted to
// the kids category with no write access.
type Identity struct {
	UserID  uint64
	Age     int
	Role    string
	Allowed []model.AgeCategory
	Guest   bool
}

// Guest returns the implicit identity used for unauthenticated callers.
func Guest() Identity {
	return Identity{
		Allowed: []model.AgeCategory{model.CategoryKids},
		Guest:   true,
	}
}

// CanAccess reports whether the identity's allowed set contains the
// given category.
func (id Identity) CanAccess(cat model.AgeCategory) bool {
	for _, a := range id.Allowed {
		if a == cat {
			return true
		}
	}
	return false
}

// CheckRead validates a read (list/get/filter) request. When the caller
// explicitly requests a category outside their allowed set the read is
// denied; an empty requested category is always fine because results
// are silently restricted to the allowed set instead.
func CheckRead(id Identity, requested model.AgeCategory) error {
	if requested == "" {
		return nil
	}
	if !id.CanAccess(requested) {
		return ErrDenied
	}
	return nil
}

// CheckWrite validates a mutating request (create/update/delete/attach
// venue) against the target or resulting category. Guests can never
// write; authenticated users need the category in their allowed set.
func CheckWrite(id Identity, target model.AgeCategory) error {
	if id.Guest {
		return ErrDenied
	}
	if !id.CanAccess(target) {
		return ErrDenied
	}
	return nil
}
