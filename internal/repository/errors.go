// Package repository contains the SQL persistence layer. This file
// defines sentinel errors shared across repositories so handlers can
// map failure scenarios to HTTP statuses without inspecting driver
// errors: not-found sentinels become 404, ErrDuplicateUser becomes 409,
// inventory sentinels become 400.
package repository

import "errors"

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateUser is returned when a registration collides with an
// existing username or email. Handlers translate this into HTTP 409.
var ErrDuplicateUser = errors.New("username or email already exists")

// ErrMediaNotFound is returned when no media item matches the lookup.
var ErrMediaNotFound = errors.New("media not found")

// ErrVenueNotFound is returned when no venue matches the lookup.
var ErrVenueNotFound = errors.New("venue not found")

// ErrVenueNotAttached is returned when a purchase names a venue that is
// not linked to the media item being bought.
var ErrVenueNotAttached = errors.New("venue is not attached to this media")

// ErrVenueUnavailable is returned when a purchase targets a venue whose
// availability flag is off.
var ErrVenueUnavailable = errors.New("venue is not available")

// ErrInsufficientInventory is returned when a conditional inventory
// decrement matches no row, i.e. the venue does not hold enough seats
// or stock for the requested quantity.
var ErrInsufficientInventory = errors.New("insufficient inventory")
