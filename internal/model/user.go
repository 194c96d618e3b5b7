package model

import "time"

// User represents an application user record as stored in the `users`
// table. Each field corresponds to a column in the database. The json
// tags are omitted here because these structs are primarily used
// internally by the repository layer; handlers define separate response
// types with appropriate JSON tags.
//
// AllowedCategories is derived from Age (see the access package) and is
// recomputed by the repository whenever Age is set or changed. Identity
// fields (Username, Email) are enforced unique by the database.
//
// Fields:
//  ID                – primary key identifier of the user.
//  FirstName         – given name.
//  LastName          – family name.
//  Username          – unique handle.
//  Email             – unique email address.
//  PasswordHash      – bcrypt hashed password.
//  Age               – user age, constrained to [3,120] at the boundary.
//  Role              – role name ("user" by default, "admin" supported).
//  AllowedCategories – derived content categories the user may access.
//  CreatedAt         – timestamp of creation.
type User struct {
	ID                uint64    // users.id
	FirstName         string    // users.first_name
	LastName          string    // users.last_name
	Username          string    // users.username
	Email             string    // users.email
	PasswordHash      string    // users.password_hash
	Age               int       // users.age
	Role              string    // users.role
	AllowedCategories []string  // users.allowed_categories (CSV column)
	CreatedAt         time.Time // users.created_at
}
