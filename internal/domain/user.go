package domain

import (
	"strings"
	"time"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleTrainer Role = "trainer"
	RoleTrainee Role = "trainee"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleTrainer || r == RoleTrainee
}

// Location is an optional, loosely structured user location.
type Location struct {
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

// User represents a user in the system (either a Trainer or a Trainee).
// The role is immutable after creation.
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email" json:"email"` // Unique, compared case-insensitively
	Name         string    `bson:"name" json:"name"`
	PasswordHash string    `bson:"passwordHash,omitempty" json:"-"` // Never expose this via JSON
	Role         Role      `bson:"role" json:"role"`
	Location     *Location `bson:"location,omitempty" json:"location,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

func (u *User) IsTrainer() bool {
	return u.Role == RoleTrainer
}

func (u *User) IsTrainee() bool {
	return u.Role == RoleTrainee
}

// NormalizeEmail lowercases an email address for case-insensitive
// comparison and storage. All email lookups go through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailsEqual compares two email addresses case-insensitively.
func EmailsEqual(a, b string) bool {
	return NormalizeEmail(a) == NormalizeEmail(b)
}
