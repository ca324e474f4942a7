// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the persisted identity record this system manages. A user is both an
// account (credential, session) and a channel (videos, subscribers).
type User struct {
	ID           uuid.UUID // The unique, immutable identifier for the user.
	Username     string    // Unique handle, stored lower-cased and trimmed.
	Email        string    // Unique contact email, stored lower-cased and trimmed.
	FullName     string    // Display name.
	Avatar       string    // Avatar image URL. Required at registration.
	CoverImage   string    // Cover image URL. Optional.
	PasswordHash string    // bcrypt hash of the password. Never serialized outward.
	RefreshToken string    // The single currently valid refresh token, empty when logged out.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// Sanitize returns a copy of the user with credential and session material removed.
// Every representation that crosses the system boundary goes through this.
func (u *User) Sanitize() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	clone.RefreshToken = ""

	return &clone
}

// ChannelProfile is a user viewed as a channel, enriched with subscription counts.
type ChannelProfile struct {
	User              *User
	SubscribersCount  int64
	SubscribedToCount int64
	IsSubscribed      bool // Whether the requesting user subscribes to this channel.
}
