// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered account in the system.
// It carries authentication credentials plus profile fields used for
// content personalization.
type User struct {
	// ID is the unique identifier for the user (UUID string).
	// It is generated once at signup and never changes.
	ID string `gorm:"primaryKey;size:36"`

	// Email is the user's email address used as the login handle.
	// It is stored lower-cased and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:320;not null"`

	// HashedPassword is the bcrypt digest of the user's password.
	// Plaintext passwords are never stored.
	HashedPassword string `gorm:"size:255;not null"`

	// Name is the user's optional display name.
	Name *string `gorm:"size:255"`

	// IsActive controls whether the account may authenticate.
	// Deactivated accounts fail login and protected-route access.
	IsActive bool `gorm:"not null;default:true"`

	// IsSuperuser gates admin-only operations.
	IsSuperuser bool `gorm:"not null;default:false"`

	// IsVerified is reserved for a future email-verification flow.
	// It is stored and exposed but does not gate authentication.
	IsVerified bool `gorm:"not null;default:false"`

	// SoftwareBackground は学習コンテンツの個別化に使うソフトウェア経験です（例: Python, ROS 2）。
	SoftwareBackground *string `gorm:"size:1000"`

	// HardwareBackground は学習コンテンツの個別化に使うハードウェア経験です（例: Jetson Nano, Arduino）。
	HardwareBackground *string `gorm:"size:1000"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
