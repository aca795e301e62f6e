package entity

import (
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string `json:"id" firestore:"id" bson:"_id"`
	Email        string `json:"email" firestore:"email" bson:"email"`
	Username     string `json:"username" firestore:"username" bson:"username"`
	PasswordHash string `json:"-" firestore:"passwordHash" bson:"passwordHash"`
	AvatarURL    string `json:"avatarUrl" firestore:"avatarUrl" bson:"avatarUrl"`
	Role         string `json:"role" firestore:"role" bson:"role"`
	// Only the SHA-256 of the reset token is stored.
	ResetTokenHash   string     `json:"-" firestore:"resetTokenHash,omitempty" bson:"resetTokenHash,omitempty"`
	ResetTokenExpiry *time.Time `json:"-" firestore:"resetTokenExpiry,omitempty" bson:"resetTokenExpiry,omitempty"`
	CreatedAt        time.Time  `json:"createdAt" firestore:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt" firestore:"updatedAt" bson:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
	}
}

type UserSummary struct {
	ID        string `json:"id"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
