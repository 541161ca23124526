// Package models defines the wire and storage shapes shared across the service.
package models

import "github.com/google/uuid"

// DefaultAvatar is assigned at registration until the player picks another.
const DefaultAvatar = "/avatars/skin-1.jpg"

// InitialCoins is the starting balance for a fresh account.
const InitialCoins = 1000

// User is a player account. Password carries the encoded argon2 hash
// internally and is never serialized.
type User struct {
	ID       uuid.UUID `json:"id"`
	Nickname string    `json:"nickname"`
	Password string    `json:"-"`
	Avatar   string    `json:"avatar"`
	Coins    int       `json:"coins"`

	LoginStreak   int    `json:"loginStreak"`
	LastClaimDate string `json:"lastClaimDate,omitempty"` // YYYY-MM-DD, empty if never claimed

	EquippedBorderID     *int `json:"equippedBorderId"`
	EquippedBackgroundID *int `json:"equippedBackgroundId"`
	EquippedHandsID      *int `json:"equippedHandsId"`

	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	TotalEarned int `json:"totalEarned"`
}
