package model

import "time"

type User struct {
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	AvatarURL     *string   `json:"avatar_url,omitempty"`
	WalletAddress *string   `json:"wallet_address,omitempty"`
	WorkOSID      *string   `json:"-"`
	ID            int64     `json:"id"`
}
