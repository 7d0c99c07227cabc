package model

import "time"

type Project struct {
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	ID            int64     `json:"id"`
	CreatorUserID int64     `json:"creator_user_id"`
}
