package models

import "time"

type Category struct {
	ID        int       `json:"id"`
	UserID    string    `json:"userId,omitempty"` // empty for global default categories
	ParentID  *int      `json:"parentId,omitempty"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Icon      string    `json:"icon,omitempty"`
	Color     string    `json:"color,omitempty"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}
