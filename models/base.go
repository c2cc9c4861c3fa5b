package models

import (
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

// Base replaces gorm.Model: opaque string IDs and hard deletes.
type Base struct {
	ID        string    `gorm:"primaryKey;size:21" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a nanoid when the caller has not set one.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID != "" {
		return nil
	}
	id, err := gonanoid.New()
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

// Resource is anything that sits on an ownership chain ending at a mind map.
type Resource interface {
	MindMapRef() string
}

// All returns every model managed by the store, in migration order.
func All() []any {
	return []any{&User{}, &MindMap{}, &Node{}, &Connection{}}
}
