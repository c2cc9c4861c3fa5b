package services

import (
	"context"
	"fmt"

	"github.com/andrewpaige1/thoughtcatcher-api/models"
	"gorm.io/gorm"
)

type MindMapInput struct {
	Title       string `json:"title" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
	IsPublic    bool   `json:"is_public"`
}

type CanvasPatch struct {
	Zoom *float64 `json:"zoom" validate:"omitempty,gt=0"`
	PanX *float64 `json:"pan_x"`
	PanY *float64 `json:"pan_y"`
}

type MindMapPatch struct {
	Title          *string      `json:"title" validate:"omitempty,min=1,max=100"`
	Description    *string      `json:"description" validate:"omitempty,max=500"`
	IsPublic       *bool        `json:"is_public"`
	CanvasSettings *CanvasPatch `json:"canvas_settings"`
}

var mindMapMessages = map[string]string{
	"title.required":       "Title is required",
	"title":                "Title must be between 1 and 100 characters",
	"description":          "Description cannot be more than 500 characters",
	"canvas_settings.zoom": "Zoom must be greater than 0",
}

type MindMaps struct {
	db    *gorm.DB
	guard *Guard
}

func NewMindMaps(db *gorm.DB, guard *Guard) *MindMaps {
	return &MindMaps{db: db, guard: guard}
}

// List returns the caller's mind maps, most recently updated first.
func (s *MindMaps) List(ctx context.Context, userID string) ([]models.MindMap, error) {
	mindMaps := []models.MindMap{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&mindMaps).Error
	if err != nil {
		return nil, fmt.Errorf("list mind maps: %w", err)
	}
	return mindMaps, nil
}

func (s *MindMaps) Create(ctx context.Context, userID string, in MindMapInput) (*models.MindMap, error) {
	if err := check(in, mindMapMessages); err != nil {
		return nil, err
	}

	mindMap := models.MindMap{
		Title:          in.Title,
		Description:    in.Description,
		UserID:         userID,
		IsPublic:       in.IsPublic,
		CanvasSettings: models.DefaultCanvas(),
	}
	if err := s.db.WithContext(ctx).Create(&mindMap).Error; err != nil {
		return nil, fmt.Errorf("create mind map: %w", err)
	}
	return &mindMap, nil
}

func (s *MindMaps) Get(ctx context.Context, userID, id string) (*models.MindMap, error) {
	return s.guard.OwnedMindMap(ctx, id, userID)
}

// Update applies the non-nil fields of patch. updated_at is always refreshed.
func (s *MindMaps) Update(ctx context.Context, userID, id string, patch MindMapPatch) (*models.MindMap, error) {
	if err := check(patch, mindMapMessages); err != nil {
		return nil, err
	}

	mindMap, err := s.guard.OwnedMindMap(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		mindMap.Title = *patch.Title
	}
	if patch.Description != nil {
		mindMap.Description = *patch.Description
	}
	if patch.IsPublic != nil {
		mindMap.IsPublic = *patch.IsPublic
	}
	if c := patch.CanvasSettings; c != nil {
		if c.Zoom != nil {
			mindMap.CanvasSettings.Zoom = *c.Zoom
		}
		if c.PanX != nil {
			mindMap.CanvasSettings.PanX = *c.PanX
		}
		if c.PanY != nil {
			mindMap.CanvasSettings.PanY = *c.PanY
		}
	}

	if err := s.db.WithContext(ctx).Save(mindMap).Error; err != nil {
		return nil, fmt.Errorf("update mind map: %w", err)
	}
	return mindMap, nil
}

// Delete removes the mind map record only. Its nodes and connections stay behind.
func (s *MindMaps) Delete(ctx context.Context, userID, id string) error {
	mindMap, err := s.guard.OwnedMindMap(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(mindMap).Error; err != nil {
		return fmt.Errorf("delete mind map: %w", err)
	}
	return nil
}
