// Package services holds the mind map domain: ownership checks and the
// managers for users, mind maps, nodes and connections.
package services

import (
	"context"

	"github.com/andrewpaige1/thoughtcatcher-api/models"
	"gorm.io/gorm"
)

// Guard decides whether a user may act on a resource by walking its
// ownership chain up to the owning mind map.
type Guard struct {
	db *gorm.DB
}

func NewGuard(db *gorm.DB) *Guard {
	return &Guard{db: db}
}

// Authorize returns the mind map at the top of res's chain when userID owns
// it. Errors are a NotFoundError, ErrUnauthorized, or a store failure.
func (g *Guard) Authorize(ctx context.Context, res models.Resource, userID string) (*models.MindMap, error) {
	mindMap, ok := res.(*models.MindMap)
	if !ok {
		var err error
		mindMap, err = g.MindMap(ctx, res.MindMapRef())
		if err != nil {
			return nil, err
		}
	}
	if mindMap.UserID != userID {
		return nil, ErrUnauthorized
	}
	return mindMap, nil
}

// MindMap loads a mind map by id without any ownership check.
func (g *Guard) MindMap(ctx context.Context, id string) (*models.MindMap, error) {
	var mindMap models.MindMap
	if id == "" {
		return nil, notFound("Mind map")
	}
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&mindMap).Error; err != nil {
		return nil, lookupErr(err, "Mind map")
	}
	return &mindMap, nil
}

// OwnedMindMap loads a mind map and checks it belongs to userID.
func (g *Guard) OwnedMindMap(ctx context.Context, id, userID string) (*models.MindMap, error) {
	mindMap, err := g.MindMap(ctx, id)
	if err != nil {
		return nil, err
	}
	return g.Authorize(ctx, mindMap, userID)
}
