package services

import (
	"context"
	"fmt"

	"github.com/andrewpaige1/thoughtcatcher-api/models"
	"gorm.io/gorm"
)

type ConnectionStylingInput struct {
	Color string   `json:"color" validate:"max=32"`
	Width *float64 `json:"width" validate:"omitempty,gte=0"`
	Style string   `json:"style" validate:"omitempty,oneof=solid dashed dotted"`
}

func (s *ConnectionStylingInput) styling() models.ConnectionStyling {
	if s == nil {
		return models.ConnectionStyling{}
	}
	return models.ConnectionStyling{Color: s.Color, Width: s.Width, Style: s.Style}
}

type ConnectionInput struct {
	MindMapID      string                  `json:"mindmap_id" validate:"required"`
	FromNodeID     string                  `json:"from_node_id" validate:"required"`
	ToNodeID       string                  `json:"to_node_id" validate:"required"`
	ConnectionType string                  `json:"connection_type" validate:"omitempty,oneof=parent-child manual"`
	Styling        *ConnectionStylingInput `json:"styling"`
}

type ConnectionPatch struct {
	Styling *ConnectionStylingInput `json:"styling" validate:"required"`
}

var connectionMessages = map[string]string{
	"mindmap_id":      "Mind map ID is required",
	"from_node_id":    "From node ID is required",
	"to_node_id":      "To node ID is required",
	"connection_type": "Connection type must be parent-child or manual",
	"styling":         "Styling object is required",
	"styling.color":   "Color cannot be more than 32 characters",
	"styling.width":   "Width must be a non-negative number",
	"styling.style":   "Style must be one of solid, dashed, dotted",
}

type Connections struct {
	db    *gorm.DB
	guard *Guard
}

func NewConnections(db *gorm.DB, guard *Guard) *Connections {
	return &Connections{db: db, guard: guard}
}

func (s *Connections) ListForMindMap(ctx context.Context, userID, mindMapID string) ([]models.Connection, error) {
	if _, err := s.guard.OwnedMindMap(ctx, mindMapID, userID); err != nil {
		return nil, err
	}

	connections := []models.Connection{}
	err := s.db.WithContext(ctx).
		Where("mind_map_id = ?", mindMapID).
		Order("created_at ASC").
		Find(&connections).Error
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	return connections, nil
}

// Create links two nodes. The node ids are stored without checking that
// they exist or share the mind map.
func (s *Connections) Create(ctx context.Context, userID string, in ConnectionInput) (*models.Connection, error) {
	if err := check(in, connectionMessages); err != nil {
		return nil, err
	}
	if _, err := s.guard.OwnedMindMap(ctx, in.MindMapID, userID); err != nil {
		return nil, err
	}

	connectionType := in.ConnectionType
	if connectionType == "" {
		connectionType = models.ConnectionManual
	}
	connection := models.Connection{
		MindMapID:      in.MindMapID,
		FromNodeID:     in.FromNodeID,
		ToNodeID:       in.ToNodeID,
		ConnectionType: connectionType,
		Styling:        in.Styling.styling(),
	}
	if err := s.db.WithContext(ctx).Create(&connection).Error; err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}
	return &connection, nil
}

// Update replaces the styling and nothing else.
func (s *Connections) Update(ctx context.Context, userID, id string, patch ConnectionPatch) (*models.Connection, error) {
	if err := check(patch, connectionMessages); err != nil {
		return nil, err
	}

	connection, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.Authorize(ctx, connection, userID); err != nil {
		return nil, err
	}

	connection.Styling = patch.Styling.styling()
	if err := s.db.WithContext(ctx).Save(connection).Error; err != nil {
		return nil, fmt.Errorf("update connection: %w", err)
	}
	return connection, nil
}

func (s *Connections) Delete(ctx context.Context, userID, id string) error {
	connection, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.guard.Authorize(ctx, connection, userID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(connection).Error; err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	return nil
}

func (s *Connections) get(ctx context.Context, id string) (*models.Connection, error) {
	var connection models.Connection
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&connection).Error; err != nil {
		return nil, lookupErr(err, "Connection")
	}
	return &connection, nil
}
