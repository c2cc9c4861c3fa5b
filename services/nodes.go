package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andrewpaige1/thoughtcatcher-api/models"
	"gorm.io/gorm"
)

type PositionInput struct {
	X json.RawMessage `json:"x" validate:"jsonnumber"`
	Y json.RawMessage `json:"y" validate:"jsonnumber"`
}

func (p *PositionInput) position() models.Position {
	x, _ := ParseNumber(p.X)
	y, _ := ParseNumber(p.Y)
	return models.Position{X: x, Y: y}
}

type NodeStylingInput struct {
	Color  string   `json:"color" validate:"max=32"`
	Shape  string   `json:"shape" validate:"omitempty,oneof=rectangle circle rounded"`
	Width  *float64 `json:"width" validate:"omitempty,gte=0"`
	Height *float64 `json:"height" validate:"omitempty,gte=0"`
}

func (s *NodeStylingInput) styling() models.NodeStyling {
	if s == nil {
		return models.NodeStyling{}
	}
	return models.NodeStyling{Color: s.Color, Shape: s.Shape, Width: s.Width, Height: s.Height}
}

type NodeInput struct {
	MindMapID string            `json:"mindmap_id" validate:"required"`
	Text      string            `json:"text" validate:"required,min=1,max=500"`
	Position  *PositionInput    `json:"position" validate:"required"`
	Styling   *NodeStylingInput `json:"styling"`
	ParentID  *string           `json:"parent_id"`
	Level     int               `json:"level" validate:"gte=0"`
}

type NodePatch struct {
	Text     *string           `json:"text" validate:"omitempty,min=1,max=500"`
	Position *PositionInput    `json:"position"`
	Styling  *NodeStylingInput `json:"styling"`
}

var nodeMessages = map[string]string{
	"mindmap_id":     "Mind map ID is required",
	"text.required":  "Node text is required",
	"text":           "Node text must be between 1 and 500 characters",
	"position":       "Position is required",
	"position.x":     "Position X must be numeric",
	"position.y":     "Position Y must be numeric",
	"styling.shape":  "Shape must be one of rectangle, circle, rounded",
	"styling.color":  "Color cannot be more than 32 characters",
	"styling.width":  "Width must be a non-negative number",
	"styling.height": "Height must be a non-negative number",
	"level":          "Level must be a non-negative integer",
}

type Nodes struct {
	db    *gorm.DB
	guard *Guard
}

func NewNodes(db *gorm.DB, guard *Guard) *Nodes {
	return &Nodes{db: db, guard: guard}
}

// ListForMindMap returns every node of the mind map, oldest first.
func (s *Nodes) ListForMindMap(ctx context.Context, userID, mindMapID string) ([]models.Node, error) {
	if _, err := s.guard.OwnedMindMap(ctx, mindMapID, userID); err != nil {
		return nil, err
	}

	nodes := []models.Node{}
	err := s.db.WithContext(ctx).
		Where("mind_map_id = ?", mindMapID).
		Order("created_at ASC").
		Find(&nodes).Error
	if err != nil {
		return nil, fmt.Errorf("list nodes: %w", err)
	}
	return nodes, nil
}

// Create adds a node to a mind map the caller owns. parent_id is stored as given.
func (s *Nodes) Create(ctx context.Context, userID string, in NodeInput) (*models.Node, error) {
	if err := check(in, nodeMessages); err != nil {
		return nil, err
	}
	if _, err := s.guard.OwnedMindMap(ctx, in.MindMapID, userID); err != nil {
		return nil, err
	}

	node := models.Node{
		MindMapID: in.MindMapID,
		Text:      in.Text,
		Position:  in.Position.position(),
		Styling:   in.Styling.styling(),
		ParentID:  emptyToNil(in.ParentID),
		Level:     in.Level,
	}
	if err := s.db.WithContext(ctx).Create(&node).Error; err != nil {
		return nil, fmt.Errorf("create node: %w", err)
	}
	return &node, nil
}

func (s *Nodes) Update(ctx context.Context, userID, id string, patch NodePatch) (*models.Node, error) {
	if err := check(patch, nodeMessages); err != nil {
		return nil, err
	}

	node, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.Authorize(ctx, node, userID); err != nil {
		return nil, err
	}

	if patch.Text != nil {
		node.Text = *patch.Text
	}
	if patch.Position != nil {
		node.Position = patch.Position.position()
	}
	if patch.Styling != nil {
		node.Styling = patch.Styling.styling()
	}
	if err := s.db.WithContext(ctx).Save(node).Error; err != nil {
		return nil, fmt.Errorf("update node: %w", err)
	}
	return node, nil
}

// Delete removes the node and every descendant, children before parents,
// the target itself last. It returns how many nodes were removed.
func (s *Nodes) Delete(ctx context.Context, userID, id string) (int, error) {
	node, err := s.get(ctx, id)
	if err != nil {
		return 0, err
	}
	if _, err := s.guard.Authorize(ctx, node, userID); err != nil {
		return 0, err
	}

	removed := 0
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := subtree(tx, node.ID)
		if err != nil {
			return err
		}
		for _, nodeID := range order {
			if err := tx.Where("id = ?", nodeID).Delete(&models.Node{}).Error; err != nil {
				return fmt.Errorf("delete node %s: %w", nodeID, err)
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// subtree lists rootID and its descendants in post-order. A node already
// visited is never expanded twice, so a cyclic parent chain terminates.
func subtree(tx *gorm.DB, rootID string) ([]string, error) {
	visited := map[string]bool{rootID: true}
	var order []string

	var walk func(parentID string) error
	walk = func(parentID string) error {
		var childIDs []string
		if err := tx.Model(&models.Node{}).
			Where("parent_id = ?", parentID).
			Order("created_at ASC").
			Pluck("id", &childIDs).Error; err != nil {
			return fmt.Errorf("find children of %s: %w", parentID, err)
		}
		for _, childID := range childIDs {
			if visited[childID] {
				continue
			}
			visited[childID] = true
			if err := walk(childID); err != nil {
				return err
			}
			order = append(order, childID)
		}
		return nil
	}

	if err := walk(rootID); err != nil {
		return nil, err
	}
	return append(order, rootID), nil
}

func (s *Nodes) get(ctx context.Context, id string) (*models.Node, error) {
	var node models.Node
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&node).Error; err != nil {
		return nil, lookupErr(err, "Node")
	}
	return &node, nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
