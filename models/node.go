package models

const (
	ShapeRectangle = "rectangle"
	ShapeCircle    = "circle"
	ShapeRounded   = "rounded"
)

// Node is a positioned text unit inside a mind map. ParentID links nodes
// into a forest; the store does not enforce it.
type Node struct {
	Base
	MindMapID string      `gorm:"not null;size:21;index;index:idx_nodes_map_parent,priority:1" json:"mindmap_id"`
	Text      string      `gorm:"not null;size:500" json:"text"`
	Position  Position    `gorm:"embedded;embeddedPrefix:position_" json:"position"`
	Styling   NodeStyling `gorm:"embedded;embeddedPrefix:styling_" json:"styling"`
	ParentID  *string     `gorm:"size:21;index;index:idx_nodes_map_parent,priority:2" json:"parent_id"`
	Level     int         `gorm:"not null;default:0" json:"level"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type NodeStyling struct {
	Color  string   `gorm:"size:32" json:"color,omitempty"`
	Shape  string   `gorm:"size:16" json:"shape,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

func (n *Node) MindMapRef() string { return n.MindMapID }
