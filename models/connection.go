package models

const (
	ConnectionParentChild = "parent-child"
	ConnectionManual      = "manual"
)

// Connection is a styled edge between two nodes of the same mind map.
// Endpoints are not checked against the nodes table.
type Connection struct {
	Base
	MindMapID      string            `gorm:"not null;size:21;index" json:"mindmap_id"`
	FromNodeID     string            `gorm:"not null;size:21" json:"from_node_id"`
	ToNodeID       string            `gorm:"not null;size:21" json:"to_node_id"`
	ConnectionType string            `gorm:"not null;size:16;default:manual" json:"connection_type"`
	Styling        ConnectionStyling `gorm:"embedded;embeddedPrefix:styling_" json:"styling"`
}

type ConnectionStyling struct {
	Color string   `gorm:"size:32" json:"color,omitempty"`
	Width *float64 `json:"width,omitempty"`
	Style string   `gorm:"size:16" json:"style,omitempty"`
}

func (c *Connection) MindMapRef() string { return c.MindMapID }
