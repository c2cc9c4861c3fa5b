package models

// MindMap is a named canvas owned by a single user
type MindMap struct {
	Base
	Title       string `gorm:"not null;size:100" json:"title"`
	Description string `gorm:"size:500" json:"description"`
	UserID      string `gorm:"not null;index;size:21" json:"user_id"`
	IsPublic    bool   `gorm:"default:false" json:"is_public"`

	CanvasSettings CanvasSettings `gorm:"embedded;embeddedPrefix:canvas_" json:"canvas_settings"`
}

type CanvasSettings struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"pan_x"`
	PanY float64 `json:"pan_y"`
}

// DefaultCanvas is the view state of a freshly created mind map.
func DefaultCanvas() CanvasSettings {
	return CanvasSettings{Zoom: 1}
}

func (m *MindMap) MindMapRef() string { return m.ID }
