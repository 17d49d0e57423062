package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// WidgetList is the set of canonical widget identifiers enabled for a
// project, stored as a JSON array in a single column.
type WidgetList []string

// Value serializes the list for storage.
func (w WidgetList) Value() (driver.Value, error) {
	if w == nil {
		w = WidgetList{}
	}
	b, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan deserializes the stored JSON array.
func (w *WidgetList) Scan(value interface{}) error {
	if value == nil {
		*w = WidgetList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	default:
		return fmt.Errorf("unsupported widget list column type %T", value)
	}
}

// Dashboard holds the widget configuration for one project. Exactly one row
// per project; saves replace the whole widget set via upsert on project_id.
type Dashboard struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ProjectID uint       `gorm:"uniqueIndex;not null" json:"project_id"`
	Widgets   WidgetList `gorm:"type:json" json:"widgets"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Has reports whether the given canonical widget identifier is enabled.
func (d *Dashboard) Has(widgetID string) bool {
	for _, id := range d.Widgets {
		if id == widgetID {
			return true
		}
	}
	return false
}
