package storage

import "time"

// SaveSlot is one named save blob. A cleared slot keeps its row with empty
// Data, so "cleared" and "never written" stay distinguishable.
type SaveSlot struct {
	ID        uint   `gorm:"primaryKey"`
	SlotKey   string `gorm:"uniqueIndex;not null"`
	Name      string
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SaveSlot) TableName() string { return "save_slots" }
