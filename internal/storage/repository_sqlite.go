package storage

import (
	"errors"
	"fmt"

	"github.com/ericogr/battleships/internal/keys"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) find(name string) (*SaveSlot, error) {
	key := keys.SlotKey(name)
	if key == "" {
		return nil, fmt.Errorf("%w: invalid slot name %q", ErrNotFound, name)
	}
	var s SaveSlot
	if err := r.db.Where("slot_key = ?", key).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, err
	}
	return &s, nil
}

func (r *sqliteRepository) Exists(name string) (bool, error) {
	s, err := r.find(name)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(s.Data) > 0, nil
}

func (r *sqliteRepository) Read(name string) ([]byte, error) {
	s, err := r.find(name)
	if err != nil {
		return nil, err
	}
	if len(s.Data) == 0 {
		return nil, fmt.Errorf("%w in slot %q", ErrNoSavedGame, name)
	}
	return s.Data, nil
}

func (r *sqliteRepository) Write(name string, data []byte) error {
	key := keys.SlotKey(name)
	if key == "" {
		return fmt.Errorf("%w: invalid slot name %q", ErrNotFound, name)
	}
	s := SaveSlot{SlotKey: key, Name: name, Data: data}
	// Upsert by slot key so repeated autosaves overwrite one row.
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "data", "updated_at"}),
	}).Create(&s).Error
}

func (r *sqliteRepository) Clear(name string) error {
	key := keys.SlotKey(name)
	if key == "" {
		return fmt.Errorf("%w: invalid slot name %q", ErrNotFound, name)
	}
	res := r.db.Model(&SaveSlot{}).Where("slot_key = ?", key).Update("data", []byte{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}
