package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PosAccount represents one connected Loyverse account. A user may connect
// several accounts; each carries its own API token and optional default store.
type PosAccount struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	AccessToken string         `gorm:"size:512;not null" json:"-"`
	StoreID     string         `gorm:"size:255" json:"store_id"` // empty means all stores
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new account
func (a *PosAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PosAccount model
func (PosAccount) TableName() string {
	return "pos_accounts"
}
