package models

import (
	"fmt"

	"gorm.io/gorm"
)

type Service struct {
	gorm.Model
	ProviderID  uint    `json:"provider_id" gorm:"not null;index"`
	Provider    User    `json:"provider,omitempty" gorm:"foreignKey:ProviderID;constraint:OnDelete:CASCADE"`
	Name        string  `json:"name" gorm:"not null"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"` // minutes
	Price       float64 `json:"price" gorm:"type:decimal(10,2)"`
	IsActive    bool    `json:"is_active" gorm:"default:true"`
}

func (s *Service) BeforeSave(tx *gorm.DB) error {
	if s.Duration <= 0 {
		return fmt.Errorf("service duration must be positive, got %d", s.Duration)
	}
	if s.Price < 0 {
		return fmt.Errorf("service price must not be negative")
	}
	return nil
}
