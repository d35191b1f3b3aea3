package models

import (
	"strings"

	"gorm.io/gorm"
)

// Counterparty is a person that debts are tracked against.
type Counterparty struct {
	DefaultModel
	Name string `json:"name" gorm:"uniqueIndex" example:"Alex"`
}

func (c *Counterparty) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrNameEmpty
	}
	return nil
}
