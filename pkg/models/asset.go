package models

import (
	"strings"

	"github.com/ledgerline/backend/internal/types"
	"gorm.io/gorm"
)

// Asset is an investment that investment entries contribute to.
type Asset struct {
	DefaultModel
	Name         string      `json:"name" gorm:"uniqueIndex" example:"Index fund"`
	Invested     types.Money `json:"invested" example:"1200.00"`
	CurrentValue types.Money `json:"currentValue" example:"1315.40"`
}

func (a *Asset) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return ErrNameEmpty
	}

	if a.Invested < 0 || a.CurrentValue < 0 {
		return ErrAssetValueNegative
	}

	return nil
}
