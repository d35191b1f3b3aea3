package models

import (
	"strings"

	"github.com/ledgerline/backend/internal/types"
	"gorm.io/gorm"
)

// BudgetLimit is the monthly spending cap for a category group.
type BudgetLimit struct {
	DefaultModel
	CategoryGroup string      `json:"categoryGroup" gorm:"uniqueIndex" example:"Food"`
	LimitAmount   types.Money `json:"limitAmount" gorm:"not null" example:"400.00"`
}

func (b *BudgetLimit) BeforeSave(_ *gorm.DB) error {
	b.CategoryGroup = strings.TrimSpace(b.CategoryGroup)
	if b.CategoryGroup == "" {
		return ErrCategoryGroupEmpty
	}

	if !b.LimitAmount.IsPositive() {
		return ErrAmountNotPositive
	}

	return nil
}
