package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Category is a user-defined spending bucket. Threshold is the optional
// monthly budget ceiling for the category.
type Category struct {
	Model
	Name      string           `json:"name" gorm:"uniqueIndex" example:"Groceries"`
	Threshold *decimal.Decimal `json:"threshold" gorm:"type:DECIMAL(20,8)" example:"800"`
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)

	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	return nil
}

// Transactions returns all transactions that reference the category.
func (c Category) Transactions(db *gorm.DB) ([]Transaction, error) {
	var transactions []Transaction

	err := db.Where(&Transaction{CategoryID: &c.ID}).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// Detach sets the category reference of all transactions pointing to the
// category to NULL. It reports whether any transaction was updated.
// Transactions themselves are kept, deleting a category must never delete
// bookkeeping records.
func (c Category) Detach(db *gorm.DB) (bool, error) {
	// UpdateColumn skips the record hooks, which must not run for a
	// batch update without a record instance.
	result := db.Model(&Transaction{}).
		Where("category_id = ?", c.ID).
		UpdateColumn("category_id", nil)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
