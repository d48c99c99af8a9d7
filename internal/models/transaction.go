package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/triz-financeiro/backend/internal/types"
	"gorm.io/gorm"
)

// TransactionType is the direction of a transaction.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Valid reports whether the type is one of the two known directions.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Transaction is a single dated income or expense record owned by a user.
//
// Date is the user-intended calendar date and may be backdated, CreatedAt
// is the wall-clock insertion time.
type Transaction struct {
	Model
	Type        TransactionType `json:"type" example:"expense"`
	Description string          `json:"description" example:"Groceries for the week"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"271.84"`
	CategoryID  *uint64         `json:"categoryId"`
	Category    *Category       `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	UserID      string          `json:"userId"`
	User        User            `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Date        time.Time       `json:"date"`
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}

	t.Description = strings.TrimSpace(t.Description)
	if t.Description == "" {
		return ErrTransactionDescriptionEmpty
	}

	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	err := t.Model.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// WithCategory is a Transaction annotated with the name of its category,
// joined in for the convenience of API consumers.
type WithCategory struct {
	Transaction
	CategoryName *string `json:"categoryName"`
}

// TransactionsInWindow returns all transactions of a user with a date in the
// half-open window, newest first, with their category names joined.
func TransactionsInWindow(db *gorm.DB, userID string, w types.Window) ([]WithCategory, error) {
	var transactions []WithCategory

	err := db.Model(&Transaction{}).
		Select("transactions.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ?", userID).
		Where("datetime(transactions.date) >= datetime(?)", w.Start).
		Where("datetime(transactions.date) < datetime(?)", w.End).
		Order("datetime(transactions.date) DESC, datetime(transactions.created_at) DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	for i := range transactions {
		transactions[i].Date = transactions[i].Date.In(time.UTC)
		transactions[i].CreatedAt = transactions[i].CreatedAt.In(time.UTC)
	}

	return transactions, nil
}

// TransactionForUser returns the transaction with the given ID if it is
// owned by the user. A transaction owned by somebody else is reported as
// not found, existence is never leaked to non-owners.
func TransactionForUser(db *gorm.DB, id uint64, userID string) (Transaction, error) {
	var transaction Transaction

	err := db.Where("user_id = ?", userID).First(&transaction, id).Error
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}

// CategoryName resolves the name of the transaction's category. It returns
// nil for uncategorized transactions.
func (t Transaction) CategoryName(db *gorm.DB) (*string, error) {
	if t.CategoryID == nil {
		return nil, nil
	}

	var category Category
	err := db.First(&category, *t.CategoryID).Error
	if err != nil {
		return nil, err
	}

	return &category.Name, nil
}
