package v1

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/triz-financeiro/backend/internal/models"
)

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	Type        models.TransactionType `json:"type" example:"expense" enums:"income,expense"`
	Description string                 `json:"description" example:"Weekly groceries"`
	Amount      decimal.Decimal        `json:"amount" example:"84.50"`
	CategoryID  *uint64                `json:"categoryId" example:"4"` // ID of the category, unset for uncategorized

	// The month the client is viewing. When set, the transaction is dated
	// into that month instead of the current one. Only honored on create.
	ContextYear  *int `json:"contextYear" example:"2024"`
	ContextMonth *int `json:"contextMonth" example:"3"`
}

func (editable TransactionEditable) model(userID string) models.Transaction {
	return models.Transaction{
		Type:        editable.Type,
		Description: strings.TrimSpace(editable.Description),
		Amount:      editable.Amount,
		CategoryID:  editable.CategoryID,
		UserID:      userID,
	}
}

type TransactionDeleteResponse struct {
	Message string `json:"message" example:"transaction deleted"`
	ID      uint64 `json:"id" example:"17"` // ID of the deleted transaction
}
