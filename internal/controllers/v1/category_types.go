package v1

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/triz-financeiro/backend/internal/models"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name      string           `json:"name" example:"Groceries"` // Name of the category
	Threshold *decimal.Decimal `json:"threshold" example:"800"`  // Monthly budget ceiling, unset for no ceiling
}

func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name:      strings.TrimSpace(editable.Name),
		Threshold: editable.Threshold,
	}
}

type CategoryDeleteResponse struct {
	Message             string `json:"message" example:"category deleted"`
	TransactionsUpdated bool   `json:"transactionsUpdated" example:"true"` // Whether any transaction was detached from the category
}
