// Package navigator keeps a per-month cache of transactions for a client
// navigating between months. New transactions are inserted optimistically
// and reconciled once the backend confirms them.
package navigator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/triz-financeiro/backend/internal/models"
	"github.com/triz-financeiro/backend/internal/types"
)

// TransactionData are the fields the client sends when creating or
// updating a transaction.
type TransactionData struct {
	Type         models.TransactionType `json:"type"`
	Description  string                 `json:"description"`
	Amount       decimal.Decimal        `json:"amount"`
	CategoryID   *uint64                `json:"categoryId,omitempty"`
	ContextYear  *int                   `json:"contextYear,omitempty"`
	ContextMonth *int                   `json:"contextMonth,omitempty"`
}

// Client calls the backend's v1 API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient returns a client for the backend at baseURL, authenticating
// with the session token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{},
	}
}

type apiError struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		if err := json.NewDecoder(res.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("backend: %s", apiErr.Error)
		}

		return fmt.Errorf("backend: unexpected status %d", res.StatusCode)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(res.Body).Decode(out)
}

// Transactions fetches the transactions for a month.
func (c *Client) Transactions(ctx context.Context, month types.Month) ([]models.WithCategory, error) {
	path := "/v1/transactions?year=" + strconv.Itoa(month.Year()) + "&month=" + strconv.Itoa(month.Month())

	var transactions []models.WithCategory
	err := c.do(ctx, http.MethodGet, path, nil, &transactions)
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// Categories fetches all categories.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := c.do(ctx, http.MethodGet, "/v1/categories", nil, &categories)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// CreateTransaction creates a transaction.
func (c *Client) CreateTransaction(ctx context.Context, data TransactionData) (models.WithCategory, error) {
	var transaction models.WithCategory
	err := c.do(ctx, http.MethodPost, "/v1/transactions", data, &transaction)
	if err != nil {
		return models.WithCategory{}, err
	}

	return transaction, nil
}

// UpdateTransaction replaces the mutable fields of a transaction.
func (c *Client) UpdateTransaction(ctx context.Context, id uint64, data TransactionData) (models.WithCategory, error) {
	var transaction models.WithCategory
	err := c.do(ctx, http.MethodPut, "/v1/transactions/"+strconv.FormatUint(id, 10), data, &transaction)
	if err != nil {
		return models.WithCategory{}, err
	}

	return transaction, nil
}

// DeleteTransaction deletes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id uint64) error {
	return c.do(ctx, http.MethodDelete, "/v1/transactions/"+strconv.FormatUint(id, 10), nil, nil)
}
