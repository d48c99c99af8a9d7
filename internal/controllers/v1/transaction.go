package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/triz-financeiro/backend/internal/httputil"
	"github.com/triz-financeiro/backend/internal/models"
	"github.com/triz-financeiro/backend/internal/types"
)

// TransactionQuery are the query parameters for the transaction list.
// Both default to the current month.
type TransactionQuery struct {
	Year  int `form:"year" example:"2024"`
	Month int `form:"month" example:"3"`
}

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetTransactions)
		r.POST("", CreateTransaction)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", httputil.OptionsGetPutDelete)
		r.GET("/:id", GetTransaction)
		r.PUT("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		List transactions
// @Description	Returns the authenticated user's transactions for a month, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200		{array}		models.WithCategory
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			year	query		int	false	"Year, defaults to the current one"
// @Param			month	query		int	false	"Month, defaults to the current one"
// @Router			/v1/transactions [get]
func GetTransactions(c *gin.Context) {
	var query TransactionQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	now := time.Now().UTC()
	month := types.MonthOf(now)
	if query.Year != 0 && query.Month != 0 {
		month = types.NewMonth(query.Year, time.Month(query.Month))
	}

	transactions, err := models.TransactionsInWindow(models.DB, currentUser(c), month.Window())
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, transactions)
}

// @Summary		Create transaction
// @Description	Creates a new transaction for the authenticated user
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	models.WithCategory
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			transaction	body		v1.TransactionEditable	true	"Transaction"
// @Router			/v1/transactions [post]
func CreateTransaction(c *gin.Context) {
	var editable TransactionEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	now := time.Now().UTC()
	transaction := editable.model(currentUser(c))
	transaction.Date = now
	if editable.ContextYear != nil && editable.ContextMonth != nil {
		// Date the transaction into the month the client is viewing,
		// clamping the day to the length of that month
		month := types.NewMonth(*editable.ContextYear, time.Month(*editable.ContextMonth))
		transaction.Date = month.ResolveDate(now)
	}

	err = models.DB.Create(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	name, err := transaction.CategoryName(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusCreated, models.WithCategory{Transaction: transaction, CategoryName: name})
}

// @Summary		Get transaction
// @Description	Returns one of the authenticated user's transactions
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	models.WithCategory
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		uint64	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	transaction, err := models.TransactionForUser(models.DB, uri.ID, currentUser(c))
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	name, err := transaction.CategoryName(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.WithCategory{Transaction: transaction, CategoryName: name})
}

// @Summary		Update transaction
// @Description	Replaces all mutable fields of one of the authenticated user's transactions
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	models.WithCategory
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Failure		404			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			id			path		uint64					true	"ID of the transaction"
// @Param			transaction	body		v1.TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [put]
func UpdateTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	transaction, err := models.TransactionForUser(models.DB, uri.ID, currentUser(c))
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	var editable TransactionEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	// Select the full mutable field set so that an omitted category
	// detaches the transaction. The date and owner never change here.
	data := editable.model(transaction.UserID)
	err = models.DB.Model(&transaction).
		Select("Type", "Description", "Amount", "CategoryID").
		Updates(data).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	name, err := transaction.CategoryName(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.WithCategory{Transaction: transaction, CategoryName: name})
}

// @Summary		Delete transaction
// @Description	Deletes one of the authenticated user's transactions
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	v1.TransactionDeleteResponse
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		uint64	true	"ID of the transaction"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	transaction, err := models.TransactionForUser(models.DB, uri.ID, currentUser(c))
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	err = models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, TransactionDeleteResponse{
		Message: "transaction deleted",
		ID:      transaction.ID,
	})
}
