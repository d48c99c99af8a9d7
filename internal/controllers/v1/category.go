package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/triz-financeiro/backend/internal/httputil"
	"github.com/triz-financeiro/backend/internal/models"
)

// RegisterCategoryRoutes registers the routes for categories with
// the RouterGroup that is passed.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetCategories)
		r.POST("", CreateCategory)
	}

	// Category with ID
	{
		r.OPTIONS("/:id", httputil.OptionsPutDelete)
		r.PUT("/:id", UpdateCategory)
		r.DELETE("/:id", DeleteCategory)
	}
}

// @Summary		List categories
// @Description	Returns all budget categories
// @Tags			Categories
// @Produce		json
// @Success		200	{array}		models.Category
// @Failure		500	{object}	httpError
// @Router			/v1/categories [get]
func GetCategories(c *gin.Context) {
	var categories []models.Category
	err := models.DB.Order("created_at DESC").Find(&categories).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// @Summary		Create category
// @Description	Creates a new budget category
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		201		{object}	models.Category
// @Failure		400		{object}	httpError
// @Failure		409		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			category	body		v1.CategoryEditable	true	"Category"
// @Router			/v1/categories [post]
func CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	category := editable.model()
	err = models.DB.Create(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// @Summary		Update category
// @Description	Updates an existing category. Omitting the threshold removes it.
// @Tags			Categories
// @Accept			json
// @Produce		json
// @Success		200		{object}	models.Category
// @Failure		400		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		409		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		uint64				true	"ID of the category"
// @Param			category	body		v1.CategoryEditable	true	"Category"
// @Router			/v1/categories/{id} [put]
func UpdateCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	var category models.Category
	err := models.DB.First(&category, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	var editable CategoryEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	// Select both columns so that an omitted threshold clears the value
	err = models.DB.Model(&category).Select("Name", "Threshold").Updates(editable.model()).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, category)
}

// @Summary		Delete category
// @Description	Deletes a category. Transactions in the category are kept and become uncategorized.
// @Tags			Categories
// @Produce		json
// @Success		200	{object}	v1.CategoryDeleteResponse
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		uint64	true	"ID of the category"
// @Router			/v1/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	var category models.Category
	err := models.DB.First(&category, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	// Detach transactions before the row goes away so that the
	// response can report whether any were affected
	detached, err := category.Detach(models.DB)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	err = models.DB.Delete(&category).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, CategoryDeleteResponse{
		Message:             "category deleted",
		TransactionsUpdated: detached,
	})
}
