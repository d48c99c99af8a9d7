package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/triz-financeiro/backend/internal/httputil"
	"github.com/triz-financeiro/backend/internal/models"
	"github.com/triz-financeiro/backend/internal/types"
)

// RegisterAnalyticsRoutes registers the routes for analytics with
// the RouterGroup that is passed.
func RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetAnalytics)
}

// @Summary		Get analytics
// @Description	Returns aggregated spending reports for a period
// @Tags			Analytics
// @Produce		json
// @Success		200		{object}	models.Analytics
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			period	query		string	false	"One of weekly, monthly, yearly. Defaults to monthly"
// @Router			/v1/analytics [get]
func GetAnalytics(c *gin.Context) {
	period, err := types.ParsePeriod(c.Query("period"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{err.Error()})
		return
	}

	analytics, err := models.GetAnalytics(models.DB, period, time.Now().UTC())
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, analytics)
}
