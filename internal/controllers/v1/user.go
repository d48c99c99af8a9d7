package v1

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/triz-financeiro/backend/internal/httputil"
	"github.com/triz-financeiro/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/currency"
)

// credentialProvider is the provider ID the auth provider uses for accounts
// with a local password.
const credentialProvider = "credential"

// RegisterUserRoutes registers the routes for the authenticated user's
// profile and settings with the RouterGroup that is passed.
func RegisterUserRoutes(r *gin.RouterGroup) {
	// Profile
	{
		r.OPTIONS("/profile", httputil.OptionsGetPut)
		r.GET("/profile", GetProfile)
		r.PUT("/profile", UpdateProfile)
	}

	// Settings
	{
		r.OPTIONS("/settings", httputil.OptionsGetPut)
		r.GET("/settings", GetSettings)
		r.PUT("/settings", UpdateSettings)
	}

	// Password
	{
		r.OPTIONS("/password", httputil.OptionsPut)
		r.PUT("/password", UpdatePassword)
	}
}

// @Summary		Get profile
// @Description	Returns the authenticated user's profile
// @Tags			User
// @Produce		json
// @Success		200	{object}	v1.ProfileResponse
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/user/profile [get]
func GetProfile(c *gin.Context) {
	var user models.User
	err := models.DB.First(&user, "id = ?", currentUser(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

// @Summary		Update profile
// @Description	Updates the authenticated user's name, email and avatar URL
// @Tags			User
// @Accept			json
// @Produce		json
// @Success		200		{object}	v1.ProfileResponse
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		409		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			profile	body		v1.ProfileEditable	true	"Profile"
// @Router			/v1/user/profile [put]
func UpdateProfile(c *gin.Context) {
	var user models.User
	err := models.DB.First(&user, "id = ?", currentUser(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	var editable ProfileEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	if strings.TrimSpace(editable.Name) == "" {
		c.JSON(http.StatusBadRequest, httpError{errNameRequired.Error()})
		return
	}

	if !strings.Contains(editable.Email, "@") {
		c.JSON(http.StatusBadRequest, httpError{errEmailInvalid.Error()})
		return
	}

	fields := []string{"Name", "Email", "UpdatedAt"}
	if editable.Image != nil {
		fields = append(fields, "Image")
	}

	data := models.User{
		Name:      editable.Name,
		Email:     editable.Email,
		Image:     editable.Image,
		UpdatedAt: time.Now().UTC(),
	}
	err = models.DB.Model(&user).Select(fields).Updates(data).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(user))
}

// @Summary		Get settings
// @Description	Returns the authenticated user's settings, with defaults for unset preferences
// @Tags			User
// @Produce		json
// @Success		200	{object}	v1.Settings
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/user/settings [get]
func GetSettings(c *gin.Context) {
	var user models.User
	err := models.DB.First(&user, "id = ?", currentUser(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	settings, err := settingsFor(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// @Summary		Update settings
// @Description	Updates the authenticated user's settings. Omitted preferences keep their value.
// @Tags			User
// @Accept			json
// @Produce		json
// @Success		200			{object}	v1.Settings
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			settings	body		v1.Settings	true	"Settings"
// @Router			/v1/user/settings [put]
func UpdateSettings(c *gin.Context) {
	var user models.User
	err := models.DB.First(&user, "id = ?", currentUser(c)).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	settings, err := settingsFor(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{err.Error()})
		return
	}

	// Binding over the current settings merges partial updates
	err = httputil.BindData(c, &settings)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	if _, err := currency.ParseISO(settings.Currency); err != nil {
		c.JSON(http.StatusBadRequest, httpError{errCurrencyInvalid.Error()})
		return
	}

	blob, err := json.Marshal(settings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{err.Error()})
		return
	}

	serialized := string(blob)
	err = models.DB.Model(&user).Select("Settings", "UpdatedAt").Updates(models.User{
		Settings:  &serialized,
		UpdatedAt: time.Now().UTC(),
	}).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// @Summary		Change password
// @Description	Changes the password of the authenticated user's credential account
// @Tags			User
// @Accept			json
// @Produce		json
// @Success		200			{object}	v1.MessageResponse
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			password	body		v1.PasswordEditable	true	"Passwords"
// @Router			/v1/user/password [put]
func UpdatePassword(c *gin.Context) {
	var editable PasswordEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	if editable.CurrentPassword == "" || editable.NewPassword == "" {
		c.JSON(http.StatusBadRequest, httpError{errPasswordFieldsMissing.Error()})
		return
	}

	if len(editable.NewPassword) < 8 {
		c.JSON(http.StatusBadRequest, httpError{errPasswordTooShort.Error()})
		return
	}

	if editable.NewPassword == editable.CurrentPassword {
		c.JSON(http.StatusBadRequest, httpError{errPasswordUnchanged.Error()})
		return
	}

	var account models.Account
	err = models.DB.
		Where(&models.Account{UserID: currentUser(c), ProviderID: credentialProvider}).
		First(&account).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	if account.Password == nil {
		c.JSON(http.StatusBadRequest, httpError{errNoPasswordAccount.Error()})
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(*account.Password), []byte(editable.CurrentPassword))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{errPasswordIncorrect.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(editable.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{err.Error()})
		return
	}

	hashed := string(hash)
	err = models.DB.Model(&account).Select("Password", "UpdatedAt").Updates(models.Account{
		Password:  &hashed,
		UpdatedAt: time.Now().UTC(),
	}).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "password updated"})
}
