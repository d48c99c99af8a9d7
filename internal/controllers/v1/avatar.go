package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/triz-financeiro/backend/internal/httputil"
	"github.com/triz-financeiro/backend/internal/media"
	"github.com/triz-financeiro/backend/internal/models"
)

// RegisterUploadRoutes registers the routes for avatar uploads with the
// RouterGroup that is passed. A nil store disables the endpoints with 503.
func RegisterUploadRoutes(r *gin.RouterGroup, store media.AvatarStore) {
	r.OPTIONS("/avatar", httputil.OptionsPostDelete)
	r.POST("/avatar", func(c *gin.Context) { UploadAvatar(c, store) })
	r.DELETE("/avatar", func(c *gin.Context) { DeleteAvatar(c, store) })
}

// @Summary		Upload avatar
// @Description	Uploads an avatar image for the authenticated user, replacing any previous one
// @Tags			Upload
// @Accept			multipart/form-data
// @Produce		json
// @Success		200		{object}	media.Avatar
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		500		{object}	httpError
// @Failure		503		{object}	httpError
// @Param			file	formData	file	true	"Image file, at most 2MB"
// @Router			/v1/upload/avatar [post]
func UploadAvatar(c *gin.Context, store media.AvatarStore) {
	if store == nil {
		c.JSON(status(media.ErrNotConfigured), httpError{media.ErrNotConfigured.Error()})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{media.ErrNoFile.Error()})
		return
	}

	if header.Size > media.MaxAvatarBytes {
		c.JSON(http.StatusBadRequest, httpError{media.ErrFileTooLarge.Error()})
		return
	}

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, httpError{media.ErrNotAnImage.Error()})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{err.Error()})
		return
	}
	defer file.Close()

	avatar, err := store.Upload(c.Request.Context(), currentUser(c), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{err.Error()})
		return
	}

	// Keep the profile pointing at the fresh image
	err = models.DB.Model(&models.User{ID: currentUser(c)}).
		Select("Image", "UpdatedAt").
		Updates(models.User{Image: &avatar.URL, UpdatedAt: time.Now().UTC()}).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, avatar)
}

// @Summary		Delete avatar
// @Description	Deletes an avatar image and clears it from the authenticated user's profile
// @Tags			Upload
// @Produce		json
// @Success		200			{object}	v1.MessageResponse
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Failure		500			{object}	httpError
// @Failure		503			{object}	httpError
// @Param			publicId	query		string	true	"Public ID of the image"
// @Router			/v1/upload/avatar [delete]
func DeleteAvatar(c *gin.Context, store media.AvatarStore) {
	if store == nil {
		c.JSON(status(media.ErrNotConfigured), httpError{media.ErrNotConfigured.Error()})
		return
	}

	publicID := c.Query("publicId")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, httpError{errPublicIDRequired.Error()})
		return
	}

	err := store.Delete(c.Request.Context(), publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{err.Error()})
		return
	}

	err = models.DB.Model(&models.User{ID: currentUser(c)}).
		Select("Image", "UpdatedAt").
		Updates(models.User{Image: nil, UpdatedAt: time.Now().UTC()}).Error
	if err != nil {
		c.JSON(status(err), httpError{err.Error()})
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "avatar deleted"})
}
