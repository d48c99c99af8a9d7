// Package media delegates avatar image storage to an external media host.
package media

import (
	"context"
	"errors"
	"io"
)

// MaxAvatarBytes is the upload size limit for avatar images.
const MaxAvatarBytes = 2 * 1024 * 1024

var (
	ErrNoFile        = errors.New("you must send a file to this endpoint")
	ErrFileTooLarge  = errors.New("the file is too large, the limit is 2MB")
	ErrNotAnImage    = errors.New("only image files are accepted")
	ErrNotConfigured = errors.New("avatar uploads are not configured on this server")
)

// Avatar is a stored avatar image.
type Avatar struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}

// AvatarStore stores avatar images with an external media host.
type AvatarStore interface {
	// Upload stores the image for the user, replacing any previous avatar.
	Upload(ctx context.Context, userID string, file io.Reader) (Avatar, error)

	// Delete removes the image with the given public ID.
	Delete(ctx context.Context, publicID string) error
}
