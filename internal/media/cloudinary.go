package media

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// avatarFolder groups all avatar images on the media host.
const avatarFolder = "avatars"

// CloudinaryStore stores avatars with Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore returns an AvatarStore backed by Cloudinary.
func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}

	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, userID string, file io.Reader) (Avatar, error) {
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		// One public ID per user so a new upload replaces the old avatar
		PublicID:   fmt.Sprintf("user_%s", userID),
		Folder:     avatarFolder,
		Overwrite:  api.Bool(true),
		Invalidate: api.Bool(true),
		// Square crop focused on the face, with automatic quality
		Transformation: "c_fill,g_face,h_300,w_300/q_auto:good",
	})
	if err != nil {
		return Avatar{}, err
	}

	return Avatar{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
		Width:    result.Width,
		Height:   result.Height,
	}, nil
}

func (s *CloudinaryStore) Delete(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: publicID,
	})

	return err
}
