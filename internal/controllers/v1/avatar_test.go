package v1_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/triz-financeiro/backend/internal/config"
	"github.com/triz-financeiro/backend/internal/media"
	"github.com/triz-financeiro/backend/internal/models"
	"github.com/triz-financeiro/backend/internal/router"
	"github.com/triz-financeiro/backend/test"
)

// fakeAvatarStore records uploads and deletions instead of calling out to a
// media host.
type fakeAvatarStore struct {
	uploaded []string
	deleted  []string
}

func (s *fakeAvatarStore) Upload(_ context.Context, userID string, _ io.Reader) (media.Avatar, error) {
	s.uploaded = append(s.uploaded, userID)

	return media.Avatar{
		URL:      "https://cdn.example.com/avatars/user_" + userID + ".png",
		PublicID: "avatars/user_" + userID,
		Width:    300,
		Height:   300,
	}, nil
}

func (s *fakeAvatarStore) Delete(_ context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

// avatarRouter builds a router with a fake store attached.
func (suite *TestSuiteStandard) avatarRouter(store media.AvatarStore) http.Handler {
	r, err := router.New(config.Config{}, store)
	require.Nil(suite.T(), err)

	return r
}

// imageUpload builds a multipart body with a single image file.
func imageUpload(t *testing.T, contentType string, size int) (*bytes.Buffer, map[string]string) {
	body := new(bytes.Buffer)
	mw := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="avatar.png"`)
	header.Set("Content-Type", contentType)

	w, err := mw.CreatePart(header)
	require.Nil(t, err)

	_, err = w.Write(bytes.Repeat([]byte{0x42}, size))
	require.Nil(t, err)
	require.Nil(t, mw.Close())

	return body, map[string]string{
		"Content-Type": mw.FormDataContentType(),
	}
}

func (suite *TestSuiteStandard) TestAvatarUpload() {
	store := &fakeAvatarStore{}
	r := suite.avatarRouter(store)

	body, headers := imageUpload(suite.T(), "image/png", 1024)
	headers["Authorization"] = "Bearer " + suite.token

	recorder := test.Request(r, suite.T(), http.MethodPost, "http://example.com/v1/upload/avatar", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var avatar media.Avatar
	test.DecodeResponse(suite.T(), &recorder, &avatar)
	assert.Equal(suite.T(), "avatars/user_"+suite.userID, avatar.PublicID)
	assert.Equal(suite.T(), []string{suite.userID}, store.uploaded)

	// The profile image follows the upload
	var user models.User
	require.Nil(suite.T(), models.DB.First(&user, "id = ?", suite.userID).Error)
	if assert.NotNil(suite.T(), user.Image) {
		assert.Equal(suite.T(), avatar.URL, *user.Image)
	}
}

func (suite *TestSuiteStandard) TestAvatarUploadInvalid() {
	store := &fakeAvatarStore{}
	r := suite.avatarRouter(store)

	tests := []struct {
		name        string
		contentType string
		size        int
	}{
		{"Not an image", "application/pdf", 1024},
		{"Too large", "image/png", media.MaxAvatarBytes + 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body, headers := imageUpload(t, tt.contentType, tt.size)
			headers["Authorization"] = "Bearer " + suite.token

			recorder := test.Request(r, t, http.MethodPost, "http://example.com/v1/upload/avatar", body, headers)
			test.AssertHTTPStatus(t, &recorder, http.StatusBadRequest)
			assert.Empty(t, store.uploaded)
		})
	}
}

func (suite *TestSuiteStandard) TestAvatarUploadNoFile() {
	r := suite.avatarRouter(&fakeAvatarStore{})

	recorder := test.Request(r, suite.T(), http.MethodPost, "http://example.com/v1/upload/avatar", "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
	assert.Equal(suite.T(), media.ErrNoFile.Error(), test.DecodeError(suite.T(), recorder.Body.Bytes()))
}

// TestAvatarNotConfigured verifies that the endpoints are disabled without
// media host credentials.
func (suite *TestSuiteStandard) TestAvatarNotConfigured() {
	body, headers := imageUpload(suite.T(), "image/png", 1024)
	headers["Authorization"] = "Bearer " + suite.token

	recorder := test.Request(suite.router, suite.T(), http.MethodPost, "http://example.com/v1/upload/avatar", body, headers)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusServiceUnavailable)

	recorder = test.Request(suite.router, suite.T(), http.MethodDelete, "http://example.com/v1/upload/avatar?publicId=x", "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusServiceUnavailable)
}

func (suite *TestSuiteStandard) TestAvatarDelete() {
	store := &fakeAvatarStore{}
	r := suite.avatarRouter(store)

	recorder := test.Request(r, suite.T(), http.MethodDelete, "http://example.com/v1/upload/avatar?publicId=avatars/user_x", "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	assert.Equal(suite.T(), []string{"avatars/user_x"}, store.deleted)

	var user models.User
	require.Nil(suite.T(), models.DB.First(&user, "id = ?", suite.userID).Error)
	assert.Nil(suite.T(), user.Image)
}

func (suite *TestSuiteStandard) TestAvatarDeleteNoPublicID() {
	r := suite.avatarRouter(&fakeAvatarStore{})

	recorder := test.Request(r, suite.T(), http.MethodDelete, "http://example.com/v1/upload/avatar", "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
}
