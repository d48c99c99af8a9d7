package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/triz-financeiro/backend/internal/controllers/v1"
	"github.com/triz-financeiro/backend/internal/models"
	"github.com/triz-financeiro/backend/test"
	"golang.org/x/crypto/bcrypt"
)

// createTestAccount gives the user a credential account with the password.
func createTestAccount(t *testing.T, userID, password string) models.Account {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.Nil(t, err)

	hashed := string(hash)
	account := models.Account{
		ID:         uuid.NewString(),
		AccountID:  userID,
		ProviderID: "credential",
		UserID:     userID,
		Password:   &hashed,
	}
	require.Nil(t, models.DB.Create(&account).Error)

	return account
}

// TestUserOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestUserOptions() {
	tests := []struct {
		path  string
		allow string
	}{
		{"profile", "OPTIONS, GET, PUT"},
		{"settings", "OPTIONS, GET, PUT"},
		{"password", "OPTIONS, PUT"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			r := test.Request(suite.router, t, http.MethodOptions, "http://example.com/v1/user/"+tt.path, "", suite.auth())
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestProfileGet() {
	r := test.Request(suite.router, suite.T(), http.MethodGet, "http://example.com/v1/user/profile", "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var profile v1.ProfileResponse
	test.DecodeResponse(suite.T(), &r, &profile)
	assert.Equal(suite.T(), suite.userID, profile.ID)
	assert.Equal(suite.T(), "test@example.com", profile.Email)
}

func (suite *TestSuiteStandard) TestProfileUpdate() {
	r := test.Request(suite.router, suite.T(), http.MethodPut, "http://example.com/v1/user/profile", v1.ProfileEditable{
		Name:  "New Name",
		Email: "new@example.com",
	}, suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var profile v1.ProfileResponse
	test.DecodeResponse(suite.T(), &r, &profile)
	assert.Equal(suite.T(), "New Name", profile.Name)
	assert.Equal(suite.T(), "new@example.com", profile.Email)
}

func (suite *TestSuiteStandard) TestProfileUpdateInvalid() {
	tests := []struct {
		name string
		body v1.ProfileEditable
	}{
		{"Empty name", v1.ProfileEditable{Name: "", Email: "valid@example.com"}},
		{"Invalid email", v1.ProfileEditable{Name: "Name", Email: "not-an-email"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.router, t, http.MethodPut, "http://example.com/v1/user/profile", tt.body, suite.auth())
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestProfileUpdateDuplicateEmail() {
	_, _ = createTestUser(suite.T(), "taken@example.com")

	r := test.Request(suite.router, suite.T(), http.MethodPut, "http://example.com/v1/user/profile", v1.ProfileEditable{
		Name:  "Name",
		Email: "taken@example.com",
	}, suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusConflict)
}

// TestSettingsDefaults verifies that a user without stored settings gets
// the defaults.
func (suite *TestSuiteStandard) TestSettingsDefaults() {
	r := test.Request(suite.router, suite.T(), http.MethodGet, "http://example.com/v1/user/settings", "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var settings v1.Settings
	test.DecodeResponse(suite.T(), &r, &settings)
	assert.False(suite.T(), settings.DarkMode)
	assert.Equal(suite.T(), "BRL", settings.Currency)
	assert.Equal(suite.T(), "DD/MM/YYYY", settings.DateFormat)
	assert.True(suite.T(), settings.Notifications)
	assert.True(suite.T(), settings.BudgetAlerts)
	assert.False(suite.T(), settings.WeeklyReport)
}

// TestSettingsUpdate verifies that partial updates merge over the stored
// settings and persist.
func (suite *TestSuiteStandard) TestSettingsUpdate() {
	r := test.Request(suite.router, suite.T(), http.MethodPut, "http://example.com/v1/user/settings", `{"darkMode": true, "currency": "USD"}`, suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.router, suite.T(), http.MethodGet, "http://example.com/v1/user/settings", "", suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var settings v1.Settings
	test.DecodeResponse(suite.T(), &r, &settings)
	assert.True(suite.T(), settings.DarkMode)
	assert.Equal(suite.T(), "USD", settings.Currency)

	// Untouched preferences keep their values
	assert.True(suite.T(), settings.Notifications)
	assert.Equal(suite.T(), "DD/MM/YYYY", settings.DateFormat)
}

func (suite *TestSuiteStandard) TestSettingsInvalidCurrency() {
	r := test.Request(suite.router, suite.T(), http.MethodPut, "http://example.com/v1/user/settings", `{"currency": "DOLLARS"}`, suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPasswordChange() {
	account := createTestAccount(suite.T(), suite.userID, "hunter2hunter2")

	r := test.Request(suite.router, suite.T(), http.MethodPut, "http://example.com/v1/user/password", v1.PasswordEditable{
		CurrentPassword: "hunter2hunter2",
		NewPassword:     "correct horse battery staple",
	}, suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated models.Account
	require.Nil(suite.T(), models.DB.First(&updated, "id = ?", account.ID).Error)
	require.NotNil(suite.T(), updated.Password)
	assert.Nil(suite.T(), bcrypt.CompareHashAndPassword([]byte(*updated.Password), []byte("correct horse battery staple")))
	assert.True(suite.T(), updated.UpdatedAt.After(time.Time{}))
}

func (suite *TestSuiteStandard) TestPasswordChangeInvalid() {
	_ = createTestAccount(suite.T(), suite.userID, "hunter2hunter2")

	tests := []struct {
		name   string
		body   v1.PasswordEditable
		status int
	}{
		{"Missing fields", v1.PasswordEditable{}, http.StatusBadRequest},
		{"Too short", v1.PasswordEditable{CurrentPassword: "hunter2hunter2", NewPassword: "short"}, http.StatusBadRequest},
		{"Unchanged", v1.PasswordEditable{CurrentPassword: "hunter2hunter2", NewPassword: "hunter2hunter2"}, http.StatusBadRequest},
		{"Wrong current password", v1.PasswordEditable{CurrentPassword: "wrong password", NewPassword: "a new password"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(suite.router, t, http.MethodPut, "http://example.com/v1/user/password", tt.body, suite.auth())
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestPasswordChangeNoAccount verifies the behavior for users signed up
// through an external provider only.
func (suite *TestSuiteStandard) TestPasswordChangeNoAccount() {
	r := test.Request(suite.router, suite.T(), http.MethodPut, "http://example.com/v1/user/password", v1.PasswordEditable{
		CurrentPassword: "whatever password",
		NewPassword:     "a new password",
	}, suite.auth())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
