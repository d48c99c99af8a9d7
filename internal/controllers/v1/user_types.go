package v1

import (
	"encoding/json"
	"time"

	"github.com/triz-financeiro/backend/internal/models"
)

// ProfileEditable represents all user configurable profile parameters
type ProfileEditable struct {
	Name  string  `json:"name" example:"Maria Silva"`
	Email string  `json:"email" example:"maria@example.com"`
	Image *string `json:"image"` // Avatar URL, kept as is when unset
}

type ProfileResponse struct {
	ID        string    `json:"id" example:"51498051-43a8-4ba5-a1d4-9ff8bea8add6"`
	Name      string    `json:"name" example:"Maria Silva"`
	Email     string    `json:"email" example:"maria@example.com"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newProfileResponse(user models.User) ProfileResponse {
	return ProfileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Image:     user.Image,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// Settings is the per-user preference blob. It is stored serialized on the
// user record so that new preferences do not need schema migrations.
type Settings struct {
	DarkMode      bool   `json:"darkMode" example:"false"`
	Currency      string `json:"currency" example:"BRL"`
	DateFormat    string `json:"dateFormat" example:"DD/MM/YYYY"`
	Notifications bool   `json:"notifications" example:"true"`
	BudgetAlerts  bool   `json:"budgetAlerts" example:"true"`
	WeeklyReport  bool   `json:"weeklyReport" example:"false"`
}

func defaultSettings() Settings {
	return Settings{
		DarkMode:      false,
		Currency:      "BRL",
		DateFormat:    "DD/MM/YYYY",
		Notifications: true,
		BudgetAlerts:  true,
		WeeklyReport:  false,
	}
}

// settingsFor parses the user's stored settings over the defaults, so that
// preferences added after the blob was written still have a value.
func settingsFor(user models.User) (Settings, error) {
	settings := defaultSettings()
	if user.Settings == nil {
		return settings, nil
	}

	err := json.Unmarshal([]byte(*user.Settings), &settings)
	if err != nil {
		return Settings{}, err
	}

	return settings, nil
}

type PasswordEditable struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type MessageResponse struct {
	Message string `json:"message" example:"password updated"`
}
