package domain

import "strings"

type User struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	ProfilePhoto *string `json:"profile_photo"`
	CoverPhoto   *string `json:"cover_photo"`
	CreatedAt    string  `json:"created_at"`
	UniqueID     string  `json:"unique_id"`
}

// DisplayName is the username, or "first last" when the user has none.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
