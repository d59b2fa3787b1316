package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Roles understood by the console. The backend is the authority on what a role may do.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the identity returned by the auth endpoints and persisted under the "user" key
type User struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	// Token is only set when the backend embeds it in the user object
	Token string `json:"token,omitempty"`
}

// UnmarshalJSON accepts both "id" and the document-store style "_id".
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var raw struct {
		plain
		DocID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User(raw.plain)
	if u.ID == "" {
		u.ID = raw.DocID
	}
	return nil
}

// IsAdmin returns true if the user carries the admin role
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Session represents the currently authenticated actor
type Session struct {
	User
	Token string `json:"-"`
}

// Active returns true if the session holds an identity
func (s *Session) Active() bool {
	return s != nil && (s.User.ID != "" || s.User.Email != "" || s.Token != "")
}

// BearerToken returns the session token, falling back to one embedded in the user object
func (s *Session) BearerToken() string {
	if s == nil {
		return ""
	}
	if s.Token != "" {
		return s.Token
	}
	return s.User.Token
}

// Credentials are sent to the login endpoints
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Registration is the signup form
type Registration struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Normalize trims the free-text fields before validation and submission
func (r Registration) Normalize() Registration {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	return r
}

// Account is a registered person listed in the admin directory
type Account struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MemberFor renders how long the account has existed, e.g. "3 months" or "1 year 2 months".
func (a Account) MemberFor(now time.Time) string {
	diff := now.Sub(a.CreatedAt)
	if diff < 0 {
		diff = -diff
	}
	days := int(diff.Hours() / 24)

	switch {
	case days < 30:
		return plural(days, "day")
	case days < 365:
		return plural(days/30, "month")
	default:
		return plural(days/365, "year") + " " + plural((days%365)/30, "month")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
