// internal/domain/auth/entity.go
package auth

import (
	"time"
)

// Account is a gateway-side user account.
type Account struct {
	ID               int64     `json:"id" db:"id"`
	Email            string    `json:"email" db:"email"`
	UserName         string    `json:"user_name" db:"user_name"`
	CompanyID        string    `json:"company_id" db:"company_id"`
	PasswordHash     string    `json:"-" db:"password_hash"`
	Roles            []string  `json:"roles" db:"roles"`
	IsFirstTimeLogin bool      `json:"is_first_time_login" db:"is_first_time_login"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// UserProfile is the slice of the login response the portal keeps for display.
type UserProfile struct {
	UserName         string   `json:"userName"`
	Email            string   `json:"email"`
	CompanyID        string   `json:"companyId"`
	Roles            []string `json:"roles"`
	IsFirstTimeLogin bool     `json:"isFirstTimeLogin"`
}

// Session is the authenticated state held by the portal after a login.
// AccessToken and ExpiryDate are both set or the session is not usable;
// a partially populated session never authenticates a request.
type Session struct {
	AccessToken string      `json:"accessToken"`
	CSRFToken   string      `json:"csrfToken"`
	ExpiryDate  time.Time   `json:"expiryDate"`
	Profile     UserProfile `json:"profile"`
}

// SessionFromLoginResponse converts the login wire body into a Session.
// The gateway sends the expiry as an RFC 3339 timestamp.
func SessionFromLoginResponse(resp *LoginResponse) (*Session, error) {
	expiry, err := time.Parse(time.RFC3339, resp.ExpiryDate)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken: resp.AccessToken,
		CSRFToken:   resp.CSRFToken,
		ExpiryDate:  expiry,
		Profile: UserProfile{
			UserName:         resp.UserName,
			Email:            resp.Email,
			CompanyID:        resp.CompanyID,
			Roles:            resp.Roles,
			IsFirstTimeLogin: resp.IsFirstTimeLogin,
		},
	}, nil
}
