package tablestore

import (
	"context"
	"encoding/json"
	"fmt"
)

// User is the identity service's view of an authenticated user
type User struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
}

// HasRole reports whether the user carries the given role
func (u *User) HasRole(role string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// AuthSession is returned by login: the bearer token plus the user it
// authenticates.
type AuthSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Credentials is the login/register payload
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the identity service
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthSession, error) {
	data, err := c.doPost(ctx, "/api/auth/login", creds, "")
	if err != nil {
		return nil, err
	}

	var session AuthSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode auth session: %w", err)
	}
	return &session, nil
}

// Register creates an account with the identity service
func (c *Client) Register(ctx context.Context, creds Credentials) (*AuthSession, error) {
	data, err := c.doPost(ctx, "/api/auth/register", creds, "")
	if err != nil {
		return nil, err
	}

	var session AuthSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode auth session: %w", err)
	}
	return &session, nil
}

// UserInfo resolves a bearer token to its user, or fails if the token is
// invalid or expired.
func (c *Client) UserInfo(ctx context.Context, token string) (*User, error) {
	data, err := c.doPost(ctx, "/api/auth/userinfo", struct{}{}, token)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &user, nil
}

// Logout invalidates a bearer token
func (c *Client) Logout(ctx context.Context, token string) error {
	_, err := c.doPost(ctx, "/api/auth/logout", struct{}{}, token)
	return err
}

// SendResetPasswordEmail triggers the reset-password email flow
func (c *Client) SendResetPasswordEmail(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	_, err := c.doPost(ctx, "/api/auth/send-reset-password-email", payload, "")
	return err
}

// ResetPassword completes the reset flow with the emailed token
func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) error {
	payload := map[string]string{"token": resetToken, "password": password}
	_, err := c.doPost(ctx, "/api/auth/reset-password", payload, "")
	return err
}
