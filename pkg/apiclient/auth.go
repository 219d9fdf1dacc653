package apiclient

import (
	"context"
	"net/http"

	"gomelclient/pkg/models"
)

type authResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type otpResponse struct {
	ExpiresAt string `json:"expiresAt"`
}

func (c *Client) Signup(ctx context.Context, email, password, fullName, mobile string) (*models.User, string, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
		"fullName": fullName,
		"mobile":   mobile,
	}
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", "", body, &out); err != nil {
		return nil, "", err
	}
	return out.User, out.Token, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	body := map[string]string{"email": email, "password": password}
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, &out); err != nil {
		return nil, "", err
	}
	return out.User, out.Token, nil
}

// RequestOTP starts a one-time-code flow; purpose is "login" or "signup".
func (c *Client) RequestOTP(ctx context.Context, email, purpose string) (string, error) {
	body := map[string]string{"email": email, "purpose": purpose}
	var out otpResponse
	if err := c.do(ctx, http.MethodPost, "/auth/request-otp", "", body, &out); err != nil {
		return "", err
	}
	return out.ExpiresAt, nil
}

type VerifyOTPParams struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	FullName string `json:"fullName,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
	Password string `json:"password,omitempty"`
}

// VerifyOTP completes the one-time-code flow and establishes a session.
func (c *Client) VerifyOTP(ctx context.Context, params VerifyOTPParams) (*models.User, string, error) {
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/verify-otp", "", params, &out); err != nil {
		return nil, "", err
	}
	return out.User, out.Token, nil
}

// LoginPassword starts the password+OTP two-step login; the session is only
// established by the VerifyOTP round trip that follows.
func (c *Client) LoginPassword(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var out otpResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login-password", "", body, &out); err != nil {
		return "", err
	}
	return out.ExpiresAt, nil
}

// Me validates a user bearer and returns the server's view of the profile.
func (c *Client) Me(ctx context.Context, bearer string) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", bearer, nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) AdminLogin(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/admin/login", "", body, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// AdminMe validates an admin bearer.
func (c *Client) AdminMe(ctx context.Context, bearer string) error {
	return c.do(ctx, http.MethodGet, "/admin/me", bearer, nil, nil)
}
