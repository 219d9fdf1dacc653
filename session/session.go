package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gomelclient/pkg/apiclient"
	"gomelclient/pkg/logger"
	"gomelclient/pkg/models"
)

// Manager holds the two independent identity slots: the user session (token
// plus profile) and the admin session (token only). Either, both, or neither
// may be present; admin presence is the higher privilege. State is persisted
// to a local file and rehydrated at construction.
type Manager struct {
	api *apiclient.Client
	log logger.ILogger

	mu         sync.RWMutex
	file       *stateFile
	user       *models.User
	userToken  string
	adminToken string
	listeners  []func(models.Identity)
}

func New(api *apiclient.Client, log logger.ILogger, path string) *Manager {
	m := &Manager{
		api:  api,
		log:  log,
		file: newStateFile(path),
	}
	m.rehydrate()
	return m
}

func (m *Manager) rehydrate() {
	m.userToken = m.file.Get(keyUserToken)
	m.adminToken = m.file.Get(keyAdminToken)
	if raw := m.file.Get(keyUser); raw != "" {
		var u models.User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			m.user = &u
		}
	}
}

// Identity snapshots the current slots. Callers tag in-flight work with the
// snapshot and discard results that land after it changed.
func (m *Manager) Identity() models.Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.Identity{
		UserToken:  m.userToken,
		AdminToken: m.adminToken,
		User:       m.user,
	}
}

func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.adminToken != ""
}

// OnChange registers a listener called with the new snapshot after every
// identity change.
func (m *Manager) OnChange(fn func(models.Identity)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) notify() {
	id := m.Identity()
	m.mu.RLock()
	listeners := make([]func(models.Identity), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.RUnlock()
	for _, fn := range listeners {
		fn(id)
	}
}

// establishUser stores a confirmed user session. Login, signup and OTP
// verification all land here so persistence stays on one path.
func (m *Manager) establishUser(user *models.User, token string) {
	raw, _ := json.Marshal(user)
	if err := m.file.Set(keyUserToken, token); err != nil {
		m.log.Warning("session: persist token failed", logger.Error(err))
	}
	if err := m.file.Set(keyUser, string(raw)); err != nil {
		m.log.Warning("session: persist user failed", logger.Error(err))
	}

	m.mu.Lock()
	m.user = user
	m.userToken = token
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) clearUser() {
	if err := m.file.Delete(keyUserToken, keyUser); err != nil {
		m.log.Warning("session: clear failed", logger.Error(err))
	}
	m.mu.Lock()
	m.user = nil
	m.userToken = ""
	m.mu.Unlock()
	m.notify()
}

func (m *Manager) Signup(ctx context.Context, email, password, fullName, mobile string) (*models.User, error) {
	user, token, err := m.api.Signup(ctx, email, password, fullName, mobile)
	if err != nil {
		return nil, err
	}
	m.establishUser(user, token)
	return user, nil
}

func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, token, err := m.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	m.establishUser(user, token)
	return user, nil
}

func (m *Manager) Logout() {
	m.clearUser()
}

// RequestOTP and VerifyOTP are two separate round trips; only the verify
// establishes the session.
func (m *Manager) RequestOTP(ctx context.Context, email, purpose string) (string, error) {
	return m.api.RequestOTP(ctx, email, purpose)
}

func (m *Manager) VerifyOTP(ctx context.Context, params apiclient.VerifyOTPParams) (*models.User, error) {
	user, token, err := m.api.VerifyOTP(ctx, params)
	if err != nil {
		return nil, err
	}
	m.establishUser(user, token)
	return user, nil
}

// LoginStartPassword begins the password+OTP login; it returns the code
// expiry and leaves the session untouched until VerifyOTP.
func (m *Manager) LoginStartPassword(ctx context.Context, email, password string) (string, error) {
	return m.api.LoginPassword(ctx, email, password)
}

func (m *Manager) LoginAdmin(ctx context.Context, email, password string) error {
	token, err := m.api.AdminLogin(ctx, email, password)
	if err != nil {
		return err
	}
	if err := m.file.Set(keyAdminToken, token); err != nil {
		m.log.Warning("session: persist admin token failed", logger.Error(err))
	}
	m.mu.Lock()
	m.adminToken = token
	m.mu.Unlock()
	m.notify()
	return nil
}

func (m *Manager) LogoutAdmin() {
	if err := m.file.Delete(keyAdminToken); err != nil {
		m.log.Warning("session: clear admin token failed", logger.Error(err))
	}
	m.mu.Lock()
	m.adminToken = ""
	m.mu.Unlock()
	m.notify()
}

// Validate confirms both slots against the backend. An explicit rejection
// clears the slot; a transport error leaves it intact, so flaky connectivity
// never logs anyone out.
func (m *Manager) Validate(ctx context.Context) {
	id := m.Identity()

	if id.UserToken != "" {
		m.logExpiry("user", id.UserToken)
		user, err := m.api.Me(ctx, id.UserToken)
		switch {
		case err == nil:
			if user != nil {
				// Refresh the cached profile from the server's view.
				m.mu.Lock()
				m.user = user
				m.mu.Unlock()
				raw, _ := json.Marshal(user)
				_ = m.file.Set(keyUser, string(raw))
			}
		case apiclient.IsRejection(err):
			m.log.Info("session: user token rejected, clearing", logger.Error(err))
			m.clearUser()
		default:
			m.log.Warning("session: user validation unreachable, keeping session", logger.Error(err))
		}
	}

	if id.AdminToken != "" {
		m.logExpiry("admin", id.AdminToken)
		err := m.api.AdminMe(ctx, id.AdminToken)
		switch {
		case err == nil:
		case apiclient.IsRejection(err):
			m.log.Info("session: admin token rejected, clearing", logger.Error(err))
			m.LogoutAdmin()
		default:
			m.log.Warning("session: admin validation unreachable, keeping session", logger.Error(err))
		}
	}
}

// logExpiry peeks at the bearer's expiry claim without verifying the
// signature; the server remains the authority, this only feeds a log line.
func (m *Manager) logExpiry(slot, token string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if remaining := time.Until(exp.Time); remaining < time.Hour {
		m.log.Warning("session: token close to expiry",
			logger.String("slot", slot),
			logger.Duration("remaining", remaining))
	}
}
