package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/project-sentinel/sentinel-client/internal/models"
	"github.com/sirupsen/logrus"
)

// Persistence is the credential storage contract. The SQLite store
// implements it; tests substitute a mock.
type Persistence interface {
	SaveSession(token string, user *models.User) error
	LoadSession() (string, *models.User, error)
	ClearSession() error
}

// Store owns the authenticated session: one canonical bearer token and the
// cached user profile, with an explicit load/save/clear lifecycle. All
// mutation goes through this type; no other component touches the
// credential directly.
type Store struct {
	mu    sync.RWMutex
	token string
	user  *models.User
	db    Persistence
}

// NewStore creates a session store and restores any persisted session.
// Expired tokens are discarded on load.
func NewStore(db Persistence) *Store {
	s := &Store{db: db}

	token, user, err := db.LoadSession()
	if err != nil {
		logrus.Errorf("Failed to restore session: %v", err)
		return s
	}

	if token != "" && tokenExpired(token) {
		logrus.Info("Persisted token is expired, clearing session")
		if err := db.ClearSession(); err != nil {
			logrus.Errorf("Failed to clear expired session: %v", err)
		}
		return s
	}

	s.token = token
	s.user = user
	return s
}

// SetSession installs a fresh credential and profile after authentication.
// Role-derived profile fields are filled in before the snapshot is
// persisted.
func (s *Store) SetSession(token string, user models.User) error {
	applyRoleDefaults(&user)

	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()

	return s.db.SaveSession(token, &user)
}

// UpdateProfile replaces the cached profile fields without touching the
// credential.
func (s *Store) UpdateProfile(user models.User) error {
	s.mu.Lock()
	token := s.token
	s.user = &user
	s.mu.Unlock()

	return s.db.SaveSession(token, &user)
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the cached profile, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Authenticated reports whether a credential is present.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Clear destroys the session: credential and profile, in memory and on
// disk. Called on logout and on any 401 from the backend.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.db.ClearSession(); err != nil {
		logrus.Errorf("Failed to clear persisted session: %v", err)
	}
}

func applyRoleDefaults(user *models.User) {
	if user.JobTitle == "" {
		user.JobTitle = JobTitleForRole(user.Role)
	}
	if user.Department == "" {
		user.Department = DepartmentForRole(user.Role)
	}
	if user.Bio == "" {
		user.Bio = BioForRole(user.Role)
	}
}

// tokenExpired inspects the JWT expiry claim without verifying the
// signature; validation is the backend's job.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Opaque tokens carry no expiry; let the backend reject them.
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
