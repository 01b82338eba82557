package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/project-sentinel/sentinel-client/internal/models"
)

// MockPersistence is a mock implementation of the Persistence interface
type MockPersistence struct {
	mock.Mock
}

func (m *MockPersistence) SaveSession(token string, user *models.User) error {
	args := m.Called(token, user)
	return args.Error(0)
}

func (m *MockPersistence) LoadSession() (string, *models.User, error) {
	args := m.Called()
	var user *models.User
	if u := args.Get(1); u != nil {
		user = u.(*models.User)
	}
	return args.String(0), user, args.Error(2)
}

func (m *MockPersistence) ClearSession() error {
	args := m.Called()
	return args.Error(0)
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "analyst@sentinel.example",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return signed
}

func TestNewStore_RestoresPersistedSession(t *testing.T) {
	db := &MockPersistence{}
	token := signedToken(t, time.Now().Add(time.Hour))
	db.On("LoadSession").Return(token, &models.User{Username: "priya"}, nil)

	store := NewStore(db)

	assert.True(t, store.Authenticated())
	assert.Equal(t, token, store.Token())
	assert.Equal(t, "priya", store.User().Username)
	db.AssertExpectations(t)
}

func TestNewStore_DiscardsExpiredToken(t *testing.T) {
	db := &MockPersistence{}
	expired := signedToken(t, time.Now().Add(-time.Hour))
	db.On("LoadSession").Return(expired, &models.User{Username: "priya"}, nil)
	db.On("ClearSession").Return(nil)

	store := NewStore(db)

	assert.False(t, store.Authenticated())
	assert.Nil(t, store.User())
	db.AssertExpectations(t)
}

func TestNewStore_KeepsOpaqueToken(t *testing.T) {
	db := &MockPersistence{}
	db.On("LoadSession").Return("opaque-session-token", (*models.User)(nil), nil)

	store := NewStore(db)

	// Tokens without an expiry claim are the backend's problem, not ours.
	assert.True(t, store.Authenticated())
}

func TestNewStore_EmptySession(t *testing.T) {
	db := &MockPersistence{}
	db.On("LoadSession").Return("", (*models.User)(nil), nil)

	store := NewStore(db)

	assert.False(t, store.Authenticated())
	assert.Nil(t, store.User())
}

func TestSetSession_AppliesRoleDefaults(t *testing.T) {
	db := &MockPersistence{}
	db.On("LoadSession").Return("", (*models.User)(nil), nil)
	db.On("SaveSession", "token-1", mock.Anything).Return(nil)

	store := NewStore(db)
	err := store.SetSession("token-1", models.User{Username: "priya", Role: "analyst"})
	assert.NoError(t, err)

	user := store.User()
	assert.Equal(t, "Cyber Crime Analyst", user.JobTitle)
	assert.Equal(t, "Intelligence & Analysis Division", user.Department)
	assert.Equal(t, "Specialist in social media threat detection and misinformation analysis.", user.Bio)
}

func TestSetSession_DoesNotOverrideExplicitProfile(t *testing.T) {
	db := &MockPersistence{}
	db.On("LoadSession").Return("", (*models.User)(nil), nil)
	db.On("SaveSession", mock.Anything, mock.Anything).Return(nil)

	store := NewStore(db)
	err := store.SetSession("token-1", models.User{
		Role:     "admin",
		JobTitle: "Director of Operations",
	})
	assert.NoError(t, err)

	user := store.User()
	assert.Equal(t, "Director of Operations", user.JobTitle)
	assert.Equal(t, "Cyber Crime Headquarters", user.Department)
}

func TestRoleFallbacks(t *testing.T) {
	assert.Equal(t, "Cyber Crime Officer", JobTitleForRole("unknown"))
	assert.Equal(t, "Cyber Security Division", DepartmentForRole("unknown"))
	assert.Equal(t, "Experienced cyber crime officer specializing in digital threat detection.", BioForRole("unknown"))
}

func TestClear_PurgesMemoryAndDisk(t *testing.T) {
	db := &MockPersistence{}
	token := signedToken(t, time.Now().Add(time.Hour))
	db.On("LoadSession").Return(token, &models.User{Username: "priya"}, nil)
	db.On("ClearSession").Return(nil)

	store := NewStore(db)
	store.Clear()

	assert.False(t, store.Authenticated())
	assert.Empty(t, store.Token())
	assert.Nil(t, store.User())
	db.AssertExpectations(t)
}

func TestUser_ReturnsCopy(t *testing.T) {
	db := &MockPersistence{}
	db.On("LoadSession").Return("", (*models.User)(nil), nil)
	db.On("SaveSession", mock.Anything, mock.Anything).Return(nil)

	store := NewStore(db)
	assert.NoError(t, store.SetSession("t", models.User{Username: "priya", Role: "user"}))

	copy := store.User()
	copy.Username = "mutated"

	assert.Equal(t, "priya", store.User().Username)
}
