package export

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/project-sentinel/sentinel-client/internal/models"
)

// MockStorage is a mock implementation of the StorageInterface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Store(filename string, data []byte) error {
	args := m.Called(filename, data)
	return args.Error(0)
}

func (m *MockStorage) Retrieve(filename string) ([]byte, error) {
	args := m.Called(filename)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) List(prefix string) ([]string, error) {
	args := m.Called(prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorage) Delete(filename string) error {
	args := m.Called(filename)
	return args.Error(0)
}

func TestLocalStorageRoundTrip(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	assert.NoError(t, err)

	assert.NoError(t, storage.Store("pack-1.json", []byte(`{"a":1}`)))
	assert.NoError(t, storage.Store("pack-2.json", []byte(`{"b":2}`)))
	assert.NoError(t, storage.Store("other.json", []byte(`{}`)))

	data, err := storage.Retrieve("pack-1.json")
	assert.NoError(t, err)
	assert.Equal(t, []byte(`{"a":1}`), data)

	names, err := storage.List("pack-")
	assert.NoError(t, err)
	assert.Len(t, names, 2)

	assert.NoError(t, storage.Delete("pack-1.json"))
	_, err = storage.Retrieve("pack-1.json")
	assert.Error(t, err)
}

func TestPacker_Export(t *testing.T) {
	storage := &MockStorage{}
	var stored []byte
	storage.On("Store", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(1).([]byte) }).
		Return(nil)

	packer := NewPacker(storage)
	now := time.Date(2024, 5, 28, 12, 0, 0, 0, time.UTC)

	campaign := models.Campaign{
		ID:   "c1",
		Name: "2024 Lok Sabha Election Security Monitoring",
	}
	posts := []models.Post{
		{ID: "p1", Username: "u1", Source: "twitter", CrawledAt: now.Add(-time.Hour)},
	}

	filename, err := packer.Export(campaign, posts, now)

	assert.NoError(t, err)
	assert.Equal(t, "2024-lok-sabha-election-security-monitoring-20240528-120000.json", filename)
	storage.AssertExpectations(t)

	var pack Pack
	assert.NoError(t, json.Unmarshal(stored, &pack))
	assert.Equal(t, "c1", pack.Campaign.ID)
	assert.Len(t, pack.Evidence, 1)
	assert.Equal(t, "x", pack.Evidence[0].Platform)
	assert.Len(t, pack.Network, 1)
}

func TestPackFilename_FallsBackToID(t *testing.T) {
	now := time.Date(2024, 5, 28, 12, 0, 0, 0, time.UTC)
	name := packFilename(models.Campaign{ID: "c9", Name: "!!!"}, now)
	assert.Equal(t, "c9-20240528-120000.json", name)
}
