// Package export builds downloadable evidence packs: a campaign snapshot
// plus its evidence feed, serialized to JSON and handed to a storage
// backend.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/project-sentinel/sentinel-client/internal/campaigns"
	"github.com/project-sentinel/sentinel-client/internal/models"
)

// Pack is the serialized export payload.
type Pack struct {
	ExportedAt time.Time                `json:"exportedAt"`
	Campaign   models.Campaign          `json:"campaign"`
	Evidence   []campaigns.EvidenceItem `json:"evidence"`
	Network    []campaigns.NetworkPoint `json:"coordinationNetwork"`
	Insights   campaigns.Insights       `json:"insights"`
}

// Packer serializes campaign details into evidence packs.
type Packer struct {
	storage StorageInterface
}

// NewPacker creates a packer over a storage backend.
func NewPacker(storage StorageInterface) *Packer {
	return &Packer{storage: storage}
}

// Export builds and stores a pack for one campaign, returning the stored
// filename.
func (p *Packer) Export(c models.Campaign, posts []models.Post, now time.Time) (string, error) {
	pack := Pack{
		ExportedAt: now,
		Campaign:   c,
		Evidence:   campaigns.EvidenceList(posts, now),
		Network:    campaigns.CoordinationNetwork(posts),
		Insights:   campaigns.DeriveInsights(&c, posts),
	}

	data, err := json.MarshalIndent(pack, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize evidence pack: %w", err)
	}

	filename := packFilename(c, now)
	if err := p.storage.Store(filename, data); err != nil {
		return "", err
	}

	logrus.Infof("Exported evidence pack %s (%d evidence items)", filename, len(pack.Evidence))
	return filename, nil
}

// packFilename is "<slug>-<timestamp>.json", with the campaign name reduced
// to a filesystem-safe slug.
func packFilename(c models.Campaign, now time.Time) string {
	slug := strings.ToLower(c.Name)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = c.ID
	}

	return fmt.Sprintf("%s-%s.json", slug, now.Format("20060102-150405"))
}
