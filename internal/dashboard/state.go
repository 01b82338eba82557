// Package dashboard holds the live view state: the campaign list, the
// rolling alert window and the overview counters. One mutex guards all of
// it; the realtime client, the scheduler and the HTTP layer all go through
// the same container.
package dashboard

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/project-sentinel/sentinel-client/internal/campaigns"
	"github.com/project-sentinel/sentinel-client/internal/models"
)

// State is the shared dashboard container.
type State struct {
	mu        sync.Mutex
	campaigns []models.Campaign
	alerts    []models.Alert
	overview  models.Overview

	// alertCap bounds the window under realtime merges; rotationCap is the
	// smaller bound the demo rotation trims to.
	alertCap    int
	rotationCap int
}

// NewState creates an empty container with the given window bounds.
func NewState(alertCap, rotationCap int) *State {
	return &State{alertCap: alertCap, rotationCap: rotationCap}
}

// SetCampaigns replaces the campaign list, deriving a severity for any
// campaign the backend left unrated.
func (s *State) SetCampaigns(list []models.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.campaigns = make([]models.Campaign, len(list))
	copy(s.campaigns, list)
	for i := range s.campaigns {
		if s.campaigns[i].Severity == "" {
			s.campaigns[i].Severity = DeriveSeverity(s.campaigns[i])
		}
	}
}

// Campaigns returns a copy of the campaign list.
func (s *State) Campaigns() []models.Campaign {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Campaign, len(s.campaigns))
	copy(out, s.campaigns)
	return out
}

// MergeCampaign updates an existing campaign by ID or prepends a new one.
func (s *State) MergeCampaign(c models.Campaign) {
	if c.Severity == "" {
		c.Severity = DeriveSeverity(c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.campaigns {
		if s.campaigns[i].ID == c.ID {
			s.campaigns[i] = c
			return
		}
	}
	s.campaigns = append([]models.Campaign{c}, s.campaigns...)
}

// CompleteCampaign marks a campaign completed with its final counters.
// Unknown IDs are ignored; the completion event may race a list refresh.
func (s *State) CompleteCampaign(id string, completedAt time.Time, reason string, totalPosts int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.campaigns {
		if s.campaigns[i].ID != id {
			continue
		}
		s.campaigns[i].Status = models.StatusCompleted
		s.campaigns[i].CompletedAt = &completedAt
		s.campaigns[i].CompletedReason = reason
		if s.campaigns[i].Stats == nil {
			s.campaigns[i].Stats = &models.CampaignStats{}
		}
		s.campaigns[i].Stats.TotalPosts = totalPosts
		return
	}
}

// MergeAlert prepends an alert to the window. Merging is idempotent: an ID
// already present updates in place, so duplicate socket delivery never
// grows the window.
func (s *State) MergeAlert(alert models.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		if s.alerts[i].ID == alert.ID {
			s.alerts[i] = alert
			return
		}
	}

	s.alerts = append([]models.Alert{alert}, s.alerts...)
	if len(s.alerts) > s.alertCap {
		s.alerts = s.alerts[:s.alertCap]
	}
}

// MergeAlerts merges a batch in order.
func (s *State) MergeAlerts(alerts []models.Alert) {
	for _, a := range alerts {
		s.MergeAlert(a)
	}
}

// RotateAlert prepends a rotation alert and trims the window to the
// rotation bound.
func (s *State) RotateAlert(alert models.Alert) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts = append([]models.Alert{alert}, s.alerts...)
	if len(s.alerts) > s.rotationCap {
		s.alerts = s.alerts[:s.rotationCap]
	}
}

// Alerts returns a copy of the alert window, newest first.
func (s *State) Alerts() []models.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// SetOverview replaces the overview counters.
func (s *State) SetOverview(o models.Overview) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overview = o
}

// Overview returns the overview counters.
func (s *State) Overview() models.Overview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overview
}

// RefreshTimestamps recomputes the relative-time labels across the alert
// window. The scheduler calls this once a minute.
func (s *State) RefreshTimestamps(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.alerts {
		s.alerts[i].TimeAgo = campaigns.RelativeTime(s.alerts[i].CreatedAt, now)
	}
}

// DeriveSeverity rates a campaign from its own counters when the backend
// did not supply a severity.
func DeriveSeverity(c models.Campaign) string {
	if c.Stats == nil {
		return "low"
	}

	fakeRatio := 0.0
	if c.Stats.TotalPosts > 0 {
		fakeRatio = float64(c.Stats.FakePosts) / float64(c.Stats.TotalPosts)
	}

	switch {
	case c.Stats.AlertsGenerated > 10 || fakeRatio > 0.7:
		return "high"
	case c.Stats.AlertsGenerated > 5 || fakeRatio > 0.4:
		return "medium"
	default:
		return "low"
	}
}

// Sparkline synthesizes a 12-point activity curve from a campaign's post
// count: a sine swell around the base volume with a little noise, floored
// at 10.
func Sparkline(stats *models.CampaignStats, rng *rand.Rand) []float64 {
	base := 50.0
	if stats != nil && stats.TotalPosts > 0 {
		base = float64(stats.TotalPosts)
	}

	points := make([]float64, 12)
	for i := range points {
		v := base + math.Sin(float64(i)*0.5)*20 + rng.Float64()*15
		if v < 10 {
			v = 10
		}
		points[i] = v
	}
	return points
}
