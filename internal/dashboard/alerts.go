package dashboard

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/project-sentinel/sentinel-client/internal/models"
)

// AlertSource produces alerts for the live feed rotation.
type AlertSource interface {
	// Initial returns the alerts shown before any rotation has run.
	Initial(now time.Time) []models.Alert
	// Next returns one alert stamped with a fresh unique ID.
	Next(now time.Time) models.Alert
}

// demoPool is the canned election-season alert pool used when the backend
// has no live alert stream.
var demoPool = []models.Alert{
	{
		ID:          "alert_001",
		Title:       "EVM Tampering Claims Viral in Uttar Pradesh",
		Description: "Coordinated disinformation campaign claiming electronic voting machines were hacked in 47 constituencies across UP. Videos showing 'proof' spreading rapidly on WhatsApp groups.",
		Severity:    "high",
		Platform:    models.PlatformX,
		Location:    "Uttar Pradesh",
		Engagement:  &models.Engagement{Shares: 2847, Views: 89420},
	},
	{
		ID:          "alert_002",
		Title:       "Fake Exit Poll Data Circulating",
		Description: "Fabricated exit poll results showing dramatic swings in Maharashtra constituencies. Created to influence last-minute voter sentiment in ongoing elections.",
		Severity:    "medium",
		Platform:    models.PlatformX,
		Location:    "Maharashtra",
		Engagement:  &models.Engagement{Shares: 1203, Views: 34560},
	},
	{
		ID:          "alert_003",
		Title:       "Communal Violence Misinformation in West Bengal",
		Description: "Doctored images from 2019 riots being shared as 'current' violence to inflame tensions ahead of by-elections. 156 Twitter accounts amplifying false narrative.",
		Severity:    "high",
		Platform:    models.PlatformX,
		Location:    "West Bengal",
		Engagement:  &models.Engagement{Shares: 3421, Views: 127840},
	},
	{
		ID:          "alert_004",
		Title:       "Booth Capturing Videos Go Viral",
		Description: "Old footage from 2017 Kerala elections being circulated as evidence of current booth capturing in Rajasthan. 23 WhatsApp groups identified spreading content.",
		Severity:    "medium",
		Platform:    models.PlatformReddit,
		Location:    "Rajasthan",
		Engagement:  &models.Engagement{Shares: 867, Views: 23140},
	},
	{
		ID:          "alert_005",
		Title:       "Voter ID Fraud Instructions Spreading",
		Description: "Step-by-step guides on creating fake voter IDs circulating in Telegram channels. Election Commission coordination protocols compromised in 12 districts.",
		Severity:    "high",
		Platform:    models.PlatformX,
		Location:    "Bihar",
		Engagement:  &models.Engagement{Shares: 934, Views: 45670},
	},
	{
		ID:          "alert_006",
		Title:       "AI-Generated Politician Speeches Detected",
		Description: "Deep fake videos of opposition leaders making inflammatory statements detected across social platforms. Professional production quality suggests state-level actor involvement.",
		Severity:    "high",
		Platform:    models.PlatformX,
		Location:    "Tamil Nadu",
		Engagement:  &models.Engagement{Shares: 1876, Views: 67230},
	},
	{
		ID:          "alert_007",
		Title:       "Minority Community Voter Suppression",
		Description: "False information about changed polling dates targeting Muslim-majority areas in Old City Hyderabad. SMS campaigns coordinated to cause confusion on election day.",
		Severity:    "medium",
		Platform:    models.PlatformReddit,
		Location:    "Telangana",
		Engagement:  &models.Engagement{Shares: 567, Views: 19850},
	},
}

// DemoSource cycles randomly through the canned pool.
type DemoSource struct {
	mu   sync.Mutex
	rng  *rand.Rand
	pool []models.Alert
}

var _ AlertSource = (*DemoSource)(nil)

// NewDemoSource creates a source over the canned pool.
func NewDemoSource() *DemoSource {
	return &DemoSource{
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
		pool: demoPool,
	}
}

// Initial returns the first three pool entries with backdated timestamps,
// so the feed is never empty on first render.
func (s *DemoSource) Initial(now time.Time) []models.Alert {
	offsets := []time.Duration{5 * time.Minute, 12 * time.Minute, 18 * time.Minute}

	alerts := make([]models.Alert, 0, 3)
	for i, offset := range offsets {
		alert := s.pool[i]
		alert.CreatedAt = now.Add(-offset)
		alerts = append(alerts, alert)
	}
	return alerts
}

// Next picks a random pool entry and stamps it with a unique ID so repeat
// appearances of the same alert stay distinct in the window.
func (s *DemoSource) Next(now time.Time) models.Alert {
	s.mu.Lock()
	alert := s.pool[s.rng.Intn(len(s.pool))]
	s.mu.Unlock()

	alert.ID = fmt.Sprintf("%s_%s", alert.ID, uuid.NewString())
	alert.CreatedAt = now
	alert.TimeAgo = "just now"
	return alert
}
