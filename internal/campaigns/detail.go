package campaigns

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/project-sentinel/sentinel-client/internal/models"
)

// Evidence list cap on the detail view.
const evidenceLimit = 10

// Coordination network shows at most this many distinct authors.
const networkLimit = 50

// Evidence sort keys. Anything unrecognized falls back to recency.
const (
	SortRecent   = "recent"
	SortRetweets = "retweets"
	SortLikes    = "likes"
)

// EvidenceItem is a post enriched for the evidence feed.
type EvidenceItem struct {
	ID            string         `json:"id"`
	Username      string         `json:"username"`
	DisplayName   string         `json:"displayName,omitempty"`
	Platform      string         `json:"platform"`
	Content       string         `json:"content"`
	TimeAgo       string         `json:"timeAgo"`
	Likes         int            `json:"likes"`
	Retweets      int            `json:"retweets"`
	Replies       int            `json:"replies"`
	Media         []models.Media `json:"media,omitempty"`
	BotLikelihood float64        `json:"botLikelihood"`
	ThreatLevel   string         `json:"threatLevel,omitempty"`
	ThreatImpact  string         `json:"threatImpact,omitempty"`
}

// TimelineSlot is one hour of the detail activity timeline.
type TimelineSlot struct {
	Label      string  `json:"date"`
	Volume     int     `json:"volume"`
	Engagement float64 `json:"engagement"`
}

// NetworkPoint is one account in the coordination scatter layout.
type NetworkPoint struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Z        int    `json:"z"`
	Username string `json:"username"`
}

// Insights is the derived summary block on the detail view.
type Insights struct {
	Summary       string `json:"summary"`
	HighThreats   int    `json:"highThreats"`
	AvgBotPct     int    `json:"avgBotPct"`
	PostsAnalyzed int    `json:"postsAnalyzed"`
}

// EvidenceList converts the first posts of a campaign into display items
// with relative-time labels. The feed is bounded to 10 entries.
func EvidenceList(posts []models.Post, now time.Time) []EvidenceItem {
	if len(posts) > evidenceLimit {
		posts = posts[:evidenceLimit]
	}

	items := make([]EvidenceItem, 0, len(posts))
	for _, p := range posts {
		item := EvidenceItem{
			ID:          p.ID,
			Username:    p.Username,
			DisplayName: p.DisplayName,
			Platform:    evidencePlatform(p.Source),
			Content:     p.Content,
			TimeAgo:     RelativeTime(p.CrawledAt, now),
			Likes:       p.Likes,
			Retweets:    p.Retweets,
			Replies:     p.Replies,
			Media:       p.Media,
		}
		if p.AIAnalysis != nil {
			if p.AIAnalysis.RiskIndicators != nil {
				item.BotLikelihood = p.AIAnalysis.RiskIndicators.BotLikelihood
			}
			if p.AIAnalysis.ThreatAssessment != nil {
				item.ThreatLevel = p.AIAnalysis.ThreatAssessment.Level
				item.ThreatImpact = p.AIAnalysis.ThreatAssessment.PotentialImpact
			}
		}
		items = append(items, item)
	}
	return items
}

func evidencePlatform(source string) string {
	if source == "twitter" {
		return models.PlatformX
	}
	return source
}

// SortEvidence orders a copy of the evidence feed. Recency preserves input
// order (posts arrive newest first); retweets and likes sort descending.
func SortEvidence(items []EvidenceItem, key string) []EvidenceItem {
	sorted := make([]EvidenceItem, len(items))
	copy(sorted, items)

	switch key {
	case SortRetweets:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Retweets > sorted[j].Retweets })
	case SortLikes:
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Likes > sorted[j].Likes })
	}
	return sorted
}

// FilterEvidenceByPlatform keeps items from one platform; "all" or empty
// keeps everything.
func FilterEvidenceByPlatform(items []EvidenceItem, platform string) []EvidenceItem {
	if platform == "" || platform == "all" {
		return items
	}
	var filtered []EvidenceItem
	for _, item := range items {
		if strings.EqualFold(item.Platform, platform) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// HourlyTimeline maps the backend analytics payload to the 24-slot
// activity chart. Engagement is estimated at 2.5x post volume. A missing
// payload yields an all-zero series rather than an error.
func HourlyTimeline(analytics *models.Analytics) []TimelineSlot {
	slots := make([]TimelineSlot, 24)
	for i := range slots {
		slots[i] = TimelineSlot{Label: fmt.Sprintf("%d:00", i)}
	}

	if analytics == nil {
		return slots
	}
	for _, bucket := range analytics.TimelineData {
		if bucket.Hour < 0 || bucket.Hour > 23 {
			continue
		}
		slots[bucket.Hour].Volume = bucket.Posts
		slots[bucket.Hour].Engagement = float64(bucket.Posts) * 2.5
	}
	return slots
}

// CoordinationNetwork lays out each distinct author on a fixed grid with a
// bot-likelihood-derived size weight clamped to [1,4]. Authors appear in
// first-seen order, capped at 50.
func CoordinationNetwork(posts []models.Post) []NetworkPoint {
	seen := map[string]bool{}
	var points []NetworkPoint

	for _, p := range posts {
		if seen[p.Username] {
			continue
		}
		seen[p.Username] = true

		bot := 0.0
		if p.AIAnalysis != nil && p.AIAnalysis.RiskIndicators != nil {
			bot = p.AIAnalysis.RiskIndicators.BotLikelihood
		}

		i := len(points)
		points = append(points, NetworkPoint{
			X:        (i%10)*10 - 45,
			Y:        (i/10)*10 - 25,
			Z:        sizeWeight(bot),
			Username: p.Username,
		})

		if len(points) == networkLimit {
			break
		}
	}
	return points
}

func sizeWeight(botLikelihood float64) int {
	z := int(botLikelihood*4) + 1
	if z < 1 {
		z = 1
	}
	if z > 4 {
		z = 4
	}
	return z
}

// DeriveInsights summarizes threat counts and average bot likelihood over
// the campaign's evidence.
func DeriveInsights(c *models.Campaign, posts []models.Post) Insights {
	insights := Insights{PostsAnalyzed: len(posts)}
	if len(posts) == 0 {
		if c != nil {
			insights.Summary = fmt.Sprintf("Campaign %q is actively monitoring %d platforms. Real-time analysis and threat detection in progress.", c.Name, len(c.Platforms))
		}
		return insights
	}

	botSum := 0.0
	for _, p := range posts {
		if p.AIAnalysis == nil {
			continue
		}
		if ta := p.AIAnalysis.ThreatAssessment; ta != nil {
			if ta.Level == "high" || ta.Level == "critical" {
				insights.HighThreats++
			}
		}
		if ri := p.AIAnalysis.RiskIndicators; ri != nil {
			botSum += ri.BotLikelihood
		}
	}
	insights.AvgBotPct = int(botSum/float64(len(posts))*100 + 0.5)

	name := ""
	if c != nil {
		name = c.Name
	}
	insights.Summary = fmt.Sprintf(
		"Campaign %q has collected %d posts with %d high-threat items detected. AI analysis indicates %d%% average bot probability across monitored content.",
		name, len(posts), insights.HighThreats, insights.AvgBotPct,
	)
	return insights
}
