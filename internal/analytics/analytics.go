// Package analytics derives every dashboard metric from a sequence of
// campaign records. All functions are pure transforms over already-fetched
// data: empty input never raises, and every percentage calculation guards
// the zero-denominator case.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/project-sentinel/sentinel-client/internal/models"
)

// Severity tier display colors.
const (
	ColorLow      = "#C7D2FE"
	ColorMedium   = "#A78BFA"
	ColorHigh     = "#8B5CF6"
	ColorVeryHigh = "#7C3AED"
)

// TimePoint is one day of the 28-day detection series.
type TimePoint struct {
	Date     string `json:"date"`
	Detected int    `json:"detected"`
	Resolved int    `json:"resolved"`
}

// Slice is a named percentage entry (platform distribution, KPI top
// platform).
type Slice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// SeverityBucket is one tier of the severity distribution.
type SeverityBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// Narrative is a recurring misinformation theme with its campaign
// occurrence count and a growth indicator.
type Narrative struct {
	Title       string `json:"title"`
	DeltaPct    int    `json:"deltaPct"`
	Occurrences int    `json:"occurrences"`
}

// ContentShare is one entry of the content-type mix.
type ContentShare struct {
	Type string `json:"type"`
	Pct  int    `json:"pct"`
}

// BreakdownEntry is one slice of the AI-detection breakdown.
type BreakdownEntry struct {
	Label string `json:"label"`
	Pct   int    `json:"pct"`
}

// DetectionSummary is the AI-detection widget payload.
type DetectionSummary struct {
	TotalAnalyzed int              `json:"totalAnalyzed"`
	AIGenerated   int              `json:"aiGenerated"`
	AccuracyPct   float64          `json:"accuracyPct"`
	Breakdown     []BreakdownEntry `json:"breakdown"`
}

// KPIs is the roll-up row at the top of the analytics view.
type KPIs struct {
	TotalCampaigns  int     `json:"totalCampaigns"`
	ActiveCampaigns int     `json:"activeCampaigns"`
	AvgSeverity     float64 `json:"avgSeverity"`
	TopPlatform     Slice   `json:"topPlatform"`
}

// Aggregator bundles the derived-metric functions with the trend estimator
// and the client-side detection constants.
type Aggregator struct {
	estimator TrendEstimator

	// AI-detection display constants; configured, not computed from
	// evidence. The backend may take these over without changing the
	// output shape.
	AIShare     float64
	AccuracyPct float64
}

// NewAggregator creates an aggregator with the default detection constants.
func NewAggregator(estimator TrendEstimator) *Aggregator {
	return &Aggregator{
		estimator:   estimator,
		AIShare:     0.3,
		AccuracyPct: 96.2,
	}
}

// TimeSeries produces the 28-day detection series ending at now. A day's
// detected count is the number of campaigns created on or before that day;
// resolved is the number completed exactly that day. Both receive estimator
// jitter; detected is floored at 1, resolved at 0.
func (a *Aggregator) TimeSeries(campaigns []models.Campaign, now time.Time) []TimePoint {
	series := make([]TimePoint, 0, 28)

	for i := 27; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		dayKey := day.Format("2006-01-02")
		endOfDay := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())

		detected := 0
		resolved := 0
		for _, c := range campaigns {
			if !c.CreatedAt.After(endOfDay) {
				detected++
			}
			if c.CompletedAt != nil && c.CompletedAt.Format("2006-01-02") == dayKey {
				resolved++
			}
		}

		detected += a.estimator.Jitter(5)
		resolved += a.estimator.Jitter(3)
		if detected < 1 {
			detected = 1
		}
		if resolved < 0 {
			resolved = 0
		}

		series = append(series, TimePoint{
			Date:     fmt.Sprintf("%d/%d", int(day.Month()), day.Day()),
			Detected: detected,
			Resolved: resolved,
		})
	}

	return series
}

// PlatformDistribution counts one occurrence per (campaign, platform) pair
// and converts counts to rounded percentages of the total, sorted
// descending. Returns nil when there are no occurrences.
func PlatformDistribution(campaigns []models.Campaign) []Slice {
	counts := map[string]int{}
	total := 0
	for _, c := range campaigns {
		for _, p := range c.Platforms {
			counts[p]++
			total++
		}
	}
	if total == 0 {
		return nil
	}

	dist := make([]Slice, 0, len(counts))
	for platform, count := range counts {
		dist = append(dist, Slice{
			Name:  DisplayPlatform(platform),
			Value: roundPct(count, total),
		})
	}

	sort.SliceStable(dist, func(i, j int) bool {
		if dist[i].Value != dist[j].Value {
			return dist[i].Value > dist[j].Value
		}
		return dist[i].Name < dist[j].Name
	})
	return dist
}

// DisplayPlatform relabels the backend platform tag for display: "x"
// becomes "Twitter", everything else is title-cased.
func DisplayPlatform(platform string) string {
	if platform == models.PlatformX {
		return "Twitter"
	}
	if platform == "" {
		return ""
	}
	return strings.ToUpper(platform[:1]) + platform[1:]
}

// SeverityDistribution buckets campaigns into four tiers. Priority
// "critical" counts as very high and "high" as high; otherwise the
// campaign's own severity field is used (defaulting to low). Bucket values
// are rounded percentages of the campaign count.
func SeverityDistribution(campaigns []models.Campaign) []SeverityBucket {
	counts := map[string]int{}
	for _, c := range campaigns {
		counts[severityTier(c)]++
	}

	total := len(campaigns)
	pct := func(tier string) int {
		if total == 0 {
			return 0
		}
		return roundPct(counts[tier], total)
	}

	return []SeverityBucket{
		{Name: "Low", Value: pct("low"), Color: ColorLow},
		{Name: "Medium", Value: pct("medium"), Color: ColorMedium},
		{Name: "High", Value: pct("high"), Color: ColorHigh},
		{Name: "Very High", Value: pct("very high"), Color: ColorVeryHigh},
	}
}

func severityTier(c models.Campaign) string {
	switch c.Priority {
	case models.PriorityCritical:
		return "very high"
	case models.PriorityHigh:
		return "high"
	}

	switch strings.ToLower(c.Severity) {
	case "medium":
		return "medium"
	case "high":
		return "high"
	case "very high":
		return "very high"
	default:
		return "low"
	}
}

// Narrative taxonomy: each entry maps substring matches in keywords or tags
// to a named theme.
var narrativeKeywords = []struct {
	title string
	terms []string
}{
	{"Election Interference", []string{"election", "voting", "evm"}},
	{"Political Fraud Claims", []string{"fraud", "corruption"}},
	{"Communal Tensions", []string{"minority", "communal"}},
}

// NarrativeTrends scans keyword and tag sets against the narrative taxonomy
// and returns the top 5 themes by occurrence count, each annotated with an
// estimator-provided growth percentage.
func (a *Aggregator) NarrativeTrends(campaigns []models.Campaign) []Narrative {
	occurrences := map[string]int{}

	for _, c := range campaigns {
		for _, entry := range narrativeKeywords {
			if keywordsMatchAny(c.Keywords, entry.terms) {
				occurrences[entry.title]++
			}
		}
		for _, tag := range c.Tags {
			if strings.Contains(strings.ToLower(tag.Name), "misinformation") {
				occurrences["Misinformation Networks"]++
				break
			}
		}
		if strings.Contains(c.Name, "Lok Sabha") || strings.Contains(strings.ToLower(c.Topic), "lok sabha") {
			occurrences["Lok Sabha Election Security"]++
		}
	}

	narratives := make([]Narrative, 0, len(occurrences))
	for title, count := range occurrences {
		narratives = append(narratives, Narrative{
			Title:       title,
			DeltaPct:    a.estimator.GrowthPct(),
			Occurrences: count,
		})
	}

	sort.SliceStable(narratives, func(i, j int) bool {
		if narratives[i].Occurrences != narratives[j].Occurrences {
			return narratives[i].Occurrences > narratives[j].Occurrences
		}
		return narratives[i].Title < narratives[j].Title
	})

	if len(narratives) > 5 {
		narratives = narratives[:5]
	}
	return narratives
}

func keywordsMatchAny(keywords, terms []string) bool {
	for _, k := range keywords {
		lk := strings.ToLower(k)
		for _, term := range terms {
			if strings.Contains(lk, term) {
				return true
			}
		}
	}
	return false
}

// ContentTypeMix approximates the text/image/video share from platform
// membership using fixed per-platform weights: Twitter/X leans text,
// Facebook leans image and video, Reddit is text-heavy. Returns nil when no
// weighted platform is present.
func ContentTypeMix(campaigns []models.Campaign) []ContentShare {
	var text, images, videos int

	for _, c := range campaigns {
		for _, p := range c.Platforms {
			switch p {
			case models.PlatformX:
				text += 2
				images++
			case models.PlatformFacebook:
				images += 2
				videos++
			case models.PlatformReddit:
				text += 3
			}
		}
	}

	total := text + images + videos
	if total == 0 {
		return nil
	}

	return []ContentShare{
		{Type: "Text Posts", Pct: roundPct(text, total)},
		{Type: "Images", Pct: roundPct(images, total)},
		{Type: "Videos", Pct: roundPct(videos, total)},
	}
}

// DetectionSummary sums post counts across campaigns and applies the
// configured AI-generated share, accuracy constant and fixed three-way
// breakdown.
func (a *Aggregator) DetectionSummary(campaigns []models.Campaign) DetectionSummary {
	total := 0
	for _, c := range campaigns {
		if c.Stats != nil {
			total += c.Stats.TotalPosts
		}
	}

	return DetectionSummary{
		TotalAnalyzed: total,
		AIGenerated:   int(float64(total) * a.AIShare),
		AccuracyPct:   a.AccuracyPct,
		Breakdown: []BreakdownEntry{
			{Label: "Generated Text", Pct: 58},
			{Label: "Manipulated Images", Pct: 28},
			{Label: "Deepfakes", Pct: 14},
		},
	}
}

// ComputeKPIs rolls up the headline numbers: campaign count, active count,
// priority-mapped average severity score and the most active platform.
func ComputeKPIs(campaigns []models.Campaign) KPIs {
	kpis := KPIs{TotalCampaigns: len(campaigns)}

	scoreSum := 0
	for _, c := range campaigns {
		if c.Status == models.StatusActive {
			kpis.ActiveCampaigns++
		}
		scoreSum += SeverityScore(c.Priority)
	}
	if len(campaigns) > 0 {
		kpis.AvgSeverity = float64(scoreSum) / float64(len(campaigns))
	}

	if dist := PlatformDistribution(campaigns); len(dist) > 0 {
		kpis.TopPlatform = dist[0]
	}
	return kpis
}

// SeverityScore maps a campaign priority to the 1-10 severity gauge.
func SeverityScore(priority string) int {
	switch priority {
	case models.PriorityCritical:
		return 9
	case models.PriorityHigh:
		return 7
	default:
		return 5
	}
}

func roundPct(count, total int) int {
	return int(float64(count)/float64(total)*100 + 0.5)
}
