package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/project-sentinel/sentinel-client/internal/models"
)

// fixedEstimator removes randomness from the derived metrics.
type fixedEstimator struct {
	jitter int
	growth int
}

func (f fixedEstimator) Jitter(n int) int { return f.jitter }
func (f fixedEstimator) GrowthPct() int   { return f.growth }

func day(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	assert.NoError(t, err)
	return parsed
}

func TestTimeSeries_CoversFourWeeks(t *testing.T) {
	agg := NewAggregator(fixedEstimator{})
	now := day(t, "2024-05-28")

	completed := day(t, "2024-05-20")
	series := agg.TimeSeries([]models.Campaign{
		{CreatedAt: day(t, "2024-05-10")},
		{CreatedAt: day(t, "2024-05-25"), CompletedAt: &completed},
	}, now)

	assert.Len(t, series, 28)
	assert.Equal(t, "5/1", series[0].Date)
	assert.Equal(t, "5/28", series[27].Date)

	// Both campaigns created by the 27th.
	assert.Equal(t, 2, series[26].Detected)
	// Only the first exists on the 10th.
	assert.Equal(t, 1, series[9].Detected)

	// Resolution lands on exactly one day.
	resolvedTotal := 0
	for _, p := range series {
		resolvedTotal += p.Resolved
	}
	assert.Equal(t, 1, resolvedTotal)
	assert.Equal(t, 1, series[19].Resolved)
}

func TestTimeSeries_FloorsWithEmptyInput(t *testing.T) {
	agg := NewAggregator(fixedEstimator{jitter: -10})
	series := agg.TimeSeries(nil, day(t, "2024-05-28"))

	assert.Len(t, series, 28)
	for _, p := range series {
		assert.Equal(t, 1, p.Detected, "detected is floored at 1")
		assert.Equal(t, 0, p.Resolved, "resolved never goes negative")
	}
}

func TestTimeSeries_NegativeTrendDeltaClamped(t *testing.T) {
	// The estimator is pluggable; a real trend source may hand back
	// negative deltas on resolution days too.
	agg := NewAggregator(fixedEstimator{jitter: -3})
	now := day(t, "2024-05-28")

	completed := day(t, "2024-05-20")
	series := agg.TimeSeries([]models.Campaign{
		{CreatedAt: day(t, "2024-05-10"), CompletedAt: &completed},
	}, now)

	for _, p := range series {
		assert.GreaterOrEqual(t, p.Resolved, 0)
		assert.GreaterOrEqual(t, p.Detected, 1)
	}
}

func TestPlatformDistribution(t *testing.T) {
	campaigns := []models.Campaign{
		{Platforms: []string{"x", "facebook"}},
		{Platforms: []string{"x"}},
		{Platforms: []string{"x", "reddit"}},
	}

	dist := PlatformDistribution(campaigns)

	assert.Len(t, dist, 3)
	assert.Equal(t, Slice{Name: "Twitter", Value: 60}, dist[0])
	// Equal shares tie-break alphabetically.
	assert.Equal(t, "Facebook", dist[1].Name)
	assert.Equal(t, "Reddit", dist[2].Name)
	assert.Equal(t, 20, dist[1].Value)
}

func TestPlatformDistribution_Empty(t *testing.T) {
	assert.Nil(t, PlatformDistribution(nil))
	assert.Nil(t, PlatformDistribution([]models.Campaign{{Name: "no platforms"}}))
}

func TestDisplayPlatform(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"x", "Twitter"},
		{"facebook", "Facebook"},
		{"reddit", "Reddit"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DisplayPlatform(tt.in))
	}
}

func TestSeverityDistribution(t *testing.T) {
	campaigns := []models.Campaign{
		{Priority: models.PriorityCritical},
		{Priority: models.PriorityHigh},
		{Priority: models.PriorityMedium, Severity: "medium"},
		{Priority: models.PriorityLow},
	}

	dist := SeverityDistribution(campaigns)

	assert.Len(t, dist, 4)
	assert.Equal(t, SeverityBucket{Name: "Low", Value: 25, Color: ColorLow}, dist[0])
	assert.Equal(t, SeverityBucket{Name: "Medium", Value: 25, Color: ColorMedium}, dist[1])
	assert.Equal(t, SeverityBucket{Name: "High", Value: 25, Color: ColorHigh}, dist[2])
	assert.Equal(t, SeverityBucket{Name: "Very High", Value: 25, Color: ColorVeryHigh}, dist[3])
}

func TestSeverityDistribution_EmptyIsAllZero(t *testing.T) {
	dist := SeverityDistribution(nil)

	assert.Len(t, dist, 4)
	for _, bucket := range dist {
		assert.Equal(t, 0, bucket.Value)
	}
}

func TestNarrativeTrends(t *testing.T) {
	agg := NewAggregator(fixedEstimator{growth: 12})

	campaigns := []models.Campaign{
		{Keywords: []string{"EVM hacking", "voting fraud"}},
		{Keywords: []string{"election rigged"}},
		{Keywords: []string{"corruption scandal"}},
		{Tags: []models.Tag{{Name: "misinformation-network"}}},
		{Name: "2024 Lok Sabha Election Security Monitoring"},
	}

	trends := agg.NarrativeTrends(campaigns)

	assert.NotEmpty(t, trends)
	assert.Equal(t, "Election Interference", trends[0].Title)
	assert.Equal(t, 2, trends[0].Occurrences)
	assert.Equal(t, 12, trends[0].DeltaPct)

	titles := make([]string, 0, len(trends))
	for _, n := range trends {
		titles = append(titles, n.Title)
	}
	assert.Contains(t, titles, "Political Fraud Claims")
	assert.Contains(t, titles, "Misinformation Networks")
	assert.Contains(t, titles, "Lok Sabha Election Security")
	assert.LessOrEqual(t, len(trends), 5)
}

func TestNarrativeTrends_EmptyInput(t *testing.T) {
	agg := NewAggregator(fixedEstimator{})
	assert.Empty(t, agg.NarrativeTrends(nil))
}

func TestContentTypeMix(t *testing.T) {
	campaigns := []models.Campaign{
		{Platforms: []string{"x"}},        // text 2, images 1
		{Platforms: []string{"facebook"}}, // images 2, videos 1
		{Platforms: []string{"reddit"}},   // text 3
	}

	mix := ContentTypeMix(campaigns)

	assert.Len(t, mix, 3)
	assert.Equal(t, "Text Posts", mix[0].Type)
	assert.Equal(t, 56, mix[0].Pct) // 5/9
	assert.Equal(t, 33, mix[1].Pct) // 3/9
	assert.Equal(t, 11, mix[2].Pct) // 1/9
}

func TestContentTypeMix_NoWeightedPlatforms(t *testing.T) {
	assert.Nil(t, ContentTypeMix([]models.Campaign{{Platforms: []string{"telegram"}}}))
}

func TestDetectionSummary(t *testing.T) {
	agg := NewAggregator(fixedEstimator{})

	summary := agg.DetectionSummary([]models.Campaign{
		{Stats: &models.CampaignStats{TotalPosts: 300}},
		{Stats: &models.CampaignStats{TotalPosts: 100}},
		{}, // no stats
	})

	assert.Equal(t, 400, summary.TotalAnalyzed)
	assert.Equal(t, 120, summary.AIGenerated)
	assert.Equal(t, 96.2, summary.AccuracyPct)

	assert.Equal(t, []BreakdownEntry{
		{Label: "Generated Text", Pct: 58},
		{Label: "Manipulated Images", Pct: 28},
		{Label: "Deepfakes", Pct: 14},
	}, summary.Breakdown)
}

func TestComputeKPIs(t *testing.T) {
	campaigns := []models.Campaign{
		{Status: models.StatusActive, Priority: models.PriorityCritical, Platforms: []string{"x"}},
		{Status: models.StatusPaused, Priority: models.PriorityHigh, Platforms: []string{"x"}},
		{Status: models.StatusActive, Priority: models.PriorityLow, Platforms: []string{"reddit"}},
	}

	kpis := ComputeKPIs(campaigns)

	assert.Equal(t, 3, kpis.TotalCampaigns)
	assert.Equal(t, 2, kpis.ActiveCampaigns)
	assert.InDelta(t, 7.0, kpis.AvgSeverity, 0.01) // (9+7+5)/3
	assert.Equal(t, "Twitter", kpis.TopPlatform.Name)
}

func TestComputeKPIs_Empty(t *testing.T) {
	kpis := ComputeKPIs(nil)

	assert.Equal(t, 0, kpis.TotalCampaigns)
	assert.Equal(t, 0.0, kpis.AvgSeverity)
	assert.Equal(t, Slice{}, kpis.TopPlatform)
}

func TestSeverityScore(t *testing.T) {
	assert.Equal(t, 9, SeverityScore(models.PriorityCritical))
	assert.Equal(t, 7, SeverityScore(models.PriorityHigh))
	assert.Equal(t, 5, SeverityScore(models.PriorityMedium))
	assert.Equal(t, 5, SeverityScore(models.PriorityLow))
	assert.Equal(t, 5, SeverityScore(""))
}
