package campaigns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/project-sentinel/sentinel-client/internal/models"
)

func testNow() time.Time {
	return time.Date(2024, 5, 28, 12, 0, 0, 0, time.UTC)
}

func archiveRows() []models.Campaign {
	now := testNow()
	return []models.Campaign{
		{
			ID:        "c1",
			Name:      "Election Fraud Claims Monitoring",
			Status:    models.StatusActive,
			Priority:  models.PriorityHigh,
			Platforms: []string{"x", "reddit"},
			Keywords:  []string{"fraud", "evm"},
			CreatedAt: now.AddDate(0, 0, -10),
		},
		{
			ID:        "c2",
			Name:      "Communal Tension Tracking",
			Status:    models.StatusActive,
			Priority:  models.PriorityCritical,
			Platforms: []string{"facebook"},
			Keywords:  []string{"communal"},
			CreatedAt: now.AddDate(0, 0, -100),
		},
		{
			ID:        "c3",
			Name:      "Historical Fraud Review",
			Status:    models.StatusArchived,
			Priority:  models.PriorityLow,
			Platforms: []string{"x"},
			Hashtags:  []string{"#fraudwatch"},
			CreatedAt: now.AddDate(0, 0, -400),
			Tags:      []models.Tag{{Name: "misinformation"}},
		},
	}
}

func TestFilters_ConjunctiveAcrossFacets(t *testing.T) {
	filters := ListFilters{
		Status:    []string{models.StatusActive},
		Platforms: []string{"x"},
		Search:    "fraud",
	}

	matched := filters.Apply(archiveRows(), testNow())

	// c2 fails platform and search, c3 fails status; only c1 passes all
	// three facets.
	assert.Len(t, matched, 1)
	assert.Equal(t, "c1", matched[0].ID)
}

func TestFilters_EmptyFacetMatchesEverything(t *testing.T) {
	matched := ListFilters{}.Apply(archiveRows(), testNow())
	assert.Len(t, matched, 3)
}

func TestFilters_WithinFacetIsMembership(t *testing.T) {
	filters := ListFilters{
		Status: []string{models.StatusActive, models.StatusArchived},
	}

	matched := filters.Apply(archiveRows(), testNow())
	assert.Len(t, matched, 3)
}

func TestFilters_TimeRangeCutsOldRows(t *testing.T) {
	tests := []struct {
		name      string
		timeRange string
		expected  []string
	}{
		{"30 days", "30", []string{"c1"}},
		{"180 days", "180", []string{"c1", "c2"}},
		{"custom passes everything", "custom", []string{"c1", "c2", "c3"}},
		{"empty passes everything", "", []string{"c1", "c2", "c3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := ListFilters{TimeRange: tt.timeRange}.Apply(archiveRows(), testNow())

			ids := make([]string, 0, len(matched))
			for _, c := range matched {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestFilters_SearchSpansNameDescriptionKeywordsHashtags(t *testing.T) {
	rows := archiveRows()

	assert.Len(t, ListFilters{Search: "fraud"}.Apply(rows, testNow()), 2)
	assert.Len(t, ListFilters{Search: "FRAUDWATCH"}.Apply(rows, testNow()), 1)
	assert.Len(t, ListFilters{Search: "communal"}.Apply(rows, testNow()), 1)
	assert.Empty(t, ListFilters{Search: "no-such-term"}.Apply(rows, testNow()))
}

func TestFilters_TagFacet(t *testing.T) {
	matched := ListFilters{Tags: []string{"misinformation"}}.Apply(archiveRows(), testNow())

	assert.Len(t, matched, 1)
	assert.Equal(t, "c3", matched[0].ID)
}

func TestStatusCounts(t *testing.T) {
	counts := StatusCounts(archiveRows())

	assert.Equal(t, 2, counts[models.StatusActive])
	assert.Equal(t, 1, counts[models.StatusArchived])
	assert.Equal(t, 0, counts[models.StatusPaused])
	assert.Equal(t, 0, counts[models.StatusCompleted])
}

func TestPriorityCounts(t *testing.T) {
	counts := PriorityCounts(archiveRows())

	assert.Equal(t, 1, counts[models.PriorityCritical])
	assert.Equal(t, 1, counts[models.PriorityHigh])
	assert.Equal(t, 1, counts[models.PriorityLow])
	assert.Equal(t, 0, counts[models.PriorityMedium])
}

func TestPlatformCounts(t *testing.T) {
	counts := PlatformCounts(archiveRows())

	assert.Equal(t, 2, counts["x"])
	assert.Equal(t, 1, counts["facebook"])
	assert.Equal(t, 1, counts["reddit"])
}
