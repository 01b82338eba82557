// Package campaigns holds the list and detail view-models: filtering,
// sorting, pagination and display enrichment over campaign and evidence
// records fetched from the backend.
package campaigns

import (
	"strconv"
	"strings"
	"time"

	"github.com/project-sentinel/sentinel-client/internal/models"
)

// ListFilters are the user-selected facets of the archive view. Facets are
// conjunctive across each other; an empty selection within a facet matches
// everything (never nothing).
type ListFilters struct {
	TimeRange string   `json:"timeRange"` // "30", "90", "180", "365", "custom" or empty
	Status    []string `json:"status"`
	Priority  []string `json:"priority"`
	Platforms []string `json:"platforms"`
	Search    string   `json:"search"`
	Tags      []string `json:"tags"`
}

// Match reports whether a campaign passes every active facet.
func (f ListFilters) Match(c models.Campaign, now time.Time) bool {
	if days, err := strconv.Atoi(f.TimeRange); err == nil && days > 0 {
		cutoff := now.AddDate(0, 0, -days)
		if c.CreatedAt.Before(cutoff) {
			return false
		}
	}

	if len(f.Status) > 0 && !containsFold(f.Status, c.Status) {
		return false
	}

	if len(f.Priority) > 0 && !containsFold(f.Priority, c.Priority) {
		return false
	}

	if len(f.Platforms) > 0 && !anyPlatform(f.Platforms, c.Platforms) {
		return false
	}

	if f.Search != "" && !matchesSearch(c, f.Search) {
		return false
	}

	if len(f.Tags) > 0 && !anyTag(f.Tags, c.Tags) {
		return false
	}

	return true
}

// Apply filters a campaign sequence, preserving input order.
func (f ListFilters) Apply(campaigns []models.Campaign, now time.Time) []models.Campaign {
	var matched []models.Campaign
	for _, c := range campaigns {
		if f.Match(c, now) {
			matched = append(matched, c)
		}
	}
	return matched
}

func containsFold(set []string, value string) bool {
	for _, s := range set {
		if strings.EqualFold(s, value) {
			return true
		}
	}
	return false
}

func anyPlatform(wanted, platforms []string) bool {
	for _, p := range platforms {
		if containsFold(wanted, p) {
			return true
		}
	}
	return false
}

func anyTag(wanted []string, tags []models.Tag) bool {
	for _, t := range tags {
		if containsFold(wanted, t.Name) {
			return true
		}
	}
	return false
}

func matchesSearch(c models.Campaign, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(c.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Description), q) {
		return true
	}
	for _, k := range c.Keywords {
		if strings.Contains(strings.ToLower(k), q) {
			return true
		}
	}
	for _, h := range c.Hashtags {
		if strings.Contains(strings.ToLower(h), q) {
			return true
		}
	}
	return false
}

// StatusCounts tallies statuses over the currently loaded row set. The
// filter panel shows these next to the checkboxes, so they reflect the
// current result set, not the unfiltered universe.
func StatusCounts(rows []models.Campaign) map[string]int {
	counts := map[string]int{
		models.StatusActive:    0,
		models.StatusPaused:    0,
		models.StatusArchived:  0,
		models.StatusCompleted: 0,
	}
	for _, c := range rows {
		if _, ok := counts[c.Status]; ok {
			counts[c.Status]++
		}
	}
	return counts
}

// PriorityCounts tallies priorities over the loaded row set.
func PriorityCounts(rows []models.Campaign) map[string]int {
	counts := map[string]int{
		models.PriorityCritical: 0,
		models.PriorityHigh:     0,
		models.PriorityMedium:   0,
		models.PriorityLow:      0,
	}
	for _, c := range rows {
		if _, ok := counts[c.Priority]; ok {
			counts[c.Priority]++
		}
	}
	return counts
}

// PlatformCounts tallies platform membership over the loaded row set.
func PlatformCounts(rows []models.Campaign) map[string]int {
	counts := map[string]int{}
	for _, c := range rows {
		for _, p := range c.Platforms {
			counts[p]++
		}
	}
	return counts
}
