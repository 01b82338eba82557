package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/project-sentinel/sentinel-client/internal/models"
)

// CampaignQuery carries the list-endpoint parameters. Empty fields are
// omitted from the request, which the backend treats as match-all.
type CampaignQuery struct {
	Page      int
	Limit     int
	Search    string
	Status    []string
	Priority  []string
	Platforms []string
	TimeRange string // "30", "90", "180", "365"; empty for custom/all
}

func (q CampaignQuery) params() map[string]string {
	params := map[string]string{}
	if q.Page > 0 {
		params["page"] = strconv.Itoa(q.Page)
	}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	if q.Search != "" {
		params["search"] = q.Search
	}
	if len(q.Status) > 0 {
		params["status"] = strings.Join(q.Status, ",")
	}
	if len(q.Priority) > 0 {
		params["priority"] = strings.Join(q.Priority, ",")
	}
	if len(q.Platforms) > 0 {
		params["platforms"] = strings.Join(q.Platforms, ",")
	}
	if q.TimeRange != "" && q.TimeRange != "custom" {
		params["timeRange"] = q.TimeRange
	}
	return params
}

// ListCampaigns fetches a page of campaigns plus the total matching row
// count used for pagination.
func (c *Client) ListCampaigns(ctx context.Context, query CampaignQuery) ([]models.Campaign, int, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(query.params()).
		Get("/campaigns")
	if err != nil {
		return nil, 0, fmt.Errorf("campaigns request failed: %w", err)
	}

	var payload struct {
		Campaigns  []models.Campaign `json:"campaigns"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	if err := c.decode(resp, &payload); err != nil {
		return nil, 0, err
	}

	total := payload.Pagination.Total
	if total == 0 {
		total = len(payload.Campaigns)
	}
	return payload.Campaigns, total, nil
}

// GetCampaign fetches the campaign detail envelope, which includes recent
// posts and the analytics timeline.
func (c *Client) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/campaigns/" + id)
	if err != nil {
		return nil, fmt.Errorf("campaign request failed: %w", err)
	}

	var payload struct {
		Campaign models.Campaign `json:"campaign"`
	}
	if err := c.decode(resp, &payload); err != nil {
		return nil, err
	}
	return &payload.Campaign, nil
}

// ListAlerts fetches recent alerts.
func (c *Client) ListAlerts(ctx context.Context, status string, limit int) ([]models.Alert, error) {
	req := c.http.R().SetContext(ctx)
	if status != "" {
		req.SetQueryParam("status", status)
	}
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	resp, err := req.Get("/alerts")
	if err != nil {
		return nil, fmt.Errorf("alerts request failed: %w", err)
	}

	var payload struct {
		Alerts []models.Alert `json:"alerts"`
	}
	if err := c.decode(resp, &payload); err != nil {
		return nil, err
	}
	return payload.Alerts, nil
}

// DashboardOverview fetches the backend summary counters.
func (c *Client) DashboardOverview(ctx context.Context) (*models.Overview, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/dashboard/overview")
	if err != nil {
		return nil, fmt.Errorf("overview request failed: %w", err)
	}

	var overview models.Overview
	if err := c.decode(resp, &overview); err != nil {
		return nil, err
	}
	return &overview, nil
}

// SearchResults groups cross-entity matches from universal search.
type SearchResults struct {
	Campaigns []models.Campaign `json:"campaigns"`
	Alerts    []models.Alert    `json:"alerts"`
	Evidence  []models.Post     `json:"evidence"`
}

// UniversalSearch runs a free-text search across campaigns, alerts and
// evidence.
func (c *Client) UniversalSearch(ctx context.Context, query string, limit int) (*SearchResults, error) {
	body := map[string]interface{}{
		"query":        query,
		"contentTypes": []string{"campaigns", "alerts", "evidence"},
		"limit":        limit,
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/search/universal")
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	var results SearchResults
	if err := c.decode(resp, &results); err != nil {
		return nil, err
	}
	return &results, nil
}
