// Package app wires the derived view-models together: it refreshes the
// dashboard state from the backend, serves the analytics and campaign
// views, and routes realtime events and exports.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/project-sentinel/sentinel-client/internal/analytics"
	"github.com/project-sentinel/sentinel-client/internal/api"
	"github.com/project-sentinel/sentinel-client/internal/assistant"
	"github.com/project-sentinel/sentinel-client/internal/campaigns"
	"github.com/project-sentinel/sentinel-client/internal/config"
	"github.com/project-sentinel/sentinel-client/internal/dashboard"
	"github.com/project-sentinel/sentinel-client/internal/export"
	"github.com/project-sentinel/sentinel-client/internal/models"
	"github.com/project-sentinel/sentinel-client/internal/notifications"
	"github.com/project-sentinel/sentinel-client/internal/realtime"
)

// refreshTimeout bounds each backend round during a dashboard refresh.
const refreshTimeout = 10 * time.Second

// dashboardCampaignLimit is how many campaigns the dashboard fetches.
const dashboardCampaignLimit = 20

// Service coordinates the backend client, the dashboard state and the
// derived views.
type Service struct {
	config     *config.Config
	api        *api.Client
	state      *dashboard.State
	aggregator *analytics.Aggregator
	assistant  *assistant.Manager
	packer     *export.Packer
	notifier   notifications.NotificationInterface
}

// NewService assembles the orchestrator. The notifier may be nil when no
// notification channel is configured.
func NewService(
	cfg *config.Config,
	apiClient *api.Client,
	state *dashboard.State,
	aggregator *analytics.Aggregator,
	chat *assistant.Manager,
	packer *export.Packer,
	notifier notifications.NotificationInterface,
) *Service {
	return &Service{
		config:     cfg,
		api:        apiClient,
		state:      state,
		aggregator: aggregator,
		assistant:  chat,
		packer:     packer,
		notifier:   notifier,
	}
}

// Assistant exposes the chat session manager.
func (s *Service) Assistant() *assistant.Manager {
	return s.assistant
}

// State exposes the dashboard container.
func (s *Service) State() *dashboard.State {
	return s.state
}

// RefreshDashboard re-fetches campaigns, open alerts and the overview
// counters. Each fetch fails independently so one dead endpoint never
// blanks the whole dashboard.
func (s *Service) RefreshDashboard() error {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	var errs []string

	list, _, err := s.api.ListCampaigns(ctx, api.CampaignQuery{Limit: dashboardCampaignLimit})
	if err != nil {
		logrus.Errorf("Failed to fetch campaigns: %v", err)
		errs = append(errs, fmt.Sprintf("campaigns: %v", err))
	} else {
		s.state.SetCampaigns(list)
	}

	alerts, err := s.api.ListAlerts(ctx, "open", 10)
	if err != nil {
		logrus.Warnf("Failed to fetch alerts, keeping current window: %v", err)
	} else {
		s.state.MergeAlerts(alerts)
	}

	overview, err := s.api.DashboardOverview(ctx)
	if err != nil {
		logrus.Warnf("Failed to fetch dashboard overview: %v", err)
	} else {
		s.state.SetOverview(*overview)
	}

	if len(errs) > 0 {
		return fmt.Errorf("dashboard refresh errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// RealtimeHandlers wires socket events into the dashboard state. High
// severity pushed alerts also fan out to the notification channels.
func (s *Service) RealtimeHandlers() realtime.Handlers {
	return realtime.Handlers{
		NewCampaign:    s.state.MergeCampaign,
		CampaignUpdate: s.state.MergeCampaign,
		CampaignCompleted: func(ev realtime.CompletionEvent) {
			s.state.CompleteCampaign(ev.CampaignID, ev.CompletedAt, ev.Reason, ev.TotalPosts)
		},
		LiveAlerts: s.handleLiveAlerts,
		DashboardUpdate: func(o models.Overview) {
			s.state.SetOverview(o)
		},
	}
}

func (s *Service) handleLiveAlerts(alerts []models.Alert) {
	s.state.MergeAlerts(alerts)

	if s.notifier == nil {
		return
	}
	for i := range alerts {
		if alerts[i].Severity != "high" {
			continue
		}
		alert := alerts[i]
		go func() {
			if err := s.notifier.SendAlert(&alert); err != nil {
				logrus.Errorf("Alert notification failed: %v", err)
			}
		}()
	}
}

// AnalyticsView is the full analytics page payload.
type AnalyticsView struct {
	TimeSeries   []analytics.TimePoint      `json:"timeSeries"`
	Platforms    []analytics.Slice          `json:"platformDistribution"`
	Severity     []analytics.SeverityBucket `json:"severityDistribution"`
	Narratives   []analytics.Narrative      `json:"narrativeTrends"`
	ContentTypes []analytics.ContentShare   `json:"contentTypeMix"`
	Detection    analytics.DetectionSummary `json:"aiDetection"`
	KPIs         analytics.KPIs             `json:"kpis"`
}

// Analytics derives the full analytics page from the current campaign set.
func (s *Service) Analytics(now time.Time) AnalyticsView {
	rows := s.state.Campaigns()
	return AnalyticsView{
		TimeSeries:   s.aggregator.TimeSeries(rows, now),
		Platforms:    analytics.PlatformDistribution(rows),
		Severity:     analytics.SeverityDistribution(rows),
		Narratives:   s.aggregator.NarrativeTrends(rows),
		ContentTypes: analytics.ContentTypeMix(rows),
		Detection:    s.aggregator.DetectionSummary(rows),
		KPIs:         analytics.ComputeKPIs(rows),
	}
}

// CampaignRow is one archive list entry with its display labels.
type CampaignRow struct {
	models.Campaign
	UpdatedAgo string `json:"updatedAgo"`
	CreatedAgo string `json:"createdAgo"`
}

// CampaignsView is one page of the filtered archive.
type CampaignsView struct {
	Rows           []CampaignRow  `json:"rows"`
	Page           campaigns.Page `json:"pagination"`
	StatusCounts   map[string]int `json:"statusCounts"`
	PriorityCounts map[string]int `json:"priorityCounts"`
	PlatformCounts map[string]int `json:"platformCounts"`
}

// Campaigns applies the archive facets over the loaded campaign set and
// returns the requested page. The facet counts reflect the filtered set.
func (s *Service) Campaigns(filters campaigns.ListFilters, pageNum int, now time.Time) CampaignsView {
	matched := filters.Apply(s.state.Campaigns(), now)

	page := campaigns.NewPage(pageNum, s.config.PageSize, len(matched))
	visible := page.Slice(matched)

	rows := make([]CampaignRow, 0, len(visible))
	for _, c := range visible {
		rows = append(rows, CampaignRow{
			Campaign:   c,
			UpdatedAgo: campaigns.RelativeDay(c.UpdatedAt, now),
			CreatedAgo: campaigns.RelativeDay(c.CreatedAt, now),
		})
	}

	return CampaignsView{
		Rows:           rows,
		Page:           page,
		StatusCounts:   campaigns.StatusCounts(matched),
		PriorityCounts: campaigns.PriorityCounts(matched),
		PlatformCounts: campaigns.PlatformCounts(matched),
	}
}

// DetailView is the campaign detail page payload.
type DetailView struct {
	Campaign models.Campaign          `json:"campaign"`
	Evidence []campaigns.EvidenceItem `json:"evidence"`
	Timeline []campaigns.TimelineSlot `json:"timeline"`
	Network  []campaigns.NetworkPoint `json:"coordinationNetwork"`
	Insights campaigns.Insights       `json:"insights"`
}

// CampaignDetail fetches one campaign and derives its evidence feed,
// hourly timeline and coordination network.
func (s *Service) CampaignDetail(ctx context.Context, id, sortKey, platform string, now time.Time) (*DetailView, error) {
	campaign, err := s.api.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign.Severity == "" {
		campaign.Severity = dashboard.DeriveSeverity(*campaign)
	}

	evidence := campaigns.EvidenceList(campaign.RecentPosts, now)
	evidence = campaigns.FilterEvidenceByPlatform(evidence, platform)
	evidence = campaigns.SortEvidence(evidence, sortKey)

	return &DetailView{
		Campaign: *campaign,
		Evidence: evidence,
		Timeline: campaigns.HourlyTimeline(campaign.Analytics),
		Network:  campaigns.CoordinationNetwork(campaign.RecentPosts),
		Insights: campaigns.DeriveInsights(campaign, campaign.RecentPosts),
	}, nil
}

// Search runs the universal search against the backend.
func (s *Service) Search(ctx context.Context, query string) (*api.SearchResults, error) {
	return s.api.UniversalSearch(ctx, query, 10)
}

// ExportCampaign builds and stores an evidence pack for one campaign,
// returning the stored filename.
func (s *Service) ExportCampaign(ctx context.Context, id string) (string, error) {
	if s.packer == nil {
		return "", fmt.Errorf("export storage is not configured")
	}

	campaign, err := s.api.GetCampaign(ctx, id)
	if err != nil {
		return "", err
	}
	return s.packer.Export(*campaign, campaign.RecentPosts, time.Now())
}
