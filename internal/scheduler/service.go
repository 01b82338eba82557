// Package scheduler owns the periodic dashboard tasks. Timers live here,
// not in the views: one place starts them and one place stops them.
package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/project-sentinel/sentinel-client/internal/config"
	"github.com/project-sentinel/sentinel-client/internal/dashboard"
)

// Refresher re-fetches the dashboard data set from the backend.
type Refresher interface {
	RefreshDashboard() error
}

// Service handles scheduling of the periodic dashboard tasks
type Service struct {
	config *config.Config
	state  *dashboard.State
	source dashboard.AlertSource
	fetch  Refresher
	cron   *cron.Cron
}

// NewService creates a new scheduler service. The alert source may be nil
// when the demo rotation is disabled.
func NewService(cfg *config.Config, state *dashboard.State, source dashboard.AlertSource, fetch Refresher) *Service {
	return &Service{
		config: cfg,
		state:  state,
		source: source,
		fetch:  fetch,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Start registers the periodic tasks: the demo alert rotation every 10
// seconds, relative-timestamp refresh every minute, and a full dashboard
// re-poll every 5 minutes.
func (s *Service) Start() error {
	if s.config.DemoAlerts && s.source != nil {
		if _, err := s.cron.AddFunc("@every 10s", s.rotateAlert); err != nil {
			return err
		}
	}

	if _, err := s.cron.AddFunc("@every 60s", func() {
		s.state.RefreshTimestamps(time.Now())
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc("@every 5m", func() {
		logrus.Debug("Starting scheduled dashboard refresh")
		if err := s.fetch.RefreshDashboard(); err != nil {
			logrus.Errorf("Scheduled dashboard refresh failed: %v", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	logrus.Info("Scheduler started (alert rotation, timestamp refresh, dashboard re-poll)")
	return nil
}

func (s *Service) rotateAlert() {
	alert := s.source.Next(time.Now())
	s.state.RotateAlert(alert)
	logrus.Debugf("Rotated live alert: %s", alert.Title)
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
