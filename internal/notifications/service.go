// Package notifications pushes high-severity alert digests to the channels
// an analyst team actually watches: a webhook card and plain email. Both
// channels are optional; a missing configuration disables the channel.
package notifications

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"github.com/project-sentinel/sentinel-client/internal/config"
	"github.com/project-sentinel/sentinel-client/internal/models"
)

// Service handles sending alert notifications via the configured channels
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// WebhookCard is the JSON card posted to the alert webhook
type WebhookCard struct {
	Type    string        `json:"@type"`
	Context string        `json:"@context"`
	Title   string        `json:"title"`
	Text    string        `json:"text"`
	Facts   []WebhookFact `json:"facts,omitempty"`
}

type WebhookFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendAlert fans a high-severity alert out to every configured channel.
// Channel failures are collected, not short-circuited, so one dead channel
// never silences the other.
func (s *Service) SendAlert(alert *models.Alert) error {
	var errors []string

	if s.config.AlertWebhookURL != "" {
		if err := s.sendToWebhook(alert); err != nil {
			logrus.Errorf("Failed to send webhook notification: %v", err)
			errors = append(errors, fmt.Sprintf("Webhook: %v", err))
		} else {
			logrus.Info("Successfully sent alert to webhook")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(alert); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent alert via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToWebhook(alert *models.Alert) error {
	card := s.buildWebhookCard(alert)

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(card).
		Post(s.config.AlertWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send webhook card: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("alert webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildWebhookCard(alert *models.Alert) *WebhookCard {
	card := &WebhookCard{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("Sentinel Alert: %s", alert.Title),
		Text:    alert.Description,
		Facts: []WebhookFact{
			{Name: "Severity", Value: alert.Severity},
			{Name: "Platform", Value: alert.Platform},
			{Name: "Detected", Value: alert.CreatedAt.Format("2006-01-02 15:04:05 UTC")},
		},
	}

	if alert.Location != "" {
		card.Facts = append(card.Facts, WebhookFact{Name: "Location", Value: alert.Location})
	}
	if alert.Engagement != nil {
		card.Facts = append(card.Facts, WebhookFact{
			Name:  "Reach",
			Value: fmt.Sprintf("%d shares, %d views", alert.Engagement.Shares, alert.Engagement.Views),
		})
	}

	return card
}

func (s *Service) sendEmail(alert *models.Alert) error {
	subject := fmt.Sprintf("[%s] Sentinel Alert: %s", strings.ToUpper(alert.Severity), alert.Title)

	body := fmt.Sprintf("%s\n\nSeverity: %s\nPlatform: %s\nLocation: %s\nDetected: %s\n",
		alert.Description,
		alert.Severity,
		alert.Platform,
		alert.Location,
		alert.CreatedAt.Format("2006-01-02 15:04:05 UTC"),
	)

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
