package notifications

import "github.com/project-sentinel/sentinel-client/internal/models"

// NotificationInterface defines the contract for alert notification services
type NotificationInterface interface {
	SendAlert(alert *models.Alert) error
}
