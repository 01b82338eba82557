package models

import "time"

// Campaign statuses as reported by the backend.
const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusArchived  = "archived"
	StatusCompleted = "completed"
)

// Campaign priorities, ordered low < medium < high < critical.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Platform tags used by the backend. "x" is displayed as "Twitter".
const (
	PlatformX        = "x"
	PlatformFacebook = "facebook"
	PlatformReddit   = "reddit"
	PlatformTelegram = "telegram"
	PlatformTikTok   = "tiktok"
)

// Campaign is a tracked monitoring operation. The client only ever holds a
// read-derived snapshot; campaigns are created and mutated by the backend.
type Campaign struct {
	ID              string         `json:"_id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	Status          string         `json:"status"`
	Priority        string         `json:"priority"`
	Severity        string         `json:"severity,omitempty"`
	Platforms       []string       `json:"platforms"`
	Keywords        []string       `json:"keywords"`
	Hashtags        []string       `json:"hashtags"`
	Tags            []Tag          `json:"tags"`
	Topic           string         `json:"topic,omitempty"`
	ActivityScore   float64        `json:"activityScore"`
	Stats           *CampaignStats `json:"stats,omitempty"`
	Team            []TeamMember   `json:"team,omitempty"`
	Analytics       *Analytics     `json:"analytics,omitempty"`
	RecentPosts     []Post         `json:"recentTweets,omitempty"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	CompletedAt     *time.Time     `json:"completedAt,omitempty"`
	CompletedReason string         `json:"completedReason,omitempty"`
}

// CampaignStats are backend-computed aggregate counters.
type CampaignStats struct {
	TotalPosts      int        `json:"totalTweets"`
	AlertsGenerated int        `json:"alertsGenerated"`
	FakePosts       int        `json:"fakePosts"`
	LastCrawled     *time.Time `json:"lastCrawled,omitempty"`
}

// Tag is a backend classification label attached to a campaign.
type Tag struct {
	Name string `json:"name"`
}

// TeamMember references an analyst assigned to a campaign.
type TeamMember struct {
	User UserRef `json:"user"`
	Role string  `json:"role,omitempty"`
}

// UserRef is the nested user shape carried inside team references.
type UserRef struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Analytics is the backend-supplied per-campaign analytics payload.
type Analytics struct {
	TotalPosts   int              `json:"totalTweets"`
	TimelineData []TimelineBucket `json:"timelineData,omitempty"`
}

// TimelineBucket is one hourly slot of the campaign activity timeline.
type TimelineBucket struct {
	Hour  int `json:"hour"`
	Posts int `json:"tweets"`
}

// Post is a single ingested social-media post (evidence item). Immutable
// from the client's perspective.
type Post struct {
	ID          string      `json:"_id"`
	CampaignID  string      `json:"campaign,omitempty"`
	Username    string      `json:"username"`
	DisplayName string      `json:"displayName,omitempty"`
	Source      string      `json:"source"`
	Content     string      `json:"content"`
	Likes       int         `json:"likes"`
	Retweets    int         `json:"retweets"`
	Replies     int         `json:"replies"`
	Media       []Media     `json:"media,omitempty"`
	Hashtags    []string    `json:"hashtags,omitempty"`
	Mentions    []string    `json:"mentions,omitempty"`
	AIAnalysis  *AIAnalysis `json:"aiAnalysis,omitempty"`
	CrawledAt   time.Time   `json:"crawledAt"`
}

// Media is an attachment carried by a post.
type Media struct {
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

// AIAnalysis is the per-post AI assessment sub-object.
type AIAnalysis struct {
	RiskIndicators   *RiskIndicators   `json:"risk_indicators,omitempty"`
	ThreatAssessment *ThreatAssessment `json:"threat_assessment,omitempty"`
}

// RiskIndicators holds automation likelihood scores in [0,1].
type RiskIndicators struct {
	BotLikelihood float64 `json:"bot_likelihood"`
}

// ThreatAssessment classifies a post's threat level with a free-text
// impact estimate.
type ThreatAssessment struct {
	Level           string `json:"level"`
	PotentialImpact string `json:"potential_impact"`
}

// Alert is an urgent notification shown in the live feed. Alerts arrive
// from the backend, the realtime socket, and the local demo pool; all three
// merge into the same rolling window keyed by ID.
type Alert struct {
	ID          string      `json:"_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Severity    string      `json:"severity"`
	Platform    string      `json:"platform"`
	Location    string      `json:"location,omitempty"`
	Engagement  *Engagement `json:"engagement,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	TimeAgo     string      `json:"timeAgo,omitempty"`
}

// Engagement is the reach snapshot attached to an alert.
type Engagement struct {
	Shares int `json:"shares"`
	Views  int `json:"views"`
}

// User is the authenticated analyst profile. Job title, department and bio
// are derived client-side from the backend role.
type User struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	JobTitle   string `json:"jobTitle,omitempty"`
	Department string `json:"department,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
}

// Chat message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one transcript entry, ordered by position.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is a saved or recent chat snapshot.
type Conversation struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	StartedAt time.Time     `json:"startedAt"`
	Messages  []ChatMessage `json:"messages"`
}

// Overview carries the dashboard summary counters returned by the backend.
type Overview struct {
	TotalCampaigns  int `json:"totalCampaigns"`
	ActiveCampaigns int `json:"activeCampaigns"`
	TotalAlerts     int `json:"totalAlerts"`
	TotalPosts      int `json:"totalPosts"`
}
