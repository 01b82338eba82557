package campaigns

import (
	"fmt"
	"time"
)

// RelativeDay renders a day-granularity label for list rows: Today,
// Yesterday, then days/weeks/months/years ago.
func RelativeDay(t, now time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}

	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	case days < 365:
		return fmt.Sprintf("%d months ago", days/30)
	default:
		return fmt.Sprintf("%d years ago", days/365)
	}
}

// RelativeTime renders the compact evidence-feed label, checking days, then
// hours, then minutes.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	if days := int(diff.Hours() / 24); days > 0 {
		return fmt.Sprintf("%dd ago", days)
	}
	if hours := int(diff.Hours()); hours > 0 {
		return fmt.Sprintf("%dh ago", hours)
	}
	minutes := int(diff.Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dm ago", minutes)
}
