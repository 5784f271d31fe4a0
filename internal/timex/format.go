package timex

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the absolute date format used in tables, e.g. "Mar 04, 2025".
const DateLayout = "Jan 02, 2006"

// FormatDate renders t with DateLayout. The zero time renders as "-".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DateLayout)
}

// FormatRelative renders the distance between t and now in words with a
// suffix, e.g. "3 days ago" or "in about 2 hours".
func FormatRelative(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}

	d := now.Sub(t)
	future := d < 0
	if future {
		d = -d
	}

	words := distanceInWords(d)
	if future {
		return "in " + words
	}
	return words + " ago"
}

func distanceInWords(d time.Duration) string {
	minutes := int(math.Round(d.Minutes()))
	hours := int(math.Round(d.Hours()))
	days := int(math.Round(d.Hours() / 24))

	switch {
	case minutes < 1:
		return "less than a minute"
	case minutes == 1:
		return "1 minute"
	case minutes < 45:
		return fmt.Sprintf("%d minutes", minutes)
	case minutes < 90:
		return "about 1 hour"
	case hours < 24:
		return fmt.Sprintf("about %d hours", hours)
	case hours < 42:
		return "1 day"
	case days < 30:
		return fmt.Sprintf("%d days", days)
	case days < 45:
		return "about 1 month"
	case days < 365:
		return fmt.Sprintf("%d months", int(math.Round(float64(days)/30)))
	case days < 365+182:
		return "about 1 year"
	default:
		return fmt.Sprintf("over %d years", days/365)
	}
}
