package catchup

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CrestNiraj12/terminalcatchup/domain"
)

const (
	// MinRangeHours and MaxRangeHours bound the hour presets.
	MinRangeHours = 1
	MaxRangeHours = 12
	// BeyondRange is the preset past MaxRangeHours: no lower bound at all.
	BeyondRange = MaxRangeHours + 1
)

// RangeLabel names a preset, e.g. "last 3 hours" or "beyond 12 hours".
func RangeLabel(hours int) string {
	switch {
	case hours >= BeyondRange:
		return fmt.Sprintf("beyond %d hours", MaxRangeHours)
	case hours == 1:
		return "last 1 hour"
	default:
		return fmt.Sprintf("last %d hours", hours)
	}
}

// RangeDuration turns a preset into the lookback of a catch-up. A nil duration
// means no lower bound. With sinceLast and a previous catch-up, the beyond
// preset reaches back exactly to where the last catch-up ended.
func RangeDuration(hours int, sinceLast bool, lastEndAt *time.Time, now time.Time) (*time.Duration, error) {
	if hours < MinRangeHours || hours > BeyondRange {
		return nil, fmt.Errorf("%w: %d hours", domain.ErrInvalidRange, hours)
	}
	if hours < BeyondRange {
		d := time.Duration(hours) * time.Hour
		return &d, nil
	}
	if sinceLast && lastEndAt != nil && lastEndAt.Before(now) {
		d := now.Sub(*lastEndAt)
		return &d, nil
	}
	return nil, nil
}

// OverlapsLast reports whether reaching back hours from now would reread posts
// already covered by the catch-up that ended at lastEndAt.
func OverlapsLast(hours int, lastEndAt *time.Time, now time.Time) bool {
	if lastEndAt == nil {
		return false
	}
	return float64(hours) > now.Sub(*lastEndAt).Hours()
}

// Namespace scopes catch-ups to one account on one instance, so histories of
// different accounts never collide.
func Namespace(accountID, instanceURL string) string {
	host := instanceURL
	if u, err := url.Parse(instanceURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return accountID + "@" + strings.ToLower(host)
}

// NewSessionID returns a fresh catch-up ID inside a namespace.
func NewSessionID(namespace string) string {
	return namespace + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NamespaceOf recovers the namespace of a catch-up ID.
func NamespaceOf(id string) string {
	i := strings.LastIndexByte(id, '-')
	if i < 0 {
		return id
	}
	return id[:i]
}
