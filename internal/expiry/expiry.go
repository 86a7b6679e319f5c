// Package expiry derives a document's expiration state from its expiration date.
package expiry

import (
	"fmt"
	"time"

	"docportal/internal/model"
)

// WarningWindowDays is how many days ahead of expiration a document counts as por_vencer.
const WarningWindowDays = 30

// Severity grades how urgent the remaining time is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Result is the classification of one expiration date at one instant.
type Result struct {
	Status        model.Status
	DaysRemaining int
	Label         string
	Severity      Severity
}

// Classify maps an expiration date to its state as seen at now.
// Only the calendar dates matter: expiration is read as a date in its own
// location and compared to the date of now in now's location.
func Classify(expiration, now time.Time) Result {
	days := DaysBetween(now, expiration)

	switch {
	case days < 0:
		return Result{
			Status:        model.StatusVencido,
			DaysRemaining: days,
			Label:         fmt.Sprintf("Expired %d days ago", -days),
			Severity:      SeverityHigh,
		}
	case days == 0:
		return Result{Status: model.StatusPorVencer, Label: "Expires today", Severity: SeverityMedium}
	case days == 1:
		return Result{Status: model.StatusPorVencer, DaysRemaining: 1, Label: "Expires tomorrow", Severity: SeverityMedium}
	case days <= WarningWindowDays:
		return Result{
			Status:        model.StatusPorVencer,
			DaysRemaining: days,
			Label:         fmt.Sprintf("%d days remaining", days),
			Severity:      SeverityMedium,
		}
	default:
		return Result{
			Status:        model.StatusVigente,
			DaysRemaining: days,
			Label:         fmt.Sprintf("%d days remaining", days),
			Severity:      SeverityLow,
		}
	}
}

// DaysBetween counts whole calendar days from the date of from to the date of to.
// Negative when to is earlier.
func DaysBetween(from, to time.Time) int {
	a := Date(from)
	b := Date(to)
	// Both are UTC midnights, so the difference is an exact multiple of 24h.
	return int(b.Sub(a).Hours() / 24)
}

// Date truncates t to midnight UTC of its own calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is the calendar date of now, as a UTC midnight.
func Today(now time.Time) time.Time {
	return Date(now)
}

// StatusClass is the presentation class of a status.
func StatusClass(s model.Status) string {
	switch s {
	case model.StatusVigente:
		return "success"
	case model.StatusPorVencer:
		return "warning"
	case model.StatusVencido:
		return "danger"
	}
	return "secondary"
}

// StatusText is the display name of a status.
func StatusText(s model.Status) string {
	switch s {
	case model.StatusVigente:
		return "Vigente"
	case model.StatusPorVencer:
		return "Por vencer"
	case model.StatusVencido:
		return "Vencido"
	}
	return "Desconocido"
}

// Class is the presentation class of a severity.
func (s Severity) Class() string {
	switch s {
	case SeverityHigh:
		return "text-danger"
	case SeverityMedium:
		return "text-warning"
	}
	return "text-success"
}

// Range returns the half-open date interval [From, To) of expiration dates that
// classify as status on today. A zero bound means unbounded on that side.
func Range(status model.Status, today time.Time) (from, to time.Time) {
	today = Date(today)
	switch status {
	case model.StatusVencido:
		return time.Time{}, today
	case model.StatusPorVencer:
		return today, today.AddDate(0, 0, WarningWindowDays+1)
	case model.StatusVigente:
		return today.AddDate(0, 0, WarningWindowDays+1), time.Time{}
	}
	return time.Time{}, time.Time{}
}
