package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"docportal/internal/model"
)

var now = time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

func daysFromNow(n int) time.Time {
	return time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		status   model.Status
		label    string
		severity Severity
	}{
		{"expired long ago", -10, model.StatusVencido, "Expired 10 days ago", SeverityHigh},
		{"expired yesterday", -1, model.StatusVencido, "Expired 1 days ago", SeverityHigh},
		{"expires today", 0, model.StatusPorVencer, "Expires today", SeverityMedium},
		{"expires tomorrow", 1, model.StatusPorVencer, "Expires tomorrow", SeverityMedium},
		{"inside window", 15, model.StatusPorVencer, "15 days remaining", SeverityMedium},
		{"window edge", 30, model.StatusPorVencer, "30 days remaining", SeverityMedium},
		{"just past window", 31, model.StatusVigente, "31 days remaining", SeverityLow},
		{"far future", 365, model.StatusVigente, "365 days remaining", SeverityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Classify(daysFromNow(tt.days), now)

			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.days, res.DaysRemaining)
			assert.Equal(t, tt.label, res.Label)
			assert.Equal(t, tt.severity, res.Severity)
		})
	}
}

func TestClassify_StatusProperties(t *testing.T) {
	for d := -60; d < 0; d++ {
		assert.Equal(t, model.StatusVencido, Classify(daysFromNow(d), now).Status, "day %d", d)
	}
	for d := 0; d <= 30; d++ {
		assert.Equal(t, model.StatusPorVencer, Classify(daysFromNow(d), now).Status, "day %d", d)
	}
	for d := 31; d <= 400; d++ {
		assert.Equal(t, model.StatusVigente, Classify(daysFromNow(d), now).Status, "day %d", d)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	exp := daysFromNow(12)
	assert.Equal(t, Classify(exp, now), Classify(exp, now))
}

func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	lateNight := time.Date(2024, time.March, 10, 23, 59, 59, 0, time.UTC)
	earlyMorning := time.Date(2024, time.March, 10, 0, 0, 1, 0, time.UTC)
	exp := daysFromNow(1)

	assert.Equal(t, "Expires tomorrow", Classify(exp, lateNight).Label)
	assert.Equal(t, "Expires tomorrow", Classify(exp, earlyMorning).Label)
}

func TestClassify_UsesCallerLocation(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	// 02:00 UTC on the 11th is still the 10th in Bogota.
	at := time.Date(2024, time.March, 11, 2, 0, 0, 0, time.UTC).In(bogota)

	res := Classify(daysFromNow(0), at)
	assert.Equal(t, "Expires today", res.Label)
}

func TestRange(t *testing.T) {
	today := daysFromNow(0)

	from, to := Range(model.StatusVencido, now)
	assert.True(t, from.IsZero())
	assert.Equal(t, today, to)

	from, to = Range(model.StatusPorVencer, now)
	assert.Equal(t, today, from)
	assert.Equal(t, daysFromNow(31), to)

	from, to = Range(model.StatusVigente, now)
	assert.Equal(t, daysFromNow(31), from)
	assert.True(t, to.IsZero())
}

func TestPresentation(t *testing.T) {
	assert.Equal(t, "success", StatusClass(model.StatusVigente))
	assert.Equal(t, "warning", StatusClass(model.StatusPorVencer))
	assert.Equal(t, "danger", StatusClass(model.StatusVencido))
	assert.Equal(t, "Por vencer", StatusText(model.StatusPorVencer))
	assert.Equal(t, "text-danger", SeverityHigh.Class())
	assert.Equal(t, "text-warning", SeverityMedium.Class())
	assert.Equal(t, "text-success", SeverityLow.Class())
}
