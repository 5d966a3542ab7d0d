package service

import (
	"time"

	"github.com/Bunrieu-sketch/content-pipeline/internal/sponsor/entity"
)

const dateLayout = "2006-01-02"

// DeriveNetValue computes the net deal value from a gross value. An explicit
// net override passes through unchanged; otherwise 80% of gross is retained
// (20% agency commission).
func DeriveNetValue(gross float64, explicitNet *float64) float64 {
	if explicitNet != nil {
		return *explicitNet
	}
	return gross * 0.8
}

// AddDays adds calendar days to a YYYY-MM-DD date string. Parsing is done in
// UTC so the result is stable across timezone boundaries. An unparseable
// input passes through unchanged.
func AddDays(dateStr string, days int) string {
	base, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return dateStr
	}
	return base.AddDate(0, 0, days).Format(dateLayout)
}

// ComputePaymentDueDate derives the payment due date as
// publishDate + brandDays + agencyDays calendar days. Nil publish date means
// not computable and yields nil. Missing term inputs default to 30 and 15.
func ComputePaymentDueDate(publishDate *string, brandDays, agencyDays *int) *string {
	if publishDate == nil || *publishDate == "" {
		return nil
	}
	brand := 30
	if brandDays != nil {
		brand = *brandDays
	}
	agency := 15
	if agencyDays != nil {
		agency = *agencyDays
	}
	due := AddDays(*publishDate, brand+agency)
	return &due
}

// TodayISO returns today's date as YYYY-MM-DD.
func TodayISO() string {
	return time.Now().Format(dateLayout)
}

// NextStage returns the stage after current in the linear pipeline, clamped
// at the final stage. make_good has no default successor.
func NextStage(current string) string {
	for i, s := range entity.StageOrder {
		if s == current {
			if i+1 < len(entity.StageOrder) {
				return entity.StageOrder[i+1]
			}
			return s
		}
	}
	return current
}
