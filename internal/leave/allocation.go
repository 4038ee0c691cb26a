package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

const monthlyCap = 2

// daySplit is the allocation engine's verdict on a set of working days.
type daySplit struct {
	Allowed []time.Time
	LOP     []time.Time
}

type monthKey struct {
	Year  int
	Month time.Month
}

// splitYearlyCumulative grants working days against the year's remaining
// balance in order. Once the whole-day balance is exhausted every further day
// is unpaid.
func splitYearlyCumulative(days []time.Time, remainingYearly decimal.Decimal) daySplit {
	if remainingYearly.IsNegative() {
		remainingYearly = decimal.Zero
	}

	allowedCount := int(remainingYearly.IntPart())
	if allowedCount > len(days) {
		allowedCount = len(days)
	}

	return daySplit{
		Allowed: days[:allowedCount],
		LOP:     days[allowedCount:],
	}
}

// splitMonthlyCapped walks the requested days month by month. A day is
// granted only while both the month's cap and the overall balance have room;
// both budgets shrink by one per granted day.
func splitMonthlyCapped(
	days []time.Time,
	monthlyTaken map[monthKey]decimal.Decimal,
	remainingYearly decimal.Decimal,
) daySplit {
	if remainingYearly.IsNegative() {
		remainingYearly = decimal.Zero
	}

	remainingByMonth := make(map[monthKey]decimal.Decimal)

	var split daySplit
	for _, d := range days {
		key := monthKey{Year: d.Year(), Month: d.Month()}

		remainingMonthly, ok := remainingByMonth[key]
		if !ok {
			remainingMonthly = decimal.NewFromInt(monthlyCap).Sub(monthlyTaken[key])
			if remainingMonthly.IsNegative() {
				remainingMonthly = decimal.Zero
			}
		}

		if remainingMonthly.IsPositive() && remainingYearly.IsPositive() {
			split.Allowed = append(split.Allowed, d)
			remainingMonthly = remainingMonthly.Sub(decimal.NewFromInt(1))
			remainingYearly = remainingYearly.Sub(decimal.NewFromInt(1))
		} else {
			split.LOP = append(split.LOP, d)
		}

		remainingByMonth[key] = remainingMonthly
	}

	return split
}

// segment is one contiguous run of same-kind days, ready to persist as a
// single application row.
type segment struct {
	From  time.Time
	To    time.Time
	Days  int
	IsLOP bool
}

func buildSegments(split daySplit) []segment {
	var segments []segment
	for _, run := range groupConsecutive(split.Allowed) {
		segments = append(segments, segment{
			From: run[0],
			To:   run[len(run)-1],
			Days: len(run),
		})
	}
	for _, run := range groupConsecutive(split.LOP) {
		segments = append(segments, segment{
			From:  run[0],
			To:    run[len(run)-1],
			Days:  len(run),
			IsLOP: true,
		})
	}
	return segments
}
