// Package together computes how long the couple has been together.
package together

import (
	"fmt"
	"time"
)

// Counter is the elapsed time since the start day. Before the start every
// field is zero and Started is false.
type Counter struct {
	TotalDays int  `json:"total_days"`
	Months    int  `json:"months"`
	Days      int  `json:"days"`
	Started   bool `json:"started"`
}

// Since computes the counter at now. Months and days use calendar
// differences with a fixed 30-day borrow, so month lengths are not exact.
func Since(start, now time.Time) Counter {
	if now.Before(start) {
		return Counter{}
	}

	total := int(now.Sub(start).Hours() / 24)

	years := now.Year() - start.Year()
	months := int(now.Month()) - int(start.Month())
	days := now.Day() - start.Day()
	if days < 0 {
		months--
		days += 30
	}
	if months < 0 {
		years--
		months += 12
	}

	return Counter{
		TotalDays: total,
		Months:    years*12 + months,
		Days:      days,
		Started:   true,
	}
}

// Label is the headline shown above the counter.
func (c Counter) Label() string {
	if !c.Started {
		return "Em Breve..."
	}
	return fmt.Sprintf("%d Dias Juntos", c.TotalDays)
}
