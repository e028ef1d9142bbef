package api

import "time"

// UsageData holds both rate-limit windows from one fetch. Each fetch
// produces a fresh value; there is no merging with prior results.
type UsageData struct {
	FiveHour UsagePeriod
	SevenDay UsagePeriod
}

// UsagePeriod describes one rate-limit window.
type UsagePeriod struct {
	// Utilization is the percent of the window consumed. The API may
	// report values above 100; they are passed through unclamped.
	Utilization float64
	// ResetsAt is the instant the window's counter returns to zero,
	// normalized to UTC.
	ResetsAt time.Time
}

// Wire shapes. resets_at stays a string so a missing or malformed
// timestamp surfaces as ErrParse rather than a silent zero time.
type usageResponse struct {
	FiveHour usageWindow `json:"five_hour"`
	SevenDay usageWindow `json:"seven_day"`
}

type usageWindow struct {
	Utilization float64 `json:"utilization"`
	ResetsAt    string  `json:"resets_at"`
}
