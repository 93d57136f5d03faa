package report

import "context"

// ReportService rolls clock events up into attendance reports. All
// operations are pure reads: summaries are recomputed from events on every
// call, never cached.
type ReportService interface {
	// DailySummary classifies every active worker in scope as
	// present/absent and late/on-time for one site-local calendar day.
	DailySummary(ctx context.Context, date string, siteID *string) (DailySummaryResponse, error)

	// WorkerStatus reports who is on site right now, based on each
	// worker's most recent event today.
	WorkerStatus(ctx context.Context, siteID *string) (WorkerStatusResponse, error)

	// RangeSummary aggregates one worker's shifts over a date range.
	RangeSummary(ctx context.Context, workerID, startDate, endDate string) (RangeSummaryResponse, error)

	// LateArrivals lists late check-ins in a range plus the top offenders.
	LateArrivals(ctx context.Context, startDate, endDate string, siteID *string) (LateArrivalsResponse, error)

	// AnalyticsOverview returns platform-wide counts (platform admin only).
	AnalyticsOverview(ctx context.Context, days int) (AnalyticsOverviewResponse, error)
}
