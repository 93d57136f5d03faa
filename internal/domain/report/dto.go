package report

type WorkerAttendanceStatus struct {
	WorkerID     string   `json:"worker_id"`
	Name         string   `json:"name"`
	CheckInTime  *string  `json:"check_in_time"`
	CheckOutTime *string  `json:"check_out_time"`
	HoursWorked  *float64 `json:"hours_worked"`
	Status       string   `json:"status"` // on_time or late
}

type AbsentWorker struct {
	WorkerID string `json:"worker_id"`
	Name     string `json:"name"`
}

type DailySummaryResponse struct {
	Date             string                   `json:"date"`
	SiteName         string                   `json:"site_name"`
	TotalWorkers     int                      `json:"total_workers"`
	Present          int                      `json:"present"`
	Absent           int                      `json:"absent"`
	Late             int                      `json:"late"`
	OnTime           int                      `json:"on_time"`
	TotalHoursWorked float64                  `json:"total_hours_worked"`
	WorkersPresent   []WorkerAttendanceStatus `json:"workers_present"`
	WorkersAbsent    []AbsentWorker           `json:"workers_absent"`
}

type WorkerOnSite struct {
	WorkerID    string  `json:"worker_id"`
	Name        string  `json:"name"`
	SiteName    string  `json:"site_name"`
	CheckedInAt string  `json:"checked_in_at"`
	HoursOnSite float64 `json:"hours_on_site"`
}

type WorkerCheckedOut struct {
	WorkerID     string `json:"worker_id"`
	Name         string `json:"name"`
	CheckedOutAt string `json:"checked_out_at"`
}

type WorkerStatusResponse struct {
	Timestamp     string             `json:"timestamp"`
	OnSiteNow     []WorkerOnSite     `json:"on_site_now"`
	CheckedOut    []WorkerCheckedOut `json:"checked_out"`
	NotYetArrived []AbsentWorker     `json:"not_yet_arrived"`
}

type RangeSummaryResponse struct {
	WorkerID       string  `json:"worker_id"`
	WorkerName     string  `json:"worker_name"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	DaysPresent    int     `json:"days_present"`
	TotalHours     float64 `json:"total_hours"`
	AvgHoursPerDay float64 `json:"avg_hours_per_day"`
	LateArrivals   int     `json:"late_arrivals"`
}

type LateArrival struct {
	Date         string `json:"date"`
	WorkerID     string `json:"worker_id"`
	WorkerName   string `json:"worker_name"`
	SiteName     string `json:"site_name"`
	ExpectedTime string `json:"expected_time"`
	ActualTime   string `json:"actual_time"`
	MinutesLate  int    `json:"minutes_late"`
}

type LateOffender struct {
	WorkerID  string `json:"worker_id"`
	Name      string `json:"name"`
	LateCount int    `json:"late_count"`
}

type LateArrivalsResponse struct {
	StartDate         string         `json:"start_date"`
	EndDate           string         `json:"end_date"`
	TotalLateArrivals int            `json:"total_late_arrivals"`
	LateArrivals      []LateArrival  `json:"late_arrivals"`
	TopOffenders      []LateOffender `json:"top_offenders"`
}

type AnalyticsOverviewResponse struct {
	PeriodDays         int        `json:"period_days"`
	TotalOrganizations int64      `json:"total_organizations"`
	TotalSites         int64      `json:"total_sites"`
	TotalWorkers       int64      `json:"total_workers"`
	TotalEvents        int64      `json:"total_events_recorded"`
	AttendanceTrend    []TrendDay `json:"attendance_trend"`
}

type TrendDay struct {
	Date          string `json:"date"`
	TotalCheckIns int64  `json:"total_check_ins"`
}
