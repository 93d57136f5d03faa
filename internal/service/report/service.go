package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/agritrack/attendance-backend-go/internal/domain/event"
	"github.com/agritrack/attendance-backend-go/internal/domain/organization"
	"github.com/agritrack/attendance-backend-go/internal/domain/report"
	"github.com/agritrack/attendance-backend-go/internal/domain/site"
	"github.com/agritrack/attendance-backend-go/internal/domain/user"
	"github.com/agritrack/attendance-backend-go/internal/domain/worker"
	"github.com/agritrack/attendance-backend-go/internal/service/attendance"
	"github.com/go-chi/jwtauth/v5"
)

type ReportServiceImpl struct {
	eventRepo  event.EventRepository
	workerRepo worker.WorkerRepository
	siteRepo   site.SiteRepository
	orgRepo    organization.OrganizationRepository
	reconciler *attendance.Reconciler
	classifier *attendance.Classifier
	zone       *time.Location
	now        func() time.Time
}

func NewReportService(
	eventRepo event.EventRepository,
	workerRepo worker.WorkerRepository,
	siteRepo site.SiteRepository,
	orgRepo organization.OrganizationRepository,
	reconciler *attendance.Reconciler,
	classifier *attendance.Classifier,
	zone *time.Location,
) report.ReportService {
	return &ReportServiceImpl{
		eventRepo:  eventRepo,
		workerRepo: workerRepo,
		siteRepo:   siteRepo,
		orgRepo:    orgRepo,
		reconciler: reconciler,
		classifier: classifier,
		zone:       zone,
		now:        time.Now,
	}
}

// Helper function to extract claims from context
func getClaimsFromContext(ctx context.Context) (organizationID string, isPlatformAdmin bool, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", false, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	organizationID, ok := claims["organization_id"].(string)
	if !ok || organizationID == "" {
		return "", false, fmt.Errorf("organization_id claim is missing or invalid")
	}

	isPlatformAdmin, _ = claims["is_platform_admin"].(bool)

	return organizationID, isPlatformAdmin, nil
}

// scope resolves the sites a report runs over: one verified site when a
// filter is given, otherwise every live site in the organization.
func (s *ReportServiceImpl) scope(ctx context.Context, siteID *string, organizationID string) ([]string, map[string]site.Site, string, error) {
	sites, err := s.siteRepo.List(ctx, organizationID)
	if err != nil {
		return nil, nil, "", err
	}

	byID := make(map[string]site.Site, len(sites))
	for _, st := range sites {
		byID[st.ID] = st
	}

	if siteID != nil {
		st, ok := byID[*siteID]
		if !ok {
			return nil, nil, "", site.ErrSiteNotFound
		}
		return []string{st.ID}, byID, st.Name, nil
	}

	ids := make([]string, 0, len(sites))
	for _, st := range sites {
		ids = append(ids, st.ID)
	}
	return ids, byID, "All Sites", nil
}

func (s *ReportServiceImpl) parseDay(value string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", value, s.zone)
	if err != nil {
		return time.Time{}, report.ErrInvalidDate
	}
	return day, nil
}

// checkinWindow returns the configured check-in window start for the site a
// shift was worked at, when one exists.
func checkinWindow(sites map[string]site.Site, siteID string) *time.Time {
	if st, ok := sites[siteID]; ok {
		return st.CheckinStart
	}
	return nil
}

func groupByWorker(events []event.ClockEvent) map[string][]event.ClockEvent {
	byWorker := make(map[string][]event.ClockEvent)
	for _, e := range events {
		byWorker[e.WorkerID] = append(byWorker[e.WorkerID], e)
	}
	return byWorker
}

// DailySummary implements report.ReportService.
func (s *ReportServiceImpl) DailySummary(ctx context.Context, date string, siteID *string) (report.DailySummaryResponse, error) {
	organizationID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return report.DailySummaryResponse{}, err
	}

	day, err := s.parseDay(date)
	if err != nil {
		return report.DailySummaryResponse{}, err
	}

	siteIDs, sites, siteName, err := s.scope(ctx, siteID, organizationID)
	if err != nil {
		return report.DailySummaryResponse{}, err
	}

	workers, err := s.workerRepo.ListActiveBySites(ctx, siteIDs, organizationID)
	if err != nil {
		return report.DailySummaryResponse{}, err
	}

	from, to := s.reconciler.DayRangeUTC(day)
	events, err := s.eventRepo.ListSitesRange(ctx, siteIDs, from, to, organizationID)
	if err != nil {
		return report.DailySummaryResponse{}, err
	}

	byWorker := groupByWorker(events)

	resp := report.DailySummaryResponse{
		Date:           date,
		SiteName:       siteName,
		TotalWorkers:   len(workers),
		WorkersPresent: []report.WorkerAttendanceStatus{},
		WorkersAbsent:  []report.AbsentWorker{},
	}

	for _, w := range workers {
		shifts := s.reconciler.DailyShifts(byWorker[w.ID])

		var todayShift *attendance.Shift
		for i := range shifts {
			if shifts[i].Day == date {
				todayShift = &shifts[i]
				break
			}
		}

		if todayShift == nil {
			resp.Absent++
			resp.WorkersAbsent = append(resp.WorkersAbsent, report.AbsentWorker{
				WorkerID: w.ID,
				Name:     w.Name,
			})
			continue
		}

		resp.Present++

		late, _ := s.classifier.Classify(todayShift.CheckIn.Timestamp, checkinWindow(sites, todayShift.SiteID))
		status := "on_time"
		if late {
			status = "late"
			resp.Late++
		} else {
			resp.OnTime++
		}

		entry := report.WorkerAttendanceStatus{
			WorkerID:    w.ID,
			Name:        w.Name,
			CheckInTime: localClock(todayShift.CheckIn.Timestamp, s.zone),
			Status:      status,
		}
		if todayShift.CheckOut != nil {
			entry.CheckOutTime = localClock(todayShift.CheckOut.Timestamp, s.zone)
		}
		if todayShift.Hours != nil {
			rounded := roundHours(*todayShift.Hours)
			entry.HoursWorked = &rounded
			resp.TotalHoursWorked += rounded
		}

		resp.WorkersPresent = append(resp.WorkersPresent, entry)
	}

	resp.TotalHoursWorked = roundHours(resp.TotalHoursWorked)

	return resp, nil
}

// WorkerStatus implements report.ReportService. Live presence is derived
// from today's most recent event per worker.
func (s *ReportServiceImpl) WorkerStatus(ctx context.Context, siteID *string) (report.WorkerStatusResponse, error) {
	organizationID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return report.WorkerStatusResponse{}, err
	}

	siteIDs, sites, _, err := s.scope(ctx, siteID, organizationID)
	if err != nil {
		return report.WorkerStatusResponse{}, err
	}

	workers, err := s.workerRepo.ListActiveBySites(ctx, siteIDs, organizationID)
	if err != nil {
		return report.WorkerStatusResponse{}, err
	}

	now := s.now().UTC()
	today := s.reconciler.LocalDay(now)
	day, _ := s.parseDay(today)
	from, to := s.reconciler.DayRangeUTC(day)

	events, err := s.eventRepo.ListSitesRange(ctx, siteIDs, from, to, organizationID)
	if err != nil {
		return report.WorkerStatusResponse{}, err
	}

	byWorker := groupByWorker(events)

	resp := report.WorkerStatusResponse{
		Timestamp:     now.Format(time.RFC3339),
		OnSiteNow:     []report.WorkerOnSite{},
		CheckedOut:    []report.WorkerCheckedOut{},
		NotYetArrived: []report.AbsentWorker{},
	}

	for _, w := range workers {
		state, latest := s.reconciler.Presence(byWorker[w.ID], today)
		switch state {
		case attendance.PresenceOnSite:
			siteName := ""
			if st, ok := sites[latest.SiteID]; ok {
				siteName = st.Name
			}
			resp.OnSiteNow = append(resp.OnSiteNow, report.WorkerOnSite{
				WorkerID:    w.ID,
				Name:        w.Name,
				SiteName:    siteName,
				CheckedInAt: latest.Timestamp.In(s.zone).Format(time.RFC3339),
				HoursOnSite: roundHours(now.Sub(latest.Timestamp).Hours()),
			})
		case attendance.PresenceCheckedOut:
			resp.CheckedOut = append(resp.CheckedOut, report.WorkerCheckedOut{
				WorkerID:     w.ID,
				Name:         w.Name,
				CheckedOutAt: latest.Timestamp.In(s.zone).Format(time.RFC3339),
			})
		default:
			resp.NotYetArrived = append(resp.NotYetArrived, report.AbsentWorker{
				WorkerID: w.ID,
				Name:     w.Name,
			})
		}
	}

	return resp, nil
}

// RangeSummary implements report.ReportService.
func (s *ReportServiceImpl) RangeSummary(ctx context.Context, workerID, startDate, endDate string) (report.RangeSummaryResponse, error) {
	organizationID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return report.RangeSummaryResponse{}, err
	}

	start, err := s.parseDay(startDate)
	if err != nil {
		return report.RangeSummaryResponse{}, err
	}
	end, err := s.parseDay(endDate)
	if err != nil {
		return report.RangeSummaryResponse{}, err
	}
	if start.After(end) {
		return report.RangeSummaryResponse{}, report.ErrInvalidDateRange
	}

	w, err := s.workerRepo.GetByID(ctx, workerID, organizationID)
	if err != nil {
		return report.RangeSummaryResponse{}, err
	}

	_, sites, _, err := s.scope(ctx, nil, organizationID)
	if err != nil {
		return report.RangeSummaryResponse{}, err
	}

	from, _ := s.reconciler.DayRangeUTC(start)
	_, to := s.reconciler.DayRangeUTC(end)

	events, err := s.eventRepo.ListWorkerRange(ctx, workerID, from, to, organizationID)
	if err != nil {
		return report.RangeSummaryResponse{}, err
	}

	shifts := s.reconciler.DailyShifts(events)

	resp := report.RangeSummaryResponse{
		WorkerID:   w.ID,
		WorkerName: w.Name,
		StartDate:  startDate,
		EndDate:    endDate,
	}

	for _, shift := range shifts {
		resp.DaysPresent++
		if shift.Hours != nil {
			resp.TotalHours += *shift.Hours
		}
		if late, _ := s.classifier.Classify(shift.CheckIn.Timestamp, checkinWindow(sites, shift.SiteID)); late {
			resp.LateArrivals++
		}
	}

	resp.TotalHours = roundHours(resp.TotalHours)
	if resp.DaysPresent > 0 {
		resp.AvgHoursPerDay = roundHours(resp.TotalHours / float64(resp.DaysPresent))
	}

	return resp, nil
}

// LateArrivals implements report.ReportService.
func (s *ReportServiceImpl) LateArrivals(ctx context.Context, startDate, endDate string, siteID *string) (report.LateArrivalsResponse, error) {
	organizationID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return report.LateArrivalsResponse{}, err
	}

	start, err := s.parseDay(startDate)
	if err != nil {
		return report.LateArrivalsResponse{}, err
	}
	end, err := s.parseDay(endDate)
	if err != nil {
		return report.LateArrivalsResponse{}, err
	}
	if start.After(end) {
		return report.LateArrivalsResponse{}, report.ErrInvalidDateRange
	}

	siteIDs, sites, _, err := s.scope(ctx, siteID, organizationID)
	if err != nil {
		return report.LateArrivalsResponse{}, err
	}

	workers, err := s.workerRepo.ListActiveBySites(ctx, siteIDs, organizationID)
	if err != nil {
		return report.LateArrivalsResponse{}, err
	}
	workerNames := make(map[string]string, len(workers))
	for _, w := range workers {
		workerNames[w.ID] = w.Name
	}

	from, _ := s.reconciler.DayRangeUTC(start)
	_, to := s.reconciler.DayRangeUTC(end)

	events, err := s.eventRepo.ListSitesRange(ctx, siteIDs, from, to, organizationID)
	if err != nil {
		return report.LateArrivalsResponse{}, err
	}

	resp := report.LateArrivalsResponse{
		StartDate:    startDate,
		EndDate:      endDate,
		LateArrivals: []report.LateArrival{},
		TopOffenders: []report.LateOffender{},
	}

	lateCounts := make(map[string]int)

	// Every IN event is classified on its own, not just the one opening the
	// daily shift: a worker who leaves and clocks back in late is flagged
	// again for the re-entry.
	for _, e := range events {
		if e.EventType != event.TypeIn {
			continue
		}

		window := checkinWindow(sites, e.SiteID)
		late, minutes := s.classifier.Classify(e.Timestamp, window)
		if !late {
			continue
		}

		siteName := ""
		if st, ok := sites[e.SiteID]; ok {
			siteName = st.Name
		}

		resp.LateArrivals = append(resp.LateArrivals, report.LateArrival{
			Date:         s.reconciler.LocalDay(e.Timestamp),
			WorkerID:     e.WorkerID,
			WorkerName:   workerNames[e.WorkerID],
			SiteName:     siteName,
			ExpectedTime: s.classifier.WindowStart(window).Format("15:04:05"),
			ActualTime:   *localClock(e.Timestamp, s.zone),
			MinutesLate:  minutes,
		})
		lateCounts[e.WorkerID]++
	}

	sort.Slice(resp.LateArrivals, func(i, j int) bool {
		if resp.LateArrivals[i].Date != resp.LateArrivals[j].Date {
			return resp.LateArrivals[i].Date < resp.LateArrivals[j].Date
		}
		if resp.LateArrivals[i].WorkerName != resp.LateArrivals[j].WorkerName {
			return resp.LateArrivals[i].WorkerName < resp.LateArrivals[j].WorkerName
		}
		return resp.LateArrivals[i].ActualTime < resp.LateArrivals[j].ActualTime
	})
	resp.TotalLateArrivals = len(resp.LateArrivals)

	for workerID, count := range lateCounts {
		resp.TopOffenders = append(resp.TopOffenders, report.LateOffender{
			WorkerID:  workerID,
			Name:      workerNames[workerID],
			LateCount: count,
		})
	}
	sort.Slice(resp.TopOffenders, func(i, j int) bool {
		if resp.TopOffenders[i].LateCount != resp.TopOffenders[j].LateCount {
			return resp.TopOffenders[i].LateCount > resp.TopOffenders[j].LateCount
		}
		return resp.TopOffenders[i].Name < resp.TopOffenders[j].Name
	})
	if len(resp.TopOffenders) > 10 {
		resp.TopOffenders = resp.TopOffenders[:10]
	}

	return resp, nil
}

// AnalyticsOverview implements report.ReportService. Gated on the explicit
// platform-admin claim, never on any particular organization ID.
func (s *ReportServiceImpl) AnalyticsOverview(ctx context.Context, days int) (report.AnalyticsOverviewResponse, error) {
	_, isPlatformAdmin, err := getClaimsFromContext(ctx)
	if err != nil {
		return report.AnalyticsOverviewResponse{}, err
	}
	if !isPlatformAdmin {
		return report.AnalyticsOverviewResponse{}, user.ErrPlatformAdminRequired
	}

	if days <= 0 {
		days = 30
	}
	from := s.now().UTC().AddDate(0, 0, -days)

	totalOrgs, err := s.orgRepo.CountActive(ctx)
	if err != nil {
		return report.AnalyticsOverviewResponse{}, err
	}
	totalSites, err := s.siteRepo.CountActive(ctx)
	if err != nil {
		return report.AnalyticsOverviewResponse{}, err
	}
	totalWorkers, err := s.workerRepo.CountActive(ctx)
	if err != nil {
		return report.AnalyticsOverviewResponse{}, err
	}
	totalEvents, err := s.eventRepo.CountSince(ctx, from)
	if err != nil {
		return report.AnalyticsOverviewResponse{}, err
	}
	trend, err := s.eventRepo.CheckInTrend(ctx, from)
	if err != nil {
		return report.AnalyticsOverviewResponse{}, err
	}

	trendDays := make([]report.TrendDay, 0, len(trend))
	for _, dc := range trend {
		trendDays = append(trendDays, report.TrendDay{Date: dc.Day, TotalCheckIns: dc.Count})
	}

	return report.AnalyticsOverviewResponse{
		PeriodDays:         days,
		TotalOrganizations: totalOrgs,
		TotalSites:         totalSites,
		TotalWorkers:       totalWorkers,
		TotalEvents:        totalEvents,
		AttendanceTrend:    trendDays,
	}, nil
}

func localClock(ts time.Time, zone *time.Location) *string {
	s := ts.In(zone).Format("15:04:05")
	return &s
}

func roundHours(h float64) float64 {
	return float64(int(h*100+0.5)) / 100
}
