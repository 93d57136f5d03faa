package report

import (
	"context"
	"testing"
	"time"

	"github.com/agritrack/attendance-backend-go/internal/domain/event"
	"github.com/agritrack/attendance-backend-go/internal/domain/organization"
	"github.com/agritrack/attendance-backend-go/internal/domain/report"
	"github.com/agritrack/attendance-backend-go/internal/domain/site"
	"github.com/agritrack/attendance-backend-go/internal/domain/user"
	"github.com/agritrack/attendance-backend-go/internal/domain/worker"
	"github.com/agritrack/attendance-backend-go/internal/service/attendance"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wat = time.FixedZone("WAT", 3600)

const testOrgID = "org-1"

type fakeEventRepo struct {
	events []event.ClockEvent
}

func (f *fakeEventRepo) Create(ctx context.Context, e event.ClockEvent) (event.ClockEvent, error) {
	return e, nil
}

func (f *fakeEventRepo) Exists(ctx context.Context, workerID, siteID string, ts time.Time) (bool, error) {
	return false, nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter event.EventFilter, organizationID string) ([]event.ClockEvent, error) {
	return nil, nil
}

func (f *fakeEventRepo) ListWorkerRange(ctx context.Context, workerID string, from, to time.Time, organizationID string) ([]event.ClockEvent, error) {
	var out []event.ClockEvent
	for _, e := range f.events {
		if e.WorkerID != workerID {
			continue
		}
		if e.Timestamp.Before(from) || !e.Timestamp.Before(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) ListSitesRange(ctx context.Context, siteIDs []string, from, to time.Time, organizationID string) ([]event.ClockEvent, error) {
	inScope := make(map[string]bool, len(siteIDs))
	for _, id := range siteIDs {
		inScope[id] = true
	}
	var out []event.ClockEvent
	for _, e := range f.events {
		if !inScope[e.SiteID] {
			continue
		}
		if e.Timestamp.Before(from) || !e.Timestamp.Before(to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) CountSince(ctx context.Context, from time.Time) (int64, error) {
	return int64(len(f.events)), nil
}

func (f *fakeEventRepo) CheckInTrend(ctx context.Context, from time.Time) ([]event.DayCount, error) {
	return []event.DayCount{{Day: "2025-01-10", Count: 2}}, nil
}

type fakeWorkerRepo struct {
	workers []worker.Worker
}

func (f *fakeWorkerRepo) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	return w, nil
}

func (f *fakeWorkerRepo) GetByID(ctx context.Context, id string, organizationID string) (worker.Worker, error) {
	for _, w := range f.workers {
		if w.ID == id && w.OrganizationID == organizationID {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) GetAnyByID(ctx context.Context, id string) (worker.Worker, error) {
	for _, w := range f.workers {
		if w.ID == id {
			return w, nil
		}
	}
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) List(ctx context.Context, organizationID string) ([]worker.Worker, error) {
	return f.workers, nil
}

func (f *fakeWorkerRepo) ListActiveBySites(ctx context.Context, siteIDs []string, organizationID string) ([]worker.Worker, error) {
	inScope := make(map[string]bool, len(siteIDs))
	for _, id := range siteIDs {
		inScope[id] = true
	}
	var out []worker.Worker
	for _, w := range f.workers {
		if w.SiteID != nil && inScope[*w.SiteID] && w.OrganizationID == organizationID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWorkerRepo) Update(ctx context.Context, w worker.Worker) error { return nil }

func (f *fakeWorkerRepo) SoftDelete(ctx context.Context, id string, organizationID string) error {
	return nil
}

func (f *fakeWorkerRepo) CountActive(ctx context.Context) (int64, error) {
	return int64(len(f.workers)), nil
}

type fakeSiteRepo struct {
	sites []site.Site
}

func (f *fakeSiteRepo) Create(ctx context.Context, s site.Site) (site.Site, error) { return s, nil }

func (f *fakeSiteRepo) GetByID(ctx context.Context, id string, organizationID string) (site.Site, error) {
	for _, s := range f.sites {
		if s.ID == id && s.OrganizationID == organizationID {
			return s, nil
		}
	}
	return site.Site{}, site.ErrSiteNotFound
}

func (f *fakeSiteRepo) GetAnyByID(ctx context.Context, id string) (site.Site, error) {
	for _, s := range f.sites {
		if s.ID == id {
			return s, nil
		}
	}
	return site.Site{}, site.ErrSiteNotFound
}

func (f *fakeSiteRepo) List(ctx context.Context, organizationID string) ([]site.Site, error) {
	return f.sites, nil
}

func (f *fakeSiteRepo) ListIDs(ctx context.Context, organizationID string) ([]string, error) {
	ids := make([]string, 0, len(f.sites))
	for _, s := range f.sites {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

func (f *fakeSiteRepo) Update(ctx context.Context, s site.Site) error { return nil }

func (f *fakeSiteRepo) SoftDelete(ctx context.Context, id string, organizationID string) error {
	return nil
}

func (f *fakeSiteRepo) CountActive(ctx context.Context) (int64, error) {
	return int64(len(f.sites)), nil
}

type fakeOrgRepo struct{}

func (f *fakeOrgRepo) Create(ctx context.Context, org organization.Organization) (organization.Organization, error) {
	return org, nil
}

func (f *fakeOrgRepo) GetByID(ctx context.Context, id string) (organization.Organization, error) {
	return organization.Organization{}, organization.ErrOrganizationNotFound
}

func (f *fakeOrgRepo) CountActive(ctx context.Context) (int64, error) { return 4, nil }

func authedContext(t *testing.T, organizationID string, platformAdmin bool) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	claims := map[string]interface{}{
		"organization_id":   organizationID,
		"role":              "admin",
		"is_platform_admin": platformAdmin,
		"type":              "access",
	}
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func clockEvent(workerID string, eventType event.Type, ts time.Time) event.ClockEvent {
	return event.ClockEvent{
		WorkerID:       workerID,
		SiteID:         "s-1",
		OrganizationID: testOrgID,
		EventType:      eventType,
		Timestamp:      ts,
		IsValid:        true,
	}
}

func newTestService(events []event.ClockEvent, now time.Time) *ReportServiceImpl {
	siteID := "s-1"
	return &ReportServiceImpl{
		eventRepo: &fakeEventRepo{events: events},
		workerRepo: &fakeWorkerRepo{workers: []worker.Worker{
			{ID: "w-1", OrganizationID: testOrgID, SiteID: &siteID, Name: "Ada", IsActive: true},
			{ID: "w-2", OrganizationID: testOrgID, SiteID: &siteID, Name: "Bola", IsActive: true},
			{ID: "w-3", OrganizationID: testOrgID, SiteID: &siteID, Name: "Chidi", IsActive: true},
		}},
		siteRepo: &fakeSiteRepo{sites: []site.Site{
			{ID: "s-1", OrganizationID: testOrgID, Name: "North Field", Latitude: 6.5244, Longitude: 3.3792, RadiusM: 100},
		}},
		orgRepo:    &fakeOrgRepo{},
		reconciler: attendance.NewReconciler(wat),
		classifier: attendance.NewClassifier(wat, "06:00:00"),
		zone:       wat,
		now:        func() time.Time { return now },
	}
}

// Default window start is 06:00 local, which is 05:00 UTC in WAT.
func testEvents() []event.ClockEvent {
	return []event.ClockEvent{
		// Ada, Jan 10: on time, 7h55m shift.
		clockEvent("w-1", event.TypeIn, time.Date(2025, 1, 10, 4, 30, 0, 0, time.UTC)),
		clockEvent("w-1", event.TypeOut, time.Date(2025, 1, 10, 12, 25, 0, 0, time.UTC)),
		// Ada, Jan 11: 10 minutes late, 6h shift.
		clockEvent("w-1", event.TypeIn, time.Date(2025, 1, 11, 5, 10, 0, 0, time.UTC)),
		clockEvent("w-1", event.TypeOut, time.Date(2025, 1, 11, 11, 10, 0, 0, time.UTC)),
		// Bola, Jan 10: 30 minutes late, never checked out.
		clockEvent("w-2", event.TypeIn, time.Date(2025, 1, 10, 5, 30, 0, 0, time.UTC)),
	}
}

func TestDailySummary(t *testing.T) {
	svc := newTestService(testEvents(), time.Date(2025, 1, 10, 13, 0, 0, 0, time.UTC))
	ctx := authedContext(t, testOrgID, false)

	summary, err := svc.DailySummary(ctx, "2025-01-10", nil)
	require.NoError(t, err)

	assert.Equal(t, "2025-01-10", summary.Date)
	assert.Equal(t, "All Sites", summary.SiteName)
	assert.Equal(t, 3, summary.TotalWorkers)
	assert.Equal(t, 2, summary.Present)
	assert.Equal(t, 1, summary.Absent)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 1, summary.OnTime)
	assert.InDelta(t, 7.92, summary.TotalHoursWorked, 0.001)

	require.Len(t, summary.WorkersAbsent, 1)
	assert.Equal(t, "Chidi", summary.WorkersAbsent[0].Name)

	require.Len(t, summary.WorkersPresent, 2)
	byName := map[string]report.WorkerAttendanceStatus{}
	for _, w := range summary.WorkersPresent {
		byName[w.Name] = w
	}

	ada := byName["Ada"]
	assert.Equal(t, "on_time", ada.Status)
	require.NotNil(t, ada.CheckInTime)
	assert.Equal(t, "05:30:00", *ada.CheckInTime) // local WAT clock
	require.NotNil(t, ada.HoursWorked)
	assert.InDelta(t, 7.92, *ada.HoursWorked, 0.001)

	bola := byName["Bola"]
	assert.Equal(t, "late", bola.Status)
	assert.Nil(t, bola.CheckOutTime)
	assert.Nil(t, bola.HoursWorked)
}

func TestDailySummarySiteScoped(t *testing.T) {
	svc := newTestService(testEvents(), time.Date(2025, 1, 10, 13, 0, 0, 0, time.UTC))
	ctx := authedContext(t, testOrgID, false)

	siteID := "s-1"
	summary, err := svc.DailySummary(ctx, "2025-01-10", &siteID)
	require.NoError(t, err)
	assert.Equal(t, "North Field", summary.SiteName)

	unknown := "s-404"
	_, err = svc.DailySummary(ctx, "2025-01-10", &unknown)
	assert.ErrorIs(t, err, site.ErrSiteNotFound)
}

func TestDailySummaryBadDate(t *testing.T) {
	svc := newTestService(nil, time.Now())
	ctx := authedContext(t, testOrgID, false)

	_, err := svc.DailySummary(ctx, "10-01-2025", nil)
	assert.ErrorIs(t, err, report.ErrInvalidDate)
}

func TestWorkerStatus(t *testing.T) {
	now := time.Date(2025, 1, 10, 13, 0, 0, 0, time.UTC)
	svc := newTestService(testEvents(), now)
	ctx := authedContext(t, testOrgID, false)

	status, err := svc.WorkerStatus(ctx, nil)
	require.NoError(t, err)

	require.Len(t, status.OnSiteNow, 1)
	assert.Equal(t, "Bola", status.OnSiteNow[0].Name)
	assert.Equal(t, "North Field", status.OnSiteNow[0].SiteName)
	assert.InDelta(t, 7.5, status.OnSiteNow[0].HoursOnSite, 0.001)

	require.Len(t, status.CheckedOut, 1)
	assert.Equal(t, "Ada", status.CheckedOut[0].Name)

	require.Len(t, status.NotYetArrived, 1)
	assert.Equal(t, "Chidi", status.NotYetArrived[0].Name)
}

func TestRangeSummary(t *testing.T) {
	svc := newTestService(testEvents(), time.Date(2025, 1, 12, 13, 0, 0, 0, time.UTC))
	ctx := authedContext(t, testOrgID, false)

	summary, err := svc.RangeSummary(ctx, "w-1", "2025-01-08", "2025-01-12")
	require.NoError(t, err)

	assert.Equal(t, "Ada", summary.WorkerName)
	assert.Equal(t, 2, summary.DaysPresent)
	assert.InDelta(t, 13.92, summary.TotalHours, 0.001)
	assert.InDelta(t, 6.96, summary.AvgHoursPerDay, 0.001)
	assert.Equal(t, 1, summary.LateArrivals)
}

func TestRangeSummaryOpenShiftCountsZeroHours(t *testing.T) {
	svc := newTestService(testEvents(), time.Date(2025, 1, 12, 13, 0, 0, 0, time.UTC))
	ctx := authedContext(t, testOrgID, false)

	summary, err := svc.RangeSummary(ctx, "w-2", "2025-01-08", "2025-01-12")
	require.NoError(t, err)

	// Bola's only shift never closed: present but contributing no hours.
	assert.Equal(t, 1, summary.DaysPresent)
	assert.Zero(t, summary.TotalHours)
	assert.Zero(t, summary.AvgHoursPerDay)
	assert.Equal(t, 1, summary.LateArrivals)
}

func TestRangeSummaryNoShifts(t *testing.T) {
	svc := newTestService(testEvents(), time.Date(2025, 1, 12, 13, 0, 0, 0, time.UTC))
	ctx := authedContext(t, testOrgID, false)

	summary, err := svc.RangeSummary(ctx, "w-3", "2025-01-08", "2025-01-12")
	require.NoError(t, err)

	assert.Zero(t, summary.DaysPresent)
	assert.Zero(t, summary.TotalHours)
	assert.Zero(t, summary.AvgHoursPerDay)
}

func TestRangeSummaryInvalidRange(t *testing.T) {
	svc := newTestService(nil, time.Now())
	ctx := authedContext(t, testOrgID, false)

	_, err := svc.RangeSummary(ctx, "w-1", "2025-01-12", "2025-01-08")
	assert.ErrorIs(t, err, report.ErrInvalidDateRange)
}

func TestLateArrivals(t *testing.T) {
	svc := newTestService(testEvents(), time.Date(2025, 1, 12, 13, 0, 0, 0, time.UTC))
	ctx := authedContext(t, testOrgID, false)

	arrivals, err := svc.LateArrivals(ctx, "2025-01-08", "2025-01-12", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, arrivals.TotalLateArrivals)
	require.Len(t, arrivals.LateArrivals, 2)

	// Sorted by date.
	assert.Equal(t, "2025-01-10", arrivals.LateArrivals[0].Date)
	assert.Equal(t, "Bola", arrivals.LateArrivals[0].WorkerName)
	assert.Equal(t, 30, arrivals.LateArrivals[0].MinutesLate)
	assert.Equal(t, "06:00:00", arrivals.LateArrivals[0].ExpectedTime)
	assert.Equal(t, "06:30:00", arrivals.LateArrivals[0].ActualTime)

	assert.Equal(t, "2025-01-11", arrivals.LateArrivals[1].Date)
	assert.Equal(t, "Ada", arrivals.LateArrivals[1].WorkerName)
	assert.Equal(t, 10, arrivals.LateArrivals[1].MinutesLate)

	// Equal counts break ties by name.
	require.Len(t, arrivals.TopOffenders, 2)
	assert.Equal(t, "Ada", arrivals.TopOffenders[0].Name)
	assert.Equal(t, 1, arrivals.TopOffenders[0].LateCount)
	assert.Equal(t, "Bola", arrivals.TopOffenders[1].Name)
}

func TestLateArrivalsCountsEveryLateCheckIn(t *testing.T) {
	// Chidi is late twice on the same day: once at open and again after a
	// midday break. Both check-ins count.
	events := []event.ClockEvent{
		clockEvent("w-3", event.TypeIn, time.Date(2025, 1, 10, 5, 15, 0, 0, time.UTC)),
		clockEvent("w-3", event.TypeOut, time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)),
		clockEvent("w-3", event.TypeIn, time.Date(2025, 1, 10, 10, 0, 0, 0, time.UTC)),
		clockEvent("w-3", event.TypeOut, time.Date(2025, 1, 10, 14, 0, 0, 0, time.UTC)),
	}
	svc := newTestService(events, time.Date(2025, 1, 12, 13, 0, 0, 0, time.UTC))
	ctx := authedContext(t, testOrgID, false)

	arrivals, err := svc.LateArrivals(ctx, "2025-01-08", "2025-01-12", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, arrivals.TotalLateArrivals)
	require.Len(t, arrivals.LateArrivals, 2)
	assert.Equal(t, "06:15:00", arrivals.LateArrivals[0].ActualTime)
	assert.Equal(t, 15, arrivals.LateArrivals[0].MinutesLate)
	assert.Equal(t, "11:00:00", arrivals.LateArrivals[1].ActualTime)
	assert.Equal(t, 300, arrivals.LateArrivals[1].MinutesLate)

	require.Len(t, arrivals.TopOffenders, 1)
	assert.Equal(t, "Chidi", arrivals.TopOffenders[0].Name)
	assert.Equal(t, 2, arrivals.TopOffenders[0].LateCount)
}

func TestAnalyticsOverviewRequiresPlatformAdmin(t *testing.T) {
	svc := newTestService(nil, time.Now())
	ctx := authedContext(t, testOrgID, false)

	_, err := svc.AnalyticsOverview(ctx, 30)
	assert.ErrorIs(t, err, user.ErrPlatformAdminRequired)
}

func TestAnalyticsOverview(t *testing.T) {
	svc := newTestService(testEvents(), time.Date(2025, 1, 12, 13, 0, 0, 0, time.UTC))
	ctx := authedContext(t, testOrgID, true)

	overview, err := svc.AnalyticsOverview(ctx, 30)
	require.NoError(t, err)

	assert.Equal(t, 30, overview.PeriodDays)
	assert.Equal(t, int64(4), overview.TotalOrganizations)
	assert.Equal(t, int64(1), overview.TotalSites)
	assert.Equal(t, int64(3), overview.TotalWorkers)
	assert.Equal(t, int64(5), overview.TotalEvents)
	require.Len(t, overview.AttendanceTrend, 1)
	assert.Equal(t, "2025-01-10", overview.AttendanceTrend[0].Date)
	assert.Equal(t, int64(2), overview.AttendanceTrend[0].TotalCheckIns)
}
