package event

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/agritrack/attendance-backend-go/internal/domain/event"
	"github.com/agritrack/attendance-backend-go/internal/domain/site"
	"github.com/agritrack/attendance-backend-go/internal/domain/worker"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes. The event repository enforces the same dedup triple the
// real unique index does, so race-loser behavior is exercised too.

type fakeEventRepo struct {
	events []event.ClockEvent
	nextID int
}

func (f *fakeEventRepo) key(workerID, siteID string, ts time.Time) string {
	return workerID + "|" + siteID + "|" + ts.UTC().Format(time.RFC3339Nano)
}

func (f *fakeEventRepo) Create(ctx context.Context, e event.ClockEvent) (event.ClockEvent, error) {
	for _, stored := range f.events {
		if f.key(stored.WorkerID, stored.SiteID, stored.Timestamp) == f.key(e.WorkerID, e.SiteID, e.Timestamp) {
			return event.ClockEvent{}, event.ErrDuplicateEvent
		}
	}
	f.nextID++
	e.ID = fmt.Sprintf("evt-%d", f.nextID)
	e.CreatedAt = time.Now()
	f.events = append(f.events, e)
	return e, nil
}

func (f *fakeEventRepo) Exists(ctx context.Context, workerID, siteID string, ts time.Time) (bool, error) {
	for _, stored := range f.events {
		if f.key(stored.WorkerID, stored.SiteID, stored.Timestamp) == f.key(workerID, siteID, ts) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter event.EventFilter, organizationID string) ([]event.ClockEvent, error) {
	var out []event.ClockEvent
	for _, e := range f.events {
		if e.OrganizationID != organizationID {
			continue
		}
		if filter.SiteID != nil && e.SiteID != *filter.SiteID {
			continue
		}
		if filter.WorkerID != nil && e.WorkerID != *filter.WorkerID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) ListWorkerRange(ctx context.Context, workerID string, from, to time.Time, organizationID string) ([]event.ClockEvent, error) {
	return nil, nil
}

func (f *fakeEventRepo) ListSitesRange(ctx context.Context, siteIDs []string, from, to time.Time, organizationID string) ([]event.ClockEvent, error) {
	return nil, nil
}

func (f *fakeEventRepo) CountSince(ctx context.Context, from time.Time) (int64, error) {
	return int64(len(f.events)), nil
}

func (f *fakeEventRepo) CheckInTrend(ctx context.Context, from time.Time) ([]event.DayCount, error) {
	return nil, nil
}

type fakeWorkerRepo struct {
	workers map[string]worker.Worker
}

func (f *fakeWorkerRepo) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	return w, nil
}

func (f *fakeWorkerRepo) GetByID(ctx context.Context, id string, organizationID string) (worker.Worker, error) {
	w, ok := f.workers[id]
	if !ok || w.OrganizationID != organizationID {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (f *fakeWorkerRepo) GetAnyByID(ctx context.Context, id string) (worker.Worker, error) {
	w, ok := f.workers[id]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (f *fakeWorkerRepo) List(ctx context.Context, organizationID string) ([]worker.Worker, error) {
	return nil, nil
}

func (f *fakeWorkerRepo) ListActiveBySites(ctx context.Context, siteIDs []string, organizationID string) ([]worker.Worker, error) {
	return nil, nil
}

func (f *fakeWorkerRepo) Update(ctx context.Context, w worker.Worker) error { return nil }

func (f *fakeWorkerRepo) SoftDelete(ctx context.Context, id string, organizationID string) error {
	return nil
}

func (f *fakeWorkerRepo) CountActive(ctx context.Context) (int64, error) { return 0, nil }

type fakeSiteRepo struct {
	sites map[string]site.Site
}

func (f *fakeSiteRepo) Create(ctx context.Context, s site.Site) (site.Site, error) { return s, nil }

func (f *fakeSiteRepo) GetByID(ctx context.Context, id string, organizationID string) (site.Site, error) {
	s, ok := f.sites[id]
	if !ok || s.OrganizationID != organizationID {
		return site.Site{}, site.ErrSiteNotFound
	}
	return s, nil
}

func (f *fakeSiteRepo) GetAnyByID(ctx context.Context, id string) (site.Site, error) {
	s, ok := f.sites[id]
	if !ok {
		return site.Site{}, site.ErrSiteNotFound
	}
	return s, nil
}

func (f *fakeSiteRepo) List(ctx context.Context, organizationID string) ([]site.Site, error) {
	return nil, nil
}

func (f *fakeSiteRepo) ListIDs(ctx context.Context, organizationID string) ([]string, error) {
	return nil, nil
}

func (f *fakeSiteRepo) Update(ctx context.Context, s site.Site) error { return nil }

func (f *fakeSiteRepo) SoftDelete(ctx context.Context, id string, organizationID string) error {
	return nil
}

func (f *fakeSiteRepo) CountActive(ctx context.Context) (int64, error) { return 0, nil }

const (
	testOrgID  = "org-1"
	otherOrgID = "org-2"

	// Farm site in Lagos.
	siteLat = 6.5244
	siteLon = 3.3792
)

func authedContext(t *testing.T, organizationID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	claims := map[string]interface{}{
		"organization_id": organizationID,
		"role":            "admin",
		"type":            "access",
	}
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService() (*EventServiceImpl, *fakeEventRepo) {
	eventRepo := &fakeEventRepo{}
	workerRepo := &fakeWorkerRepo{workers: map[string]worker.Worker{
		"w-1": {ID: "w-1", OrganizationID: testOrgID, Name: "Ada", IsActive: true},
		"w-2": {ID: "w-2", OrganizationID: otherOrgID, Name: "Bola", IsActive: true},
	}}
	siteRepo := &fakeSiteRepo{sites: map[string]site.Site{
		"s-1": {ID: "s-1", OrganizationID: testOrgID, Name: "North Field", Latitude: siteLat, Longitude: siteLon, RadiusM: 100},
		"s-2": {ID: "s-2", OrganizationID: otherOrgID, Name: "Rival Farm", Latitude: siteLat, Longitude: siteLon, RadiusM: 100},
	}}

	svc := NewEventService(eventRepo, workerRepo, siteRepo).(*EventServiceImpl)
	return svc, eventRepo
}

func submitRequest(ts time.Time) event.SubmitEventRequest {
	return event.SubmitEventRequest{
		WorkerID:  "w-1",
		SiteID:    "s-1",
		EventType: "IN",
		Timestamp: ts,
		Latitude:  siteLat,
		Longitude: siteLon,
		Automatic: true,
	}
}

func TestSubmitInsideGeofence(t *testing.T) {
	svc, _ := newTestService()
	ctx := authedContext(t, testOrgID)

	resp, err := svc.Submit(ctx, submitRequest(time.Date(2025, 1, 10, 5, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	assert.True(t, resp.IsValid)
	assert.True(t, resp.IsAutomatic)
	assert.InDelta(t, 0, resp.DistanceM, 0.001)
	assert.Equal(t, "IN", resp.EventType)
	require.NotNil(t, resp.WorkerName)
	assert.Equal(t, "Ada", *resp.WorkerName)
}

func TestSubmitAutomaticOutsideGeofenceRejected(t *testing.T) {
	svc, repo := newTestService()
	ctx := authedContext(t, testOrgID)

	req := submitRequest(time.Date(2025, 1, 10, 5, 0, 0, 0, time.UTC))
	req.Latitude = siteLat + 0.01 // roughly 1.1km north

	_, err := svc.Submit(ctx, req)
	require.ErrorIs(t, err, event.ErrGeofenceViolation)
	assert.Contains(t, err.Error(), "from site center")
	assert.Empty(t, repo.events)
}

func TestSubmitManualOutsideGeofenceStoredInvalid(t *testing.T) {
	svc, repo := newTestService()
	ctx := authedContext(t, testOrgID)

	req := submitRequest(time.Date(2025, 1, 10, 5, 0, 0, 0, time.UTC))
	req.Latitude = siteLat + 0.01
	req.Automatic = false

	resp, err := svc.Submit(ctx, req)
	require.NoError(t, err)

	assert.False(t, resp.IsValid)
	assert.Greater(t, resp.DistanceM, 1000.0)
	require.Len(t, repo.events, 1)
	assert.False(t, repo.events[0].IsValid)
}

func TestSubmitDuplicateReturnsError(t *testing.T) {
	svc, _ := newTestService()
	ctx := authedContext(t, testOrgID)

	ts := time.Date(2025, 1, 10, 5, 0, 0, 0, time.UTC)
	_, err := svc.Submit(ctx, submitRequest(ts))
	require.NoError(t, err)

	_, err = svc.Submit(ctx, submitRequest(ts))
	assert.ErrorIs(t, err, event.ErrDuplicateEvent)
}

func TestSubmitCrossTenantWorkerDenied(t *testing.T) {
	svc, repo := newTestService()
	ctx := authedContext(t, testOrgID)

	req := submitRequest(time.Date(2025, 1, 10, 5, 0, 0, 0, time.UTC))
	req.WorkerID = "w-2"

	_, err := svc.Submit(ctx, req)
	assert.ErrorIs(t, err, event.ErrAccessDenied)
	assert.Empty(t, repo.events)
}

func TestSubmitCrossTenantSiteDenied(t *testing.T) {
	svc, _ := newTestService()
	ctx := authedContext(t, testOrgID)

	req := submitRequest(time.Date(2025, 1, 10, 5, 0, 0, 0, time.UTC))
	req.SiteID = "s-2"

	_, err := svc.Submit(ctx, req)
	assert.ErrorIs(t, err, event.ErrAccessDenied)
}

func TestSubmitValidationFailure(t *testing.T) {
	svc, _ := newTestService()
	ctx := authedContext(t, testOrgID)

	req := submitRequest(time.Date(2025, 1, 10, 5, 0, 0, 0, time.UTC))
	req.EventType = "LUNCH"

	_, err := svc.Submit(ctx, req)
	require.Error(t, err)
}

func TestSyncBatchIdempotentReplay(t *testing.T) {
	svc, repo := newTestService()
	ctx := authedContext(t, testOrgID)

	base := time.Date(2025, 1, 10, 5, 0, 0, 0, time.UTC)
	var batch []event.SubmitEventRequest
	for i := 0; i < 3; i++ {
		req := submitRequest(base.Add(time.Duration(i) * time.Hour))
		if i%2 == 1 {
			req.EventType = "OUT"
		}
		batch = append(batch, req)
	}

	first, err := svc.SyncBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 3, first.AcceptedCount)
	assert.Equal(t, 0, first.SkippedDuplicates)
	assert.Equal(t, 0, first.Rejected)
	assert.Len(t, repo.events, 3)

	// A replay of the exact same batch is a no-op.
	second, err := svc.SyncBatch(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, 0, second.AcceptedCount)
	assert.Equal(t, 3, second.SkippedDuplicates)
	assert.Equal(t, 0, second.Rejected)
	assert.Len(t, repo.events, 3)
}

func TestSyncBatchMixedOutcomes(t *testing.T) {
	svc, repo := newTestService()
	ctx := authedContext(t, testOrgID)

	ts := time.Date(2025, 1, 10, 5, 0, 0, 0, time.UTC)

	// Seed one event so the batch contains a duplicate.
	_, err := svc.Submit(ctx, submitRequest(ts))
	require.NoError(t, err)

	good := submitRequest(ts.Add(time.Hour))

	duplicate := submitRequest(ts)

	crossTenant := submitRequest(ts.Add(2 * time.Hour))
	crossTenant.WorkerID = "w-2"

	outsideAuto := submitRequest(ts.Add(3 * time.Hour))
	outsideAuto.Latitude = siteLat + 0.01

	outsideManual := submitRequest(ts.Add(4 * time.Hour))
	outsideManual.Latitude = siteLat + 0.01
	outsideManual.Automatic = false

	invalid := submitRequest(ts.Add(5 * time.Hour))
	invalid.WorkerID = ""

	result, err := svc.SyncBatch(ctx, []event.SubmitEventRequest{
		good, duplicate, crossTenant, outsideAuto, outsideManual, invalid,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.AcceptedCount) // good + both out-of-fence items
	assert.Equal(t, 1, result.SkippedDuplicates)
	assert.Equal(t, 2, result.Rejected) // cross-tenant, missing worker

	// Both out-of-fence items landed flagged invalid.
	var flagged []event.ClockEvent
	for _, stored := range repo.events {
		if !stored.IsValid {
			flagged = append(flagged, stored)
		}
	}
	require.Len(t, flagged, 2)
}

func TestSyncBatchAutomaticOutsideGeofenceStoredInvalid(t *testing.T) {
	svc, repo := newTestService()
	ctx := authedContext(t, testOrgID)

	// The same event would be rejected on the real-time path, but sync is
	// post-hoc: it must land, flagged invalid.
	req := submitRequest(time.Date(2025, 1, 10, 5, 0, 0, 0, time.UTC))
	req.Latitude = siteLat + 0.01

	result, err := svc.SyncBatch(ctx, []event.SubmitEventRequest{req})
	require.NoError(t, err)

	assert.Equal(t, 1, result.AcceptedCount)
	assert.Equal(t, 0, result.Rejected)
	require.Len(t, repo.events, 1)
	assert.False(t, repo.events[0].IsValid)
	assert.True(t, repo.events[0].IsAutomatic)
	assert.Greater(t, repo.events[0].DistanceM, 100.0)
}

func TestSyncBatchEmptyResultShape(t *testing.T) {
	svc, _ := newTestService()
	ctx := authedContext(t, testOrgID)

	result, err := svc.SyncBatch(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, result.Accepted)
	assert.Empty(t, result.Accepted)
}
