package echoapi

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/coachdesk/core/batch"
	"github.com/trezcool/coachdesk/core/dashboard"
	"github.com/trezcool/coachdesk/core/nav"
	"github.com/trezcool/coachdesk/core/schedule"
	reportsvc "github.com/trezcool/coachdesk/services/report"
)

func Test_home(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	app.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to CoachDesk API!", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func Test_navApi(t *testing.T) {
	app := setup(t)

	routes := func(rs []nav.Route) []interface{} {
		objs := make([]interface{}, 0, len(rs))
		for _, r := range rs {
			objs = append(objs, r)
		}
		return objs
	}
	detail, _, _ := nav.Match("/students/:id")

	tests := []httpTest{
		{name: "menu", path: "/v1/nav", wantCode: http.StatusOK, wantData: marchallList(t, routes(nav.Visible())...)},
		{name: "all", path: "/v1/nav?all=true", wantCode: http.StatusOK, wantData: marchallList(t, routes(nav.All())...)},
		{
			name: "match static", path: "/v1/nav/match?path=/students/add", wantCode: http.StatusOK,
			wantData: []byte(`{"route": {"id": "addStudent", "label": "Add Student", "path": "/students/add", "icon": "UserPlus", "hideFromNav": true}}`),
		},
		{
			name: "match param", path: "/v1/nav/match?path=/students/12", wantCode: http.StatusOK,
			wantData: marchallObj(t, NavMatch{Route: detail, ID: "12"}),
		},
		{name: "no match", path: "/v1/nav/match?path=/nope", wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})},
	}
	app.run(t, tests)
}

func Test_pagesApi_dashboard(t *testing.T) {
	app := setup(t)
	// 2024-07-04 is a Thursday
	app.dashboard.SetClock(func() time.Time { return time.Date(2024, 7, 4, 10, 0, 0, 0, time.Local) })

	req, rec := newRequest(http.MethodGet, "/v1/dashboard")
	app.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var sum dashboard.Summary
	decode(t, rec, &sum)
	assert.Equal(t, dashboard.Stats{
		TotalStudents:  6,
		ActiveStudents: 5,
		TotalBatches:   5,
		PendingFees:    35000,
		TotalCollected: 65000,
	}, sum.Stats)
	ids := make([]int, 0)
	for _, b := range sum.TodayClasses {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []int{2, 3, 5}, ids)
	require.Len(t, sum.RecentPayments, 5)
	assert.Equal(t, "Ananya Iyer", sum.RecentPayments[0].StudentName)
	assert.Equal(t, "RCP005", sum.RecentPayments[0].ReceiptNo)
}

func Test_pagesApi_fees(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/v1/fees")
	app.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var page dashboard.FeesPage
	decode(t, rec, &page)
	assert.Equal(t, dashboard.FeeSummary{TotalCollected: 65000, TotalPending: 35000, OverdueCount: 1, TotalStudents: 6}, page.Stats)
	assert.Len(t, page.Students, 6)
	ids := make([]int, 0)
	for _, s := range page.Pending {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int{2, 3, 5}, ids)
}

func Test_pagesApi_schedule(t *testing.T) {
	app := setup(t)

	batches, err := app.repos.Batches.QueryAllBatches()
	require.NoError(t, err)
	conflicts := schedule.DetectConflicts(batches)
	require.Len(t, conflicts, 2)

	tests := []httpTest{
		{name: "conflicts", path: "/v1/schedule/conflicts", wantCode: http.StatusOK, wantData: marchallObj(t, conflicts)},
		{
			name: "conflicts day=thursday", path: "/v1/schedule/conflicts?day=thursday", wantCode: http.StatusOK,
			wantData: marchallObj(t, []schedule.Conflict{conflicts[1]}),
		},
		{name: "conflicts day=Sunday", path: "/v1/schedule/conflicts?day=Sunday", wantCode: http.StatusOK, wantData: marchallList(t)},
		{
			name: "invalid day", path: "/v1/schedule?day=funday", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"day": "day must be a week day"}),
		},
	}
	app.run(t, tests)

	m := app.server.(*server).deps.Metrics
	assert.Equal(t, 2.0, promtestutil.ToFloat64(m.conflicts))

	req, rec := newRequest(http.MethodGet, "/v1/schedule?day=Monday")
	app.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var week schedule.Week
	decode(t, rec, &week)
	require.Len(t, week.Days, 1)
	assert.Equal(t, "Monday", week.Days[0].Day)
	require.Len(t, week.Days[0].Cells, 3)
	morning := week.Days[0].Cells[0]
	assert.Equal(t, batch.SlotMorning, morning.TimeSlot)
	require.Len(t, morning.Classes, 2)
	assert.Equal(t, "Rajesh Kumar", morning.Classes[0].TeacherName)
	assert.Equal(t, "Priya Sharma", morning.Classes[1].TeacherName)
	require.Len(t, week.Conflicts, 1)
	assert.Equal(t, schedule.ConflictRoom, week.Conflicts[0].Type)
	assert.Equal(t, "Room 101", week.Conflicts[0].Room)

	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/v1/schedule", "200")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/v1/schedule", "400")))
}

func Test_pagesApi_feesReport(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/v1/reports/fees.xlsx")
	app.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportsvc.StudentsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 8) // header, 6 students, total
	assert.Equal(t, "35000", rows[7][6])

	rows, err = f.GetRows(reportsvc.PaymentsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 9) // header, 7 payments, total
	assert.Equal(t, "RCP005", rows[1][0])
	assert.Equal(t, "65000", rows[8][3])
}
