package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/coachdesk/core/batch"
	"github.com/trezcool/coachdesk/core/student"
	"github.com/trezcool/coachdesk/core/teacher"
)

func getBatches(t *testing.T, app testApp, ids ...int) []interface{} {
	objs := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		b, err := app.repos.Batches.GetBatchByID(id)
		require.NoError(t, err)
		objs = append(objs, b)
	}
	return objs
}

func Test_batchApi_query(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{name: "Get all", path: "/v1/batches", wantCode: http.StatusOK, wantData: marchallList(t, getBatches(t, app, 1, 2, 3, 4, 5)...)},
		{name: "teacher=1", path: "/v1/batches?teacher=1", wantCode: http.StatusOK, wantData: marchallList(t, getBatches(t, app, 1, 3, 5)...)},
		{name: "teacher (invalid)", path: "/v1/batches?teacher=x", wantCode: http.StatusOK, wantData: marchallList(t)},
		{name: "ordering=fees", path: "/v1/batches?ordering=fees", wantCode: http.StatusOK, wantData: marchallList(t, getBatches(t, app, 4, 5, 3, 2, 1)...)},
		{
			name: "404", path: "/v1/batches/9", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "batch not found"}),
		},
	}
	app.run(t, tests)
}

func Test_batchApi_create(t *testing.T) {
	app := setup(t)

	want := batch.Batch{
		ID:        6,
		Name:      "Olympiad Maths",
		Subject:   "Mathematics",
		TeacherID: 1,
		Schedule:  batch.Schedule{Days: []string{"Monday", "Friday"}, Time: "14:00", TimeSlot: batch.SlotAfternoon},
		Room:      "Room 105",
		Capacity:  10,
		Fees:      8000,
		StartDate: "2024-07-01",
		EndDate:   "2024-12-31",
	}

	tests := []httpTest{
		{
			name: "end before start", method: http.MethodPost, path: "/v1/batches",
			body: []byte(`{"name": "Olympiad Maths", "subject": "Mathematics", "teacherId": 1, "room": "Room 105", "capacity": 10,
				"schedule": {"days": ["monday"], "time": "14:00"}, "startDate": "2024-07-01", "endDate": "2024-07-01"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"endDate": "end date must be after start date"}),
		},
		{
			name: "derived slot", method: http.MethodPost, path: "/v1/batches",
			body: []byte(`{"name": "Olympiad Maths", "subject": "Mathematics", "teacherId": 1, "room": "Room 105", "capacity": 10,
				"enrolledCount": 7, "fees": 8000, "schedule": {"days": ["monday", " FRIDAY "], "time": "14:00"},
				"startDate": "2024-07-01", "endDate": "2024-12-31"}`),
			wantCode: http.StatusCreated, wantData: marchallObj(t, want),
		},
	}
	app.run(t, tests)

	req, rec := newRequest(http.MethodPost, "/v1/batches", []byte(`{"name": "X", "subject": "Y", "teacherId": 1, "room": "R", "capacity": 1,
		"schedule": {"days": ["Someday"], "time": "09:00", "timeSlot": "night"}, "startDate": "2024-07-01", "endDate": "2024-12-31"}`))
	app.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var errs map[string]string
	decode(t, rec, &errs)
	assert.Len(t, errs, 2)
	assert.Equal(t, "timeSlot must be one of [morning afternoon evening]", errs["timeSlot"])
}

func Test_batchApi_update(t *testing.T) {
	app := setup(t)

	orig, err := app.repos.Batches.GetBatchByID(4)
	require.NoError(t, err)
	moved := orig
	moved.Schedule = batch.Schedule{Days: []string{"Sunday"}, Time: "08:00", TimeSlot: batch.SlotMorning}
	enrolled := moved
	enrolled.EnrolledCount = 12

	tests := []httpTest{
		{
			name: "end before start", method: http.MethodPatch, path: "/v1/batches/4", body: []byte(`{"endDate": "2024-01-01"}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"endDate": "end date must be after start date"}),
		},
		{
			name: "reschedule", method: http.MethodPatch, path: "/v1/batches/4",
			body:     []byte(`{"Id": 1, "schedule": {"days": ["sunday"], "time": "08:00"}}`),
			wantCode: http.StatusOK, wantData: marchallObj(t, moved),
		},
		{
			name: "enrollment (missing)", method: http.MethodPut, path: "/v1/batches/4/enrollment", body: []byte(`{}`),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"enrolledCount": "this field is required"}),
		},
		{
			name: "enrollment", method: http.MethodPut, path: "/v1/batches/4/enrollment", body: []byte(`{"enrolledCount": 12}`),
			wantCode: http.StatusOK, wantData: marchallObj(t, enrolled),
		},
		{name: "delete", method: http.MethodDelete, path: "/v1/batches/4", wantCode: http.StatusNoContent},
		{
			name: "enrollment (gone)", method: http.MethodPut, path: "/v1/batches/4/enrollment", body: []byte(`{"enrolledCount": 1}`),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "batch not found"}),
		},
	}
	app.run(t, tests)
}

func Test_batchApi_detail(t *testing.T) {
	app := setup(t)

	b2, err := app.repos.Batches.GetBatchByID(2)
	require.NoError(t, err)
	s2, err := app.repos.Students.GetStudentByID(2)
	require.NoError(t, err)
	s3, err := app.repos.Students.GetStudentByID(3)
	require.NoError(t, err)
	t2, err := app.repos.Teachers.GetTeacherByID(2)
	require.NoError(t, err)

	require.NoError(t, app.repos.Teachers.DeleteTeacher(3))
	b4, err := app.repos.Batches.GetBatchByID(4)
	require.NoError(t, err)
	s4, err := app.repos.Students.GetStudentByID(4)
	require.NoError(t, err)

	tests := []httpTest{
		{
			name: "detail", path: "/v1/batches/2/detail", wantCode: http.StatusOK,
			wantData: marchallObj(t, BatchDetail{Batch: b2, Students: []student.Student{s2, s3}, Teacher: &t2}),
		},
		{
			name: "unknown teacher", path: "/v1/batches/4/detail", wantCode: http.StatusOK,
			wantData: marchallObj(t, BatchDetail{Batch: b4, Students: []student.Student{s4}, Teacher: (*teacher.Teacher)(nil)}),
		},
	}
	app.run(t, tests)
}
