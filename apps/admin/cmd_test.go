package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/batch"
	"github.com/trezcool/coachdesk/core/dashboard"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/schedule"
	"github.com/trezcool/coachdesk/core/student"
	"github.com/trezcool/coachdesk/core/teacher"
	reportsvc "github.com/trezcool/coachdesk/services/report"
	"github.com/trezcool/coachdesk/tests"
)

func setup(t *testing.T, terminal bool) (*commandLine, *bytes.Buffer) {
	repos := testutil.PrepareDB(t)
	dashboardSvc := dashboard.NewService(
		student.NewService(repos.Students, core.Latency{}),
		teacher.NewService(repos.Teachers, core.Latency{}),
		batch.NewService(repos.Batches, core.Latency{}),
		payment.NewService(repos.Payments, repos.Students, nil, core.Latency{}),
	)

	isTerminalFunc = func() bool { return terminal }
	t.Cleanup(func() { isTerminalFunc = func() bool { return false } })

	out := new(bytes.Buffer)
	return &commandLine{dashboardSvc: dashboardSvc, out: out}, out
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
}

func Test_commandLine_run(t *testing.T) {
	cli, _ := setup(t, false)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "conflicts: invalid day", args: []string{"conflicts", "-day", "funday"}, wantErr: errHelp},
		{name: "conflicts: unknown flag", args: []string{"conflicts", "-room", "101"}, wantErr: errHelp},
		{name: "report: empty out", args: []string{"report", "-out", ""}, wantErr: errHelp},
		{name: "conflicts", args: []string{"conflicts"}},
		{name: "conflicts on a day", args: []string{"conflicts", "-day", "monday"}},
		{name: "summary", args: []string{"summary"}},
		{name: "routes", args: []string{"routes", "-all"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_didYouMean(t *testing.T) {
	cli, out := setup(t, false)

	assert.Equal(t, errHelp, cli.run([]string{"admin", "sumary"}))
	assert.Contains(t, out.String(), `did you mean "summary"?`)

	out.Reset()
	assert.Equal(t, errHelp, cli.run([]string{"admin", "lol"}))
	assert.NotContains(t, out.String(), "did you mean")
	assert.Contains(t, out.String(), "Usage:")
}

func Test_commandLine_conflicts(t *testing.T) {
	cli, out := setup(t, false)

	require.NoError(t, cli.run([]string{"admin", "conflicts", "-day", "Thursday"}))

	var conflicts []schedule.Conflict
	require.NoError(t, json.Unmarshal(out.Bytes(), &conflicts))
	require.Len(t, conflicts, 1)
	assert.Equal(t, schedule.ConflictTeacher, conflicts[0].Type)
	assert.Equal(t, 1, conflicts[0].TeacherID)
	assert.Len(t, conflicts[0].Batches, 2)
}

func Test_commandLine_conflicts_table(t *testing.T) {
	cli, out := setup(t, true)

	require.NoError(t, cli.run([]string{"admin", "conflicts"}))
	assert.Contains(t, out.String(), "TYPE")
	assert.Contains(t, out.String(), "Room 101")
	assert.Contains(t, out.String(), "teacher 1")

	out.Reset()
	require.NoError(t, cli.run([]string{"admin", "conflicts", "-day", "sunday"}))
	assert.Equal(t, "No conflicts\n", out.String())
}

func Test_commandLine_summary(t *testing.T) {
	cli, out := setup(t, false)

	require.NoError(t, cli.run([]string{"admin", "summary"}))

	var got struct {
		Stats dashboard.Stats      `json:"stats"`
		Fees  dashboard.FeeSummary `json:"fees"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 6, got.Stats.TotalStudents)
	assert.Equal(t, 65000.0, got.Fees.TotalCollected)
	assert.Equal(t, 35000.0, got.Fees.TotalPending)
}

func Test_commandLine_report(t *testing.T) {
	cli, out := setup(t, false)
	path := filepath.Join(t.TempDir(), "fees.xlsx")

	require.NoError(t, cli.run([]string{"admin", "report", "-out", path}))
	assert.Contains(t, out.String(), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(reportsvc.PaymentsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 9)
}
