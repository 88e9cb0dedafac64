package echoapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/dashboard"
	"github.com/trezcool/coachdesk/core/nav"
	"github.com/trezcool/coachdesk/core/schedule"
	reportsvc "github.com/trezcool/coachdesk/services/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type pagesApi struct {
	dashboardSvc *dashboard.Service
	metrics      *Metrics
}

func registerNavAPI(g *echo.Group) {
	g.GET("/nav", queryNav)
	g.GET("/nav/match", matchNav)
}

func registerPagesAPI(g *echo.Group, deps ServerDeps) {
	api := pagesApi{
		dashboardSvc: deps.DashboardSvc,
		metrics:      deps.Metrics,
	}

	g.GET("/dashboard", api.dashboard)
	g.GET("/fees", api.fees)
	g.GET("/schedule", api.schedule)
	g.GET("/schedule/conflicts", api.conflicts)
	g.GET("/reports/fees.xlsx", api.feesReport)
}

// Handlers

func queryNav(ctx echo.Context) error {
	if all, _ := strconv.ParseBool(ctx.QueryParam("all")); all {
		return ctx.JSON(http.StatusOK, nav.All())
	}
	return ctx.JSON(http.StatusOK, nav.Visible())
}

// NavMatch is the page a frontend path resolves to.
type NavMatch struct {
	Route nav.Route `json:"route"`
	ID    string    `json:"id,omitempty"`
}

func matchNav(ctx echo.Context) error {
	route, id, ok := nav.Match(ctx.QueryParam("path"))
	if !ok {
		return errHttpNotFound
	}
	return ctx.JSON(http.StatusOK, NavMatch{Route: route, ID: id})
}

func (api *pagesApi) dashboard(ctx echo.Context) error {
	sum, err := api.dashboardSvc.Load(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading dashboard")
	}
	return ctx.JSON(http.StatusOK, sum)
}

func (api *pagesApi) fees(ctx echo.Context) error {
	page, err := api.dashboardSvc.LoadFees(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading fees")
	}
	return ctx.JSON(http.StatusOK, page)
}

func (api *pagesApi) schedule(ctx echo.Context) error {
	day, err := dayParam(ctx)
	if err != nil {
		return err
	}
	snap, err := api.dashboardSvc.Fetch(ctx.Request().Context(), false, true, true, false)
	if err != nil {
		return errors.Wrap(err, "loading schedule")
	}

	week := schedule.BuildWeek(snap.Batches, snap.Teachers)
	api.metrics.ObserveConflicts(len(week.Conflicts))
	if day != "" {
		days := make([]schedule.DaySchedule, 0, 1)
		for _, ds := range week.Days {
			if ds.Day == day {
				days = append(days, ds)
			}
		}
		week.Days = days
		week.Conflicts = schedule.FilterConflicts(week.Conflicts, day)
	}
	return ctx.JSON(http.StatusOK, week)
}

func (api *pagesApi) conflicts(ctx echo.Context) error {
	day, err := dayParam(ctx)
	if err != nil {
		return err
	}
	snap, err := api.dashboardSvc.Fetch(ctx.Request().Context(), false, false, true, false)
	if err != nil {
		return errors.Wrap(err, "loading batches")
	}

	conflicts := schedule.DetectConflicts(snap.Batches)
	api.metrics.ObserveConflicts(len(conflicts))
	return ctx.JSON(http.StatusOK, schedule.FilterConflicts(conflicts, day))
}

func (api *pagesApi) feesReport(ctx echo.Context) error {
	snap, err := api.dashboardSvc.Fetch(ctx.Request().Context(), true, false, false, true)
	if err != nil {
		return errors.Wrap(err, "loading fees")
	}

	var buf bytes.Buffer
	if err := reportsvc.WriteFees(&buf, snap.Students, snap.Payments); err != nil {
		return errors.Wrap(err, "writing fee report")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "fees-"+core.Today()+".xlsx"))
	return ctx.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// dayParam reads the optional `day` query param as a capitalized week day name.
func dayParam(ctx echo.Context) (string, error) {
	day := core.CleanWeekday(ctx.QueryParam("day"))
	if day != "" && !core.IsWeekday(day) {
		return "", core.NewValidationError(nil, core.FieldError{Field: "day", Error: "day must be a week day"})
	}
	return day, nil
}
