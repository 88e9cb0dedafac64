package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/coachdesk/core/dashboard"
	"github.com/trezcool/coachdesk/core/teacher"
)

// legacySubjectKey is the singular subject still accepted in teacher bodies.
const legacySubjectKey = "subject"

type teacherApi struct {
	svc          teacher.Service
	dashboardSvc *dashboard.Service
	validate     *validator.Validate
}

func registerTeacherAPI(g *echo.Group, deps ServerDeps) {
	api := teacherApi{
		svc:          deps.TeacherSvc,
		dashboardSvc: deps.DashboardSvc,
		validate:     deps.Validate,
	}

	tg := g.Group("/teachers")
	tg.GET("", api.query)
	tg.POST("", api.create)
	tg.GET("/stats", api.stats)

	// detail endpoints
	dg := tg.Group("/:id", objectMiddleware(api.svc.GetByID, teacher.ErrNotFound))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.PATCH("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *teacherApi) query(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	var teachers []teacher.Teacher
	var err error
	if subject := ctx.QueryParam("subject"); subject != "" {
		teachers, err = api.svc.GetBySubject(rctx, subject)
	} else {
		teachers, err = api.svc.QueryAll(rctx)
	}
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	teacher.Sort(teachers, ordering.Orderings)
	if teachers == nil {
		teachers = []teacher.Teacher{}
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *teacherApi) create(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	t, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *teacherApi) stats(ctx echo.Context) error {
	stats, err := api.dashboardSvc.LoadTeacherStats(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading teacher stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	t, err := contextObject[teacher.Teacher](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teacherApi) update(ctx echo.Context) error {
	t, err := contextObject[teacher.Teacher](ctx)
	if err != nil {
		return err
	}

	var data teacher.UpdateTeacher
	if err := bindStrict(ctx, &data, legacySubjectKey); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	t, err = api.svc.Update(ctx.Request().Context(), t.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teacherApi) destroy(ctx echo.Context) error {
	t, err := contextObject[teacher.Teacher](ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), t.ID); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}
