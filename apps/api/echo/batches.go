package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/coachdesk/core"
	"github.com/trezcool/coachdesk/core/batch"
	"github.com/trezcool/coachdesk/core/student"
	"github.com/trezcool/coachdesk/core/teacher"
)

type (
	batchApi struct {
		svc        batch.Service
		studentSvc student.Service
		teacherSvc teacher.Service
		validate   *validator.Validate
	}

	// BatchDetail is a batch with its enrolled students and its teacher, when known.
	BatchDetail struct {
		Batch    batch.Batch       `json:"batch"`
		Students []student.Student `json:"students"`
		Teacher  *teacher.Teacher  `json:"teacher"`
	}
)

func registerBatchAPI(g *echo.Group, deps ServerDeps) {
	api := batchApi{
		svc:        deps.BatchSvc,
		studentSvc: deps.StudentSvc,
		teacherSvc: deps.TeacherSvc,
		validate:   deps.Validate,
	}

	bg := g.Group("/batches")
	bg.GET("", api.query)
	bg.POST("", api.create)

	// detail endpoints
	dg := bg.Group("/:id", objectMiddleware(api.svc.GetByID, batch.ErrNotFound))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.PATCH("", api.update)
	dg.DELETE("", api.destroy)
	dg.PUT("/enrollment", api.updateEnrollment)
	dg.GET("/detail", api.detail)
}

// Handlers

func (api *batchApi) query(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	var batches []batch.Batch
	var err error
	teacherID, present, ok := queryID(ctx, "teacher")
	switch {
	case present && !ok:
		return ctx.JSON(http.StatusOK, []batch.Batch{})
	case present:
		batches, err = api.svc.GetByTeacher(rctx, teacherID)
	default:
		batches, err = api.svc.QueryAll(rctx)
	}
	if err != nil {
		return errors.Wrap(err, "querying batches")
	}
	batch.Sort(batches, ordering.Orderings)
	if batches == nil {
		batches = []batch.Batch{}
	}
	return ctx.JSON(http.StatusOK, batches)
}

func (api *batchApi) create(ctx echo.Context) error {
	var data batch.NewBatch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBatch")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	b, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating batch")
	}
	return ctx.JSON(http.StatusCreated, b)
}

func (api *batchApi) retrieve(ctx echo.Context) error {
	b, err := contextObject[batch.Batch](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *batchApi) update(ctx echo.Context) error {
	b, err := contextObject[batch.Batch](ctx)
	if err != nil {
		return err
	}

	var data batch.UpdateBatch
	if err := bindStrict(ctx, &data); err != nil {
		return err
	}
	if err := data.Validate(b, api.validate); err != nil {
		return err
	}

	b, err = api.svc.Update(ctx.Request().Context(), b.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating batch")
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *batchApi) updateEnrollment(ctx echo.Context) error {
	b, err := contextObject[batch.Batch](ctx)
	if err != nil {
		return err
	}

	var data enrollmentRequest
	if err := bindStrict(ctx, &data); err != nil {
		return err
	}
	if err := api.validate.Struct(data); err != nil {
		return err
	}

	b, err = api.svc.UpdateEnrollment(ctx.Request().Context(), b.ID, *data.EnrolledCount)
	if err != nil {
		return errors.Wrap(err, "updating enrollment")
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *batchApi) destroy(ctx echo.Context) error {
	b, err := contextObject[batch.Batch](ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), b.ID); err != nil {
		return errors.Wrap(err, "deleting batch")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *batchApi) detail(ctx echo.Context) error {
	b, err := contextObject[batch.Batch](ctx)
	if err != nil {
		return err
	}

	detail := BatchDetail{Batch: b}
	g, gctx := errgroup.WithContext(ctx.Request().Context())
	g.Go(func() error {
		var err error
		detail.Students, err = api.studentSvc.GetByBatch(gctx, b.ID)
		return errors.Wrap(err, "querying students")
	})
	g.Go(func() error {
		t, err := api.teacherSvc.GetByID(gctx, b.TeacherID)
		switch {
		case err == nil:
			detail.Teacher = &t
		case !core.IsNotFound(err):
			return errors.Wrap(err, "finding teacher")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if detail.Students == nil {
		detail.Students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, detail)
}
