package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trezcool/coachdesk/core/batch"
	"github.com/trezcool/coachdesk/core/payment"
	"github.com/trezcool/coachdesk/core/student"
)

type (
	studentApi struct {
		svc        student.Service
		batchSvc   batch.Service
		paymentSvc payment.Service
		validate   *validator.Validate
	}

	// StudentDetail is a student with the batches they attend and the payments they made.
	StudentDetail struct {
		Student  student.Student   `json:"student"`
		Batches  []batch.Batch     `json:"batches"`
		Payments []payment.Payment `json:"payments"`
	}
)

func registerStudentAPI(g *echo.Group, deps ServerDeps) {
	api := studentApi{
		svc:        deps.StudentSvc,
		batchSvc:   deps.BatchSvc,
		paymentSvc: deps.PaymentSvc,
		validate:   deps.Validate,
	}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)

	// detail endpoints
	dg := sg.Group("/:id", objectMiddleware(api.svc.GetByID, student.ErrNotFound))
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.PATCH("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/detail", api.detail)
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	var students []student.Student
	var err error
	batchID, present, ok := queryID(ctx, "batch")
	switch {
	case present && !ok:
		return ctx.JSON(http.StatusOK, []student.Student{})
	case present:
		students, err = api.svc.GetByBatch(rctx, batchID)
	case ctx.QueryParam("search") != "":
		students, err = api.svc.Search(rctx, ctx.QueryParam("search"))
	default:
		students, err = api.svc.QueryAll(rctx)
	}
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	student.Sort(students, ordering.Orderings)
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	rctx := ctx.Request().Context()
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	// fees default to the sum of the selected batches' fees
	if data.TotalFees == 0 && len(data.BatchIDs) > 0 {
		batches, err := api.batchSvc.QueryAll(rctx)
		if err != nil {
			return errors.Wrap(err, "querying batches")
		}
		data.TotalFees = batch.TotalFees(batches, data.BatchIDs)
	}

	s, err := api.svc.Create(rctx, data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	if len(s.BatchIDs) > 0 {
		if err := api.syncEnrollment(rctx); err != nil {
			return err
		}
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	s, err := contextObject[student.Student](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) update(ctx echo.Context) error {
	s, err := contextObject[student.Student](ctx)
	if err != nil {
		return err
	}

	var data student.UpdateStudent
	if err := bindStrict(ctx, &data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rctx := ctx.Request().Context()
	s, err = api.svc.Update(rctx, s.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	if data.BatchIDs != nil {
		if err := api.syncEnrollment(rctx); err != nil {
			return err
		}
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	s, err := contextObject[student.Student](ctx)
	if err != nil {
		return err
	}

	rctx := ctx.Request().Context()
	if err := api.svc.Delete(rctx, s.ID); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	if len(s.BatchIDs) > 0 {
		if err := api.syncEnrollment(rctx); err != nil {
			return err
		}
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) detail(ctx echo.Context) error {
	s, err := contextObject[student.Student](ctx)
	if err != nil {
		return err
	}

	var batches []batch.Batch
	var payments []payment.Payment
	g, gctx := errgroup.WithContext(ctx.Request().Context())
	g.Go(func() error {
		all, err := api.batchSvc.QueryAll(gctx)
		if err != nil {
			return errors.Wrap(err, "querying batches")
		}
		batches = make([]batch.Batch, 0, len(s.BatchIDs))
		for _, b := range all {
			if s.InBatch(b.ID) {
				batches = append(batches, b)
			}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		payments, err = api.paymentSvc.GetByStudent(gctx, s.ID)
		return errors.Wrap(err, "querying payments")
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if payments == nil {
		payments = []payment.Payment{}
	}
	return ctx.JSON(http.StatusOK, StudentDetail{Student: s, Batches: batches, Payments: payments})
}

// syncEnrollment recomputes the enrolled count of every batch from the students' memberships.
func (api *studentApi) syncEnrollment(ctx context.Context) error {
	students, err := api.svc.QueryAll(ctx)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return errors.Wrap(api.batchSvc.SyncEnrollment(ctx, students), "syncing enrollment")
}
