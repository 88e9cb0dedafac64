package echoapi

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/coachdesk/core"
)

const objectKey = "object"

var errObjNotFoundInCtx = errors.New("object not found in echo.Context")

// objectMiddleware loads the record identified by the `:id` path param and stores it in the context.
// Unparsable ids answer notFound, as the record cannot exist.
func objectMiddleware[T any](get func(ctx context.Context, id int) (T, error), notFound error) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, ok := core.ParseID(ctx.Param("id"))
			if !ok {
				return notFound
			}
			obj, err := get(ctx.Request().Context(), id)
			if err != nil {
				return errors.Wrap(err, "finding object by ID")
			}
			ctx.Set(objectKey, obj)
			return next(ctx)
		}
	}
}

func contextObject[T any](ctx echo.Context) (T, error) {
	obj, ok := ctx.Get(objectKey).(T)
	if !ok {
		return obj, errors.Wrap(errObjNotFoundInCtx, "retrieving object from context")
	}
	return obj, nil
}
