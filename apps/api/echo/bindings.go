package echoapi

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"reflect"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/coachdesk/core"
)

var (
	orderingParam = "ordering"

	errUnknownField = "unknown field"

	jsonFieldsCache sync.Map // {reflect.Type: map[string]bool}
)

type Ordering struct {
	Orderings []core.Ordering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ord.Orderings = append(ord.Orderings, core.Ordering{Field: field, Ascending: !descending})
	}
}

// bindStrict decodes the JSON body of the request into dst, a pointer to struct.
// Keys that match no json tag of dst (nor one of extraKeys) are rejected with a core.ValidationError.
func bindStrict(ctx echo.Context, dst interface{}, extraKeys ...string) error {
	body, err := ioutil.ReadAll(ctx.Request().Body)
	if err != nil {
		return errors.Wrap(err, "reading request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return core.NewValidationError(errors.New("request body must be a JSON object"))
	}
	known := jsonFields(reflect.TypeOf(dst))
	var unknown []core.FieldError
	for key := range raw {
		if !known[key] && !contains(extraKeys, key) {
			unknown = append(unknown, core.FieldError{Field: key, Error: errUnknownField})
		}
	}
	if len(unknown) > 0 {
		return core.NewValidationError(nil, unknown...)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return core.NewValidationError(errors.Wrap(err, "invalid request body"))
	}
	return nil
}

func jsonFields(typ reflect.Type) map[string]bool {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if cached, ok := jsonFieldsCache.Load(typ); ok {
		return cached.(map[string]bool)
	}

	fields := make(map[string]bool, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		fields[name] = true
	}
	jsonFieldsCache.Store(typ, fields)
	return fields
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// queryID parses the id query param `name`. ok is false when absent or unparsable.
func queryID(ctx echo.Context, name string) (id int, present, ok bool) {
	val := ctx.QueryParam(name)
	if val == "" {
		return 0, false, false
	}
	id, ok = core.ParseID(val)
	return id, true, ok
}

type enrollmentRequest struct {
	EnrolledCount *int `json:"enrolledCount" validate:"required,gte=0"`
}
