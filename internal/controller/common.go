package controller

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"gigmarket/internal/entity"
	"gigmarket/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo"
)

const (
	defaultLimit  = 20
	defaultOffset = 0
)

var errBadId = errors.New("malformed id")

type errorResponse struct {
	Reason string `json:"reason"`
}

type paginationQuery struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=100"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

func newPaginationQuery() paginationQuery {
	return paginationQuery{Limit: defaultLimit, Offset: defaultOffset}
}

func (q paginationQuery) input() *entity.PaginationInput {
	return pageInput(q.Limit, q.Offset)
}

// echo does not bind into unexported embedded structs: inputs with more query
// fields than paging declare Limit and Offset directly.
func pageInput(limit, offset int32) *entity.PaginationInput {
	return entity.NewPaginationInput(uint64(limit), uint64(offset))
}

var kindStatus = map[service.Kind]int{
	service.KindInvalidInput:    http.StatusBadRequest,
	service.KindUnauthenticated: http.StatusUnauthorized,
	service.KindForbidden:       http.StatusForbidden,
	service.KindNotFound:        http.StatusNotFound,
	service.KindConflict:        http.StatusConflict,
	service.KindInvalidState:    http.StatusConflict,
	service.KindLimitExceeded:   http.StatusConflict,
}

// respondError writes the service error as an errorResponse. Internal errors
// are hidden from the client and returned so the request logger records them.
func respondError(c echo.Context, err error) error {
	status, ok := kindStatus[service.KindOf(err)]
	if !ok {
		if e := c.JSON(http.StatusInternalServerError, errorResponse{"Internal error"}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(status, errorResponse{err.Error()}); e != nil {
		return e
	}

	return nil
}

func badRequest(c echo.Context, reason string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{reason})
}

// bind decodes the request into input and validates it. On failure the 400
// response is already written and ok is false.
func bind(c echo.Context, v *validator.Validate, input any) (ok bool, err error) {
	if err := c.Bind(input); err != nil {
		return false, badRequest(c, "Input data is not formed correctly")
	}

	return validate(c, v, input)
}

func validate(c echo.Context, v *validator.Validate, input any) (bool, error) {
	if err := v.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return false, badRequest(c, getAllErrorMessages(verrs))
		}

		return false, badRequest(c, "Incorrect input value passed")
	}

	return true, nil
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", errBadId, name)
	}

	return id, nil
}

func getAllErrorMessages(errs validator.ValidationErrors) string {
	var builder strings.Builder
	for _, fe := range errs {
		message := fmt.Sprintf("'%s': %s\n", fe.Field(), getMessage(fe))
		builder.WriteString(message)
	}

	return builder.String()
}

func getMessage(fe validator.FieldError) string {
	switch fe.Kind() {
	case reflect.String:
		return getMessageForString(fe)
	case reflect.Int, reflect.Int32, reflect.Int64:
		return getMessageForInt(fe)
	}

	return "incorrect value passed"
}

func getMessageForInt(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	}

	return "incorrect value passed"
}

func getMessageForString(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "length should be less or equal than " + fe.Param()
	case "gte", "min":
		return "length should be greater or equal than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	case "uuid":
		return "should be a uuid"
	}

	return "incorrect value passed"
}
