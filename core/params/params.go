package params

import (
	"agenda-api/core/constants"
	"agenda-api/core/errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type QueryParams struct {
	PageNumber int    `json:"page_number"`
	PageSize   int    `json:"page_size"`
	Search     string `json:"search"`
}

func NewQueryParams(c echo.Context) *QueryParams {
	pageNumber, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil || pageNumber < 1 {
		pageNumber = constants.DefaultPageNumber
	}

	pageSize, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	return &QueryParams{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		Search:     strings.TrimSpace(c.QueryParam("search")),
	}
}

func (p QueryParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// CacheKey renders the parameters as a stable cache key fragment.
func (p QueryParams) CacheKey() string {
	return fmt.Sprintf("p%d:s%d:q%s", p.PageNumber, p.PageSize, strings.ToLower(p.Search))
}

// ParseID reads a UUID path parameter.
func ParseID(c echo.Context, name string) (uuid.UUID, *errors.AppError) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.NewAppError(errors.ErrInvalidInput, "invalid "+name, err)
	}
	return id, nil
}

// OptionalInt reads an integer query parameter, returning nil when it is absent.
func OptionalInt(c echo.Context, name string) (*int, *errors.AppError) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "invalid "+name, err)
	}
	return &v, nil
}
