package handler // handler package contains the echo handlers of the shop back-office

import (
	"bytes"    // exports are buffered before they are sent
	"context"  // repository calls take a context
	"errors"   // errors.Is on repository sentinels
	"fmt"      // messages and headers
	"net/http" // status codes
	"strings"  // query trimming and format matching

	"github.com/labstack/echo/v4"    // echo request context
	log "github.com/sirupsen/logrus" // structured logging

	"github.com/iliyamo/vehicle-service-management/internal/export"     // spreadsheet and csv writers
	"github.com/iliyamo/vehicle-service-management/internal/repository" // ErrNotFound
	"github.com/iliyamo/vehicle-service-management/internal/view"       // per-table display state
)

// Resource is the route set every entity table offers.
type Resource interface {
	List(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
	Export(c echo.Context) error
}

// entityRepo is the data access every entity table provides.
type entityRepo[T any] interface {
	view.Source[T]
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, row *T) error
	Update(ctx context.Context, row *T) error
	Delete(ctx context.Context, id int64) error
}

// resource serves one entity table.  F is the form decoded from request
// bodies; toModel turns it into a row or rejects it with a message.
type resource[T any, F any] struct {
	name     string // singular, used in logs and response keys
	repo     entityRepo[T]
	view     *view.View[T]
	toModel  func(F) (T, error)
	setID    func(*T, int64)
	onCreate func(*T) // optional defaults applied to new rows only
	table    func([]T) export.Table
	log      log.FieldLogger
}

// formError is a validation failure reported as 400.
type formError struct{ msg string }

func (e formError) Error() string { return e.msg }

func invalidField(field string) error { return formError{msg: fmt.Sprintf("invalid %s", field)} }

// List handles GET /v1/<entity>?q= and makes q the view's filter.
func (r *resource[T, F]) List(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	rows, err := r.view.Load(c.Request().Context(), q)
	if err != nil {
		return dbError(c, r.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"filter": q, "rows": rows})
}

func (r *resource[T, F]) bind(c echo.Context) (T, error) {
	var (
		form F
		zero T
	)
	if err := c.Bind(&form); err != nil {
		return zero, formError{msg: "invalid request body"}
	}
	return r.toModel(form)
}

// Create handles POST /v1/<entity>.
func (r *resource[T, F]) Create(c echo.Context) error {
	row, err := r.bind(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if r.onCreate != nil {
		r.onCreate(&row)
	}
	if err := r.repo.Create(c.Request().Context(), &row); err != nil {
		return dbError(c, r.log, err)
	}
	r.log.WithField("entity", r.name).Info("created")
	return r.refreshed(c, http.StatusCreated, echo.Map{r.name: row})
}

// Update handles PUT /v1/<entity>/:id.  Every column is overwritten.
func (r *resource[T, F]) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	row, err := r.bind(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx := c.Request().Context()
	if _, err := r.repo.Get(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": r.name + " not found"})
		}
		return dbError(c, r.log, err)
	}
	r.setID(&row, id)
	if err := r.repo.Update(ctx, &row); err != nil {
		return dbError(c, r.log, err)
	}
	r.log.WithFields(log.Fields{"entity": r.name, "id": id}).Info("updated")
	return r.refreshed(c, http.StatusOK, echo.Map{r.name: row})
}

// Delete handles DELETE /v1/<entity>/:id?confirm=true.  The row is not
// looked up first: deleting a missing id succeeds and changes nothing.
func (r *resource[T, F]) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badID(c)
	}
	if !confirmed(c) {
		return c.JSON(http.StatusPreconditionRequired, echo.Map{
			"error":   "confirmation_required",
			"message": fmt.Sprintf("deleting %s %d cannot be undone; repeat with ?confirm=true", r.name, id),
		})
	}
	if err := r.repo.Delete(c.Request().Context(), id); err != nil {
		return dbError(c, r.log, err)
	}
	r.log.WithFields(log.Fields{"entity": r.name, "id": id}).Info("deleted")
	return r.refreshed(c, http.StatusOK, echo.Map{"deleted": id})
}

// Export handles GET /v1/<entity>/export?format=xlsx|csv and writes the
// rows matching q, or the view's current filter when q is absent.
func (r *resource[T, F]) Export(c echo.Context) error {
	filter := r.view.Filter()
	if c.QueryParams().Has("q") {
		filter = strings.TrimSpace(c.QueryParam("q"))
	}
	rows, err := r.repo.List(c.Request().Context(), filter)
	if err != nil {
		return dbError(c, r.log, err)
	}
	return writeTable(c, r.table(rows), r.view.Name())
}

// refreshed re-lists the view with its current filter and adds the rows to
// body.  A failed re-list after a successful write is reported alongside
// the result instead of hiding it.
func (r *resource[T, F]) refreshed(c echo.Context, status int, body echo.Map) error {
	rows, err := r.view.Refresh(c.Request().Context())
	if err != nil {
		r.log.WithError(err).WithField("entity", r.name).Warn("refresh failed")
		body["refresh_error"] = err.Error()
		return c.JSON(status, body)
	}
	body["rows"] = rows
	return c.JSON(status, body)
}

// writeTable renders t fully before answering so that a failed export
// still gets a proper error status.
func writeTable(c echo.Context, t export.Table, name string) error {
	var (
		buf   bytes.Buffer
		ctype = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		file  = name + ".xlsx"
		err   error
	)
	if strings.EqualFold(c.QueryParam("format"), "csv") {
		ctype, file = "text/csv", name+".csv"
		err = export.WriteCSV(&buf, t)
	} else {
		err = export.WriteXLSX(&buf, t)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export_failed", "message": err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file))
	return c.Blob(http.StatusOK, ctype, buf.Bytes())
}
