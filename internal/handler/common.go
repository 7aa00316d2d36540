package handler // handler package contains the echo handlers of the shop back-office

import (
	"net/http" // http provides status code constants
	"strconv"  // strconv parses path identifiers
	"time"     // default dates

	"github.com/labstack/echo/v4"    // echo defines request context types
	log "github.com/sirupsen/logrus" // structured logging

	"github.com/iliyamo/vehicle-service-management/internal/model"
)

// parseID reads the :id path parameter.
func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func badID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
}

func badBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
}

// dbError surfaces a storage failure to the operator with the driver's
// message.  Storage failures are never retried.
func dbError(c echo.Context, logger log.FieldLogger, err error) error {
	logger.WithError(err).WithField("uri", c.Request().RequestURI).Error("storage failure")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error", "message": err.Error()})
}

// confirmed reports whether the request carries ?confirm=true.
func confirmed(c echo.Context) bool { return confirmedParam(c, "confirm") }

func confirmedParam(c echo.Context, name string) bool {
	ok, _ := strconv.ParseBool(c.QueryParam(name))
	return ok
}

func today() string { return time.Now().Format(model.DateLayout) }
