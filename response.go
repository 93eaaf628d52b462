package railrank

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/losangeles1156/lutagu-mvp-sub001/formatter"
	"github.com/losangeles1156/lutagu-mvp-sub001/router"
	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
)

// Error codes returned in error payloads.
const (
	CodeBadRequest      = "bad_request"
	CodeUnknownSnapshot = "unknown_snapshot"
	CodeTimeout         = "timeout"
	CodeInternal        = "internal"
)

// classifyError maps an error to an HTTP status and error code.
func classifyError(err error) (int, string) {
	var qe *QueryError
	var se *topology.StationIDError
	switch {
	case errors.As(err, &qe), errors.As(err, &se),
		errors.Is(err, router.ErrNoOrigins), errors.Is(err, router.ErrNoDestinations):
		return http.StatusBadRequest, CodeBadRequest
	case errors.Is(err, ErrUnknownSnapshot):
		return http.StatusNotFound, CodeUnknownSnapshot
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, CodeTimeout
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func contentType(format string) string {
	if format == formatter.FormatXML {
		return "application/xml; charset=utf-8"
	}
	return "application/json; charset=utf-8"
}

func writeError(c *gin.Context, err error, format string) {
	status, code := classifyError(err)
	c.Data(status, contentType(format), formatter.BuildErrorPayload(code, err.Error(), format))
}

func writeBody(c *gin.Context, buf []byte, format string) {
	c.Data(http.StatusOK, contentType(format), buf)
}
