package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"

	"github.com/fotiotech/novaorizon-seller-sub000/internal/core/api"
)

// ErrorResponse is the error envelope of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var statusByCode = map[codes.Code]struct {
	status int
	code   string
}{
	codes.NotFound:           {http.StatusNotFound, "not_found"},
	codes.InvalidArgument:    {http.StatusBadRequest, "invalid_argument"},
	codes.AlreadyExists:      {http.StatusConflict, "already_exists"},
	codes.FailedPrecondition: {http.StatusConflict, "failed_precondition"},
	codes.DeadlineExceeded:   {http.StatusGatewayTimeout, "deadline_exceeded"},
	codes.Canceled:           {499, "canceled"},
}

// writeError maps err through the same classification the gRPC surface uses.
func (h *Handler) writeError(c *gin.Context, err error) {
	if m, ok := statusByCode[api.Code(err)]; ok {
		c.JSON(m.status, ErrorResponse{Code: m.code, Message: err.Error()})
		return
	}
	h.logger.Error("catalog store failure",
		zap.String("route", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{Code: "unavailable", Message: "catalog store unavailable"})
}

// badRequest reports a malformed body or parameter.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Code: "invalid_argument", Message: err.Error()})
}
