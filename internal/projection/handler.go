package projection

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	httperr "github.com/smottahedi/find-political-donors/internal/core/errors"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/aggregates/zip/:recipient_id", s.HandleZipAggregates)
	r.GET("/v1/aggregates/date/:recipient_id", s.HandleDateAggregates)
	r.GET("/v1/checkpoint", s.HandleCheckpoint)
}

// HandleZipAggregates handles GET /v1/aggregates/zip/:recipient_id
// Query parameters: zip
func (s *Service) HandleZipAggregates(c *gin.Context) {
	var req ZipQueryRequest
	if !bindRequest(c, &req) {
		return
	}

	resp, err := s.ZipAggregates(c.Request.Context(), req)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleDateAggregates handles GET /v1/aggregates/date/:recipient_id
// Query parameters: start, end, granularity
func (s *Service) HandleDateAggregates(c *gin.Context) {
	var req DateQueryRequest
	if !bindRequest(c, &req) {
		return
	}

	resp, err := s.DateAggregates(c.Request.Context(), req)
	if err != nil {
		writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleCheckpoint handles GET /v1/checkpoint
func (s *Service) HandleCheckpoint(c *gin.Context) {
	view, ok, err := s.Checkpoint(c.Request.Context())
	if err != nil {
		writeQueryError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, httperr.ErrorResponse{
			ErrorType: httperr.HttpNotFound,
			Message:   "No flush checkpoint recorded",
		})
		return
	}
	c.JSON(http.StatusOK, view)
}

func bindRequest(c *gin.Context, req any) bool {
	if err := c.ShouldBindUri(req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQuery,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return false
	}
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQuery,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return false
	}
	return true
}

func writeQueryError(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidQuery) {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQuery,
			Message:   "Invalid aggregate query",
			Details:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
		ErrorType: httperr.HttpInternalError,
		Message:   "Failed to query aggregates",
		Details:   err.Error(),
	})
}
