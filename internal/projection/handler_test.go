package projection

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smottahedi/find-political-donors/internal/core/aggregation"
	httperr "github.com/smottahedi/find-political-donors/internal/core/errors"
	"github.com/smottahedi/find-political-donors/internal/core/storage"
	storagemocks "github.com/smottahedi/find-political-donors/internal/mocks/storage"
)

func TestService_Handlers_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		url            string
		expectedStatus int
		expectedType   string
		configure      func(repo *storagemocks.Repository)
	}{
		{
			name:           "invalid granularity returns 400",
			url:            "/v1/aggregates/date/C1?granularity=1h",
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidQuery,
			configure:      func(_ *storagemocks.Repository) {},
		},
		{
			name:           "invalid zip filter returns 400",
			url:            "/v1/aggregates/zip/C1?zip=9001",
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidQuery,
			configure:      func(_ *storagemocks.Repository) {},
		},
		{
			name:           "store error returns 500",
			url:            "/v1/aggregates/zip/C1",
			expectedStatus: http.StatusInternalServerError,
			expectedType:   httperr.HttpInternalError,
			configure: func(repo *storagemocks.Repository) {
				repo.EXPECT().
					ListByRecipient(mock.Anything, aggregation.GroupingZip, "C1").
					Return(nil, fmt.Errorf("db failure")).
					Once()
			},
		},
		{
			name:           "unknown recipient returns 200",
			url:            "/v1/aggregates/date/C404?start=01012017&end=12312017",
			expectedStatus: http.StatusOK,
			configure: func(repo *storagemocks.Repository) {
				repo.EXPECT().
					ListByRecipient(mock.Anything, aggregation.GroupingDate, "C404").
					Return([]*aggregation.Record{}, nil).
					Once()
			},
		},
		{
			name:           "missing checkpoint returns 404",
			url:            "/v1/checkpoint",
			expectedStatus: http.StatusNotFound,
			expectedType:   httperr.HttpNotFound,
			configure: func(repo *storagemocks.Repository) {
				repo.EXPECT().LatestCheckpoint(mock.Anything).Return(storage.Checkpoint{}, false, nil).Once()
			},
		},
		{
			name:           "checkpoint error returns 500",
			url:            "/v1/checkpoint",
			expectedStatus: http.StatusInternalServerError,
			expectedType:   httperr.HttpInternalError,
			configure: func(repo *storagemocks.Repository) {
				repo.EXPECT().LatestCheckpoint(mock.Anything).Return(storage.Checkpoint{}, false, fmt.Errorf("db failure")).Once()
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := storagemocks.NewRepository(t)
			tc.configure(repo)

			svc := NewService(repo)
			r := gin.New()
			svc.RegisterRoutes(r)

			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, req)

			if resp.Code != tc.expectedStatus {
				t.Logf("unexpected response body: %s", resp.Body.String())
			}
			require.Equal(t, tc.expectedStatus, resp.Code)

			if tc.expectedType != "" {
				var body httperr.ErrorResponse
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
				require.Equal(t, tc.expectedType, body.ErrorType)
			}
		})
	}
}

func TestService_HandleZipAggregates_Body(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := NewService(seededRepository(t))
	r := gin.New()
	svc.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/v1/aggregates/zip/C1?zip=90017", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	require.JSONEq(t, `{
		"recipient_id": "C1",
		"grouping": "zip",
		"values": [
			{"recipient_id": "C1", "grouping": "zip", "secondary": "90017", "median": 200, "count": 2, "total": 400, "last_sequence": 5}
		]
	}`, resp.Body.String())
}

func TestService_HandleCheckpoint_Body(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := NewService(seededRepository(t))
	r := gin.New()
	svc.RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/v1/checkpoint", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	require.JSONEq(t, fmt.Sprintf(`{"run_id": "run-1", "sequence": 7, "flushes": 1, "flushed_at": %d}`, flushedAt.UnixMilli()),
		resp.Body.String())
}
