package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ItsRyS/pms-server/internal/app/models/dto"
	"github.com/ItsRyS/pms-server/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func respondWith(t *testing.T, err error) (*httptest.ResponseRecorder, *dto.ErrorResponse) {
	t.Helper()
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder, &body
}

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"expired token", apperrors.ErrTokenExpired, http.StatusUnauthorized, dto.ErrorCodeExpiredToken},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"request not found", apperrors.ErrRequestNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"document not found", apperrors.ErrDocumentNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"active request conflict", apperrors.ErrActiveRequestExists, http.StatusConflict, dto.ErrorCodeConflict},
		{"email already exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict, dto.ErrorCodeConflict},
		{"documents missing", apperrors.ErrDocumentsMissing, http.StatusPreconditionFailed, dto.ErrorCodePreconditionFailed},
		{"reject reason required", apperrors.ErrRejectReasonRequired, http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"validation", apperrors.NewValidationError("bad input"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{"dependency", apperrors.NewDependencyError(errors.New("pool closed"), "query failed"), http.StatusInternalServerError, dto.ErrorCodeDatabaseError},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder, body := respondWith(t, tt.err)

			assert.Equal(t, tt.status, recorder.Code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestHandleAPIErrorWrappedErrors(t *testing.T) {
	wrapped := &apperrors.CustomError{
		Err:     apperrors.ErrActiveRequestExists,
		Message: "students already on an active request: 11",
	}
	recorder, body := respondWith(t, wrapped)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, "students already on an active request: 11", body.Error.Message)
}

func TestHandleAPIErrorDetailsPassthrough(t *testing.T) {
	err := (&apperrors.CustomError{
		Err:     apperrors.ErrDocumentsMissing,
		Message: "not every required document has been approved",
	}).WithDetails(map[string]interface{}{"approved_types": 3, "required_types": 16})

	recorder, body := respondWith(t, err)

	assert.Equal(t, http.StatusPreconditionFailed, recorder.Code)
	details, ok := body.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 3, details["approved_types"])
	assert.EqualValues(t, 16, details["required_types"])
}

func TestHandleAPIErrorMasksInternalDetails(t *testing.T) {
	_, body := respondWith(t, errors.New("pq: connection refused"))

	assert.Equal(t, "Internal server error", body.Error.Message)
	assert.NotContains(t, body.Error.Message, "connection refused")
}
