package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/phrazzld/elbship/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	_, err := uuid.Parse(GetTraceID(WithTraceID(ctx, "")))
	assert.NoError(t, err)

	assert.Equal(t, "req-42", GetTraceID(WithTraceID(ctx, "req-42")))
}

func TestRespondWithErrorAndLog(t *testing.T) {
	const secretURL = "https://logs-01.loggly.com/bulk/0123456789abcdef/elb/bulk/"

	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{name: "rejected delivery", status: http.StatusBadRequest, wantLevel: "WARN"},
		{name: "server failure", status: http.StatusBadGateway, wantLevel: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, handler := testutils.NewTestLogger()
			r := httptest.NewRequest(http.MethodPost, "/sns", nil)
			r = r.WithContext(WithTraceID(r.Context(), "trace-1"))
			w := httptest.NewRecorder()

			RespondWithErrorAndLog(w, r, logger, tt.status, "Delivery failed",
				errors.New(`Post "`+secretURL+`": timeout`))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, "Delivery failed", body.Error)
			assert.Equal(t, "trace-1", body.TraceID)

			entries := handler.WithMessage("delivery rejected")
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0]["level"])
			assert.NotContains(t, entries[0]["error"], "0123456789abcdef")
		})
	}
}

func TestRespondEmpty(t *testing.T) {
	w := httptest.NewRecorder()
	RespondEmpty(w, http.StatusOK)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}
