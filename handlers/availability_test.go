package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"padelwatch/models"
	"padelwatch/services/query"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueryService struct {
	lastRequest query.Request
	result      *query.Result
}

func (f *fakeQueryService) CheckAvailability(ctx context.Context, req query.Request) (*query.Result, error) {
	f.lastRequest = req
	return f.result, nil
}

func newAvailabilityRouter(svc query.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAvailabilityHandler(svc)
	r := gin.New()
	r.GET("/api/availability", h.CheckAvailabilityHandler)
	return r
}

func TestCheckAvailabilityPassesCriteria(t *testing.T) {
	svc := &fakeQueryService{result: &query.Result{
		Date:  "2024-06-01",
		Slots: []models.Slot{{CourtID: 20, StartsAt: "20:00", Duration: 90}},
	}}
	r := newAvailabilityRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/availability?date=2024-06-01&min_time=19:30&min_duration=60", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, query.Request{Date: "2024-06-01", MinTime: "19:30", MinDuration: 60}, svc.lastRequest)

	var res query.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(t, res.Slots, 1)
}

func TestCheckAvailabilityRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"bad date", "?date=junk"},
		{"bad time", "?min_time=8pm"},
		{"bad duration", "?min_duration=soon"},
		{"zero duration", "?min_duration=0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newAvailabilityRouter(&fakeQueryService{})

			req := httptest.NewRequest(http.MethodGet, "/api/availability"+tc.query, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
