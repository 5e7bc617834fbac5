// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package api_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jogakzip/api/internal/api"
)

func newHealthHandlers(t *testing.T, databaseErr, cacheErr error) (liveness, readiness http.HandlerFunc) {
	t.Helper()
	return api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error { return databaseErr },
		CheckCache:    func() error { return cacheErr },
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLiveness_AlwaysOK(t *testing.T) {
	liveness, _ := newHealthHandlers(t, errors.New("down"), errors.New("down"))

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"ok"`)
}

func TestReadiness_AllHealthy(t *testing.T) {
	_, readiness := newHealthHandlers(t, nil, nil)

	recorder := httptest.NewRecorder()
	readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"ready"`)
}

func TestReadiness_DegradedDependency_ServiceUnavailable(t *testing.T) {
	tests := []struct {
		name        string
		databaseErr error
		cacheErr    error
	}{
		{"postgres_down", errors.New("connection refused"), nil},
		{"redis_down", nil, errors.New("connection refused")},
		{"both_down", errors.New("connection refused"), errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := newHealthHandlers(t, tt.databaseErr, tt.cacheErr)

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
			assert.Contains(t, recorder.Body.String(), `"degraded"`)
		})
	}
}
