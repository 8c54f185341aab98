package processor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"terrawatch/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dubai = models.Zone{Name: "Dubai", Lat: 25.2048, Lon: 55.2708, Zoom: 12}

func TestClient_Generate(t *testing.T) {
	want := models.AnalysisReport{
		AreaHa:        3.5,
		ConfidencePct: 81,
		CO2Kt:         12,
		Coverage:      []models.CoveragePoint{{Year: 2022, Pct: 90}, {Year: 2023, Pct: 88}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/reports", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got reportReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, reportReq{Zone: "Dubai", Lat: 25.2048, Lon: 55.2708, Zoom: 12, Start: "2020-01-01", End: "2024-01-01"}, got)

		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/", nil)
	require.NoError(t, err)
	assert.Equal(t, "processor", c.Name())

	got, err := c.Generate(context.Background(), dubai, models.DefaultPeriod())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestClient_Generate_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, srv.Client())
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), dubai, models.DefaultPeriod())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestClient_Generate_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, nil)
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), dubai, models.DefaultPeriod())
	assert.ErrorContains(t, err, "decode processor resp")
}

func TestNewClient_EmptyURL(t *testing.T) {
	_, err := NewClient("  ", nil)
	assert.Error(t, err)
}

func TestClient_Generate_TruncatedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "512")
		_, _ = w.Write([]byte(`{"areaHa":15.2`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, nil)
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), dubai, models.DefaultPeriod())
	assert.ErrorContains(t, err, "read processor resp")
}
