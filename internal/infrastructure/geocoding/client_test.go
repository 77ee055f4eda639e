package geocoding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finpin-api/internal/config"
	"finpin-api/internal/domain/entity"
	apperrors "finpin-api/pkg/errors"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.GeocodingConfig{
		BaseURL: baseURL,
		APIKey:  "geo-key",
		Timeout: 2 * time.Second,
	}, nil)
}

func serve(t *testing.T, status int, body string, check func(*http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestReverseGeocodeExtractsCityAndCountry(t *testing.T) {
	body := `{"results":[{
		"formatted_address":"Times Square, Manhattan, NY 10036, USA",
		"address_components":[
			{"long_name":"Manhattan","types":["sublocality","political"]},
			{"long_name":"New York","types":["locality","political"]},
			{"long_name":"Brooklyn","types":["locality"]},
			{"long_name":"United States","types":["country","political"]}
		]
	}]}`
	srv := serve(t, http.StatusOK, body, func(r *http.Request) {
		if r.URL.Path != "/maps/api/geocode/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("latlng"); got != "40.758,-73.9855" {
			t.Errorf("unexpected latlng %s", got)
		}
		if !strings.Contains(r.URL.RawQuery, "latlng=40.758,-73.9855&") {
			t.Errorf("comma should be sent literally, raw query %s", r.URL.RawQuery)
		}
		if got := r.URL.Query().Get("key"); got != "geo-key" {
			t.Errorf("unexpected key %s", got)
		}
	})

	place, err := newTestClient(srv.URL).ReverseGeocode(context.Background(), entity.Coordinate{Latitude: 40.7580, Longitude: -73.9855})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if place.Name != "Times Square, Manhattan, NY 10036, USA" {
		t.Fatalf("unexpected name %q", place.Name)
	}
	if place.City == nil || *place.City != "New York" {
		t.Fatalf("expected first locality, got %v", place.City)
	}
	if place.Country == nil || *place.Country != "United States" {
		t.Fatalf("unexpected country %v", place.Country)
	}
}

func TestReverseGeocodeNoResults(t *testing.T) {
	for name, body := range map[string]string{
		"empty":   `{"results":[]}`,
		"missing": `{"status":"ZERO_RESULTS"}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := serve(t, http.StatusOK, body, nil)
			place, err := newTestClient(srv.URL).ReverseGeocode(context.Background(), entity.Coordinate{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if place.Name != entity.UnknownLocationName || place.City != nil || place.Country != nil {
				t.Fatalf("expected unknown place, got %+v", place)
			}
		})
	}
}

func TestReverseGeocodeMissingAddress(t *testing.T) {
	body := `{"results":[{"address_components":[{"long_name":"France","types":["country"]}]}]}`
	srv := serve(t, http.StatusOK, body, nil)

	place, err := newTestClient(srv.URL).ReverseGeocode(context.Background(), entity.Coordinate{Latitude: 48.85, Longitude: 2.35})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if place.Name != entity.UnknownLocationName {
		t.Fatalf("expected Unknown Location, got %q", place.Name)
	}
	if place.City != nil {
		t.Fatalf("expected nil city, got %v", *place.City)
	}
	if place.Country == nil || *place.Country != "France" {
		t.Fatalf("unexpected country %v", place.Country)
	}
}

func TestReverseGeocodeErrors(t *testing.T) {
	t.Run("non 2xx", func(t *testing.T) {
		srv := serve(t, http.StatusForbidden, `{"error_message":"denied"}`, nil)
		_, err := newTestClient(srv.URL).ReverseGeocode(context.Background(), entity.Coordinate{})
		if !errors.Is(err, apperrors.ErrNoResponse) {
			t.Fatalf("expected ErrNoResponse, got %v", err)
		}
	})

	t.Run("bad envelope", func(t *testing.T) {
		srv := serve(t, http.StatusOK, `not json`, nil)
		_, err := newTestClient(srv.URL).ReverseGeocode(context.Background(), entity.Coordinate{})
		if !errors.Is(err, apperrors.ErrParsing) {
			t.Fatalf("expected ErrParsing, got %v", err)
		}
	})

	t.Run("transport", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		baseURL := srv.URL
		srv.Close()
		_, err := newTestClient(baseURL).ReverseGeocode(context.Background(), entity.Coordinate{})
		if !errors.Is(err, apperrors.ErrNetwork) {
			t.Fatalf("expected ErrNetwork, got %v", err)
		}
		appErr := apperrors.AsAppError(err)
		if appErr.Err == nil {
			t.Fatalf("transport cause should be kept")
		}
		if !strings.Contains(err.Error(), "geocode request failed") || strings.Contains(err.Error(), "geo-key") {
			t.Fatalf("unexpected error text: %v", err)
		}
	})
}
