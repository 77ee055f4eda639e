// Package geocoding 提供逆地理编码客户端
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"finpin-api/internal/config"
	"finpin-api/internal/domain/entity"
	apperrors "finpin-api/pkg/errors"
	"finpin-api/pkg/metrics"
	"finpin-api/pkg/tracer"
	"finpin-api/pkg/utils"
)

// Client Google Geocoding 逆地理编码客户端
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type geocodeResponse struct {
	Results []struct {
		FormattedAddress  *string `json:"formatted_address"`
		AddressComponents []struct {
			LongName *string  `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

// NewClient 创建客户端；httpClient 为空时按配置超时新建
func NewClient(cfg *config.GeocodingConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}
}

func (c *Client) endpoint(coord entity.Coordinate) string {
	// 逗号保持原样：latlng=<lat>,<lng>
	return fmt.Sprintf("%s/maps/api/geocode/json?latlng=%s,%s&key=%s",
		c.baseURL, formatCoord(coord.Latitude), formatCoord(coord.Longitude), url.QueryEscape(c.apiKey))
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ReverseGeocode 坐标转地点；结果为空时返回 "Unknown Location" 而不是错误
func (c *Client) ReverseGeocode(ctx context.Context, coord entity.Coordinate) (place *entity.PlaceInfo, err error) {
	ctx, span := tracer.StartClient(ctx, "geocoding.ReverseGeocode",
		attribute.Float64("geo.lat", coord.Latitude),
		attribute.Float64("geo.lng", coord.Longitude),
	)
	defer func() {
		status := "success"
		if err != nil {
			status = string(apperrors.AsAppError(err).Code)
		}
		metrics.GeocodeCallTotal.WithLabelValues(status).Inc()
		tracer.Finish(span, err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(coord), nil)
	if err != nil {
		return nil, apperrors.ErrInternalError.WithError(fmt.Errorf("failed to create geocode request: %w", err))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.ErrNetwork.WithError(fmt.Errorf("geocode request failed: %w", utils.RedactSecret(err, c.apiKey)))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ErrNetwork.WithError(fmt.Errorf("failed to read geocode response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.ErrNoResponse.WithDetail(fmt.Sprintf("geocode status=%d", resp.StatusCode))
	}

	var decoded geocodeResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, apperrors.ErrParsing.WithError(fmt.Errorf("failed to decode geocode response: %w", err))
	}

	return placeFromResponse(&decoded), nil
}

func placeFromResponse(r *geocodeResponse) *entity.PlaceInfo {
	if len(r.Results) == 0 {
		return entity.UnknownPlace()
	}
	result := r.Results[0]

	place := entity.UnknownPlace()
	if result.FormattedAddress != nil {
		place.Name = *result.FormattedAddress
	}

	for _, comp := range result.AddressComponents {
		if comp.LongName == nil {
			continue
		}
		if place.City == nil && hasType(comp.Types, "locality") {
			city := *comp.LongName
			place.City = &city
		}
		if place.Country == nil && hasType(comp.Types, "country") {
			country := *comp.LongName
			place.Country = &country
		}
	}
	return place
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
