package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/presensi-sales/backend/internal/dto"
)

type ReverseGeocoder interface {
	// Reverse returns the display name for a coordinate. An empty string means
	// the service answered but knows no address.
	Reverse(ctx context.Context, latitude, longitude float64) (string, error)
}

type nominatim struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

type nominatimResponse struct {
	DisplayName string `json:"display_name"`
}

func NewNominatimGeocoder(baseURL, userAgent string, httpClient *http.Client) ReverseGeocoder {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &nominatim{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
	}
}

func (n *nominatim) Reverse(ctx context.Context, latitude, longitude float64) (string, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/reverse?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
	}
	req.Header.Set("Accept", "application/json")
	if n.userAgent != "" {
		req.Header.Set("User-Agent", n.userAgent)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: reverse geocode: %v", dto.ErrRemoteFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: reverse geocode status %d", dto.ErrRemoteFailure, resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decode reverse geocode: %v", dto.ErrRemoteFailure, err)
	}

	return body.DisplayName, nil
}
