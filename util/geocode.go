package util

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
)

const defaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

var (
	nominatimBaseURL = defaultNominatimBaseURL
	geocodeClient    = &http.Client{Timeout: 5 * time.Second}
	// Reverse lookups for the same coordinates repeat often (retries,
	// double submits); cache results for an hour.
	geocodeCache = cache.New(1*time.Hour, 10*time.Minute)
)

// SetNominatimBaseURL overrides the reverse-geocoding endpoint. Tests point
// this at an httptest server; pass an empty string to restore the default.
func SetNominatimBaseURL(baseURL string) {
	if baseURL == "" {
		nominatimBaseURL = defaultNominatimBaseURL
		return
	}
	nominatimBaseURL = baseURL
}

type nominatimAddress struct {
	HouseNumber string `json:"house_number"`
	Road        string `json:"road"`
	Suburb      string `json:"suburb"`
	City        string `json:"city"`
	State       string `json:"state"`
	Postcode    string `json:"postcode"`
}

type nominatimResponse struct {
	Address *nominatimAddress `json:"address"`
}

// formatAddress joins the non-empty address components in display order.
func formatAddress(addr *nominatimAddress) string {
	parts := []string{addr.HouseNumber, addr.Road, addr.Suburb, addr.City, addr.State, addr.Postcode}
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}

// ReverseGeocode resolves a coordinate pair into a formatted street address
// using the Nominatim reverse endpoint. Results are cached; callers treat an
// error as "no resolved address" and fall back to whatever address the user
// typed in.
func ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, error) {
	cacheKey := fmt.Sprintf("%.5f,%.5f", latitude, longitude)
	if v, ok := geocodeCache.Get(cacheKey); ok {
		if s, ok := v.(string); ok {
			return s, nil
		}
	}

	url := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=json", nominatimBaseURL, latitude, longitude)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("User-Agent", "QuickCare-Emergency-Service")

	resp, err := geocodeClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode failed, status: %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("invalid reverse geocode response: %w", err)
	}
	if body.Address == nil {
		return "", fmt.Errorf("reverse geocode response missing address")
	}

	formatted := formatAddress(body.Address)
	geocodeCache.Set(cacheKey, formatted, cache.DefaultExpiration)
	return formatted, nil
}
