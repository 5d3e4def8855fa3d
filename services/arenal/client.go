package arenal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"padelwatch/config"
	"padelwatch/models"
)

// Client fetches raw availability from the Arenal booking API.
type Client interface {
	// FetchSlots returns the raw timeslot records for one date across all
	// configured clubs.
	FetchSlots(ctx context.Context, date string) ([]models.RawSlot, error)
}

// HTTPClient is the production implementation of Client.
type HTTPClient struct {
	http    *http.Client
	baseURL string
	clubIDs string
	sport   string
}

// NewHTTPClient builds a Client from the application configuration.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{
		http:    &http.Client{Timeout: 15 * time.Second},
		baseURL: config.AppConfig.ArenalBaseURL,
		clubIDs: config.AppConfig.ArenalClubIDs,
		sport:   config.AppConfig.ArenalSport,
	}
}

// bookableClubsResponse mirrors the API envelope: one entry per club, each
// carrying its own timeslot list.
type bookableClubsResponse struct {
	Data []struct {
		Timeslots []models.RawSlot `json:"timeslots"`
	} `json:"data"`
}

// FetchSlots queries the bookable-clubs endpoint and concatenates the
// timeslots of every club in the response.
func (c *HTTPClient) FetchSlots(ctx context.Context, date string) ([]models.RawSlot, error) {
	endpoint := fmt.Sprintf("%s/api/bookable-clubs?date=%s&ids=%s&sport=%s",
		c.baseURL, url.QueryEscape(date), url.QueryEscape(c.clubIDs), url.QueryEscape(c.sport))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", date, err)
	}
	setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots for %s: %w", date, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching slots for %s", resp.StatusCode, date)
	}

	var body bookableClubsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode slots response for %s: %w", date, err)
	}

	var slots []models.RawSlot
	for _, club := range body.Data {
		slots = append(slots, club.Timeslots...)
	}
	return slots, nil
}

// setHeaders applies the browser-like header set the booking API expects.
func setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3")
	req.Header.Set("Referer", "https://app.arenal.be/club/3")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("X-Api-Version", "1.2.0")
	req.Header.Set("X-Timezone", "Europe/Brussels")
}
