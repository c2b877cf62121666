package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zuriwear/zuri-backend/pkg/enums"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
)

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient("test-key",
		WithHTTPClient(server.Client()),
		WithPlacesBaseURL(server.URL),
		WithRoutesBaseURL(server.URL),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewClient("   "); err == nil {
		t.Fatalf("expected error for blank api key")
	}
}

func TestAutocompleteMapsSuggestions(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/places:autocomplete" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Goog-Api-Key"); got != "test-key" {
			t.Errorf("expected api key header, got %q", got)
		}
		if r.Header.Get("X-Goog-FieldMask") == "" {
			t.Errorf("expected field mask header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"suggestions": [
				{"placePrediction": {"placeId": "place-1", "text": {"text": "Westlands, Nairobi"}}},
				{"placePrediction": {"placeId": "place-2", "text": {"text": "Westgate Mall"}}}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	suggestions, err := client.Autocomplete(context.Background(), AutocompleteRequest{
		Input:               "west",
		IncludedRegionCodes: []string{"ke"},
	})
	if err != nil {
		t.Fatalf("autocomplete: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected two suggestions, got %d", len(suggestions))
	}
	if suggestions[0].PlaceID != "place-1" || suggestions[0].Description != "Westlands, Nairobi" {
		t.Fatalf("unexpected first suggestion: %+v", suggestions[0])
	}
}

func TestAutocompleteRequiresInput(t *testing.T) {
	t.Parallel()

	client, err := NewClient("test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Autocomplete(context.Background(), AutocompleteRequest{Input: "   "})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestResolvePlaceMapsResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/places/place-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "place-1",
			"formattedAddress": "Mpaka Road, Westlands, Nairobi",
			"location": {"latitude": -1.265, "longitude": 36.803},
			"addressComponents": [
				{"longText": "Westlands", "shortText": "Westlands", "types": ["sublocality"]}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	place, err := client.ResolvePlace(context.Background(), "place-1")
	if err != nil {
		t.Fatalf("resolve place: %v", err)
	}
	if place.PlaceID != "place-1" {
		t.Fatalf("unexpected place id %q", place.PlaceID)
	}
	if place.Location.Latitude != -1.265 || place.Location.Longitude != 36.803 {
		t.Fatalf("unexpected location %+v", place.Location)
	}
	if len(place.AddressComponents) != 1 || place.AddressComponents[0].LongName != "Westlands" {
		t.Fatalf("unexpected components %+v", place.AddressComponents)
	}
}

func TestResolvePlaceSurfacesUpstreamFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.ResolvePlace(context.Background(), "place-1")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestComputeRouteParsesDuration(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/directions/v2:computeRoutes" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"routes": [{
				"distanceMeters": 5400,
				"duration": "1234s",
				"polyline": {"encodedPolyline": "abc123"},
				"viewport": {
					"low": {"latitude": -1.30, "longitude": 36.78},
					"high": {"latitude": -1.25, "longitude": 36.83}
				}
			}]
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	route, err := client.ComputeRoute(context.Background(), LatLng{Latitude: -1.284, Longitude: 36.822}, "place-1", enums.TravelModeDrive)
	if err != nil {
		t.Fatalf("compute route: %v", err)
	}
	if route.EncodedPolyline != "abc123" {
		t.Fatalf("unexpected polyline %q", route.EncodedPolyline)
	}
	if route.DistanceMeters != 5400 {
		t.Fatalf("unexpected distance %d", route.DistanceMeters)
	}
	if route.DurationSeconds != 1234 {
		t.Fatalf("unexpected duration %d", route.DurationSeconds)
	}
	if route.Viewport.High.Longitude != 36.83 {
		t.Fatalf("unexpected viewport %+v", route.Viewport)
	}
}

func TestComputeRouteNoRoutes(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"routes": []}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.ComputeRoute(context.Background(), LatLng{}, "place-1", enums.TravelModeDrive)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error for empty routes, got %v", err)
	}
}

func TestComputeRouteRejectsBadMode(t *testing.T) {
	t.Parallel()

	client, err := NewClient("test-key")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.ComputeRoute(context.Background(), LatLng{}, "place-1", enums.TravelMode("teleport"))
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad travel mode, got %v", err)
	}
}

func TestParseDurationSeconds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want int
	}{
		{"1234s", 1234},
		{"0s", 0},
		{"", 0},
		{"12.9s", 12},
		{"junk", 0},
	}
	for _, tc := range cases {
		if got := parseDurationSeconds(tc.raw); got != tc.want {
			t.Fatalf("parseDurationSeconds(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}
