package commute

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zuriwear/zuri-backend/pkg/config"
	"github.com/zuriwear/zuri-backend/pkg/db/models"
	"github.com/zuriwear/zuri-backend/pkg/enums"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
	"github.com/zuriwear/zuri-backend/pkg/maps"
	"github.com/zuriwear/zuri-backend/pkg/timeout"
	"github.com/zuriwear/zuri-backend/pkg/types"
)

// maxDestinations caps saved stops per user.
const maxDestinations = 10

// Route strokes render as a double line; the outer casing is shared and the
// inner color flips with selection.
const (
	activeStrokeColor   = "#4285F4"
	inactiveStrokeColor = "#9AA0A6"
	outerStrokeColor    = "#1A365D"
)

// AddRequest saves a new destination.
type AddRequest struct {
	PlaceID    string           `json:"placeId" validate:"required"`
	Label      string           `json:"label,omitempty"`
	TravelMode enums.TravelMode `json:"travelMode,omitempty"`
}

// UpdateRequest edits a saved destination. Nil fields keep stored values.
type UpdateRequest struct {
	PlaceID    *string           `json:"placeId,omitempty"`
	Label      *string           `json:"label,omitempty"`
	TravelMode *enums.TravelMode `json:"travelMode,omitempty"`
}

// DestinationDTO is the widget-facing shape of a saved stop.
type DestinationDTO struct {
	ID              uuid.UUID           `json:"id"`
	PlaceID         string              `json:"placeId"`
	Label           string              `json:"label"`
	Lat             float64             `json:"lat"`
	Lng             float64             `json:"lng"`
	TravelMode      enums.TravelMode    `json:"travelMode"`
	MarkerLetter    string              `json:"markerLetter"`
	EncodedPolyline string              `json:"encodedPolyline"`
	DistanceMeters  int                 `json:"distanceMeters"`
	DurationSeconds int                 `json:"durationSeconds"`
	Active          bool                `json:"active"`
	InnerStroke     string              `json:"innerStroke"`
	OuterStroke     string              `json:"outerStroke"`
	Bounds          *types.LatLngBounds `json:"bounds,omitempty"`
}

// SelectResult carries the new active destination and the viewport bounds
// the map should fit to.
type SelectResult struct {
	Destinations []DestinationDTO    `json:"destinations"`
	Bounds       *types.LatLngBounds `json:"bounds,omitempty"`
}

// router is the directions surface the service needs from pkg/maps.
type router interface {
	ResolvePlace(ctx context.Context, placeID string) (*maps.PlaceDetails, error)
	ComputeRoute(ctx context.Context, origin maps.LatLng, destinationPlaceID string, mode enums.TravelMode) (*maps.Route, error)
}

// ServiceParams groups dependencies for the commute service.
type ServiceParams struct {
	Repo   *Repository
	Router router
	Config config.MapsConfig
}

// Service manages a user's saved commute destinations.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]DestinationDTO, error)
	Add(ctx context.Context, userID uuid.UUID, req AddRequest) (*DestinationDTO, error)
	Update(ctx context.Context, userID, id uuid.UUID, req UpdateRequest) (*DestinationDTO, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Select(ctx context.Context, userID, id uuid.UUID) (*SelectResult, error)
}

type service struct {
	repo   *Repository
	router router
	cfg    config.MapsConfig
}

// NewService builds a commute service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "commute repo is required")
	}
	if params.Router == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "maps client is required")
	}
	return &service{repo: params.Repo, router: params.Router, cfg: params.Config}, nil
}

// List returns the user's destinations in saved order.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]DestinationDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	destinations, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, classifyStorageError(err)
	}
	return toDTOs(destinations), nil
}

// Add resolves the place, fetches the route from the boutique, and stores
// the destination with the next marker letter.
func (s *service) Add(ctx context.Context, userID uuid.UUID, req AddRequest) (*DestinationDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	placeID := strings.TrimSpace(req.PlaceID)
	if placeID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "place id is required")
	}
	mode := req.TravelMode
	if mode == "" {
		mode = enums.TravelModeDrive
	}
	if !mode.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid travel mode %q", mode))
	}

	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, classifyStorageError(err)
	}
	if count >= maxDestinations {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("destination limit of %d reached", maxDestinations))
	}

	duplicate, err := s.repo.ExistsPlace(ctx, userID, placeID)
	if err != nil {
		return nil, classifyStorageError(err)
	}
	if duplicate {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "this place is already saved")
	}

	place, err := s.resolvePlace(ctx, placeID)
	if err != nil {
		return nil, err
	}

	route, err := s.fetchRoute(ctx, placeID, mode)
	if err != nil {
		return nil, err
	}

	maxPos, err := s.repo.MaxPosition(ctx, userID)
	if err != nil {
		return nil, classifyStorageError(err)
	}
	position := maxPos + 1

	label := strings.TrimSpace(req.Label)
	if label == "" {
		label = place.FormattedAddress
	}

	destination := &models.CommuteDestination{
		UserID:          userID,
		PlaceID:         place.PlaceID,
		Label:           label,
		Lat:             place.Location.Latitude,
		Lng:             place.Location.Longitude,
		TravelMode:      mode,
		MarkerLetter:    markerLetter(position),
		Position:        position,
		EncodedPolyline: route.EncodedPolyline,
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
		Active:          false,
		StrokeColor:     inactiveStrokeColor,
		Bounds:          boundsFromViewport(route.Viewport),
	}

	created, err := s.repo.Create(ctx, destination)
	if err != nil {
		if pkgerrors.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "this place is already saved")
		}
		return nil, classifyStorageError(err)
	}

	dto := toDTO(*created)
	return &dto, nil
}

// Update edits label, place, or travel mode. The route is re-fetched only
// when the place or mode actually changed.
func (s *service) Update(ctx context.Context, userID, id uuid.UUID, req UpdateRequest) (*DestinationDTO, error) {
	destination, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	reroute := false

	if req.PlaceID != nil {
		newPlaceID := strings.TrimSpace(*req.PlaceID)
		if newPlaceID == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "place id cannot be empty")
		}
		if newPlaceID != destination.PlaceID {
			duplicate, err := s.repo.ExistsPlace(ctx, userID, newPlaceID)
			if err != nil {
				return nil, classifyStorageError(err)
			}
			if duplicate {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "this place is already saved")
			}
			place, err := s.resolvePlace(ctx, newPlaceID)
			if err != nil {
				return nil, err
			}
			destination.PlaceID = place.PlaceID
			destination.Lat = place.Location.Latitude
			destination.Lng = place.Location.Longitude
			if req.Label == nil {
				destination.Label = place.FormattedAddress
			}
			reroute = true
		}
	}

	if req.TravelMode != nil && *req.TravelMode != destination.TravelMode {
		if !req.TravelMode.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid travel mode %q", *req.TravelMode))
		}
		destination.TravelMode = *req.TravelMode
		reroute = true
	}

	if req.Label != nil {
		label := strings.TrimSpace(*req.Label)
		if label == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "label cannot be empty")
		}
		destination.Label = label
	}

	if reroute {
		route, err := s.fetchRoute(ctx, destination.PlaceID, destination.TravelMode)
		if err != nil {
			return nil, err
		}
		destination.EncodedPolyline = route.EncodedPolyline
		destination.DistanceMeters = route.DistanceMeters
		destination.DurationSeconds = route.DurationSeconds
		destination.Bounds = boundsFromViewport(route.Viewport)
	}

	if err := s.repo.Save(ctx, destination); err != nil {
		return nil, classifyStorageError(err)
	}

	dto := toDTO(*destination)
	return &dto, nil
}

// Delete removes the destination. Marker letters of the remaining stops are
// stable; positions are never compacted.
func (s *service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.load(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return classifyStorageError(err)
	}
	return nil
}

// Select activates one destination, reverting all others to the inactive
// stroke, and returns bounds the map can fit its viewport to.
func (s *service) Select(ctx context.Context, userID, id uuid.UUID) (*SelectResult, error) {
	destination, err := s.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeactivateAll(ctx, userID, inactiveStrokeColor); err != nil {
		return nil, classifyStorageError(err)
	}

	destination.Active = true
	destination.StrokeColor = activeStrokeColor
	if err := s.repo.Save(ctx, destination); err != nil {
		return nil, classifyStorageError(err)
	}

	destinations, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, classifyStorageError(err)
	}

	return &SelectResult{
		Destinations: toDTOs(destinations),
		Bounds:       destination.Bounds,
	}, nil
}

func (s *service) load(ctx context.Context, userID, id uuid.UUID) (*models.CommuteDestination, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destination id is required")
	}
	destination, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "destination not found")
		}
		return nil, classifyStorageError(err)
	}
	return destination, nil
}

func (s *service) resolvePlace(ctx context.Context, placeID string) (*maps.PlaceDetails, error) {
	result := timeout.Do(ctx, s.cfg.RequestTimeout, func(ctx context.Context) (*maps.PlaceDetails, error) {
		return s.router.ResolvePlace(ctx, placeID)
	})
	if result.TimedOut {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTimeout, result.Err, "place lookup timed out")
	}
	if result.Err != nil {
		return nil, result.Err
	}
	return result.Value, nil
}

func (s *service) fetchRoute(ctx context.Context, placeID string, mode enums.TravelMode) (*maps.Route, error) {
	origin := maps.LatLng{Latitude: s.cfg.OriginLat, Longitude: s.cfg.OriginLng}
	result := timeout.Do(ctx, s.cfg.RequestTimeout, func(ctx context.Context) (*maps.Route, error) {
		return s.router.ComputeRoute(ctx, origin, placeID, mode)
	})
	if result.TimedOut {
		return nil, pkgerrors.Wrap(pkgerrors.CodeTimeout, result.Err, "route lookup timed out")
	}
	if result.Err != nil {
		return nil, result.Err
	}
	return result.Value, nil
}

// markerLetter maps a zero-based position onto A..Z, wrapping after Z.
func markerLetter(position int) string {
	if position < 0 {
		position = 0
	}
	return string(rune('A' + position%26))
}

func boundsFromViewport(viewport maps.Viewport) *types.LatLngBounds {
	return &types.LatLngBounds{
		Northeast: types.LatLng{Lat: viewport.High.Latitude, Lng: viewport.High.Longitude},
		Southwest: types.LatLng{Lat: viewport.Low.Latitude, Lng: viewport.Low.Longitude},
	}
}

func toDTOs(destinations []models.CommuteDestination) []DestinationDTO {
	out := make([]DestinationDTO, 0, len(destinations))
	for _, destination := range destinations {
		out = append(out, toDTO(destination))
	}
	return out
}

func toDTO(destination models.CommuteDestination) DestinationDTO {
	return DestinationDTO{
		ID:              destination.ID,
		PlaceID:         destination.PlaceID,
		Label:           destination.Label,
		Lat:             destination.Lat,
		Lng:             destination.Lng,
		TravelMode:      destination.TravelMode,
		MarkerLetter:    destination.MarkerLetter,
		EncodedPolyline: destination.EncodedPolyline,
		DistanceMeters:  destination.DistanceMeters,
		DurationSeconds: destination.DurationSeconds,
		Active:          destination.Active,
		InnerStroke:     destination.StrokeColor,
		OuterStroke:     outerStrokeColor,
		Bounds:          destination.Bounds,
	}
}

func classifyStorageError(err error) error {
	if pkgerrors.IsSchemaMissing(err) {
		return pkgerrors.Wrap(pkgerrors.CodeSchemaMissing, err, "commute schema is missing")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "commute storage failure")
}
