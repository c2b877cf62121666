package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/zuriwear/zuri-backend/api/responses"
	"github.com/zuriwear/zuri-backend/api/validators"
	"github.com/zuriwear/zuri-backend/internal/commute"
	pkgerrors "github.com/zuriwear/zuri-backend/pkg/errors"
	"github.com/zuriwear/zuri-backend/pkg/logger"
	"github.com/zuriwear/zuri-backend/pkg/maps"
)

// CommuteList returns the caller's saved destinations in order.
func CommuteList(svc commute.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commute service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		destinations, err := svc.List(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, destinations)
	}
}

// CommuteAdd saves a new destination with a route from the boutique.
func CommuteAdd(svc commute.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commute service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var req commute.AddRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		destination, err := svc.Add(ctx, userID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, destination)
	}
}

// CommuteUpdate edits a saved destination, re-routing when place or travel
// mode changed.
func CommuteUpdate(svc commute.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commute service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		destinationID, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "destinationId")))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid destination id"))
			return
		}

		var req commute.UpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		destination, err := svc.Update(ctx, userID, destinationID, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, destination)
	}
}

// CommuteDelete removes a saved destination.
func CommuteDelete(svc commute.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commute service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		destinationID, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "destinationId")))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid destination id"))
			return
		}

		if err := svc.Delete(ctx, userID, destinationID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

// CommuteSelect activates one destination and returns viewport bounds.
func CommuteSelect(svc commute.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "commute service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		destinationID, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, "destinationId")))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid destination id"))
			return
		}

		result, err := svc.Select(ctx, userID, destinationID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// PlacesAutocomplete proxies place suggestions for the destination picker.
func PlacesAutocomplete(client *maps.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if client == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "maps client unavailable"))
			return
		}

		input := strings.TrimSpace(r.URL.Query().Get("input"))
		if input == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "input query parameter is required"))
			return
		}

		suggestions, err := client.Autocomplete(ctx, maps.AutocompleteRequest{
			Input:               input,
			IncludedRegionCodes: []string{"ke"},
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, suggestions)
	}
}
