package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/erazemk/garderoba/internal/policy"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/vision"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// engineError maps lifecycle errors to HTTP responses. Collaborator failures
// surface as 502 so clients can tell a broken vision service from a bad
// upload; an ambiguous image returns both candidates for the client to show.
func engineError(w http.ResponseWriter, err error) {
	var ambiguous *policy.AmbiguousError
	var segErr *vision.SegmentationError
	var clsErr *vision.ClassificationError

	switch {
	case errors.Is(err, wardrobe.ErrNotFound):
		jsonError(w, http.StatusNotFound, "not found")
	case errors.Is(err, wardrobe.ErrConflict):
		jsonError(w, http.StatusConflict, "identifier conflict, try again")
	case errors.Is(err, store.ErrDuplicateID), errors.Is(err, store.ErrNotPending):
		jsonError(w, http.StatusConflict, "record is not in a modifiable state")
	case errors.Is(err, policy.ErrNoPredictions):
		jsonError(w, http.StatusBadRequest, "no garment recognized")
	case errors.As(err, &ambiguous):
		jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":      "multiple garments detected, upload a photo of a single item",
			"candidates": []policy.Prediction{ambiguous.Top, ambiguous.Second},
		})
	case errors.As(err, &segErr):
		jsonError(w, http.StatusBadGateway, "segmentation service error: "+segErr.Message)
	case errors.As(err, &clsErr):
		jsonError(w, http.StatusBadGateway, "classification service error: "+clsErr.Message)
	default:
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}
