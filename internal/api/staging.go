package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/erazemk/garderoba/internal/imaging"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

// StagingHandler handles garment extraction and staging review endpoints.
type StagingHandler struct {
	Engine *wardrobe.Engine
	Log    *zap.Logger
}

// Extract handles POST /api/wardrobe/extract. The uploaded photo is
// normalized, run through the vision pipeline and staged for review.
func (h *StagingHandler) Extract(w http.ResponseWriter, r *http.Request) {
	// Limit to 10 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	processed, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image must be JPEG, PNG, or WebP")
		return
	}

	rec, err := h.Engine.Stage(r.Context(), processed.Data)
	if err != nil {
		engineError(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, rec)
}

// Get handles GET /api/wardrobe/staging/{token}.
func (h *StagingHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Engine.GetStaged(r.Context(), r.PathValue("token"))
	if err != nil {
		engineError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, rec)
}

// Update handles PUT /api/wardrobe/staging/{token}.
func (h *StagingHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.ItemPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if patch.Empty() {
		jsonError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	rec, err := h.Engine.UpdateStaged(r.Context(), r.PathValue("token"), patch)
	if err != nil {
		engineError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, rec)
}

// Confirm handles POST /api/wardrobe/staging/{token}/confirm.
func (h *StagingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	item, err := h.Engine.Confirm(r.Context(), r.PathValue("token"))
	if err != nil {
		engineError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// Discard handles DELETE /api/wardrobe/staging/{token}.
func (h *StagingHandler) Discard(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.Discard(r.Context(), r.PathValue("token")); err != nil {
		engineError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "staged item discarded"})
}

// GetImage handles GET /api/wardrobe/staging/{token}/image.
func (h *StagingHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Engine.GetStaged(r.Context(), r.PathValue("token"))
	if err != nil {
		engineError(w, err)
		return
	}

	data, err := h.Engine.ReadImage(rec.ImagePath)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to read image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
