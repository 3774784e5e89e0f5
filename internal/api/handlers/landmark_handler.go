package handlers

import (
	"fmt"
	"net/http"

	"landmark-catalog/internal/models"
	"landmark-catalog/internal/services"

	"github.com/gorilla/mux"
)

const maxLandmarkBodyBytes = 1 << 20

type LandmarkHandler struct {
	landmarkService services.LandmarkService
}

func NewLandmarkHandler(landmarkService services.LandmarkService) *LandmarkHandler {
	return &LandmarkHandler{landmarkService: landmarkService}
}

// ListLandmarks returns every stored landmark in insertion order.
func (h *LandmarkHandler) ListLandmarks(w http.ResponseWriter, r *http.Request) {
	landmarks, err := h.landmarkService.ListLandmarks(r.Context())
	if err != nil {
		RespondWithServiceError(w, r, err, MsgLandmarkNotFound)
		return
	}
	if landmarks == nil {
		landmarks = []models.Landmark{}
	}

	RespondWithJSON(w, http.StatusOK, landmarks)
}

// AddLandmark validates the body, stores the landmark with rounded
// coordinates and echoes the stored record.
func (h *LandmarkHandler) AddLandmark(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLandmarkBodyBytes)

	payload, err := models.DecodeLandmarkPayload(r.Body)
	if err != nil {
		RespondWithServiceError(w, r, err, MsgLandmarkNotFound)
		return
	}

	landmark, err := h.landmarkService.AddLandmark(r.Context(), payload.ToLandmark())
	if err != nil {
		RespondWithServiceError(w, r, err, MsgLandmarkNotFound)
		return
	}

	RespondWithJSON(w, http.StatusOK, landmark)
}

// DeleteLandmark removes the first landmark with the id from the path.
// Authorization is enforced by AdminMiddleware.
func (h *LandmarkHandler) DeleteLandmark(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.landmarkService.DeleteLandmark(r.Context(), id); err != nil {
		RespondWithServiceError(w, r, err, MsgLandmarkNotFound)
		return
	}

	RespondWithJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Landmark with id %s deleted", id),
	})
}
