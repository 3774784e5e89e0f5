package api

import (
	"net/http"

	"landmark-catalog/internal/api/handlers"
	"landmark-catalog/internal/middleware"
	"landmark-catalog/internal/repository"
	"landmark-catalog/internal/services"

	"github.com/gorilla/mux"
)

type Dependencies struct {
	LandmarkRepo   repository.LandmarkRepository
	Cache          services.CacheService
	Verifier       services.CredentialVerifier
	AllowedOrigins []string
}

// SetupRoutes wires the landmark API. The returned handler applies CORS
// before routing so preflight requests never reach the router.
func SetupRoutes(deps Dependencies, landmarkService services.LandmarkService) http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.RecoveryMiddleware)

	landmarkHandler := handlers.NewLandmarkHandler(landmarkService)
	requireAdmin := middleware.AdminMiddleware(deps.Verifier)

	router.Handle("/health", handlers.NewHealthHandler(deps.LandmarkRepo, deps.Cache)).Methods("GET")

	router.HandleFunc("/landmarks", landmarkHandler.ListLandmarks).Methods("GET")
	router.HandleFunc("/landmarks", landmarkHandler.AddLandmark).Methods("POST")
	router.Handle("/landmarks/{id}", requireAdmin(http.HandlerFunc(landmarkHandler.DeleteLandmark))).Methods("DELETE")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondWithError(w, http.StatusNotFound, "Not Found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return middleware.NewCORS(deps.AllowedOrigins).Handler(router)
}
