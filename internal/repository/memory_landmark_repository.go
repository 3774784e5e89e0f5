package repository

import (
	"context"
	"sync"

	"landmark-catalog/internal/models"
	apperrors "landmark-catalog/internal/pkg/errors"
)

// memoryLandmarkRepository keeps landmarks in a slice for the lifetime of
// the process.
type memoryLandmarkRepository struct {
	mu        sync.RWMutex
	landmarks []models.Landmark
}

func NewMemoryLandmarkRepository() LandmarkRepository {
	return &memoryLandmarkRepository{landmarks: make([]models.Landmark, 0)}
}

func (r *memoryLandmarkRepository) Kind() string {
	return "memory"
}

// List returns a copy so callers never alias the stored slice.
func (r *memoryLandmarkRepository) List(ctx context.Context) ([]models.Landmark, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	landmarks := make([]models.Landmark, len(r.landmarks))
	copy(landmarks, r.landmarks)
	return landmarks, nil
}

func (r *memoryLandmarkRepository) Append(ctx context.Context, landmark models.Landmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.landmarks = append(r.landmarks, landmark)
	return nil
}

func (r *memoryLandmarkRepository) DeleteFirst(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, landmark := range r.landmarks {
		if landmark.ID == id {
			r.landmarks = append(r.landmarks[:i], r.landmarks[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *memoryLandmarkRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.landmarks)), nil
}
