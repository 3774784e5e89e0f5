package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"landmark-catalog/internal/logger"
	"landmark-catalog/internal/models"
	"landmark-catalog/internal/repository"

	"github.com/sirupsen/logrus"
)

// Cached lists are keyed by a generation counter that every write bumps.
// A List that read the repository before a write stores its snapshot under
// the old generation, where no later reader looks.
const (
	landmarkGenerationKey = "landmarks:generation"
	landmarkListKeyPrefix = "landmarks:list:"
	landmarkListPattern   = landmarkListKeyPrefix + "*"
	defaultLandmarkTTL    = 15 * time.Minute
)

func landmarkListKey(generation int64) string {
	return landmarkListKeyPrefix + strconv.FormatInt(generation, 10)
}

type LandmarkService interface {
	ListLandmarks(ctx context.Context) ([]models.Landmark, error)
	AddLandmark(ctx context.Context, landmark models.Landmark) (models.Landmark, error)
	DeleteLandmark(ctx context.Context, id string) error
}

type landmarkService struct {
	landmarkRepo repository.LandmarkRepository
	cache        CacheService
	cacheTTL     time.Duration
}

// NewLandmarkService builds the service. cache may be nil, in which case
// every List goes to the repository.
func NewLandmarkService(landmarkRepo repository.LandmarkRepository, cache CacheService, cacheTTL time.Duration) LandmarkService {
	if cacheTTL <= 0 {
		cacheTTL = defaultLandmarkTTL
	}
	return &landmarkService{
		landmarkRepo: landmarkRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
	}
}

func (s *landmarkService) ListLandmarks(ctx context.Context) ([]models.Landmark, error) {
	if s.cache == nil {
		return s.landmarkRepo.List(ctx)
	}

	generation, err := s.generation(ctx)
	if err != nil {
		s.logCacheError(ctx, "generation", err)
		return s.landmarkRepo.List(ctx)
	}

	key := landmarkListKey(generation)
	if landmarks, ok := s.cachedList(ctx, key); ok {
		return landmarks, nil
	}

	landmarks, err := s.landmarkRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, landmarks, s.cacheTTL); err != nil {
		s.logCacheError(ctx, "set", err)
	}
	return landmarks, nil
}

// AddLandmark rounds the coordinates to 6 decimal places and appends the
// landmark. Ids are not checked for uniqueness.
func (s *landmarkService) AddLandmark(ctx context.Context, landmark models.Landmark) (models.Landmark, error) {
	landmark.Coordinates = landmark.Coordinates.Rounded()

	if err := s.landmarkRepo.Append(ctx, landmark); err != nil {
		return models.Landmark{}, err
	}
	s.invalidate(ctx)

	return landmark, nil
}

func (s *landmarkService) DeleteLandmark(ctx context.Context, id string) error {
	if err := s.landmarkRepo.DeleteFirst(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)

	fields := logrus.Fields{"landmark_id": id}
	if requestID, ok := RequestIDFromContext(ctx); ok {
		fields["request_id"] = requestID
	}
	logger.LogEvent(logrus.InfoLevel, "Landmark deleted", fields)
	return nil
}

func (s *landmarkService) generation(ctx context.Context) (int64, error) {
	raw, err := s.cache.Get(ctx, landmarkGenerationKey)
	if errors.Is(err, ErrCacheMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(raw, 10, 64)
}

func (s *landmarkService) cachedList(ctx context.Context, key string) ([]models.Landmark, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			s.logCacheError(ctx, "get", err)
		}
		return nil, false
	}

	var landmarks []models.Landmark
	if err := json.Unmarshal([]byte(raw), &landmarks); err != nil || landmarks == nil {
		return nil, false
	}
	return landmarks, true
}

func (s *landmarkService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}

	generation, err := s.cache.Incr(ctx, landmarkGenerationKey)
	if err != nil {
		s.logCacheError(ctx, "invalidate", err)
		if err := s.cache.DeleteByPattern(ctx, landmarkListPattern); err != nil {
			s.logCacheError(ctx, "invalidate", err)
		}
		return
	}
	if err := s.cache.Delete(ctx, landmarkListKey(generation-1)); err != nil {
		s.logCacheError(ctx, "invalidate", err)
	}
}

func (s *landmarkService) logCacheError(ctx context.Context, op string, err error) {
	fields := logrus.Fields{"operation": op, "error": err}
	if requestID, ok := RequestIDFromContext(ctx); ok {
		fields["request_id"] = requestID
	}
	logger.LogEvent(logrus.WarnLevel, "Landmark cache unavailable", fields)
}
