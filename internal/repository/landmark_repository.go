package repository

import (
	"context"
	"errors"
	"fmt"

	"landmark-catalog/internal/models"
	apperrors "landmark-catalog/internal/pkg/errors"

	"gorm.io/gorm"
)

// LandmarkRepository is an ordered store of landmarks. Ids are not unique;
// DeleteFirst removes only the earliest landmark with the given id and
// returns errors.ErrNotFound when there is none.
type LandmarkRepository interface {
	List(ctx context.Context) ([]models.Landmark, error)
	Append(ctx context.Context, landmark models.Landmark) error
	DeleteFirst(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Kind() string
}

type landmarkRepository struct {
	db *gorm.DB
}

func NewLandmarkRepository(db *gorm.DB) LandmarkRepository {
	return &landmarkRepository{db: db}
}

func (r *landmarkRepository) Kind() string {
	return "postgres"
}

func (r *landmarkRepository) List(ctx context.Context) ([]models.Landmark, error) {
	var records []models.LandmarkRecord

	err := r.db.WithContext(ctx).Order("seq ASC").Find(&records).Error
	if err != nil {
		return nil, dbError(err, "list landmarks")
	}

	landmarks := make([]models.Landmark, 0, len(records))
	for i := range records {
		landmarks = append(landmarks, records[i].ToLandmark())
	}
	return landmarks, nil
}

func (r *landmarkRepository) Append(ctx context.Context, landmark models.Landmark) error {
	if err := r.db.WithContext(ctx).Create(models.NewLandmarkRecord(landmark)).Error; err != nil {
		return dbError(err, "append landmark %q", landmark.ID)
	}
	return nil
}

func (r *landmarkRepository) DeleteFirst(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.LandmarkRecord
		err := tx.Where("landmark_id = ?", id).Order("seq ASC").First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		if err != nil {
			return dbError(err, "find landmark %q", id)
		}

		result := tx.Delete(&models.LandmarkRecord{}, "seq = ?", record.Seq)
		if result.Error != nil {
			return dbError(result.Error, "delete landmark %q", id)
		}
		if result.RowsAffected == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

func (r *landmarkRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LandmarkRecord{}).Count(&count).Error
	if err != nil {
		return 0, dbError(err, "count landmarks")
	}
	return count, nil
}

func dbError(err error, format string, args ...interface{}) error {
	return apperrors.Wrap(errors.Join(apperrors.ErrDatabaseError, err), fmt.Sprintf(format, args...))
}
