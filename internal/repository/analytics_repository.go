package repository

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/adhunikethi/agritech-api/internal/models"
)

// AnalyticsRepository caches computed dashboard snapshots in a jsonb table so
// repeated dashboard loads do not rescan the full dataset.
type AnalyticsRepository interface {
	GetCache(ctx context.Context, key string) (*models.AnalyticsCache, error)
	SetCache(ctx context.Context, key string, data interface{}, ttl time.Duration) error
	InvalidateCache(ctx context.Context, key string) error
	CleanExpiredCache(ctx context.Context) error
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetCache(ctx context.Context, key string) (*models.AnalyticsCache, error) {
	var cache models.AnalyticsCache
	err := r.db.WithContext(ctx).
		Where("cache_key = ?", key).
		Where("expires_at > ?", time.Now()).
		First(&cache).Error
	if err != nil {
		return nil, err
	}
	return &cache, nil
}

func (r *analyticsRepository) SetCache(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	cache := models.AnalyticsCache{
		CacheKey:  key,
		Data:      jsonData,
		ExpiresAt: time.Now().Add(ttl),
	}

	// Upsert strategy
	var existing models.AnalyticsCache
	err = r.db.WithContext(ctx).Where("cache_key = ?", key).First(&existing).Error
	if err == nil {
		return r.db.WithContext(ctx).Model(&existing).Updates(map[string]interface{}{
			"data":       jsonData,
			"expires_at": cache.ExpiresAt,
			"updated_at": time.Now(),
		}).Error
	}

	return r.db.WithContext(ctx).Create(&cache).Error
}

func (r *analyticsRepository) InvalidateCache(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("cache_key = ?", key).
		Delete(&models.AnalyticsCache{}).Error
}

func (r *analyticsRepository) CleanExpiredCache(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&models.AnalyticsCache{}).Error
}
