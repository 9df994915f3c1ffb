package downdetect

import (
	"context"
	"fmt"

	"taskboard/internal/storage"

	"gorm.io/gorm"
)

// Pinger is satisfied by cache_utils.CacheUtil.
type Pinger interface {
	Ping(ctx context.Context) error
}

type DowndetectService struct {
	db    *gorm.DB
	cache Pinger
}

func NewDowndetectService(db *gorm.DB, cache Pinger) *DowndetectService {
	return &DowndetectService{db: db, cache: cache}
}

// IsAvailable fails when a backing service the API depends on is unreachable.
func (s *DowndetectService) IsAvailable(ctx context.Context) error {
	if err := storage.Ping(ctx, s.db); err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			return fmt.Errorf("cache check failed: %w", err)
		}
	}

	return nil
}
