package like

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository stores per-user votes. Counter columns live on the liked
// entities themselves and are adjusted by their owners with single
// conditional increments; this repository only answers what changed.
type Repository interface {
	Set(entityType EntityType, entityID, userID, userLogin string, status Status) (previous Status, err error)
	StatusFor(entityType EntityType, entityID, userID string) (Status, error)
	StatusesFor(entityType EntityType, entityIDs []string, userID string) (map[string]Status, error)
	NewestLikes(entityType EntityType, entityIDs []string, limit int) (map[string][]NewestLike, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

// Set upserts the user's vote and returns the previous status so the caller
// can derive counter deltas
func (r *repository) Set(entityType EntityType, entityID, userID, userLogin string, status Status) (Status, error) {
	var existing Like
	err := r.db.Where("entity_type = ? AND entity_id = ? AND user_id = ?", entityType, entityID, userID).
		First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return StatusNone, err
		}
		if status == StatusNone {
			return StatusNone, nil
		}
		return StatusNone, r.db.Create(&Like{
			EntityType: entityType,
			EntityID:   entityID,
			UserID:     userID,
			UserLogin:  userLogin,
			Status:     status,
		}).Error
	}

	previous := existing.Status
	if previous == status {
		return previous, nil
	}

	if status == StatusNone {
		return previous, r.db.Delete(&existing).Error
	}

	return previous, r.db.Model(&existing).
		Updates(map[string]any{"status": status, "created_at": time.Now()}).Error
}

func (r *repository) StatusFor(entityType EntityType, entityID, userID string) (Status, error) {
	var l Like
	err := r.db.Where("entity_type = ? AND entity_id = ? AND user_id = ?", entityType, entityID, userID).
		First(&l).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StatusNone, nil
		}
		return StatusNone, err
	}
	return l.Status, nil
}

func (r *repository) StatusesFor(entityType EntityType, entityIDs []string, userID string) (map[string]Status, error) {
	statuses := make(map[string]Status, len(entityIDs))
	if len(entityIDs) == 0 || userID == "" {
		return statuses, nil
	}

	var likes []Like
	err := r.db.Where("entity_type = ? AND entity_id IN ? AND user_id = ?", entityType, entityIDs, userID).
		Find(&likes).Error
	if err != nil {
		return nil, err
	}

	for _, l := range likes {
		statuses[l.EntityID] = l.Status
	}
	return statuses, nil
}

// NewestLikes returns the most recent likes per entity, newest first,
// capped at limit per entity
func (r *repository) NewestLikes(entityType EntityType, entityIDs []string, limit int) (map[string][]NewestLike, error) {
	result := make(map[string][]NewestLike, len(entityIDs))
	if len(entityIDs) == 0 {
		return result, nil
	}

	type row struct {
		EntityID  string
		UserID    string
		UserLogin string
		CreatedAt time.Time
	}

	var rows []row
	err := r.db.Raw(`
		SELECT entity_id, user_id, user_login, created_at FROM (
			SELECT entity_id, user_id, user_login, created_at,
			       ROW_NUMBER() OVER (PARTITION BY entity_id ORDER BY created_at DESC) AS row_num
			FROM likes
			WHERE entity_type = ? AND entity_id IN ? AND status = ?
		) ranked WHERE row_num <= ?`,
		entityType, entityIDs, StatusLike, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, l := range rows {
		result[l.EntityID] = append(result[l.EntityID], NewestLike{
			AddedAt: l.CreatedAt.UTC().Format(time.RFC3339),
			UserID:  l.UserID,
			Login:   l.UserLogin,
		})
	}
	return result, nil
}
