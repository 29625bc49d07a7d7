package controller

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	model "chaptered_backend/internals/features/catalog/model"
)

type ratingRow struct {
	MediaID   uuid.UUID
	AvgRating float64
}

// loadAvgRatings returns the mean review rating per media id. Media without
// reviews are absent from the map, which the responses render as null.
// Recomputed per request, no caching.
func loadAvgRatings(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]float64, error) {
	out := make(map[uuid.UUID]float64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []ratingRow
	if err := db.Table("reviews").
		Select("media_id, AVG(rating) AS avg_rating").
		Where("media_id IN ?", ids).
		Group("media_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.MediaID] = r.AvgRating
	}
	return out, nil
}

func avgRatingFor(ratings map[uuid.UUID]float64, id uuid.UUID) *float64 {
	if v, ok := ratings[id]; ok {
		return &v
	}
	return nil
}

func mediaIDs(items []model.MediaModel) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, m := range items {
		ids = append(ids, m.ID)
	}
	return ids
}
