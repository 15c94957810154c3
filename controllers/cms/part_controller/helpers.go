package part_controller

import (
	"context"
	"strconv"

	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/bodthegod/jpperformancecars-backend/services"
	"github.com/bodthegod/jpperformancecars-backend/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var imageStore services.ImageStore

// InitImageStore wires the Cloudinary client used for part photos. Without
// it uploads answer 503 and deletes skip the folder cleanup.
func InitImageStore(store services.ImageStore) {
	imageStore = store
}

// nextFreeSlug returns base, or base-2, base-3 ... whichever is not taken.
func nextFreeSlug(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}
	for n := 2; ; n++ {
		candidate := base + "-" + strconv.Itoa(n)
		if !taken[candidate] {
			return candidate
		}
	}
}

// uniqueSlug derives a slug for name that no other part uses. exclude is the
// part being renamed, or uuid.Nil on create.
func uniqueSlug(ctx context.Context, db *gorm.DB, name string, exclude uuid.UUID) (string, error) {
	base := utils.Slugify(name)
	if base == "" {
		base = "part"
	}

	var existing []string
	q := db.WithContext(ctx).Model(&models.Part{}).
		Where("slug = ? OR slug LIKE ?", base, base+"-%")
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.Pluck("slug", &existing).Error; err != nil {
		return "", err
	}

	taken := make(map[string]bool, len(existing))
	for _, s := range existing {
		taken[s] = true
	}
	return nextFreeSlug(base, taken), nil
}

// loadVehicles fetches the vehicles behind ids and reports whether all exist.
func loadVehicles(ctx context.Context, db *gorm.DB, ids []uuid.UUID) ([]models.Vehicle, bool, error) {
	vehicles := make([]models.Vehicle, 0, len(ids))
	if len(ids) == 0 {
		return vehicles, true, nil
	}
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&vehicles).Error; err != nil {
		return nil, false, err
	}
	return vehicles, len(vehicles) == len(uniqueIDs(ids)), nil
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
