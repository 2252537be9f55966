package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fitsyapi/models"
	"fitsyapi/outfit"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

const (
	TypeItemCategorization  = "wardrobe:categorize_item"
	TypePruneTemporaryItems = "wardrobe:prune_temporary"

	maxCategorizationRetries = 3

	// temporary items never added to the closet are kept this long
	temporaryItemTTL = 24 * time.Hour
)

type ItemCategorizationPayload struct {
	ItemID uint `json:"item_id"`
}

func NewItemCategorizationTask(itemID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(ItemCategorizationPayload{ItemID: itemID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeItemCategorization, payload), nil
}

func NewPruneTemporaryItemsTask() *asynq.Task {
	return asynq.NewTask(TypePruneTemporaryItems, []byte{})
}

// HandleItemCategorizationTask resolves the stored free-text categories
// of one wardrobe item into its semantic bucket. Unrecognized labels
// are not an error: the item completes as "unknown" and shows up in the
// unsorted group until the user renames its category.
func HandleItemCategorizationTask(ctx context.Context, t *asynq.Task, db *gorm.DB) error {
	var payload ItemCategorizationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	fmt.Printf("[Item: %v] Categorization processing\n", payload.ItemID)

	var item models.WardrobeItem
	res := db.First(&item, payload.ItemID)
	if res.Error != nil {
		sentry.CaptureException(fmt.Errorf("[QUEUE] Error on retrieving wardrobe item for categorization %v", payload.ItemID))
		return res.Error
	}

	bucket := resolveItemBucket(item)

	item.ResolvedBucket = bucket
	item.ProcessingStatus = "completed"
	item.ProcessErrorMessage = nil
	if err := db.Save(&item).Error; err != nil {
		saveCategorizationFail(db, item, err)
		return err
	}
	fmt.Printf("[Item: %v] Categorized as %s\n", item.ID, bucket)
	return nil
}

// resolveItemBucket picks the single bucket stored on the item: the
// primary category decides, additional categories only break the tie
// when the primary label is unrecognized.
func resolveItemBucket(item models.WardrobeItem) models.Bucket {
	if bucket := outfit.NormalizeCategory(item.PrimaryCategory); bucket != models.BucketUnknown {
		return bucket
	}
	for _, label := range item.AdditionalCategories {
		if bucket := outfit.NormalizeCategory(label); bucket != models.BucketUnknown {
			return bucket
		}
	}
	return models.BucketUnknown
}

func saveCategorizationFail(db *gorm.DB, item models.WardrobeItem, cause error) {
	item.ProcessRetryTimes++
	message := cause.Error()
	item.ProcessErrorMessage = &message
	if item.ProcessRetryTimes >= maxCategorizationRetries {
		item.ProcessingStatus = "failed"
	}
	if err := db.Save(&item).Error; err != nil {
		sentry.CaptureException(fmt.Errorf("[Item: %v] Failed to persist categorization failure: %v", item.ID, err))
	}
}

// HandlePruneTemporaryItemsTask removes temporary items that were never
// added to the closet. Runs on the nightly schedule.
func HandlePruneTemporaryItemsTask(ctx context.Context, t *asynq.Task, db *gorm.DB) error {
	cutoff := time.Now().Add(-temporaryItemTTL)
	result := db.Where("status = ? AND created_at < ?", "temporary", cutoff).Delete(&models.WardrobeItem{})
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return result.Error
	}
	fmt.Printf("[Queue] Pruned %v stale temporary wardrobe items\n", result.RowsAffected)
	return nil
}
