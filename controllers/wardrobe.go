package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"fitsyapi/models"
	"fitsyapi/outfit"
	"fitsyapi/services"
	"fitsyapi/tasks"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// total items a free account may keep in the wardrobe
const freeTierItemLimit = 10

type CreateWardrobeItemIn struct {
	Name                 string   `json:"name" validate:"omitempty,max=100"`
	FileName             *string  `json:"file_name" validate:"required,max=200"`
	Description          *string  `json:"description" validate:"omitempty,max=500"`
	PrimaryCategory      string   `json:"primary_category" validate:"required,max=100"`
	AdditionalCategories []string `json:"additional_categories" validate:"omitempty,max=10,dive,max=100"`
	Weather              string   `json:"weather" validate:"omitempty,weathertag"`
	Color                string   `json:"color" validate:"omitempty,max=50"`
	Occasion             string   `json:"occasion" validate:"omitempty,max=100"`
	Style                string   `json:"style" validate:"omitempty,max=100"`
	AddToCloset          *bool    `json:"add_to_closet" validate:"required"`
}

type BulkDeleteItemsIn struct {
	ItemIDs []uint `json:"item_ids" validate:"required,min=1,max=100"`
}

type WardrobeItemResponse struct {
	ID                   uint     `json:"id"`
	Name                 string   `json:"name"`
	Description          *string  `json:"description"`
	PrimaryCategory      string   `json:"primary_category"`
	AdditionalCategories []string `json:"additional_categories"`
	ResolvedBucket       string   `json:"resolved_bucket"`
	Weather              string   `json:"weather"`
	Color                string   `json:"color"`
	Occasion             string   `json:"occasion"`
	Style                string   `json:"style"`
	Status               string   `json:"status"`
	Uri                  *string  `json:"uri,omitempty"`
	CreatedAt            string   `json:"created_at"`
	UpdatedAt            string   `json:"updated_at"`
}

type WardrobeItemCreatedResponse struct {
	Item          WardrobeItemResponse `json:"item"`
	FileUploadUrl string               `json:"file_upload_url"`
}

type WardrobeListResponse struct {
	Tops        []WardrobeItemResponse `json:"tops"`
	Bottoms     []WardrobeItemResponse `json:"bottoms"`
	Shoes       []WardrobeItemResponse `json:"shoes"`
	Accessories []WardrobeItemResponse `json:"accessories"`
	Unsorted    []WardrobeItemResponse `json:"unsorted"`
}

type BulkDeleteItemsResponse struct {
	Deleted []uint `json:"deleted"`
	Failed  []uint `json:"failed"`
}

type WardrobeController struct {
	AWSService services.AWSServiceProvider
	URLCache   services.URLCacheServiceProvider
}

func (controller *WardrobeController) WardrobeRoutes(g *echo.Group) {
	g.POST("/create", controller.CreateWardrobeItem)
	g.GET("/list", controller.ListWardrobe)
	g.POST("/bulk-delete", controller.BulkDeleteItems)
}

func (controller *WardrobeController) CreateWardrobeItem(c echo.Context) error {
	var req CreateWardrobeItemIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}
	asynqClient, ok := c.Get("__asynqclient").(*asynq.Client)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Service is not available, please try again a bit later"})
	}

	if req.FileName == nil || *req.FileName == "" {
		sentry.CaptureException(fmt.Errorf("Image was not provided when creating wardrobe item %s, user %v", req.Name, user.ID))
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Sorry, it seems image was not provided, please try again"})
	}

	if user.Subscription == models.Free {
		var totalItemCount int64
		if err := db.Model(&models.WardrobeItem{}).Where("owner_id = ?", user.ID).Count(&totalItemCount).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get wardrobe data"})
		}
		if totalItemCount >= freeTierItemLimit {
			return c.JSON(http.StatusForbidden, map[string]string{"error": fmt.Sprintf("You have reached the free limit of total %v items, please subscribe", freeTierItemLimit)})
		}
	}

	if user.EnforcedDailyItemLimit != nil {
		var dailyItemCount int64
		today := time.Now().UTC().Format("2006-01-02")
		if err := db.Model(&models.WardrobeItem{}).Where("owner_id = ? AND DATE(created_at) = ?", user.ID, today).Count(&dailyItemCount).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get wardrobe data"})
		}
		if dailyItemCount >= int64(*user.EnforcedDailyItemLimit) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": fmt.Sprintf("You have reached the limit of %v daily items. Please wait for the next day.", *user.EnforcedDailyItemLimit)})
		}
	}

	additional := make([]string, 0, len(req.AdditionalCategories))
	for _, category := range req.AdditionalCategories {
		if label := services.DisplayLabel(category); label != "" {
			additional = append(additional, label)
		}
	}

	status := "temporary"
	if req.AddToCloset != nil && *req.AddToCloset {
		status = "in_closet"
	}
	item := models.WardrobeItem{
		Name:                 req.Name,
		Description:          req.Description,
		OwnerID:              user.ID,
		PrimaryCategory:      services.DisplayLabel(req.PrimaryCategory),
		AdditionalCategories: pq.StringArray(additional),
		ResolvedBucket:       models.BucketUnknown,
		Weather:              req.Weather,
		Color:                req.Color,
		Occasion:             req.Occasion,
		Style:                req.Style,
		Status:               status,
		ImageStatus:          "draft",
		ProcessingStatus:     "idle",
	}

	var bucketName = services.GetEnv("R2_BUCKET_NAME", "")
	safeFileName := services.WardrobeImageKey(*req.FileName)
	uploadUrl, presignErr := controller.AWSService.PresignLink(context.Background(), bucketName, safeFileName)
	item.ImageURL = &safeFileName
	if presignErr != nil {
		log.Printf("Unable to presign upload for %s!, %s", item.Name, presignErr)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Error while creating wardrobe item with attachment",
		})
	}

	if err := db.Create(&item).Error; err != nil {
		sentry.CaptureException(err)
		return err
	}

	if status == "in_closet" {
		item.ProcessingStatus = "pending"
		if err := db.Save(&item).Error; err != nil {
			sentry.CaptureException(err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Failed to update item status, please try again"})
		}
		task, err := tasks.NewItemCategorizationTask(item.ID)
		if err != nil {
			sentry.CaptureException(err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not process the item, please try again"})
		}
		info, err := asynqClient.Enqueue(task, asynq.MaxRetry(3), asynq.Queue("wardrobe"))
		if err != nil {
			sentry.CaptureException(err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not process the item, please try again"})
		}
		fmt.Println("[Queue] Item categorization task submitted, Item ID: ", item.ID, " Task ID: ", info.ID)
	}

	response := WardrobeItemCreatedResponse{
		Item:          wardrobeItemResponse(item, nil),
		FileUploadUrl: uploadUrl,
	}
	return c.JSON(http.StatusCreated, response)
}

func wardrobeItemResponse(item models.WardrobeItem, uri *string) WardrobeItemResponse {
	return WardrobeItemResponse{
		ID:                   item.ID,
		Name:                 item.Name,
		Description:          item.Description,
		PrimaryCategory:      item.PrimaryCategory,
		AdditionalCategories: []string(item.AdditionalCategories),
		ResolvedBucket:       string(item.ResolvedBucket),
		Weather:              item.Weather,
		Color:                item.Color,
		Occasion:             item.Occasion,
		Style:                item.Style,
		Status:               item.Status,
		Uri:                  uri,
		CreatedAt:            item.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:            item.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// populatePresignedItemImages enriches raw wardrobe items with
// presigned read URLs concurrently, with a direct R2 failsafe for when
// the cache system itself fails.
func (controller *WardrobeController) populatePresignedItemImages(ctx context.Context, items []models.WardrobeItem) []WardrobeItemResponse {
	if len(items) == 0 {
		return []WardrobeItemResponse{}
	}

	var wg sync.WaitGroup
	processedResponses := make([]WardrobeItemResponse, len(items))
	bucketName := services.GetEnv("R2_BUCKET_NAME", "")

	for i, wardrobeItem := range items {
		wg.Add(1)
		go func(index int, item models.WardrobeItem) {
			defer wg.Done()

			var imageUrl string
			if item.ImageURL != nil && *item.ImageURL != "" {
				objectKey := *item.ImageURL

				url, err := controller.URLCache.GetReadURL(ctx, objectKey)
				if err == nil {
					imageUrl = url
				} else {
					log.Printf("CACHE WARNING: Cache system failed for key '%s': %v. Triggering manual R2 fallback.", objectKey, err)
					sentry.WithScope(func(scope *sentry.Scope) {
						scope.SetTag("failure_type", "cache_system")
						scope.SetExtra("objectKey", objectKey)
						sentry.CaptureException(err)
					})

					fallbackUrl, fallbackErr := controller.AWSService.GetPresignedR2FileReadURL(ctx, bucketName, objectKey)
					if fallbackErr != nil {
						log.Printf("CRITICAL: Manual R2 fallback also failed for key '%s': %v", objectKey, fallbackErr)
						sentry.CaptureException(fallbackErr)
						// imageUrl stays empty, the list request still succeeds
					} else {
						imageUrl = fallbackUrl
					}
				}
			}
			processedResponses[index] = wardrobeItemResponse(item, &imageUrl)
		}(i, wardrobeItem)
	}

	wg.Wait()
	return processedResponses
}

func (controller *WardrobeController) ListWardrobe(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var items []models.WardrobeItem
	if err := db.Where("owner_id = ?", user.ID).Order("id asc").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe items"})
	}

	processedResponses := controller.populatePresignedItemImages(c.Request().Context(), items)

	response := WardrobeListResponse{
		Tops:        []WardrobeItemResponse{},
		Bottoms:     []WardrobeItemResponse{},
		Shoes:       []WardrobeItemResponse{},
		Accessories: []WardrobeItemResponse{},
		Unsorted:    []WardrobeItemResponse{},
	}

	for _, resp := range processedResponses {
		switch models.Bucket(resp.ResolvedBucket) {
		case models.BucketTop:
			response.Tops = append(response.Tops, resp)
		case models.BucketBottom:
			response.Bottoms = append(response.Bottoms, resp)
		case models.BucketShoes:
			response.Shoes = append(response.Shoes, resp)
		case models.BucketAccessories:
			response.Accessories = append(response.Accessories, resp)
		default:
			// not yet processed by the categorization worker, resolve
			// on the fly so a fresh closet still renders grouped
			switch outfit.NormalizeCategory(resp.PrimaryCategory) {
			case models.BucketTop:
				response.Tops = append(response.Tops, resp)
			case models.BucketBottom:
				response.Bottoms = append(response.Bottoms, resp)
			case models.BucketShoes:
				response.Shoes = append(response.Shoes, resp)
			case models.BucketAccessories:
				response.Accessories = append(response.Accessories, resp)
			default:
				response.Unsorted = append(response.Unsorted, resp)
			}
		}
	}

	return c.JSON(http.StatusOK, response)
}

// BulkDeleteItems deletes the requested items in parallel and reports
// per-item success and failure, so one failed delete never aborts the
// whole batch.
func (controller *WardrobeController) BulkDeleteItems(c echo.Context) error {
	var req BulkDeleteItemsIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var wg sync.WaitGroup
	succeeded := make([]bool, len(req.ItemIDs))
	for i, itemID := range req.ItemIDs {
		wg.Add(1)
		go func(index int, id uint) {
			defer wg.Done()
			result := db.Where("id = ? AND owner_id = ?", id, user.ID).Delete(&models.WardrobeItem{})
			if result.Error != nil {
				log.Printf("[User %v] Failed to delete wardrobe item %v: %v", user.ID, id, result.Error)
				sentry.CaptureException(result.Error)
				return
			}
			succeeded[index] = result.RowsAffected > 0
		}(i, itemID)
	}
	wg.Wait()

	response := BulkDeleteItemsResponse{Deleted: []uint{}, Failed: []uint{}}
	for i, itemID := range req.ItemIDs {
		if succeeded[i] {
			response.Deleted = append(response.Deleted, itemID)
		} else {
			response.Failed = append(response.Failed, itemID)
		}
	}
	return c.JSON(http.StatusOK, response)
}
