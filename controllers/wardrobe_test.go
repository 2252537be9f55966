package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fitsyapi/dbhelper"
	"fitsyapi/models"
	"fitsyapi/test"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestServer(db *gorm.DB) *echo.Echo {
	return SetupServer(db, &test.AWSProviderMock{}, &test.WeatherServiceMock{}, nil, nil, &test.URLCacheMock{})
}

func closetItem(db *gorm.DB, ownerID uint, name, primaryCategory string) models.WardrobeItem {
	item := models.WardrobeItem{
		Name:             name,
		PrimaryCategory:  primaryCategory,
		OwnerID:          ownerID,
		Status:           "in_closet",
		ProcessingStatus: "completed",
		ResolvedBucket:   models.BucketUnknown,
		ImageURL:         StrPointer(fmt.Sprintf("wardrobe/%s.jpg", name)),
	}
	db.Create(&item)
	return item
}

func TestCreateWardrobeItemOk(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	reqBody := CreateWardrobeItemIn{
		Name:            "Test Item",
		Description:     StrPointer("This is a test wardrobe item"),
		PrimaryCategory: "t-shirt",
		FileName:        StrPointer("test-image.jpg"),
		Color:           "white",
		AddToCloset:     BoolPointer(false),
	}

	req := test.NewJSONAuthRequest("POST", "/wardrobe/create", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, "Expected status code 201 Created, got %d: %s", rec.Code, rec.Body.String())

	var response WardrobeItemCreatedResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	require.Equal(t, reqBody.Name, response.Item.Name)
	require.Equal(t, reqBody.Description, response.Item.Description)
	// user-entered category is normalized for display
	require.Equal(t, "T-Shirt", response.Item.PrimaryCategory)
	require.Equal(t, "temporary", response.Item.Status)
	require.Contains(t, response.FileUploadUrl, "wardrobe/test-image.jpg")
}

func TestCreateWardrobeItemInvalidInput(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	// PrimaryCategory missing
	reqBody := CreateWardrobeItemIn{
		Name:        "Test Item",
		FileName:    StrPointer("test.jpg"),
		AddToCloset: BoolPointer(false),
	}

	req := test.NewJSONAuthRequest("POST", "/wardrobe/create", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var response map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], "PrimaryCategory")
}

func TestCreateWardrobeItemUnauthorized(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	test.FakeUser(db)

	reqBody := CreateWardrobeItemIn{
		Name:            "Test Item",
		PrimaryCategory: "T-shirt",
		FileName:        StrPointer("test.jpg"),
		AddToCloset:     BoolPointer(false),
	}
	req := test.NewJSONAuthRequest("POST", "/wardrobe/create", "", reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateWardrobeItemFreeLimit(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	for i := 0; i < freeTierItemLimit; i++ {
		closetItem(db, user.ID, fmt.Sprintf("item-%d", i), "T-shirt")
	}

	reqBody := CreateWardrobeItemIn{
		Name:            "One too many",
		PrimaryCategory: "T-shirt",
		FileName:        StrPointer("test.jpg"),
		AddToCloset:     BoolPointer(false),
	}
	req := test.NewJSONAuthRequest("POST", "/wardrobe/create", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListWardrobeGroupsByResolvedBucket(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	top := closetItem(db, user.ID, "tee", "T-shirt")
	db.Model(&top).UpdateColumn("resolved_bucket", models.BucketTop)
	bottom := closetItem(db, user.ID, "jeans", "Jeans")
	db.Model(&bottom).UpdateColumn("resolved_bucket", models.BucketBottom)

	req := test.NewJSONAuthRequest("GET", "/wardrobe/list", UIntToStr(user.ID), "")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "Expected status code 200 OK, got %d: %s", rec.Code, rec.Body.String())

	var response WardrobeListResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	require.Len(t, response.Tops, 1)
	require.Len(t, response.Bottoms, 1)
	assert.Equal(t, "tee", response.Tops[0].Name)
	assert.Equal(t, "jeans", response.Bottoms[0].Name)
	require.NotNil(t, response.Tops[0].Uri)
	assert.Contains(t, *response.Tops[0].Uri, "wardrobe/tee.jpg")
}

func TestListWardrobeResolvesUnprocessedItemsOnTheFly(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	// still pending categorization, bucket unknown
	closetItem(db, user.ID, "runners", "Sneakers")
	closetItem(db, user.ID, "mystery", "Vintage")

	req := test.NewJSONAuthRequest("GET", "/wardrobe/list", UIntToStr(user.ID), "")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response WardrobeListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Shoes, 1)
	assert.Equal(t, "runners", response.Shoes[0].Name)
	require.Len(t, response.Unsorted, 1)
	assert.Equal(t, "mystery", response.Unsorted[0].Name)
}

func TestListWardrobeEmpty(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("GET", "/wardrobe/list", UIntToStr(user.ID), "")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response WardrobeListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response.Tops, 0)
	assert.Len(t, response.Bottoms, 0)
	assert.Len(t, response.Shoes, 0)
	assert.Len(t, response.Accessories, 0)
	assert.Len(t, response.Unsorted, 0)
}

func TestListWardrobeCacheFailsafe(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	// cache system down, list falls back to direct presigning
	e := SetupServer(db, &test.AWSProviderMock{}, &test.WeatherServiceMock{}, nil, nil, &test.URLCacheMock{Err: fmt.Errorf("cache backend unavailable")})
	user := test.FakeUser(db)
	closetItem(db, user.ID, "tee", "T-shirt")

	req := test.NewJSONAuthRequest("GET", "/wardrobe/list", UIntToStr(user.ID), "")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response WardrobeListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Tops, 1)
	require.NotNil(t, response.Tops[0].Uri)
	assert.Contains(t, *response.Tops[0].Uri, "example-read.test")
}

func TestBulkDeleteItems(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)
	other := test.FakeUser(db)

	mine1 := closetItem(db, user.ID, "tee", "T-shirt")
	mine2 := closetItem(db, user.ID, "jeans", "Jeans")
	foreign := closetItem(db, other.ID, "not-mine", "T-shirt")

	reqBody := BulkDeleteItemsIn{ItemIDs: []uint{mine1.ID, mine2.ID, foreign.ID, 999999}}
	req := test.NewJSONAuthRequest("POST", "/wardrobe/bulk-delete", UIntToStr(user.ID), reqBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response BulkDeleteItemsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.ElementsMatch(t, []uint{mine1.ID, mine2.ID}, response.Deleted)
	assert.ElementsMatch(t, []uint{foreign.ID, 999999}, response.Failed)

	// the other user's item survived
	var count int64
	db.Model(&models.WardrobeItem{}).Where("owner_id = ?", other.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestBulkDeleteItemsEmptyListRejected(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := newTestServer(db)
	user := test.FakeUser(db)

	req := test.NewJSONAuthRequest("POST", "/wardrobe/bulk-delete", UIntToStr(user.ID), BulkDeleteItemsIn{ItemIDs: []uint{}})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
