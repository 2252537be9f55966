package test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"fitsyapi/models"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func GenerateUserToken(userPk string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userPk,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Fatalf("Error when signing user token for %s. Error %s ", userPk, err)
	}
	return t
}

func NewJSONAuthRequest(method string, target string, userPk string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	token := GenerateUserToken(userPk)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	return req
}

func FakeUser(db *gorm.DB) *models.UserAccount {
	user := &models.UserAccount{
		Name:         "OurName",
		Email:        fmt.Sprintf("user-%d@example.com", time.Now().UnixNano()),
		Platform:     models.PlatformIOS,
		LastIp:       "123.122.122.122",
		Status:       "FINISHED_AUTH",
		Subscription: models.Free,
		AvatarURL:    "pictureurl",
	}
	db.Create(&user)
	return user
}

func FakeProUser(db *gorm.DB) *models.UserAccount {
	user := FakeUser(db)
	user.Subscription = models.Pro
	db.Save(&user)
	return user
}

// AWSProviderMock fakes the R2 presign provider for tests. MockUrl, when
// set, is returned for read URLs so handlers can download test fixtures
// from an httptest server.
type AWSProviderMock struct {
	MockUrl string
}

func (m *AWSProviderMock) InitPresignClient(ctx context.Context) error {
	return nil
}

func (m *AWSProviderMock) PresignLink(ctx context.Context, bucketName string, fileName string) (string, error) {
	return fmt.Sprintf("https://example-upload.test/%s/%s", bucketName, fileName), nil
}

func (m *AWSProviderMock) GetPresignedR2FileReadURL(ctx context.Context, bucketName, fileKey string) (string, error) {
	if m.MockUrl != "" {
		return m.MockUrl, nil
	}
	return fmt.Sprintf("https://example-read.test/%s/%s", bucketName, fileKey), nil
}

func (m *AWSProviderMock) UploadToPresignedURL(ctx context.Context, bucketName, url string, fileContent []byte) (string, int, error) {
	return "", http.StatusOK, nil
}

// URLCacheMock bypasses ristretto and presigns a fake read URL directly.
type URLCacheMock struct {
	Err error
}

func (m *URLCacheMock) GetReadURL(ctx context.Context, objectKey string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return fmt.Sprintf("https://example-read.test/cache/%s", objectKey), nil
}

// WeatherServiceMock returns a fixed weather tag for any location.
type WeatherServiceMock struct {
	Tag string
	Err error
}

func (m *WeatherServiceMock) CurrentWeather(ctx context.Context, location string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Tag == "" {
		return "Sunny", nil
	}
	return m.Tag, nil
}
