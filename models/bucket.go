package models

import (
	"regexp"

	"github.com/go-playground/validator"
)

// Bucket is the semantic role a garment plays inside an outfit.
// Free-text categories ("Jeans", "Sneakers", "Bags"...) are resolved
// into exactly one bucket per label by the outfit package.
type Bucket string

const (
	BucketTop         Bucket = "top"
	BucketBottom      Bucket = "bottom"
	BucketShoes       Bucket = "shoes"
	BucketAccessories Bucket = "accessories"
	BucketUnknown     Bucket = "unknown"
)

func (b *Bucket) Scan(value interface{}) error {
	*b = Bucket(value.(string))
	return nil
}

func (b Bucket) Value() (string, error) {
	return string(b), nil
}

func ValidateBucket(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	matched, _ := regexp.MatchString("^top|bottom|shoes|accessories$", value)
	return matched
}

func ValidateBucketRaw(value string) bool {
	matched, _ := regexp.MatchString("^top|bottom|shoes|accessories$", value)
	return matched
}
