package controllers

import (
	"strconv"
)

func BoolPointer(b bool) *bool {
	return &b
}

func StrPointer(s string) *string {
	return &s
}

func UIntPointer(u uint) *uint {
	return &u
}

func UIntToStr(value uint) string {
	return strconv.FormatUint(uint64(value), 10)
}
