package service

import "errors"

var (
	// ErrRecipeNotFound is returned when no recipe has the requested id
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrUnsupportedImageType is returned for uploads that are not images
	ErrUnsupportedImageType = errors.New("unsupported image type")
)
