package profile

import (
	"errors"
	"fmt"
)

var (
	ErrPhotoType     = errors.New("Only JPG and PNG images are allowed")
	ErrPhotoTooLarge = errors.New("File too large")
	ErrNoFile        = errors.New("No file uploaded")
)

// ValidationError reports the first required field found empty.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
