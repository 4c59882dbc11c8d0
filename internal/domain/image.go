package domain

import (
	"context"
	"time"
)

// ImageStatus tracks an image through the assessment pipeline.
type ImageStatus string

const (
	ImageUploaded   ImageStatus = "uploaded"
	ImageProcessing ImageStatus = "processing"
	ImageCompleted  ImageStatus = "completed"
	ImageFailed     ImageStatus = "failed"
)

// Valid reports whether the status is one of the known values.
func (s ImageStatus) Valid() bool {
	switch s {
	case ImageUploaded, ImageProcessing, ImageCompleted, ImageFailed:
		return true
	}
	return false
}

// Defaults applied when an upload omits the optional dimensions.
const (
	DefaultImageWidth  = 1920
	DefaultImageHeight = 1080
	DefaultImageFormat = "jpg"
)

type Image struct {
	ID         int         `json:"id"`
	UserID     int         `json:"user_id"`
	Filename   string      `json:"filename"`
	FileSize   int64       `json:"file_size"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Format     string      `json:"format"`
	UploadDate time.Time   `json:"upload_date"`
	Status     ImageStatus `json:"status"`
}

// ImageRepository abstracts image persistence.
type ImageRepository interface {
	List(ctx context.Context) ([]Image, error)
	ListByUser(ctx context.Context, userID int) ([]Image, error)
	Get(ctx context.Context, id int) (*Image, error)
	Create(ctx context.Context, image Image) (*Image, error)
	Save(ctx context.Context, image Image) error
	Delete(ctx context.Context, id int) error
}
