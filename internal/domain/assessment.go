package domain

import (
	"context"
	"time"
)

// Assessment is a single ground-sample-distance estimate produced by running
// a model against an image.
type Assessment struct {
	ID              int       `json:"id"`
	ImageID         int       `json:"image_id"`
	ModelID         int       `json:"model_id"`
	GSDValue        float64   `json:"gsd_value"`
	ConfidenceScore float64   `json:"confidence_score"`
	ProcessingTime  float64   `json:"processing_time"`
	AssessmentDate  time.Time `json:"assessment_date"`
}

// AssessmentRepository abstracts assessment persistence.
type AssessmentRepository interface {
	List(ctx context.Context) ([]Assessment, error)
	ListByImage(ctx context.Context, imageID int) ([]Assessment, error)
	Get(ctx context.Context, id int) (*Assessment, error)
	Create(ctx context.Context, assessment Assessment) (*Assessment, error)
	Save(ctx context.Context, assessment Assessment) error
	Delete(ctx context.Context, id int) error
}
