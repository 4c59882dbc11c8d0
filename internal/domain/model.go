package domain

import (
	"context"
	"time"
)

// Defaults for model registration when the caller omits optional fields.
const (
	DefaultArchitecture  = "ResNet50"
	DefaultModelAccuracy = 0.95
)

// Model is a registered neural network used to score images.
type Model struct {
	ID           int       `json:"id"`
	ModelName    string    `json:"model_name"`
	Version      string    `json:"version"`
	Architecture string    `json:"architecture"`
	Accuracy     float64   `json:"accuracy"`
	IsActive     bool      `json:"is_active"`
	TrainingDate time.Time `json:"training_date"`
}

// ModelRepository abstracts model persistence.
type ModelRepository interface {
	List(ctx context.Context) ([]Model, error)
	Get(ctx context.Context, id int) (*Model, error)
	Create(ctx context.Context, model Model) (*Model, error)
	Save(ctx context.Context, model Model) error
	Delete(ctx context.Context, id int) error
}
