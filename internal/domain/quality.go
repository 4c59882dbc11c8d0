package domain

import "context"

// QualityMetrics captures the image-quality signals recorded alongside an
// assessment. One record exists per assessment.
type QualityMetrics struct {
	ID             int     `json:"id"`
	AssessmentID   int     `json:"assessment_id"`
	SharpnessScore float64 `json:"sharpness_score"`
	NoiseLevel     float64 `json:"noise_level"`
	ContrastRatio  float64 `json:"contrast_ratio"`
	BlurDetected   bool    `json:"blur_detected"`
	QualityGrade   string  `json:"quality_grade"`
}

// QualityRepository abstracts quality metrics persistence.
type QualityRepository interface {
	GetByAssessment(ctx context.Context, assessmentID int) (*QualityMetrics, error)
	Create(ctx context.Context, metrics QualityMetrics) (*QualityMetrics, error)
	DeleteByAssessment(ctx context.Context, assessmentID int) error
}
