package app

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/t0sssik/gsd-ci-cd/internal/domain"
	"github.com/t0sssik/gsd-ci-cd/internal/metrics"
)

const apiKeyLength = 20

// Service is the application layer. It owns every use case and is the only
// component that touches more than one repository at a time.
type Service struct {
	store domain.Store
	clock clockwork.Clock
}

// NewService creates the application layer service.
func NewService(store domain.Store, clock clockwork.Clock) *Service {
	return &Service{store: store, clock: clock}
}

// --- users ---

// UserUpdate carries the optional fields of a partial user update.
// Nil fields are left unchanged.
type UserUpdate struct {
	Username *string
	Email    *string
	Role     *domain.Role
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.store.Users().List(ctx)
}

func (s *Service) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return s.store.Users().Get(ctx, id)
}

// CreateUser registers a new account. Email and username must be unique.
func (s *Service) CreateUser(ctx context.Context, username, email string, role domain.Role) (*domain.User, error) {
	existing, err := s.store.Users().List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range existing {
		if u.Email == email {
			return nil, domain.ErrEmailTaken
		}
		if u.Username == username {
			return nil, domain.ErrUsernameTaken
		}
	}

	return s.store.Users().Create(ctx, domain.User{
		Username:         username,
		Email:            email,
		Role:             role,
		RegistrationDate: s.clock.Now().UTC(),
		APIKey:           uuid.NewString()[:apiKeyLength],
	})
}

func (s *Service) UpdateUser(ctx context.Context, id int, upd UserUpdate) (*domain.User, error) {
	user, err := s.store.Users().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil {
		user.Username = *upd.Username
	}
	if upd.Email != nil {
		user.Email = *upd.Email
	}
	if upd.Role != nil {
		user.Role = *upd.Role
	}

	if err := s.store.Users().Save(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the account together with its images and all assessments
// tied to those images. Returns the deleted user so callers can report it.
func (s *Service) DeleteUser(ctx context.Context, id int) (*domain.User, error) {
	user, err := s.store.Users().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	owned, err := s.store.Images().ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, img := range owned {
		if err := s.deleteImageCascade(ctx, img.ID); err != nil {
			return nil, err
		}
	}

	if err := s.store.Users().Delete(ctx, id); err != nil {
		return nil, err
	}
	return user, nil
}

// --- images ---

// ImageUpload carries the fields of a new upload after defaults are applied.
type ImageUpload struct {
	UserID   int
	Filename string
	FileSize int64
	Width    int
	Height   int
	Format   string
}

// ImageUpdate carries the optional fields of a partial image update.
type ImageUpdate struct {
	Filename *string
	Status   *domain.ImageStatus
}

func (s *Service) ListImages(ctx context.Context) ([]domain.Image, error) {
	return s.store.Images().List(ctx)
}

func (s *Service) GetImage(ctx context.Context, id int) (*domain.Image, error) {
	return s.store.Images().Get(ctx, id)
}

// CreateImage records an upload. The owning user must exist.
func (s *Service) CreateImage(ctx context.Context, upload ImageUpload) (*domain.Image, error) {
	if _, err := s.store.Users().Get(ctx, upload.UserID); err != nil {
		return nil, err
	}

	return s.store.Images().Create(ctx, domain.Image{
		UserID:     upload.UserID,
		Filename:   upload.Filename,
		FileSize:   upload.FileSize,
		Width:      upload.Width,
		Height:     upload.Height,
		Format:     upload.Format,
		UploadDate: s.clock.Now().UTC(),
		Status:     domain.ImageUploaded,
	})
}

func (s *Service) UpdateImage(ctx context.Context, id int, upd ImageUpdate) (*domain.Image, error) {
	img, err := s.store.Images().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Filename != nil {
		img.Filename = *upd.Filename
	}
	if upd.Status != nil {
		img.Status = *upd.Status
	}

	if err := s.store.Images().Save(ctx, *img); err != nil {
		return nil, err
	}
	return img, nil
}

// DeleteImage removes the image and every assessment made against it.
func (s *Service) DeleteImage(ctx context.Context, id int) (*domain.Image, error) {
	img, err := s.store.Images().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.deleteImageCascade(ctx, id); err != nil {
		return nil, err
	}
	return img, nil
}

// ListImageAssessments returns the assessments for one image.
func (s *Service) ListImageAssessments(ctx context.Context, imageID int) ([]domain.Assessment, error) {
	if _, err := s.store.Images().Get(ctx, imageID); err != nil {
		return nil, err
	}
	return s.store.Assessments().ListByImage(ctx, imageID)
}

func (s *Service) deleteImageCascade(ctx context.Context, imageID int) error {
	assessments, err := s.store.Assessments().ListByImage(ctx, imageID)
	if err != nil {
		return err
	}
	for _, a := range assessments {
		if err := s.store.Quality().DeleteByAssessment(ctx, a.ID); err != nil {
			return err
		}
		if err := s.store.Assessments().Delete(ctx, a.ID); err != nil {
			return err
		}
	}
	return s.store.Images().Delete(ctx, imageID)
}

// --- models ---

// ModelRegistration carries the fields of a new model after defaults are applied.
type ModelRegistration struct {
	ModelName    string
	Version      string
	Architecture string
	Accuracy     float64
	IsActive     bool
}

// ModelUpdate carries the optional fields of a partial model update.
type ModelUpdate struct {
	ModelName *string
	IsActive  *bool
}

func (s *Service) ListModels(ctx context.Context) ([]domain.Model, error) {
	return s.store.Models().List(ctx)
}

func (s *Service) GetModel(ctx context.Context, id int) (*domain.Model, error) {
	return s.store.Models().Get(ctx, id)
}

func (s *Service) CreateModel(ctx context.Context, reg ModelRegistration) (*domain.Model, error) {
	return s.store.Models().Create(ctx, domain.Model{
		ModelName:    reg.ModelName,
		Version:      reg.Version,
		Architecture: reg.Architecture,
		Accuracy:     reg.Accuracy,
		IsActive:     reg.IsActive,
		TrainingDate: s.clock.Now().UTC(),
	})
}

func (s *Service) UpdateModel(ctx context.Context, id int, upd ModelUpdate) (*domain.Model, error) {
	model, err := s.store.Models().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.ModelName != nil {
		model.ModelName = *upd.ModelName
	}
	if upd.IsActive != nil {
		model.IsActive = *upd.IsActive
	}

	if err := s.store.Models().Save(ctx, *model); err != nil {
		return nil, err
	}
	return model, nil
}

func (s *Service) DeleteModel(ctx context.Context, id int) (*domain.Model, error) {
	model, err := s.store.Models().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.Models().Delete(ctx, id); err != nil {
		return nil, err
	}
	return model, nil
}

// --- assessments ---

// AssessmentUpdate carries the optional fields of a partial assessment update.
type AssessmentUpdate struct {
	GSDValue        *float64
	ConfidenceScore *float64
}

// Scoring ranges for generated assessments.
const (
	gsdMin, gsdMax               = 0.0, 9.0
	confidenceMin, confidenceMax = 0.5, 1.0
	processingMin, processingMax = 0.1, 2.0
)

func (s *Service) ListAssessments(ctx context.Context) ([]domain.Assessment, error) {
	return s.store.Assessments().List(ctx)
}

func (s *Service) GetAssessment(ctx context.Context, id int) (*domain.Assessment, error) {
	return s.store.Assessments().Get(ctx, id)
}

// CreateAssessment scores an image with a model. Both must exist. The scores
// are generated by the service; a quality metrics record is created alongside.
func (s *Service) CreateAssessment(ctx context.Context, imageID, modelID int) (*domain.Assessment, error) {
	if _, err := s.store.Images().Get(ctx, imageID); err != nil {
		return nil, err
	}
	if _, err := s.store.Models().Get(ctx, modelID); err != nil {
		return nil, err
	}

	assessment, err := s.store.Assessments().Create(ctx, domain.Assessment{
		ImageID:         imageID,
		ModelID:         modelID,
		GSDValue:        round2(randomInRange(gsdMin, gsdMax)),
		ConfidenceScore: round2(randomInRange(confidenceMin, confidenceMax)),
		ProcessingTime:  round2(randomInRange(processingMin, processingMax)),
		AssessmentDate:  s.clock.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.store.Quality().Create(ctx, domain.QualityMetrics{
		AssessmentID:   assessment.ID,
		SharpnessScore: 0.8,
		NoiseLevel:     0.1,
		ContrastRatio:  2.5,
		BlurDetected:   false,
		QualityGrade:   "good",
	}); err != nil {
		return nil, err
	}

	metrics.AssessmentsCreatedTotal.Inc()
	return assessment, nil
}

func (s *Service) UpdateAssessment(ctx context.Context, id int, upd AssessmentUpdate) (*domain.Assessment, error) {
	assessment, err := s.store.Assessments().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.GSDValue != nil {
		assessment.GSDValue = *upd.GSDValue
	}
	if upd.ConfidenceScore != nil {
		assessment.ConfidenceScore = *upd.ConfidenceScore
	}

	if err := s.store.Assessments().Save(ctx, *assessment); err != nil {
		return nil, err
	}
	return assessment, nil
}

// DeleteAssessment removes the assessment and its quality metrics.
func (s *Service) DeleteAssessment(ctx context.Context, id int) (*domain.Assessment, error) {
	assessment, err := s.store.Assessments().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.Quality().DeleteByAssessment(ctx, id); err != nil {
		return nil, err
	}
	if err := s.store.Assessments().Delete(ctx, id); err != nil {
		return nil, err
	}
	return assessment, nil
}

// GetAssessmentQuality returns the quality metrics recorded for an assessment.
func (s *Service) GetAssessmentQuality(ctx context.Context, assessmentID int) (*domain.QualityMetrics, error) {
	if _, err := s.store.Assessments().Get(ctx, assessmentID); err != nil {
		return nil, err
	}
	return s.store.Quality().GetByAssessment(ctx, assessmentID)
}

// --- reset ---

// Reset drops the entire dataset. Test support only.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Reset(ctx); err != nil {
		return err
	}
	metrics.DatasetResetsTotal.Inc()
	return nil
}

func randomInRange(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
