package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/t0sssik/gsd-ci-cd/internal/domain"
)

// Store holds every collection behind one lock. Individual repositories are
// views over the same maps, so cross-resource operations (cascading deletes,
// reset) stay consistent.
type Store struct {
	mu sync.RWMutex

	users       map[int]domain.User
	images      map[int]domain.Image
	models      map[int]domain.Model
	assessments map[int]domain.Assessment
	quality     map[int]domain.QualityMetrics

	nextUserID       int
	nextImageID      int
	nextModelID      int
	nextAssessmentID int
	nextQualityID    int
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.users = make(map[int]domain.User)
	s.images = make(map[int]domain.Image)
	s.models = make(map[int]domain.Model)
	s.assessments = make(map[int]domain.Assessment)
	s.quality = make(map[int]domain.QualityMetrics)
	s.nextUserID = 1
	s.nextImageID = 1
	s.nextModelID = 1
	s.nextAssessmentID = 1
	s.nextQualityID = 1
}

func (s *Store) Users() domain.UserRepository             { return userRepo{s} }
func (s *Store) Images() domain.ImageRepository           { return imageRepo{s} }
func (s *Store) Models() domain.ModelRepository           { return modelRepo{s} }
func (s *Store) Assessments() domain.AssessmentRepository { return assessmentRepo{s} }
func (s *Store) Quality() domain.QualityRepository        { return qualityRepo{s} }

// Ping always succeeds; there is no external backend to reach.
func (s *Store) Ping(_ context.Context) error { return nil }

// Reset drops every record and restarts the id counters.
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

// sortedByID returns the map values ordered by ascending id, so listings are
// stable regardless of map iteration order.
func sortedByID[T any](m map[int]T, id func(T) int) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}

// --- users ---

type userRepo struct{ s *Store }

func (r userRepo) List(_ context.Context) ([]domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.users, func(u domain.User) int { return u.ID }), nil
}

func (r userRepo) Get(_ context.Context, id int) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r userRepo) Create(_ context.Context, user domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = r.s.nextUserID
	r.s.nextUserID++
	r.s.users[user.ID] = user
	return &user, nil
}

func (r userRepo) Save(_ context.Context, user domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.s.users[user.ID] = user
	return nil
}

func (r userRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.s.users, id)
	return nil
}

// --- images ---

type imageRepo struct{ s *Store }

func (r imageRepo) List(_ context.Context) ([]domain.Image, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.images, func(i domain.Image) int { return i.ID }), nil
}

func (r imageRepo) ListByUser(_ context.Context, userID int) ([]domain.Image, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	owned := make(map[int]domain.Image)
	for id, img := range r.s.images {
		if img.UserID == userID {
			owned[id] = img
		}
	}
	return sortedByID(owned, func(i domain.Image) int { return i.ID }), nil
}

func (r imageRepo) Get(_ context.Context, id int) (*domain.Image, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	img, ok := r.s.images[id]
	if !ok {
		return nil, domain.ErrImageNotFound
	}
	return &img, nil
}

func (r imageRepo) Create(_ context.Context, image domain.Image) (*domain.Image, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	image.ID = r.s.nextImageID
	r.s.nextImageID++
	r.s.images[image.ID] = image
	return &image, nil
}

func (r imageRepo) Save(_ context.Context, image domain.Image) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.images[image.ID]; !ok {
		return domain.ErrImageNotFound
	}
	r.s.images[image.ID] = image
	return nil
}

func (r imageRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.images[id]; !ok {
		return domain.ErrImageNotFound
	}
	delete(r.s.images, id)
	return nil
}

// --- models ---

type modelRepo struct{ s *Store }

func (r modelRepo) List(_ context.Context) ([]domain.Model, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.models, func(m domain.Model) int { return m.ID }), nil
}

func (r modelRepo) Get(_ context.Context, id int) (*domain.Model, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.models[id]
	if !ok {
		return nil, domain.ErrModelNotFound
	}
	return &m, nil
}

func (r modelRepo) Create(_ context.Context, model domain.Model) (*domain.Model, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	model.ID = r.s.nextModelID
	r.s.nextModelID++
	r.s.models[model.ID] = model
	return &model, nil
}

func (r modelRepo) Save(_ context.Context, model domain.Model) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.models[model.ID]; !ok {
		return domain.ErrModelNotFound
	}
	r.s.models[model.ID] = model
	return nil
}

func (r modelRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.models[id]; !ok {
		return domain.ErrModelNotFound
	}
	delete(r.s.models, id)
	return nil
}

// --- assessments ---

type assessmentRepo struct{ s *Store }

func (r assessmentRepo) List(_ context.Context) ([]domain.Assessment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return sortedByID(r.s.assessments, func(a domain.Assessment) int { return a.ID }), nil
}

func (r assessmentRepo) ListByImage(_ context.Context, imageID int) ([]domain.Assessment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	matched := make(map[int]domain.Assessment)
	for id, a := range r.s.assessments {
		if a.ImageID == imageID {
			matched[id] = a
		}
	}
	return sortedByID(matched, func(a domain.Assessment) int { return a.ID }), nil
}

func (r assessmentRepo) Get(_ context.Context, id int) (*domain.Assessment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.assessments[id]
	if !ok {
		return nil, domain.ErrAssessmentNotFound
	}
	return &a, nil
}

func (r assessmentRepo) Create(_ context.Context, assessment domain.Assessment) (*domain.Assessment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	assessment.ID = r.s.nextAssessmentID
	r.s.nextAssessmentID++
	r.s.assessments[assessment.ID] = assessment
	return &assessment, nil
}

func (r assessmentRepo) Save(_ context.Context, assessment domain.Assessment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.assessments[assessment.ID]; !ok {
		return domain.ErrAssessmentNotFound
	}
	r.s.assessments[assessment.ID] = assessment
	return nil
}

func (r assessmentRepo) Delete(_ context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.assessments[id]; !ok {
		return domain.ErrAssessmentNotFound
	}
	delete(r.s.assessments, id)
	return nil
}

// --- quality metrics ---

type qualityRepo struct{ s *Store }

func (r qualityRepo) GetByAssessment(_ context.Context, assessmentID int) (*domain.QualityMetrics, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, q := range r.s.quality {
		if q.AssessmentID == assessmentID {
			return &q, nil
		}
	}
	return nil, domain.ErrQualityNotFound
}

func (r qualityRepo) Create(_ context.Context, metrics domain.QualityMetrics) (*domain.QualityMetrics, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	metrics.ID = r.s.nextQualityID
	r.s.nextQualityID++
	r.s.quality[metrics.ID] = metrics
	return &metrics, nil
}

func (r qualityRepo) DeleteByAssessment(_ context.Context, assessmentID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, q := range r.s.quality {
		if q.AssessmentID == assessmentID {
			delete(r.s.quality, id)
		}
	}
	return nil
}
