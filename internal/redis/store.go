package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/t0sssik/gsd-ci-cd/internal/domain"
)

const (
	usersKey       = "gsd:users"
	imagesKey      = "gsd:images"
	modelsKey      = "gsd:models"
	assessmentsKey = "gsd:assessments"
	qualityKey     = "gsd:quality"
)

func counterKey(hashKey string) string { return hashKey + ":next" }

// Store implements domain.Store on top of a go-redis client.
type Store struct {
	rdb *redis.Client
}

// NewStore wraps an existing client. The caller owns the client's lifecycle.
func NewStore(client *redis.Client) *Store {
	return &Store{rdb: client}
}

func (s *Store) Users() domain.UserRepository { return userRepo{s.users()} }
func (s *Store) Images() domain.ImageRepository {
	return imageRepo{s.images()}
}
func (s *Store) Models() domain.ModelRepository { return modelRepo{s.models()} }
func (s *Store) Assessments() domain.AssessmentRepository {
	return assessmentRepo{s.assessments()}
}
func (s *Store) Quality() domain.QualityRepository { return qualityRepo{s.quality()} }

// Ping verifies the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Reset drops every resource hash and id counter.
func (s *Store) Reset(ctx context.Context) error {
	keys := []string{usersKey, imagesKey, modelsKey, assessmentsKey, qualityKey}
	for _, k := range []string{usersKey, imagesKey, modelsKey, assessmentsKey, qualityKey} {
		keys = append(keys, counterKey(k))
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to reset redis store: %w", err)
	}
	return nil
}

func (s *Store) users() collection[domain.User] {
	return collection[domain.User]{
		rdb:      s.rdb,
		key:      usersKey,
		id:       func(u *domain.User) int { return u.ID },
		setID:    func(u *domain.User, id int) { u.ID = id },
		notFound: domain.ErrUserNotFound,
	}
}

func (s *Store) images() collection[domain.Image] {
	return collection[domain.Image]{
		rdb:      s.rdb,
		key:      imagesKey,
		id:       func(i *domain.Image) int { return i.ID },
		setID:    func(i *domain.Image, id int) { i.ID = id },
		notFound: domain.ErrImageNotFound,
	}
}

func (s *Store) models() collection[domain.Model] {
	return collection[domain.Model]{
		rdb:      s.rdb,
		key:      modelsKey,
		id:       func(m *domain.Model) int { return m.ID },
		setID:    func(m *domain.Model, id int) { m.ID = id },
		notFound: domain.ErrModelNotFound,
	}
}

func (s *Store) assessments() collection[domain.Assessment] {
	return collection[domain.Assessment]{
		rdb:      s.rdb,
		key:      assessmentsKey,
		id:       func(a *domain.Assessment) int { return a.ID },
		setID:    func(a *domain.Assessment, id int) { a.ID = id },
		notFound: domain.ErrAssessmentNotFound,
	}
}

func (s *Store) quality() collection[domain.QualityMetrics] {
	return collection[domain.QualityMetrics]{
		rdb:      s.rdb,
		key:      qualityKey,
		id:       func(q *domain.QualityMetrics) int { return q.ID },
		setID:    func(q *domain.QualityMetrics, id int) { q.ID = id },
		notFound: domain.ErrQualityNotFound,
	}
}

// collection implements the shared CRUD mechanics for one resource hash.
type collection[T any] struct {
	rdb      *redis.Client
	key      string
	id       func(*T) int
	setID    func(*T, int)
	notFound error
}

func (c collection[T]) list(ctx context.Context) ([]T, error) {
	raw, err := c.rdb.HGetAll(ctx, c.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.key, err)
	}

	out := make([]T, 0, len(raw))
	for _, encoded := range raw {
		var v T
		if err := json.Unmarshal([]byte(encoded), &v); err != nil {
			return nil, fmt.Errorf("failed to decode record in %s: %w", c.key, err)
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return c.id(&out[i]) < c.id(&out[j]) })
	return out, nil
}

func (c collection[T]) get(ctx context.Context, id int) (*T, error) {
	encoded, err := c.rdb.HGet(ctx, c.key, strconv.Itoa(id)).Result()
	if err == redis.Nil {
		return nil, c.notFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s[%d]: %w", c.key, id, err)
	}

	var v T
	if err := json.Unmarshal([]byte(encoded), &v); err != nil {
		return nil, fmt.Errorf("failed to decode %s[%d]: %w", c.key, id, err)
	}
	return &v, nil
}

func (c collection[T]) create(ctx context.Context, v T) (*T, error) {
	id, err := c.rdb.Incr(ctx, counterKey(c.key)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to assign id in %s: %w", c.key, err)
	}
	c.setID(&v, int(id))

	if err := c.write(ctx, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c collection[T]) save(ctx context.Context, v T) error {
	exists, err := c.rdb.HExists(ctx, c.key, strconv.Itoa(c.id(&v))).Result()
	if err != nil {
		return fmt.Errorf("failed to check %s[%d]: %w", c.key, c.id(&v), err)
	}
	if !exists {
		return c.notFound
	}
	return c.write(ctx, &v)
}

func (c collection[T]) write(ctx context.Context, v *T) error {
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode record for %s: %w", c.key, err)
	}
	if err := c.rdb.HSet(ctx, c.key, strconv.Itoa(c.id(v)), encoded).Err(); err != nil {
		return fmt.Errorf("failed to write %s[%d]: %w", c.key, c.id(v), err)
	}
	return nil
}

func (c collection[T]) delete(ctx context.Context, id int) error {
	removed, err := c.rdb.HDel(ctx, c.key, strconv.Itoa(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete %s[%d]: %w", c.key, id, err)
	}
	if removed == 0 {
		return c.notFound
	}
	return nil
}

// --- repository adapters ---

type userRepo struct{ c collection[domain.User] }

func (r userRepo) List(ctx context.Context) ([]domain.User, error)    { return r.c.list(ctx) }
func (r userRepo) Get(ctx context.Context, id int) (*domain.User, error) { return r.c.get(ctx, id) }
func (r userRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	return r.c.create(ctx, u)
}
func (r userRepo) Save(ctx context.Context, u domain.User) error { return r.c.save(ctx, u) }
func (r userRepo) Delete(ctx context.Context, id int) error      { return r.c.delete(ctx, id) }

type imageRepo struct{ c collection[domain.Image] }

func (r imageRepo) List(ctx context.Context) ([]domain.Image, error) { return r.c.list(ctx) }

func (r imageRepo) ListByUser(ctx context.Context, userID int) ([]domain.Image, error) {
	all, err := r.c.list(ctx)
	if err != nil {
		return nil, err
	}
	owned := all[:0:0]
	for _, img := range all {
		if img.UserID == userID {
			owned = append(owned, img)
		}
	}
	return owned, nil
}

func (r imageRepo) Get(ctx context.Context, id int) (*domain.Image, error) { return r.c.get(ctx, id) }
func (r imageRepo) Create(ctx context.Context, i domain.Image) (*domain.Image, error) {
	return r.c.create(ctx, i)
}
func (r imageRepo) Save(ctx context.Context, i domain.Image) error { return r.c.save(ctx, i) }
func (r imageRepo) Delete(ctx context.Context, id int) error       { return r.c.delete(ctx, id) }

type modelRepo struct{ c collection[domain.Model] }

func (r modelRepo) List(ctx context.Context) ([]domain.Model, error)       { return r.c.list(ctx) }
func (r modelRepo) Get(ctx context.Context, id int) (*domain.Model, error) { return r.c.get(ctx, id) }
func (r modelRepo) Create(ctx context.Context, m domain.Model) (*domain.Model, error) {
	return r.c.create(ctx, m)
}
func (r modelRepo) Save(ctx context.Context, m domain.Model) error { return r.c.save(ctx, m) }
func (r modelRepo) Delete(ctx context.Context, id int) error       { return r.c.delete(ctx, id) }

type assessmentRepo struct{ c collection[domain.Assessment] }

func (r assessmentRepo) List(ctx context.Context) ([]domain.Assessment, error) { return r.c.list(ctx) }

func (r assessmentRepo) ListByImage(ctx context.Context, imageID int) ([]domain.Assessment, error) {
	all, err := r.c.list(ctx)
	if err != nil {
		return nil, err
	}
	matched := all[:0:0]
	for _, a := range all {
		if a.ImageID == imageID {
			matched = append(matched, a)
		}
	}
	return matched, nil
}

func (r assessmentRepo) Get(ctx context.Context, id int) (*domain.Assessment, error) {
	return r.c.get(ctx, id)
}
func (r assessmentRepo) Create(ctx context.Context, a domain.Assessment) (*domain.Assessment, error) {
	return r.c.create(ctx, a)
}
func (r assessmentRepo) Save(ctx context.Context, a domain.Assessment) error { return r.c.save(ctx, a) }
func (r assessmentRepo) Delete(ctx context.Context, id int) error            { return r.c.delete(ctx, id) }

type qualityRepo struct{ c collection[domain.QualityMetrics] }

func (r qualityRepo) GetByAssessment(ctx context.Context, assessmentID int) (*domain.QualityMetrics, error) {
	all, err := r.c.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].AssessmentID == assessmentID {
			return &all[i], nil
		}
	}
	return nil, domain.ErrQualityNotFound
}

func (r qualityRepo) Create(ctx context.Context, q domain.QualityMetrics) (*domain.QualityMetrics, error) {
	return r.c.create(ctx, q)
}

func (r qualityRepo) DeleteByAssessment(ctx context.Context, assessmentID int) error {
	all, err := r.c.list(ctx)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].AssessmentID == assessmentID {
			if err := r.c.delete(ctx, all[i].ID); err != nil {
				return err
			}
		}
	}
	return nil
}
