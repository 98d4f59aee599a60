package tracker

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned for missing records.
var ErrNotFound = errors.New("job record not found")

// UseCase covers the application-tracker scenarios.
type UseCase interface {
	Create(ctx context.Context, rec JobRecord) (JobRecord, error)
	Update(ctx context.Context, rec JobRecord) (JobRecord, error)
	SetStatus(ctx context.Context, id uuid.UUID, status Status) (JobRecord, error)
	Get(ctx context.Context, id uuid.UUID) (JobRecord, error)
	List(ctx context.Context, limit, offset int) ([]JobRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, rec JobRecord) (JobRecord, error) {
	rec.Title = strings.TrimSpace(rec.Title)
	if rec.Title == "" {
		return JobRecord{}, ErrValidation("title is required")
	}
	if rec.Status == "" {
		rec.Status = StatusSaved
	} else if _, err := ParseStatus(string(rec.Status)); err != nil {
		return JobRecord{}, ErrValidation(err.Error())
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Requirements == nil {
		rec.Requirements = []string{}
	}
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if err := s.repo.Create(ctx, rec); err != nil {
		return JobRecord{}, err
	}
	return rec, nil
}

func (s *service) Update(ctx context.Context, rec JobRecord) (JobRecord, error) {
	if rec.ID == uuid.Nil {
		return JobRecord{}, ErrValidation("id is required")
	}
	if _, err := ParseStatus(string(rec.Status)); err != nil {
		return JobRecord{}, ErrValidation(err.Error())
	}
	current, err := s.repo.GetByID(ctx, rec.ID)
	if err != nil {
		return JobRecord{}, err
	}
	rec.CreatedAt = current.CreatedAt
	rec.UpdatedAt = time.Now().UTC()
	if rec.Requirements == nil {
		rec.Requirements = []string{}
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return JobRecord{}, err
	}
	return rec, nil
}

func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status Status) (JobRecord, error) {
	if _, err := ParseStatus(string(status)); err != nil {
		return JobRecord{}, ErrValidation(err.Error())
	}
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return JobRecord{}, err
	}
	rec.Status = status
	rec.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, rec); err != nil {
		return JobRecord{}, err
	}
	return rec, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (JobRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]JobRecord, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ErrValidation is a simple user-facing validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }
