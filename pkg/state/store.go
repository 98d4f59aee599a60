package state

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"jobtion/pkg/resume"
)

// Store is the snapshot persistence port: whole-value, last-write-wins
// load/save by key. The pipeline never touches it; only the state layer
// owns read-modify-write cycles, and there is no multi-writer concurrency
// to resolve for a single-user deployment.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// ErrVersionNotFound is returned when a named version id is unknown.
var ErrVersionNotFound = errors.New("saved version not found")

const (
	resumeKey     = "resume"
	versionPrefix = "version:"
)

// SavedVersion is a named, timestamped snapshot of the whole resume
// document. Loading one replaces the editor state wholesale; there are no
// merging semantics.
type SavedVersion struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	SavedAt time.Time       `json:"savedAt"`
	Resume  resume.Document `json:"resume"`
}

// VersionMeta is the listing view of a SavedVersion, without the payload.
type VersionMeta struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	SavedAt time.Time `json:"savedAt"`
}

// UseCase exposes the stored base resume and the named version library.
type UseCase interface {
	SaveResume(ctx context.Context, doc resume.Document) error
	LoadResume(ctx context.Context) (resume.Document, bool, error)
	DeleteResume(ctx context.Context) error

	SaveVersion(ctx context.Context, name string, doc resume.Document) (SavedVersion, error)
	ListVersions(ctx context.Context) ([]VersionMeta, error)
	GetVersion(ctx context.Context, id uuid.UUID) (SavedVersion, error)
	DeleteVersion(ctx context.Context, id uuid.UUID) error
}

type service struct {
	store Store
}

func NewService(store Store) UseCase { return &service{store: store} }

func (s *service) SaveResume(ctx context.Context, doc resume.Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, resumeKey, b)
}

func (s *service) LoadResume(ctx context.Context) (resume.Document, bool, error) {
	b, ok, err := s.store.Load(ctx, resumeKey)
	if err != nil || !ok {
		return resume.Document{}, false, err
	}
	var doc resume.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return resume.Document{}, false, err
	}
	return doc, true, nil
}

func (s *service) DeleteResume(ctx context.Context) error {
	return s.store.Delete(ctx, resumeKey)
}

func (s *service) SaveVersion(ctx context.Context, name string, doc resume.Document) (SavedVersion, error) {
	v := SavedVersion{
		ID:      uuid.New(),
		Name:    name,
		SavedAt: time.Now().UTC(),
		Resume:  doc,
	}
	b, err := json.Marshal(v)
	if err != nil {
		return SavedVersion{}, err
	}
	if err := s.store.Save(ctx, versionPrefix+v.ID.String(), b); err != nil {
		return SavedVersion{}, err
	}
	return v, nil
}

func (s *service) ListVersions(ctx context.Context) ([]VersionMeta, error) {
	keys, err := s.store.Keys(ctx, versionPrefix)
	if err != nil {
		return nil, err
	}
	metas := make([]VersionMeta, 0, len(keys))
	for _, key := range keys {
		b, ok, err := s.store.Load(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		var v SavedVersion
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, err
		}
		metas = append(metas, VersionMeta{ID: v.ID, Name: v.Name, SavedAt: v.SavedAt})
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].SavedAt.After(metas[j].SavedAt) })
	return metas, nil
}

func (s *service) GetVersion(ctx context.Context, id uuid.UUID) (SavedVersion, error) {
	b, ok, err := s.store.Load(ctx, versionPrefix+id.String())
	if err != nil {
		return SavedVersion{}, err
	}
	if !ok {
		return SavedVersion{}, ErrVersionNotFound
	}
	var v SavedVersion
	if err := json.Unmarshal(b, &v); err != nil {
		return SavedVersion{}, err
	}
	return v, nil
}

func (s *service) DeleteVersion(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, versionPrefix+id.String())
}
