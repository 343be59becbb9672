package services

import (
	"context"

	"abarto-backend/internal/domain"
	"abarto-backend/internal/query"
	"abarto-backend/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// ResourceService is the generic service instantiated once per descriptor.
// It owns candidate validation and secret hashing; everything store-shaped
// lives in the repository.
type ResourceService struct {
	Repo repositories.ResourceRepository
}

func NewResourceService(repo repositories.ResourceRepository) ResourceService {
	return ResourceService{Repo: repo}
}

func (s ResourceService) Res() domain.Resource { return s.Repo.Res }

func (s ResourceService) List(ctx context.Context, p query.Pagination) ([]domain.Record, int64, error) {
	return s.Repo.List(ctx, p)
}

func (s ResourceService) Search(ctx context.Context, crit query.Criteria, p query.Pagination) ([]domain.Record, int64, error) {
	return s.Repo.Search(ctx, crit, p)
}

func (s ResourceService) Get(ctx context.Context, id int64) (domain.Record, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s ResourceService) Count(ctx context.Context, crit query.Criteria) (int64, error) {
	return s.Repo.Count(ctx, crit)
}

func (s ResourceService) Metadata(ctx context.Context, id int64) (repositories.Metadata, error) {
	return s.Repo.Metadata(ctx, id)
}

// Create validates the full candidate and persists it atomically: a record
// that fails validation never reaches the store.
func (s ResourceService) Create(ctx context.Context, rec domain.Record) (domain.Record, error) {
	rec = s.Repo.Res.Prune(rec)
	if err := s.Repo.Res.Validate(rec, domain.ModeCreate); err != nil {
		return nil, err
	}
	if err := s.hashSecrets(rec); err != nil {
		return nil, err
	}
	return s.Repo.Insert(ctx, rec)
}

// Replace is full-overwrite: schema fields missing from the candidate end up
// cleared. Validation runs against the complete candidate.
func (s ResourceService) Replace(ctx context.Context, id int64, rec domain.Record) (domain.Record, error) {
	rec = s.Repo.Res.Prune(rec)
	if err := s.Repo.Res.Validate(rec, domain.ModeReplace); err != nil {
		return nil, err
	}
	if err := s.hashSecrets(rec); err != nil {
		return nil, err
	}
	return s.Repo.Replace(ctx, id, rec)
}

// Patch validates only the named fields.
func (s ResourceService) Patch(ctx context.Context, id int64, rec domain.Record) (domain.Record, error) {
	rec = s.Repo.Res.Prune(rec)
	if err := s.Repo.Res.Validate(rec, domain.ModePatch); err != nil {
		return nil, err
	}
	if err := s.hashSecrets(rec); err != nil {
		return nil, err
	}
	return s.Repo.Patch(ctx, id, rec)
}

func (s ResourceService) Delete(ctx context.Context, id int64) (domain.Record, error) {
	return s.Repo.Delete(ctx, id)
}

// hashSecrets replaces plaintext credential fields with their bcrypt hash
// before anything is written.
func (s ResourceService) hashSecrets(rec domain.Record) error {
	for _, f := range s.Repo.Res.SecretFields() {
		v, ok := rec[f.Name]
		if !ok {
			continue
		}
		plain, ok := v.(string)
		if !ok || plain == "" {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			return domain.InternalError{Msg: "hash " + f.Name, Err: err}
		}
		rec[f.Name] = string(hash)
	}
	return nil
}
