package app

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/applicant"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/auth"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/favorite"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/job"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/tag"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/user"
)

type fakeJobRepository struct {
	mu   sync.Mutex
	jobs map[common.UUID]job.Job
}

func newFakeJobRepository() *fakeJobRepository {
	return &fakeJobRepository{jobs: make(map[common.UUID]job.Job)}
}

func (r *fakeJobRepository) Create(_ context.Context, posting job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posting.ID = common.NewUUID()
	posting.CreatedAt = time.Now().UTC()
	posting.UpdatedAt = posting.CreatedAt
	r.jobs[posting.ID] = posting
	return &posting, nil
}

func (r *fakeJobRepository) Update(_ context.Context, posting job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.jobs[posting.ID]
	if !ok || stored.OwnerID != posting.OwnerID {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	posting.CreatedAt = stored.CreatedAt
	posting.UpdatedAt = time.Now().UTC()
	r.jobs[posting.ID] = posting
	return &posting, nil
}

func (r *fakeJobRepository) GetByID(_ context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.jobs[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	return &stored, nil
}

func (r *fakeJobRepository) ListUnfilled(_ context.Context, limit, offset int) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, stored := range r.jobs {
		if !stored.Filled {
			items = append(items, stored)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if offset >= len(items) {
		return nil, nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *fakeJobRepository) ListTrending(_ context.Context, month time.Time, limit int) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, stored := range r.jobs {
		if !stored.Filled && stored.CreatedAt.Year() == month.Year() && stored.CreatedAt.Month() == month.Month() {
			items = append(items, stored)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *fakeJobRepository) Search(_ context.Context, location, title string) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, stored := range r.jobs {
		if stored.Filled {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(stored.Location), strings.ToLower(location)) {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(stored.Title), strings.ToLower(title)) {
			continue
		}
		items = append(items, stored)
	}
	return items, nil
}

func (r *fakeJobRepository) ListByOwner(_ context.Context, ownerID common.UUID) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, stored := range r.jobs {
		if stored.OwnerID == ownerID {
			items = append(items, stored)
		}
	}
	return items, nil
}

func (r *fakeJobRepository) MarkFilled(_ context.Context, id, ownerID common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.jobs[id]
	if !ok || stored.OwnerID != ownerID {
		return nil
	}
	stored.Filled = true
	r.jobs[id] = stored
	return nil
}

type fakeTagRepository struct {
	names map[string]bool
}

func newFakeTagRepository(names ...string) *fakeTagRepository {
	known := make(map[string]bool, len(names))
	for _, name := range names {
		known[name] = true
	}
	return &fakeTagRepository{names: known}
}

func (r *fakeTagRepository) List(_ context.Context) ([]tag.Tag, error) {
	items := make([]tag.Tag, 0, len(r.names))
	for name := range r.names {
		items = append(items, tag.Tag{ID: common.NewUUID(), Name: name})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *fakeTagRepository) Missing(_ context.Context, names []string) ([]string, error) {
	var missing []string
	for _, name := range names {
		if !r.names[name] {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

type fakeApplicantRepository struct {
	mu         sync.Mutex
	applicants map[common.UUID]applicant.Applicant
	jobs       *fakeJobRepository
}

func newFakeApplicantRepository(jobs *fakeJobRepository) *fakeApplicantRepository {
	return &fakeApplicantRepository{
		applicants: make(map[common.UUID]applicant.Applicant),
		jobs:       jobs,
	}
}

func (r *fakeApplicantRepository) Create(_ context.Context, app applicant.Applicant) (*applicant.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.applicants {
		if stored.UserID == app.UserID && stored.JobID == app.JobID {
			return nil, common.NewError(common.CodeConflict, "already applied", nil)
		}
	}
	app.ID = common.NewUUID()
	app.CreatedAt = time.Now().UTC()
	app.UpdatedAt = app.CreatedAt
	r.applicants[app.ID] = app
	return &app, nil
}

func (r *fakeApplicantRepository) GetByID(_ context.Context, id common.UUID) (*applicant.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.applicants[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "applicant not found", nil)
	}
	return &stored, nil
}

func (r *fakeApplicantRepository) FindByJobAndUser(_ context.Context, jobID, userID common.UUID) (*applicant.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.applicants {
		if stored.JobID == jobID && stored.UserID == userID {
			found := stored
			return &found, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "applicant not found", nil)
}

func (r *fakeApplicantRepository) ListByUser(_ context.Context, userID common.UUID, status *applicant.Status) ([]applicant.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []applicant.Applicant
	for _, stored := range r.applicants {
		if stored.UserID != userID {
			continue
		}
		if status != nil && stored.Status != *status {
			continue
		}
		items = append(items, stored)
	}
	return items, nil
}

func (r *fakeApplicantRepository) ListByJob(_ context.Context, jobID common.UUID) ([]applicant.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []applicant.Applicant
	for _, stored := range r.applicants {
		if stored.JobID == jobID {
			items = append(items, stored)
		}
	}
	return items, nil
}

func (r *fakeApplicantRepository) ListByOwner(ctx context.Context, ownerID common.UUID, status *applicant.Status) ([]applicant.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []applicant.Applicant
	for _, stored := range r.applicants {
		posting, ok := r.jobs.jobs[stored.JobID]
		if !ok || posting.OwnerID != ownerID {
			continue
		}
		if status != nil && stored.Status != *status {
			continue
		}
		items = append(items, stored)
	}
	return items, nil
}

func (r *fakeApplicantRepository) UpdateStatus(_ context.Context, id common.UUID, status applicant.Status, comment string) (*applicant.Applicant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.applicants[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "applicant not found", nil)
	}
	stored.Status = status
	stored.Comment = comment
	stored.UpdatedAt = time.Now().UTC()
	r.applicants[id] = stored
	return &stored, nil
}

type favoriteKey struct {
	userID common.UUID
	jobID  common.UUID
}

type fakeFavoriteRepository struct {
	mu        sync.Mutex
	favorites map[favoriteKey]favorite.Favorite
	jobs      *fakeJobRepository
}

func newFakeFavoriteRepository(jobs *fakeJobRepository) *fakeFavoriteRepository {
	return &fakeFavoriteRepository{
		favorites: make(map[favoriteKey]favorite.Favorite),
		jobs:      jobs,
	}
}

func (r *fakeFavoriteRepository) Toggle(_ context.Context, userID, jobID common.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := favoriteKey{userID: userID, jobID: jobID}
	stored, ok := r.favorites[key]
	if !ok {
		r.favorites[key] = favorite.Favorite{
			ID:        common.NewUUID(),
			UserID:    userID,
			JobID:     jobID,
			CreatedAt: time.Now().UTC(),
		}
		return true, nil
	}
	stored.SoftDeleted = !stored.SoftDeleted
	r.favorites[key] = stored
	return !stored.SoftDeleted, nil
}

func (r *fakeFavoriteRepository) ListActiveByUser(_ context.Context, userID common.UUID) ([]favorite.WithJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []favorite.WithJob
	for key, stored := range r.favorites {
		if key.userID != userID || stored.SoftDeleted {
			continue
		}
		items = append(items, favorite.WithJob{Favorite: stored, Job: r.jobs.jobs[key.jobID]})
	}
	return items, nil
}

type fakeUserRepository struct {
	mu    sync.Mutex
	users map[common.UUID]user.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[common.UUID]user.User)}
}

func (r *fakeUserRepository) Create(_ context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.users {
		if stored.Email == account.Email {
			return nil, common.NewError(common.CodeConflict, "user with this email already exists", nil)
		}
	}
	account.ID = common.NewUUID()
	account.CreatedAt = time.Now().UTC()
	account.UpdatedAt = account.CreatedAt
	r.users[account.ID] = account
	return &account, nil
}

func (r *fakeUserRepository) GetByID(_ context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	return &stored, nil
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.users {
		if stored.Email == email {
			found := stored
			return &found, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "user not found", nil)
}

func (r *fakeUserRepository) Update(_ context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[account.ID]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	account.CreatedAt = stored.CreatedAt
	account.UpdatedAt = time.Now().UTC()
	r.users[account.ID] = account
	return &account, nil
}

func (r *fakeUserRepository) setActive(id common.UUID, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.users[id]
	stored.IsActive = active
	r.users[id] = stored
}

type fakeRefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]auth.RefreshToken
}

func newFakeRefreshTokenRepository() *fakeRefreshTokenRepository {
	return &fakeRefreshTokenRepository{tokens: make(map[string]auth.RefreshToken)}
}

func (r *fakeRefreshTokenRepository) Store(_ context.Context, token auth.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeRefreshTokenRepository) GetByToken(_ context.Context, token string) (*auth.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[token]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "refresh token not found", nil)
	}
	return &stored, nil
}

func (r *fakeRefreshTokenRepository) Revoke(_ context.Context, token string, revokedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.tokens[token]
	if !ok || stored.RevokedAt != nil {
		return nil
	}
	stored.RevokedAt = &revokedAt
	r.tokens[token] = stored
	return nil
}

type fakeLogger struct{}

func (fakeLogger) Info(string)  {}
func (fakeLogger) Error(string) {}
