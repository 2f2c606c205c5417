package app

import (
	"context"
	"strings"
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/job"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/tag"
)

const (
	homeJobLimit      = 5
	homeTrendingLimit = 3
	defaultListLimit  = 10
	maxListLimit      = 50
)

type JobService struct {
	repo job.Repository
	tags tag.Repository
}

func NewJobService(repo job.Repository, tags tag.Repository) *JobService {
	return &JobService{repo: repo, tags: tags}
}

type HomePage struct {
	Jobs     []job.Job `json:"jobs"`
	Trending []job.Job `json:"trending"`
}

func (s *JobService) Home(ctx context.Context) (*HomePage, error) {
	jobs, err := s.repo.ListUnfilled(ctx, homeJobLimit, 0)
	if err != nil {
		return nil, err
	}
	trending, err := s.repo.ListTrending(ctx, time.Now().UTC(), homeTrendingLimit)
	if err != nil {
		return nil, err
	}
	return &HomePage{Jobs: jobs, Trending: trending}, nil
}

func (s *JobService) List(ctx context.Context, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListUnfilled(ctx, limit, offset)
}

func (s *JobService) Search(ctx context.Context, location, title string) ([]job.Job, error) {
	return s.repo.Search(ctx, strings.TrimSpace(location), strings.TrimSpace(title))
}

func (s *JobService) Get(ctx context.Context, id common.UUID) (*job.Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *JobService) ListByOwner(ctx context.Context, ownerID common.UUID) ([]job.Job, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *JobService) Create(ctx context.Context, posting job.Job) (*job.Job, error) {
	if err := s.validate(ctx, posting); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, posting)
}

func (s *JobService) Update(ctx context.Context, posting job.Job) (*job.Job, error) {
	if err := s.validate(ctx, posting); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, posting)
}

func (s *JobService) MarkFilled(ctx context.Context, id, ownerID common.UUID) error {
	return s.repo.MarkFilled(ctx, id, ownerID)
}

func (s *JobService) Tags(ctx context.Context) ([]tag.Tag, error) {
	return s.tags.List(ctx)
}

func (s *JobService) validate(ctx context.Context, posting job.Job) error {
	fields := map[string]string{}
	if strings.TrimSpace(posting.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(posting.Description) == "" {
		fields["description"] = "description is required"
	}
	if strings.TrimSpace(posting.Location) == "" {
		fields["location"] = "location is required"
	}
	if !knownJobType(posting.Type) {
		fields["type"] = "type must be full_time, part_time, contract, or internship"
	}
	if strings.TrimSpace(posting.Category) == "" {
		fields["category"] = "category is required"
	}
	if strings.TrimSpace(posting.CompanyName) == "" {
		fields["company_name"] = "company name is required"
	}
	if posting.LastDate.IsZero() {
		fields["last_date"] = "last date is required"
	} else if posting.LastDate.Before(today()) {
		fields["last_date"] = "last date can't be before today"
	}
	if len(posting.Tags) > job.MaxTags {
		fields["tags"] = "a job can't carry more than 7 tags"
	} else if len(posting.Tags) > 0 {
		missing, err := s.tags.Missing(ctx, posting.Tags)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			fields["tags"] = "unknown tags: " + strings.Join(missing, ", ")
		}
	}
	if len(fields) > 0 {
		return common.NewValidationError("invalid job", fields)
	}
	return nil
}

func knownJobType(t job.Type) bool {
	switch t {
	case job.TypeFullTime, job.TypePartTime, job.TypeContract, job.TypeInternship:
		return true
	default:
		return false
	}
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
