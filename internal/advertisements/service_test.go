package advertisements

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/loungecast/loungecast-backend/pkg/db/models"
	pkgerrors "github.com/loungecast/loungecast-backend/pkg/errors"
)

type stubRepo struct {
	created   *models.Advertisement
	ad        *models.Advertisement
	updated   map[string]any
	activeAt  time.Time
	activeAds []models.Advertisement
	toggleOK  bool
}

func (s *stubRepo) Create(ctx context.Context, ad *models.Advertisement) error {
	s.created = ad
	return nil
}
func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Advertisement, error) {
	if s.ad != nil && s.ad.ID == id {
		return s.ad, nil
	}
	return nil, nil
}
func (s *stubRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (bool, error) {
	if s.ad == nil || s.ad.ID != id {
		return false, nil
	}
	s.updated = fields
	return true, nil
}
func (s *stubRepo) ListActiveAt(ctx context.Context, at time.Time) ([]models.Advertisement, error) {
	s.activeAt = at
	return s.activeAds, nil
}
func (s *stubRepo) List(ctx context.Context) ([]models.Advertisement, error) { return nil, nil }
func (s *stubRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) (bool, error) {
	return s.toggleOK, nil
}
func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) { return s.toggleOK, nil }

func TestCreateRejectsEndBeforeStart(t *testing.T) {
	svc, _ := NewService(ServiceParams{Repo: &stubRepo{}})
	start := time.Now()
	end := start.Add(-time.Hour)

	_, err := svc.Create(context.Background(), CreateInput{
		Title:     "Happy Hour",
		ImageURL:  "https://cdn.example/happy.png",
		StartDate: start,
		EndDate:   &end,
	})
	if err == nil {
		t.Fatal("expected validation error")
	} else if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateAllowsOpenEndedCampaign(t *testing.T) {
	repo := &stubRepo{}
	svc, _ := NewService(ServiceParams{Repo: repo})

	ad, err := svc.Create(context.Background(), CreateInput{
		Title:     "  Happy Hour ",
		ImageURL:  "https://cdn.example/happy.png",
		StartDate: time.Now(),
		IsActive:  true,
		Priority:  2,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ad.Title != "Happy Hour" {
		t.Fatalf("expected trimmed title, got %q", ad.Title)
	}
	if ad.EndDate != nil {
		t.Fatal("expected open-ended campaign")
	}
	if repo.created == nil {
		t.Fatal("expected repo create call")
	}
}

func TestActiveQueriesCurrentTime(t *testing.T) {
	repo := &stubRepo{activeAds: []models.Advertisement{{ID: uuid.New()}}}
	svc, _ := NewService(ServiceParams{Repo: repo})
	fixed := time.Date(2025, 7, 14, 18, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	ads, err := svc.Active(context.Background())
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(ads) != 1 {
		t.Fatalf("expected one ad, got %d", len(ads))
	}
	if !repo.activeAt.Equal(fixed) {
		t.Fatalf("expected query at %s, got %s", fixed, repo.activeAt)
	}
}

func TestUpdateRejectsEndBeforeMergedStart(t *testing.T) {
	start := time.Now()
	repo := &stubRepo{ad: &models.Advertisement{
		ID:        uuid.New(),
		Title:     "Happy Hour",
		ImageURL:  "https://cdn.example/happy.png",
		StartDate: start,
	}}
	svc, _ := NewService(ServiceParams{Repo: repo})

	end := start.Add(-time.Hour)
	_, err := svc.Update(context.Background(), repo.ad.ID, UpdateInput{EndDate: &end})
	if err == nil {
		t.Fatal("expected validation error")
	} else if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("closed-before-open schedule must not reach the repository")
	}
}

func TestUpdateReprioritizesCampaign(t *testing.T) {
	repo := &stubRepo{ad: &models.Advertisement{
		ID:        uuid.New(),
		Title:     "Happy Hour",
		ImageURL:  "https://cdn.example/happy.png",
		StartDate: time.Now(),
		Priority:  10,
	}}
	svc, _ := NewService(ServiceParams{Repo: repo})

	priority := 90
	active := false
	if _, err := svc.Update(context.Background(), repo.ad.ID, UpdateInput{Priority: &priority, IsActive: &active}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.updated["priority"] != 90 {
		t.Fatalf("expected priority 90 in update, got %v", repo.updated["priority"])
	}
	if repo.updated["is_active"] != false {
		t.Fatalf("expected is_active false in update, got %v", repo.updated["is_active"])
	}
	if _, ok := repo.updated["title"]; ok {
		t.Fatal("untouched fields must not be written")
	}
}

func TestSetActiveMissingAd(t *testing.T) {
	svc, _ := NewService(ServiceParams{Repo: &stubRepo{toggleOK: false}})

	err := svc.SetActive(context.Background(), uuid.New(), false)
	if err == nil {
		t.Fatal("expected not found")
	} else if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
