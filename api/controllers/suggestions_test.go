package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loungecast/loungecast-backend/api/middleware"
	suggestionsvc "github.com/loungecast/loungecast-backend/internal/suggestions"
	"github.com/loungecast/loungecast-backend/pkg/db/models"
	"github.com/loungecast/loungecast-backend/pkg/enums"
	pkgerrors "github.com/loungecast/loungecast-backend/pkg/errors"
)

type fakeSuggestionRepo struct {
	byID    map[uuid.UUID]*models.VoteSuggestion
	created []*models.VoteSuggestion
	count   int64
}

func (f *fakeSuggestionRepo) WithTx(tx *gorm.DB) suggestionsvc.Repository { return f }

func (f *fakeSuggestionRepo) Create(ctx context.Context, suggestion *models.VoteSuggestion) error {
	suggestion.ID = uuid.New()
	f.created = append(f.created, suggestion)
	return nil
}

func (f *fakeSuggestionRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.VoteSuggestion, error) {
	return f.byID[id], nil
}

func (f *fakeSuggestionRepo) List(ctx context.Context, query suggestionsvc.ListQuery) ([]models.VoteSuggestion, error) {
	return nil, nil
}

func (f *fakeSuggestionRepo) ListTopVoted(ctx context.Context, limit int) ([]models.VoteSuggestion, error) {
	return nil, nil
}

func (f *fakeSuggestionRepo) CountCreatedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	return f.count, nil
}

func (f *fakeSuggestionRepo) IncrementPendingVotes(ctx context.Context, id uuid.UUID) (bool, error) {
	return true, nil
}

func (f *fakeSuggestionRepo) ResolvePending(ctx context.Context, id uuid.UUID, status enums.SuggestionStatus, resolvedAt time.Time) (bool, error) {
	return true, nil
}

type fakeLedger struct{}

func (f fakeLedger) WithTx(tx *gorm.DB) suggestionsvc.Ledger { return f }

func (f fakeLedger) Record(ctx context.Context, record *models.VoteRecord) error { return nil }

func (f fakeLedger) HasVoted(ctx context.Context, suggestionID, userID uuid.UUID) (bool, error) {
	return false, nil
}

func (f fakeLedger) ListVotedSuggestionIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

type fakeLimits struct {
	limit int
}

func (f fakeLimits) MaxDailySuggestions(ctx context.Context) (int, error) { return f.limit, nil }

type fakeTx struct{}

func (fakeTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

type fakeCategories struct {
	category *models.Category
}

func (f fakeCategories) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return f.category, nil
}

func newSuggestionService(t *testing.T, repo *fakeSuggestionRepo, limit int) *suggestionsvc.Service {
	t.Helper()
	quota, err := suggestionsvc.NewQuotaTracker(fakeLimits{limit: limit}, repo)
	if err != nil {
		t.Fatalf("quota tracker: %v", err)
	}
	svc, err := suggestionsvc.NewService(suggestionsvc.ServiceParams{
		Repo:   repo,
		Ledger: fakeLedger{},
		Quota:  quota,
		Tx:     fakeTx{},
		Categories: fakeCategories{category: &models.Category{
			ID:   uuid.New(),
			Name: "Drama",
			Kind: enums.CategoryKindBoth,
		}},
	})
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return svc
}

func authedRequest(method, target, body string, userID uuid.UUID) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := middleware.WithUserID(req.Context(), userID.String())
	return req.WithContext(ctx)
}

func TestSubmitSuggestionCreated(t *testing.T) {
	repo := &fakeSuggestionRepo{byID: map[uuid.UUID]*models.VoteSuggestion{}}
	svc := newSuggestionService(t, repo, 3)
	handler := SubmitSuggestion(svc, nil)

	body := `{"title":"The Long Night","type":"series","category_id":"` + uuid.NewString() + `"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/suggestions", body, uuid.New()))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one suggestion created, got %d", len(repo.created))
	}
	if repo.created[0].Status != enums.SuggestionStatusPending {
		t.Fatalf("expected pending, got %s", repo.created[0].Status)
	}
}

func TestSubmitSuggestionQuotaExhausted(t *testing.T) {
	repo := &fakeSuggestionRepo{byID: map[uuid.UUID]*models.VoteSuggestion{}, count: 3}
	svc := newSuggestionService(t, repo, 3)
	handler := SubmitSuggestion(svc, nil)

	body := `{"title":"One Too Many","type":"movie","category_id":"` + uuid.NewString() + `"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/suggestions", body, uuid.New()))

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestVoteSuggestionRejectsBadID(t *testing.T) {
	repo := &fakeSuggestionRepo{byID: map[uuid.UUID]*models.VoteSuggestion{}}
	svc := newSuggestionService(t, repo, 3)

	router := chi.NewRouter()
	router.Post("/api/suggestions/{id}/vote", VoteSuggestion(svc, nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/suggestions/not-a-uuid/vote", "", uuid.New()))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestVoteSuggestionResolvedConflict(t *testing.T) {
	resolved := time.Now()
	suggestion := &models.VoteSuggestion{
		ID:         uuid.New(),
		Title:      "Closed Case",
		Type:       enums.MediaTypeMovie,
		Status:     enums.SuggestionStatusApproved,
		ResolvedAt: &resolved,
	}
	repo := &fakeSuggestionRepo{byID: map[uuid.UUID]*models.VoteSuggestion{suggestion.ID: suggestion}}
	svc := newSuggestionService(t, repo, 3)

	router := chi.NewRouter()
	router.Post("/api/suggestions/{id}/vote", VoteSuggestion(svc, nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, authedRequest(http.MethodPost, "/api/suggestions/"+suggestion.ID.String()+"/vote", "", uuid.New()))

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeStateConflict) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
}

func TestSuggestionQuotaReportsRemaining(t *testing.T) {
	repo := &fakeSuggestionRepo{byID: map[uuid.UUID]*models.VoteSuggestion{}, count: 1}
	svc := newSuggestionService(t, repo, 3)
	handler := SuggestionQuota(svc, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, authedRequest(http.MethodGet, "/api/suggestions/quota", "", uuid.New()))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data suggestionsvc.QuotaStatus `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Limit != 3 || envelope.Data.Used != 1 || envelope.Data.Remaining != 2 {
		t.Fatalf("unexpected quota: %+v", envelope.Data)
	}
}
