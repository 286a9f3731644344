package users

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/loungecast/loungecast-backend/pkg/config"
	"github.com/loungecast/loungecast-backend/pkg/db/models"
	"github.com/loungecast/loungecast-backend/pkg/enums"
	pkgerrors "github.com/loungecast/loungecast-backend/pkg/errors"
	"github.com/loungecast/loungecast-backend/pkg/security"
)

type stubUserStore struct {
	byID       map[uuid.UUID]*models.User
	byUsername map[string]*models.User
	adminCount int64
	created    []CreateUserDTO
	deleted    []uuid.UUID
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{
		byID:       map[uuid.UUID]*models.User{},
		byUsername: map[string]*models.User{},
	}
}

func (s *stubUserStore) add(user *models.User) {
	s.byID[user.ID] = user
	s.byUsername[user.Username] = user
	if user.Role == enums.UserRoleAdmin {
		s.adminCount++
	}
}

func (s *stubUserStore) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	s.created = append(s.created, dto)
	user := dto.ToModel()
	user.ID = uuid.New()
	return user, nil
}

func (s *stubUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := s.byUsername[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserStore) List(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(s.byID))
	for _, user := range s.byID {
		out = append(out, *user)
	}
	return out, nil
}

func (s *stubUserStore) CountByRole(ctx context.Context, role enums.UserRole) (int64, error) {
	return s.adminCount, nil
}

func (s *stubUserStore) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) (bool, error) {
	user, ok := s.byID[id]
	if !ok {
		return false, nil
	}
	if displayName, ok := fields["display_name"].(string); ok {
		user.DisplayName = displayName
	}
	if hash, ok := fields["password_hash"].(string); ok {
		user.PasswordHash = hash
	}
	if role, ok := fields["role"].(enums.UserRole); ok {
		user.Role = role
	}
	return true, nil
}

func (s *stubUserStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := s.byID[id]; !ok {
		return false, nil
	}
	s.deleted = append(s.deleted, id)
	return true, nil
}

func newTestUserService(t *testing.T, store *stubUserStore) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo: store,
		PasswordConfig: config.PasswordConfig{
			ArgonMemoryKB:    8192,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s got %s", code, typed.Code())
	}
}

func TestCreateUserNormalizesUsername(t *testing.T) {
	store := newStubUserStore()
	svc := newTestUserService(t, store)

	dto, err := svc.Create(context.Background(), CreateInput{
		Username: "  Lounge-Admin ",
		Password: "supersecret",
		Role:     enums.UserRoleAdmin,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.Username != "lounge-admin" {
		t.Fatalf("expected lowercased username, got %q", dto.Username)
	}
	if dto.DisplayName != "lounge-admin" {
		t.Fatalf("expected display name fallback, got %q", dto.DisplayName)
	}
	if len(store.created) != 1 || store.created[0].Role != enums.UserRoleAdmin {
		t.Fatalf("unexpected create call: %+v", store.created)
	}
}

func TestCreateUserRejectsTakenUsername(t *testing.T) {
	store := newStubUserStore()
	store.add(&models.User{ID: uuid.New(), Username: "room214", Role: enums.UserRoleGuest})
	svc := newTestUserService(t, store)

	_, err := svc.Create(context.Background(), CreateInput{
		Username: "room214",
		Password: "supersecret",
		Role:     enums.UserRoleGuest,
	})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestCreateUserRejectsBadRole(t *testing.T) {
	svc := newTestUserService(t, newStubUserStore())

	_, err := svc.Create(context.Background(), CreateInput{
		Username: "someone",
		Password: "supersecret",
		Role:     enums.UserRole("janitor"),
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestDeleteUserRejectsLastAdmin(t *testing.T) {
	store := newStubUserStore()
	admin := &models.User{ID: uuid.New(), Username: "boss", Role: enums.UserRoleAdmin}
	store.add(admin)
	svc := newTestUserService(t, store)

	err := svc.Delete(context.Background(), admin.ID)
	assertCode(t, err, pkgerrors.CodeStateConflict)
	if len(store.deleted) != 0 {
		t.Fatalf("expected no deletion, got %v", store.deleted)
	}
}

func TestDeleteUserRemovesGuest(t *testing.T) {
	store := newStubUserStore()
	guest := &models.User{ID: uuid.New(), Username: "room214", Role: enums.UserRoleGuest}
	store.add(guest)
	svc := newTestUserService(t, store)

	if err := svc.Delete(context.Background(), guest.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != guest.ID {
		t.Fatalf("unexpected deletions: %v", store.deleted)
	}
}

func TestUpdateUserChangesPassword(t *testing.T) {
	store := newStubUserStore()
	guest := &models.User{ID: uuid.New(), Username: "room214", Role: enums.UserRoleGuest, PasswordHash: "old-hash"}
	store.add(guest)
	svc := newTestUserService(t, store)

	password := "fresh-password"
	if _, err := svc.Update(context.Background(), guest.ID, UpdateInput{Password: &password}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if guest.PasswordHash == "old-hash" {
		t.Fatal("expected stored hash to change")
	}
	ok, err := security.VerifyPassword(password, guest.PasswordHash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("new password must verify against the stored hash")
	}
}

func TestUpdateUserRejectsLastAdminDemotion(t *testing.T) {
	store := newStubUserStore()
	admin := &models.User{ID: uuid.New(), Username: "boss", Role: enums.UserRoleAdmin}
	store.add(admin)
	svc := newTestUserService(t, store)

	guest := enums.UserRoleGuest
	_, err := svc.Update(context.Background(), admin.ID, UpdateInput{Role: &guest})
	assertCode(t, err, pkgerrors.CodeStateConflict)
	if admin.Role != enums.UserRoleAdmin {
		t.Fatal("role must not change")
	}
}

func TestUpdateUserAllowsDemotionWithAnotherAdmin(t *testing.T) {
	store := newStubUserStore()
	admin := &models.User{ID: uuid.New(), Username: "boss", Role: enums.UserRoleAdmin}
	other := &models.User{ID: uuid.New(), Username: "backup", Role: enums.UserRoleAdmin}
	store.add(admin)
	store.add(other)
	svc := newTestUserService(t, store)

	guest := enums.UserRoleGuest
	dto, err := svc.Update(context.Background(), admin.ID, UpdateInput{Role: &guest})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Role != enums.UserRoleGuest {
		t.Fatalf("expected guest role, got %s", dto.Role)
	}
}

func TestUpdateUserRejectsEmptyEdit(t *testing.T) {
	store := newStubUserStore()
	guest := &models.User{ID: uuid.New(), Username: "room214", Role: enums.UserRoleGuest}
	store.add(guest)
	svc := newTestUserService(t, store)

	_, err := svc.Update(context.Background(), guest.ID, UpdateInput{})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestDeleteUserMissing(t *testing.T) {
	svc := newTestUserService(t, newStubUserStore())

	err := svc.Delete(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}
