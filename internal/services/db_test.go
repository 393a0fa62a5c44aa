package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/justsurfingit/careerpilot/internal/auth"
	"github.com/justsurfingit/careerpilot/internal/database"
	"github.com/justsurfingit/careerpilot/internal/dtos"
	"github.com/justsurfingit/careerpilot/internal/models"
	"github.com/justsurfingit/careerpilot/pkg/logging"
)

// newTestDB opens a private in-memory SQLite database with every table migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db, logging.Nop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestResumeServiceLimit(t *testing.T) {
	ctx := context.Background()
	svc := NewResumeService(newTestDB(t))

	for i := 0; i < MaxResumesPerUser; i++ {
		if _, err := svc.Create(ctx, dtos.ResumeCreateRequest{UserID: "u1", ResumeName: fmt.Sprintf("cv %d", i)}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	if _, err := svc.Create(ctx, dtos.ResumeCreateRequest{UserID: "u1", ResumeName: "one too many"}); !errors.Is(err, ErrResumeLimit) {
		t.Fatalf("fourth resume: expected ErrResumeLimit, got %v", err)
	}
	if _, err := svc.Create(ctx, dtos.ResumeCreateRequest{UserID: "u2", ResumeName: "other user"}); err != nil {
		t.Fatalf("limit must be per user: %v", err)
	}

	list, err := svc.List(ctx, "u1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != MaxResumesPerUser {
		t.Errorf("len(list) = %d, want %d", len(list), MaxResumesPerUser)
	}

	if _, err := svc.Create(ctx, dtos.ResumeCreateRequest{UserID: "u3"}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing name: expected ErrValidation, got %v", err)
	}
}

func TestResumeServiceRenameKeepsData(t *testing.T) {
	ctx := context.Background()
	svc := NewResumeService(newTestDB(t))

	created, err := svc.Create(ctx, dtos.ResumeCreateRequest{
		UserID:     "u1",
		ResumeName: "Backend",
		Data:       models.ResumeData{Summary: "Gopher", Hobbies: []string{"chess"}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(ctx, created.ID, dtos.ResumeUpdateRequest{ResumeName: "renamed"}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ResumeName != "renamed" || got.Data.Summary != "Gopher" || len(got.Data.Hobbies) != 1 {
		t.Errorf("after rename: name=%q data=%+v", got.ResumeName, got.Data)
	}

	if _, err := svc.Update(ctx, created.ID, dtos.ResumeUpdateRequest{Data: &models.ResumeData{Summary: "Rustacean"}}); err != nil {
		t.Fatalf("Update data: %v", err)
	}
	got, _ = svc.Get(ctx, created.ID)
	if got.ResumeName != "renamed" || got.Data.Summary != "Rustacean" || len(got.Data.Hobbies) != 0 {
		t.Errorf("after data replace: name=%q data=%+v", got.ResumeName, got.Data)
	}

	if _, err := svc.Update(ctx, 999, dtos.ResumeUpdateRequest{ResumeName: "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing: expected ErrNotFound, got %v", err)
	}
}

func TestResumeServiceDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewResumeService(newTestDB(t))

	created, err := svc.Create(ctx, dtos.ResumeCreateRequest{UserID: "u1", ResumeName: "cv"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("get deleted: expected ErrNotFound, got %v", err)
	}
}

func TestProfileServiceUpsert(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(newTestDB(t))

	ada := &models.User{ID: 1, Name: "Ada", Email: "ada@example.com"}
	bob := &models.User{ID: 2, Name: "Bob", Email: "bob@example.com"}

	p, created, err := svc.Upsert(ctx, ada, models.Profile{GitHub: "ada", TechnicalSkills: []string{"Go"}})
	if err != nil || !created {
		t.Fatalf("first upsert: created=%v err=%v", created, err)
	}
	if p.Name != "Ada" || p.Email != "ada@example.com" || p.UserID != 1 {
		t.Errorf("owner defaults not applied: %+v", p)
	}

	p, created, err = svc.Upsert(ctx, ada, models.Profile{GitHub: "ada", Phone: "555", TechnicalSkills: []string{"Go", "SQL"}})
	if err != nil || created {
		t.Fatalf("second upsert: created=%v err=%v", created, err)
	}

	got, err := svc.GetByGitHub(ctx, "ada")
	if err != nil {
		t.Fatalf("GetByGitHub: %v", err)
	}
	if got.ID != p.ID || got.Phone != "555" || len(got.TechnicalSkills) != 2 {
		t.Errorf("stored profile = %+v", got)
	}

	if _, _, err := svc.Upsert(ctx, bob, models.Profile{GitHub: "ada", Phone: "666"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("other owner: expected ErrForbidden, got %v", err)
	}
	got, _ = svc.GetByGitHub(ctx, "ada")
	if got.Phone != "555" || got.UserID != 1 {
		t.Errorf("profile changed by another user: %+v", got)
	}

	if _, _, err := svc.Upsert(ctx, ada, models.Profile{GitHub: "ada-second"}); !errors.Is(err, ErrConflict) {
		t.Errorf("second profile for one account: expected ErrConflict, got %v", err)
	}

	if _, err := svc.GetByGitHub(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing profile: expected ErrNotFound, got %v", err)
	}
}

func TestStatsService(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	apps := NewApplicationService(db)
	profiles := NewProfileService(db)
	stats := NewStatsService(db)

	for _, status := range []string{"pending", "interview", "interview", "rejected"} {
		_, err := apps.Create(ctx, dtos.ApplicationCreateRequest{
			UserID: "7", JobTitle: "Dev", Company: "Acme", Location: "Pune", Status: status,
		})
		if err != nil {
			t.Fatalf("create %s: %v", status, err)
		}
	}
	if _, err := apps.Create(ctx, dtos.ApplicationCreateRequest{
		UserID: "8", JobTitle: "Dev", Company: "Acme", Location: "Pune", Status: "interview",
	}); err != nil {
		t.Fatalf("create other user: %v", err)
	}

	owner := &models.User{ID: 7, Name: "Ada", Email: "ada@example.com"}
	if _, _, err := profiles.Upsert(ctx, owner, models.Profile{
		GitHub:               "ada",
		TechnicalSkills:      []string{"Go", "SQL"},
		SoftSkills:           []string{"Writing"},
		ToolsAndTechnologies: []string{"Docker"},
	}); err != nil {
		t.Fatalf("profile: %v", err)
	}

	got, err := stats.Get(ctx, "7")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != (dtos.StatsResponse{Applications: 4, Interviews: 2, Skills: 4}) {
		t.Errorf("stats = %+v", got)
	}

	got, err = stats.Get(ctx, "not-a-number")
	if err != nil {
		t.Fatalf("Get non-numeric: %v", err)
	}
	if got != (dtos.StatsResponse{}) {
		t.Errorf("non-numeric user stats = %+v", got)
	}
}

func TestApplicationServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewApplicationService(newTestDB(t))
	svc.Now = func() time.Time { return time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC) }

	app, err := svc.Create(ctx, dtos.ApplicationCreateRequest{UserID: "u1", JobTitle: "Dev", Company: "Acme", Location: "Remote"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if app.AppliedDate != "2026-01-02" || app.Status != models.StatusPending {
		t.Errorf("defaults = %+v", app)
	}

	status := "interview"
	updated, err := svc.Update(ctx, app.ID, dtos.ApplicationUpdateRequest{Status: &status})
	if err != nil || updated.Status != models.StatusInterview {
		t.Fatalf("Update: %+v %v", updated, err)
	}

	list, err := svc.List(ctx, "u1")
	if err != nil || len(list) != 1 || list[0].Status != models.StatusInterview {
		t.Fatalf("List: %+v %v", list, err)
	}

	if err := svc.Delete(ctx, app.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, app.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, app.ID, dtos.ApplicationUpdateRequest{Status: &status}); !errors.Is(err, ErrNotFound) {
		t.Errorf("update deleted: expected ErrNotFound, got %v", err)
	}
}

func TestSkillServiceUpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewSkillService(db)

	if err := svc.UpsertSkills(ctx, "u1", []string{"Go", "Postgres"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := svc.UpsertSkills(ctx, "u1", []string{"Go", " go ", "Docker"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if err := svc.UpsertSkills(ctx, "u2", []string{"Go"}); err != nil {
		t.Fatalf("other user: %v", err)
	}

	var count int64
	db.Model(&models.Skill{}).Where("user_id = ? AND skill = ?", "u1", "Go").Count(&count)
	if count != 1 {
		t.Errorf("Go rows for u1 = %d, want 1", count)
	}
	db.Model(&models.Skill{}).Where("user_id = ?", "u1").Count(&count)
	if count != 3 {
		t.Errorf("skills for u1 = %d, want 3", count)
	}

	var skill models.Skill
	db.Where("user_id = ? AND skill = ?", "u1", "Docker").First(&skill)
	if skill.Source != skillSourceNLP {
		t.Errorf("source = %q, want %q", skill.Source, skillSourceNLP)
	}
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenManager("secret", time.Hour)
	svc := NewAuthService(newTestDB(t), tokens)

	user, token, err := svc.Register(ctx, dtos.RegisterRequest{Name: "Ada", Email: " Ada@Example.com ", Password: "hunter2"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "ada@example.com" || user.Password == "hunter2" {
		t.Errorf("user = %+v", user)
	}
	if id, err := tokens.Parse(token); err != nil || id != user.ID {
		t.Errorf("token id = %d err = %v", id, err)
	}

	if _, _, err := svc.Register(ctx, dtos.RegisterRequest{Name: "Ada 2", Email: "ADA@example.com", Password: "x"}); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("duplicate email: expected ErrEmailTaken, got %v", err)
	}

	if _, _, err := svc.Login(ctx, dtos.LoginRequest{Email: "ada@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(ctx, dtos.LoginRequest{Email: "bob@example.com", Password: "hunter2"}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("unknown email: expected ErrUserNotFound, got %v", err)
	}
	if u, _, err := svc.Login(ctx, dtos.LoginRequest{Email: "ADA@example.com", Password: "hunter2"}); err != nil || u.ID != user.ID {
		t.Errorf("login: %+v %v", u, err)
	}

	if _, err := svc.FindUserByID(ctx, 999); !errors.Is(err, auth.ErrUnknownUser) {
		t.Errorf("unknown id: expected auth.ErrUnknownUser, got %v", err)
	}
}
