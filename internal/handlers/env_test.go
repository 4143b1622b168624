package handlers

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samsara-collective/circle-api/internal/constants"
	"github.com/samsara-collective/circle-api/internal/database"
	"github.com/samsara-collective/circle-api/internal/models"
	"github.com/samsara-collective/circle-api/internal/repository"
	"github.com/samsara-collective/circle-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db               *gorm.DB
	authHandler      *AuthHandler
	projectHandler   *ProjectHandler
	lifecycleHandler *LifecycleHandler
	profileHandler   *ProfileHandler
	authService      *services.AuthService
	projectService   *services.ProjectService
	lifecycleService *services.LifecycleService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Member{},
		&models.Project{},
		&models.Contributor{},
		&models.Application{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	database.SetDB(db)

	memberRepo := repository.NewMemberRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	contributorRepo := repository.NewContributorRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)

	authService := services.NewAuthService(memberRepo)
	projectService := services.NewProjectService(projectRepo, contributorRepo, applicationRepo)
	lifecycleService := services.NewLifecycleService(contributorRepo, applicationRepo)
	profileService := services.NewProfileService(memberRepo, projectRepo, contributorRepo)

	store := newMemStore()

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return testEnv{
		db:               db,
		authHandler:      NewAuthHandler(authService),
		projectHandler:   NewProjectHandler(projectService, store),
		lifecycleHandler: NewLifecycleHandler(lifecycleService),
		profileHandler:   NewProfileHandler(profileService, store),
		authService:      authService,
		projectService:   projectService,
		lifecycleService: lifecycleService,
	}
}

// memStore is an in-memory blob store for handler tests.
type memStore struct {
	uploads int
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) Upload(bucket, ext string, _ io.Reader) (string, error) {
	s.uploads++
	return "http://test/uploads/" + bucket + "/object." + ext, nil
}

func createTestMember(t *testing.T, db *gorm.DB, email, username string) *models.Member {
	t.Helper()

	now := time.Now()
	member := &models.Member{
		Email:        email,
		Username:     username,
		PasswordHash: "hashed",
		Archetype:    "maker",
		ClaimedAt:    &now,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create test member: %v", err)
	}
	return member
}

func createTestProject(t *testing.T, db *gorm.DB, owner uint64, realm string, status models.ProjectStatus) *models.Project {
	t.Helper()

	project := &models.Project{
		Title:       "Test Project",
		Description: "A project for testing",
		Status:      status,
		CreatedBy:   owner,
		Realm:       realm,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}
	return project
}

// testContext builds a gin context carrying the session-derived member ID
// plus the realm and project a middleware chain would have loaded.
func testContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func withRealm(c *gin.Context, realm string) {
	c.Set(constants.ContextKeyRealm, realm)
}

func withProject(c *gin.Context, project models.Project) {
	c.Set(constants.ContextKeyProject, project)
}
