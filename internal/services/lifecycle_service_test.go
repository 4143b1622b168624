package services

import (
	"testing"
	"time"

	"github.com/samsara-collective/circle-api/internal/models"
	"github.com/samsara-collective/circle-api/internal/repository"
	"github.com/samsara-collective/circle-api/internal/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type serviceEnv struct {
	db        *gorm.DB
	project   *ProjectService
	lifecycle *LifecycleService
}

func setupServiceEnv(t *testing.T) serviceEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Member{},
		&models.Project{},
		&models.Contributor{},
		&models.Application{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	projectRepo := repository.NewProjectRepository(db)
	contributorRepo := repository.NewContributorRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)

	return serviceEnv{
		db:        db,
		project:   NewProjectService(projectRepo, contributorRepo, applicationRepo),
		lifecycle: NewLifecycleService(contributorRepo, applicationRepo),
	}
}

func seedMember(t *testing.T, db *gorm.DB, email, username string) *models.Member {
	t.Helper()

	now := time.Now()
	member := &models.Member{
		Email:        email,
		Username:     username,
		PasswordHash: "hashed",
		Archetype:    "maker",
		ClaimedAt:    &now,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func seedProject(t *testing.T, db *gorm.DB, owner uint64, realm string, status models.ProjectStatus) *models.Project {
	t.Helper()

	project := &models.Project{
		Title:       "Workshop",
		Description: "A shared workshop",
		Status:      status,
		CreatedBy:   owner,
		Realm:       realm,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func TestLifecycleService_JoinRules(t *testing.T) {
	env := setupServiceEnv(t)

	owner := seedMember(t, env.db, "owner@example.com", "owner")
	joiner := seedMember(t, env.db, "joiner@example.com", "joiner")

	open := seedProject(t, env.db, owner.ID, "samsara", models.ProjectStatusOpen)
	applying := seedProject(t, env.db, owner.ID, "samsara", models.ProjectStatusApplication)
	closed := seedProject(t, env.db, owner.ID, "samsara", models.ProjectStatusClosed)

	contributors, err := env.lifecycle.Join(open, joiner.ID)
	require.NoError(t, err)
	require.Len(t, contributors, 1)
	require.Equal(t, joiner.ID, contributors[0].MemberID)

	_, err = env.lifecycle.Join(open, joiner.ID)
	require.ErrorIs(t, err, ErrAlreadyContributor)

	_, err = env.lifecycle.Join(applying, joiner.ID)
	require.ErrorIs(t, err, ErrProjectNotOpen)

	_, err = env.lifecycle.Join(closed, joiner.ID)
	require.ErrorIs(t, err, ErrProjectNotOpen)

	_, err = env.lifecycle.Join(open, owner.ID)
	require.ErrorIs(t, err, ErrOwnProject)
}

func TestLifecycleService_ApplyRules(t *testing.T) {
	env := setupServiceEnv(t)

	owner := seedMember(t, env.db, "owner@example.com", "owner")
	applicant := seedMember(t, env.db, "app@example.com", "applicant")

	applying := seedProject(t, env.db, owner.ID, "samsara", models.ProjectStatusApplication)
	open := seedProject(t, env.db, owner.ID, "samsara", models.ProjectStatusOpen)

	_, err := env.lifecycle.Apply(open, applicant.ID, "hello")
	require.ErrorIs(t, err, ErrProjectNotApplying)

	_, err = env.lifecycle.Apply(applying, owner.ID, "hello")
	require.ErrorIs(t, err, ErrOwnProject)

	_, err = env.lifecycle.Apply(applying, applicant.ID, "  ")
	require.ErrorIs(t, err, ErrMessageRequired)

	app, err := env.lifecycle.Apply(applying, applicant.ID, "  padded message  ")
	require.NoError(t, err)
	require.Equal(t, "padded message", app.Message)
	require.Equal(t, models.ApplicationStatusPending, app.Status)

	_, err = env.lifecycle.Apply(applying, applicant.ID, "again")
	require.ErrorIs(t, err, ErrApplicationPending)
}

func TestLifecycleService_ApproveAddsContributorOnce(t *testing.T) {
	env := setupServiceEnv(t)

	owner := seedMember(t, env.db, "owner@example.com", "owner")
	applicant := seedMember(t, env.db, "app@example.com", "applicant")
	project := seedProject(t, env.db, owner.ID, "samsara", models.ProjectStatusApplication)

	app, err := env.lifecycle.Apply(project, applicant.ID, "pick me")
	require.NoError(t, err)

	resolved, err := env.lifecycle.Resolve(project, app.ID, true)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusApproved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)

	contributors, err := env.lifecycle.Contributors(project.ID, "samsara")
	require.NoError(t, err)
	require.Len(t, contributors, 1)
	require.Equal(t, applicant.ID, contributors[0].MemberID)

	_, err = env.lifecycle.Resolve(project, app.ID, true)
	require.ErrorIs(t, err, ErrApplicationResolved)

	var count int64
	env.db.Model(&models.Contributor{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestLifecycleService_ApproveAlreadyJoinedApplicant(t *testing.T) {
	env := setupServiceEnv(t)

	owner := seedMember(t, env.db, "owner@example.com", "owner")
	applicant := seedMember(t, env.db, "app@example.com", "applicant")
	project := seedProject(t, env.db, owner.ID, "samsara", models.ProjectStatusApplication)

	app, err := env.lifecycle.Apply(project, applicant.ID, "pick me")
	require.NoError(t, err)

	// The applicant got in through another path before review.
	require.NoError(t, env.db.Create(&models.Contributor{
		ProjectID: project.ID,
		MemberID:  applicant.ID,
		Realm:     project.Realm,
		JoinedAt:  time.Now(),
	}).Error)

	// Approval still succeeds; the duplicate insert is absorbed.
	resolved, err := env.lifecycle.Resolve(project, app.ID, true)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusApproved, resolved.Status)

	var count int64
	env.db.Model(&models.Contributor{}).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestLifecycleService_RejectThenReapply(t *testing.T) {
	env := setupServiceEnv(t)

	owner := seedMember(t, env.db, "owner@example.com", "owner")
	applicant := seedMember(t, env.db, "app@example.com", "applicant")
	project := seedProject(t, env.db, owner.ID, "samsara", models.ProjectStatusApplication)

	app, err := env.lifecycle.Apply(project, applicant.ID, "first")
	require.NoError(t, err)

	resolved, err := env.lifecycle.Resolve(project, app.ID, false)
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusRejected, resolved.Status)

	var count int64
	env.db.Model(&models.Contributor{}).Count(&count)
	require.Zero(t, count)

	second, err := env.lifecycle.Apply(project, applicant.ID, "second")
	require.NoError(t, err)
	require.NotEqual(t, app.ID, second.ID)
}

func TestLifecycleService_ResolveUnknownApplication(t *testing.T) {
	env := setupServiceEnv(t)

	owner := seedMember(t, env.db, "owner@example.com", "owner")
	project := seedProject(t, env.db, owner.ID, "samsara", models.ProjectStatusApplication)

	_, err := env.lifecycle.Resolve(project, 999, true)
	require.ErrorIs(t, err, ErrApplicationNotFound)
}

// Full walkthrough of a project's life in a second realm: creation, a direct
// join while open, a reviewed application after switching modes, and archival.
func TestLifecycle_FullScenario(t *testing.T) {
	env := setupServiceEnv(t)

	owner := seedMember(t, env.db, "owner@example.com", "owner")
	early := seedMember(t, env.db, "early@example.com", "early")
	late := seedMember(t, env.db, "late@example.com", "late")

	project, err := env.project.CreateProject(CreateProjectInput{
		Title:       "Zine Press",
		Description: "A riso-printed community zine",
		CreatedBy:   owner.ID,
		Realm:       "vrischgewagt",
	})
	require.NoError(t, err)
	require.Equal(t, models.ProjectStatusOpen, project.Status)

	contributors, err := env.lifecycle.Join(project, early.ID)
	require.NoError(t, err)
	require.Len(t, contributors, 1)

	project, err = env.project.ChangeStatus(project.ID, "vrischgewagt", owner.ID, models.ProjectStatusApplication)
	require.NoError(t, err)

	_, err = env.lifecycle.Join(project, late.ID)
	require.ErrorIs(t, err, ErrProjectNotOpen)

	app, err := env.lifecycle.Apply(project, late.ID, "I print at home")
	require.NoError(t, err)

	detail, err := env.project.GetProjectDetail(project.ID, "vrischgewagt", owner.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, detail.PendingApplications)
	require.Equal(t, ActionNone, detail.ViewerAction)

	_, err = env.lifecycle.Resolve(project, app.ID, true)
	require.NoError(t, err)

	contributors, err = env.lifecycle.Contributors(project.ID, "vrischgewagt")
	require.NoError(t, err)
	require.Len(t, contributors, 2)

	require.NoError(t, env.project.ArchiveProject(project.ID, "vrischgewagt", owner.ID))

	_, err = env.project.GetProjectDetail(project.ID, "vrischgewagt", owner.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)

	items, total, err := env.project.ListProjects("vrischgewagt", owner.ID, utils.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Empty(t, items)
	require.Zero(t, total)
}
