package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/samsara-collective/circle-api/internal/dto"
	"github.com/samsara-collective/circle-api/internal/models"
	"github.com/samsara-collective/circle-api/internal/services"
	"github.com/samsara-collective/circle-api/internal/utils"
	"github.com/stretchr/testify/require"
)

type projectListResponse struct {
	Projects   []dto.ProjectListItemDTO `json:"projects"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func TestProjectHandler_CreateProject(t *testing.T) {
	env := setupTestEnv(t)

	owner := createTestMember(t, env.db, "owner@example.com", "owner")

	payload := map[string]interface{}{
		"title":       "Lantern Walk",
		"description": "A night walk with handmade lanterns",
		"status":      "application",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/realms/samsara/projects", body, owner.ID)
	withRealm(c, "samsara")

	env.projectHandler.CreateProject(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Lantern Walk", response.Title)
	require.Equal(t, models.ProjectStatusApplication, response.Status)
	require.Equal(t, "samsara", response.Realm)
	require.Equal(t, owner.ID, response.CreatedBy)
}

func TestProjectHandler_CreateProject_DefaultsToOpen(t *testing.T) {
	env := setupTestEnv(t)

	owner := createTestMember(t, env.db, "owner@example.com", "owner")

	body, err := json.Marshal(map[string]interface{}{
		"title":       "Garden",
		"description": "Shared vegetable plot",
	})
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/realms/samsara/projects", body, owner.ID)
	withRealm(c, "samsara")

	env.projectHandler.CreateProject(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.ProjectStatusOpen, response.Status)
}

func TestProjectHandler_ListProjects_ScopedToRealm(t *testing.T) {
	env := setupTestEnv(t)

	owner := createTestMember(t, env.db, "owner@example.com", "owner")
	viewer := createTestMember(t, env.db, "viewer@example.com", "viewer")

	createTestProject(t, env.db, owner.ID, "samsara", models.ProjectStatusOpen)
	createTestProject(t, env.db, owner.ID, "vrischgewagt", models.ProjectStatusOpen)

	archived := createTestProject(t, env.db, owner.ID, "samsara", models.ProjectStatusOpen)
	require.NoError(t, env.db.Model(archived).Updates(map[string]interface{}{
		"archived": true,
		"status":   models.ProjectStatusClosed,
	}).Error)

	c, w := testContext(http.MethodGet, "/api/realms/samsara/projects", nil, viewer.ID)
	withRealm(c, "samsara")

	env.projectHandler.ListProjects(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response projectListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Projects, 1, "archived and cross-realm projects must be excluded")
	require.Equal(t, "samsara", response.Projects[0].Realm)
	require.EqualValues(t, 1, response.Pagination.Total)
}

func TestProjectHandler_ListProjects_Paginated(t *testing.T) {
	env := setupTestEnv(t)

	owner := createTestMember(t, env.db, "owner@example.com", "owner")
	viewer := createTestMember(t, env.db, "viewer@example.com", "viewer")

	for i := 0; i < 3; i++ {
		createTestProject(t, env.db, owner.ID, "samsara", models.ProjectStatusOpen)
	}

	c, w := testContext(http.MethodGet, "/api/realms/samsara/projects?page=2&limit=2", nil, viewer.ID)
	withRealm(c, "samsara")

	env.projectHandler.ListProjects(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response projectListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Projects, 1)
	require.Equal(t, 2, response.Pagination.Page)
	require.Equal(t, 2, response.Pagination.Limit)
	require.EqualValues(t, 3, response.Pagination.Total)
}

func TestProjectHandler_ListProjects_OwnerSeesPendingCount(t *testing.T) {
	env := setupTestEnv(t)

	owner := createTestMember(t, env.db, "owner@example.com", "owner")
	applicant := createTestMember(t, env.db, "app@example.com", "applicant")

	project := createTestProject(t, env.db, owner.ID, "samsara", models.ProjectStatusApplication)
	_, err := env.lifecycleService.Apply(project, applicant.ID, "let me in")
	require.NoError(t, err)

	c, w := testContext(http.MethodGet, "/api/realms/samsara/projects", nil, owner.ID)
	withRealm(c, "samsara")

	env.projectHandler.ListProjects(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response projectListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Projects, 1)
	require.NotNil(t, response.Projects[0].PendingApplications)
	require.EqualValues(t, 1, *response.Projects[0].PendingApplications)

	// A non-owner viewer never sees the indicator.
	c, w = testContext(http.MethodGet, "/api/realms/samsara/projects", nil, applicant.ID)
	withRealm(c, "samsara")

	env.projectHandler.ListProjects(c)
	require.Equal(t, http.StatusOK, w.Code)
	response = projectListResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Nil(t, response.Projects[0].PendingApplications)
}

func TestProjectHandler_GetProject_ViewerAction(t *testing.T) {
	env := setupTestEnv(t)

	owner := createTestMember(t, env.db, "owner@example.com", "owner")
	viewer := createTestMember(t, env.db, "viewer@example.com", "viewer")

	project := createTestProject(t, env.db, owner.ID, "samsara", models.ProjectStatusOpen)

	c, w := testContext(http.MethodGet, "/api/realms/samsara/projects/1", nil, viewer.ID)
	withRealm(c, "samsara")
	withProject(c, *project)

	env.projectHandler.GetProject(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ProjectDetailDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, services.ActionJoin, response.ViewerAction)
	require.Empty(t, response.Contributors)
	require.Nil(t, response.PendingApplications)
}

func TestProjectHandler_UpdateStatus(t *testing.T) {
	env := setupTestEnv(t)

	owner := createTestMember(t, env.db, "owner@example.com", "owner")
	project := createTestProject(t, env.db, owner.ID, "samsara", models.ProjectStatusOpen)

	body, err := json.Marshal(map[string]string{"status": "application"})
	require.NoError(t, err)

	c, w := testContext(http.MethodPatch, "/api/realms/samsara/projects/1/status", body, owner.ID)
	withRealm(c, "samsara")
	withProject(c, *project)

	env.projectHandler.UpdateStatus(c)

	require.Equal(t, http.StatusOK, w.Code)

	// A read immediately after must return the new status.
	var reloaded models.Project
	require.NoError(t, env.db.First(&reloaded, project.ID).Error)
	require.Equal(t, models.ProjectStatusApplication, reloaded.Status)
}

func TestProjectHandler_UpdateStatus_NonOwnerHasNoEffect(t *testing.T) {
	env := setupTestEnv(t)

	owner := createTestMember(t, env.db, "owner@example.com", "owner")
	intruder := createTestMember(t, env.db, "intruder@example.com", "intruder")
	project := createTestProject(t, env.db, owner.ID, "samsara", models.ProjectStatusOpen)

	// The owner middleware blocks this route; the store predicate is the
	// second line of defense and must reject the mutation on its own.
	_, err := env.projectService.ChangeStatus(project.ID, "samsara", intruder.ID, models.ProjectStatusClosed)
	require.ErrorIs(t, err, services.ErrNotProjectOwner)

	var reloaded models.Project
	require.NoError(t, env.db.First(&reloaded, project.ID).Error)
	require.Equal(t, models.ProjectStatusOpen, reloaded.Status)
}

func TestProjectHandler_UpdateStatus_WrongRealmHasNoEffect(t *testing.T) {
	env := setupTestEnv(t)

	owner := createTestMember(t, env.db, "owner@example.com", "owner")
	project := createTestProject(t, env.db, owner.ID, "samsara", models.ProjectStatusOpen)

	_, err := env.projectService.ChangeStatus(project.ID, "vrischgewagt", owner.ID, models.ProjectStatusClosed)
	require.ErrorIs(t, err, services.ErrNotProjectOwner)

	var reloaded models.Project
	require.NoError(t, env.db.First(&reloaded, project.ID).Error)
	require.Equal(t, models.ProjectStatusOpen, reloaded.Status)
}

func TestProjectHandler_ArchiveProject(t *testing.T) {
	env := setupTestEnv(t)

	owner := createTestMember(t, env.db, "owner@example.com", "owner")
	project := createTestProject(t, env.db, owner.ID, "samsara", models.ProjectStatusOpen)

	c, w := testContext(http.MethodPost, "/api/realms/samsara/projects/1/archive", nil, owner.ID)
	withRealm(c, "samsara")
	withProject(c, *project)

	env.projectHandler.ArchiveProject(c)

	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Project
	require.NoError(t, env.db.First(&reloaded, project.ID).Error)
	require.True(t, reloaded.Archived)
	require.Equal(t, models.ProjectStatusClosed, reloaded.Status)

	// Archived projects disappear from subsequent listings.
	items, total, err := env.projectService.ListProjects("samsara", owner.ID, utils.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Empty(t, items)
	require.Zero(t, total)
}

func TestProjectHandler_ArchivedProjectRejectsStatusChange(t *testing.T) {
	env := setupTestEnv(t)

	owner := createTestMember(t, env.db, "owner@example.com", "owner")
	project := createTestProject(t, env.db, owner.ID, "samsara", models.ProjectStatusOpen)

	require.NoError(t, env.projectService.ArchiveProject(project.ID, "samsara", owner.ID))

	// Archived is terminal even for the owner.
	_, err := env.projectService.ChangeStatus(project.ID, "samsara", owner.ID, models.ProjectStatusOpen)
	require.ErrorIs(t, err, services.ErrNotProjectOwner)

	var reloaded models.Project
	require.NoError(t, env.db.First(&reloaded, project.ID).Error)
	require.Equal(t, models.ProjectStatusClosed, reloaded.Status)
	require.True(t, reloaded.Archived)
}
