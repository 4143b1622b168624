package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samsara-collective/circle-api/internal/constants"
	"github.com/samsara-collective/circle-api/internal/dto"
	apierrors "github.com/samsara-collective/circle-api/internal/errors"
	"github.com/samsara-collective/circle-api/internal/middleware"
	"github.com/samsara-collective/circle-api/internal/models"
	"github.com/samsara-collective/circle-api/internal/services"
	"github.com/samsara-collective/circle-api/internal/storage"
	"github.com/samsara-collective/circle-api/internal/utils"
)

// ProjectHandler coordinates project CRUD and owner-only lifecycle controls.
type ProjectHandler struct {
	projectService *services.ProjectService
	store          storage.Store
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, store storage.Store) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		store:          store,
	}
}

// ListProjects returns one page of the realm's live projects, oldest first.
// Projects owned by the viewer carry their pending-application count.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	realm, ok := middleware.GetRealm(c)
	if !ok {
		apierrors.NotFound(c, "Realm not found")
		return
	}

	params := utils.GetPaginationParams(c)

	items, total, err := h.projectService.ListProjects(realm, userID, params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	projects := make([]dto.ProjectListItemDTO, len(items))
	for i, item := range items {
		projects[i] = dto.ToProjectListItemDTO(item, userID)
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// CreateProject creates a project in the realm with the viewer as creator.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	realm, ok := middleware.GetRealm(c)
	if !ok {
		apierrors.NotFound(c, "Realm not found")
		return
	}

	type CreateProjectRequest struct {
		Title           string               `json:"title" binding:"required"`
		Description     string               `json:"description" binding:"required"`
		Timeline        string               `json:"timeline"`
		Status          models.ProjectStatus `json:"status"`
		RolesNeeded     string               `json:"roles_needed"`
		InspirationLink string               `json:"inspiration_link"`
		LunarNewYear    bool                 `json:"lunar_new_year"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Title:           req.Title,
		Description:     req.Description,
		Timeline:        req.Timeline,
		Status:          req.Status,
		RolesNeeded:     req.RolesNeeded,
		InspirationLink: req.InspirationLink,
		LunarNewYear:    req.LunarNewYear,
		CreatedBy:       userID,
		Realm:           realm,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// GetProject returns the detail view: project, contributors, the viewer's
// derived action, and the pending-application count for owners.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.NotFound(c, "Project not found")
		return
	}

	realm, _ := middleware.GetRealm(c)

	detail, err := h.projectService.GetProjectDetail(project.ID, realm, userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(detail, userID))
}

// UpdateStatus sets the project status. Owner only; the store additionally
// predicates the update on (creator, realm, not archived).
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	project, _ := middleware.GetProject(c)
	realm, _ := middleware.GetRealm(c)

	type UpdateStatusRequest struct {
		Status models.ProjectStatus `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.projectService.ChangeStatus(project.ID, realm, userID, req.Status)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated))
}

// ArchiveProject ends the project permanently.
func (h *ProjectHandler) ArchiveProject(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	project, _ := middleware.GetProject(c)
	realm, _ := middleware.GetRealm(c)

	if err := h.projectService.ArchiveProject(project.ID, realm, userID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project ended",
	})
}

// UploadImage stores a project image and records its URL. The upload runs
// first; a failed upload aborts the database write.
func (h *ProjectHandler) UploadImage(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	project, _ := middleware.GetProject(c)
	realm, _ := middleware.GetRealm(c)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		apierrors.BadRequest(c, "Image file is required")
		return
	}
	defer file.Close()

	if header.Size > constants.MaxUploadBytes {
		apierrors.BadRequest(c, "File too large")
		return
	}

	ext := utils.FileExt(header.Filename)
	if !utils.IsImageExt(ext) {
		apierrors.BadRequest(c, "Unsupported image type")
		return
	}

	url, err := h.store.Upload(storage.BucketProjectImages, ext, file)
	if err != nil {
		apierrors.InternalError(c, "Image upload failed")
		return
	}

	if err := h.projectService.SetProjectImage(project.ID, realm, userID, url); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"image_url": url,
	})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrDescriptionRequired),
		errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotProjectOwner):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
