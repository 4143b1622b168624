package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samsara-collective/circle-api/internal/dto"
	apierrors "github.com/samsara-collective/circle-api/internal/errors"
	"github.com/samsara-collective/circle-api/internal/middleware"
	"github.com/samsara-collective/circle-api/internal/services"
)

// LifecycleHandler exposes the join / apply / review workflow.
type LifecycleHandler struct {
	lifecycleService *services.LifecycleService
}

// NewLifecycleHandler creates a new LifecycleHandler.
func NewLifecycleHandler(lifecycleService *services.LifecycleService) *LifecycleHandler {
	return &LifecycleHandler{
		lifecycleService: lifecycleService,
	}
}

// Join adds the viewer to an open project and returns the refreshed
// contributor list.
func (h *LifecycleHandler) Join(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.NotFound(c, "Project not found")
		return
	}

	contributors, err := h.lifecycleService.Join(&project, userID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"contributors": dto.ToContributorDTOs(contributors),
	})
}

// Apply files an application to a project in application mode.
func (h *LifecycleHandler) Apply(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.NotFound(c, "Project not found")
		return
	}

	type ApplyRequest struct {
		Message string `json:"message" binding:"required"`
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Application message is required")
		return
	}

	app, err := h.lifecycleService.Apply(&project, userID, req.Message)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToApplicationDTO(*app))
}

// ListApplications returns the pending review queue in insertion order.
// Owner only.
func (h *LifecycleHandler) ListApplications(c *gin.Context) {
	project, _ := middleware.GetProject(c)
	realm, _ := middleware.GetRealm(c)

	apps, err := h.lifecycleService.PendingApplications(project.ID, realm)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch applications")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"applications": dto.ToApplicationDTOs(apps),
	})
}

// ResolveApplication decides one application (approve or reject) and
// returns it together with the refreshed contributor list.
func (h *LifecycleHandler) ResolveApplication(c *gin.Context) {
	project, _ := middleware.GetProject(c)

	appIDStr := c.Param("app_id")
	appID, err := strconv.ParseUint(appIDStr, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid application ID")
		return
	}

	type ResolveRequest struct {
		Approve *bool `json:"approve" binding:"required"`
	}

	var req ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	app, err := h.lifecycleService.Resolve(&project, appID, *req.Approve)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	contributors, err := h.lifecycleService.Contributors(project.ID, project.Realm)
	if err != nil {
		apierrors.InternalError(c, "Failed to reload contributors")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"application":  dto.ToApplicationDTO(*app),
		"contributors": dto.ToContributorDTOs(contributors),
	})
}

func respondLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAlreadyContributor),
		errors.Is(err, services.ErrApplicationPending),
		errors.Is(err, services.ErrApplicationResolved):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrOwnProject):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrProjectNotOpen),
		errors.Is(err, services.ErrProjectNotApplying):
		apierrors.UnprocessableEntity(c, err.Error())
	case errors.Is(err, services.ErrMessageRequired),
		errors.Is(err, services.ErrMessageTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrApplicationNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
