package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samsara-collective/circle-api/internal/constants"
	"github.com/samsara-collective/circle-api/internal/database"
	apierrors "github.com/samsara-collective/circle-api/internal/errors"
	"github.com/samsara-collective/circle-api/internal/models"
)

// RequireProjectAccess loads the project from the :id parameter within the
// validated realm and stores it in context. Archived projects are excluded
// at the query level, so they 404 like anything that never existed.
func RequireProjectAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectIDStr := c.Param("id")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		realm, ok := GetRealm(c)
		if !ok {
			apierrors.NotFound(c, "Realm not found")
			c.Abort()
			return
		}

		var project models.Project
		err = database.GetDB().
			Scopes(database.InRealm(realm), database.Live()).
			First(&project, projectID).Error
		if err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, project)
		c.Next()
	}
}

// RequireProjectOwner checks that the acting member created the project
// loaded by RequireProjectAccess.
func RequireProjectOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		project, ok := GetProject(c)
		if !ok {
			apierrors.Forbidden(c, "Project access required")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		if project.CreatedBy != userID {
			apierrors.Forbidden(c, "Only the project creator can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetProject retrieves the project loaded by RequireProjectAccess
func GetProject(c *gin.Context) (models.Project, bool) {
	value, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return models.Project{}, false
	}
	project, ok := value.(models.Project)
	return project, ok
}
