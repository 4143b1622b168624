package services

import "github.com/samsara-collective/circle-api/internal/models"

// ViewerAction is the primary action a viewer may take on a project.
type ViewerAction string

const (
	// ActionNone: the viewer owns the project; no primary action is shown.
	ActionNone ViewerAction = "none"
	// ActionJoin: the project is open; the viewer may join directly.
	ActionJoin ViewerAction = "join"
	// ActionApply: the project accepts applications; the viewer may apply.
	ActionApply ViewerAction = "apply"
	// ActionClosed: the project is closed; the action is shown disabled.
	ActionClosed ViewerAction = "closed"
)

// DeriveViewerAction maps (status, owner, viewer) to the available action.
// Archived projects never reach this point: they are excluded from every
// read path.
func DeriveViewerAction(project *models.Project, viewerID uint64) ViewerAction {
	if project.CreatedBy == viewerID {
		return ActionNone
	}

	switch project.Status {
	case models.ProjectStatusOpen:
		return ActionJoin
	case models.ProjectStatusApplication:
		return ActionApply
	default:
		return ActionClosed
	}
}
