package handlers

import (
	"errors"
	"net/http"
	"strconv"

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

// ProfileHandler coordinates member profile reads and edits.
type ProfileHandler struct {
	profileService *services.ProfileService
	store          storage.Store
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService, store storage.Store) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		store:          store,
	}
}

// UpdateProfile applies bio / link edits to the acting member.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateProfileRequest struct {
		Archetype *string `json:"archetype"`
		Bio       *string `json:"bio"`
		LinkURL   *string `json:"link_url"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.profileService.UpdateProfile(userID, services.UpdateProfileInput{
		Archetype: req.Archetype,
		Bio:       req.Bio,
		LinkURL:   req.LinkURL,
	})
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*member, true))
}

// UploadAvatar stores an avatar image for the acting member. The upload
// runs first; a failed upload aborts the profile write.
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	h.uploadMedia(c, "avatar", storage.BucketAvatars, utils.IsImageExt,
		"Unsupported image type", h.profileService.SetAvatarURL)
}

// UploadResume stores a resume PDF for the acting member.
func (h *ProfileHandler) UploadResume(c *gin.Context) {
	h.uploadMedia(c, "resume", storage.BucketResumes, utils.IsPDFExt,
		"Resume must be a PDF", h.profileService.SetResumeURL)
}

func (h *ProfileHandler) uploadMedia(
	c *gin.Context,
	field, bucket string,
	extOK func(string) bool,
	extMessage string,
	record func(uint64, string) (*models.Member, error),
) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	file, header, err := c.Request.FormFile(field)
	if err != nil {
		apierrors.BadRequest(c, "File is required")
		return
	}
	defer file.Close()

	if header.Size > constants.MaxUploadBytes {
		apierrors.BadRequest(c, "File too large")
		return
	}

	ext := utils.FileExt(header.Filename)
	if !extOK(ext) {
		apierrors.BadRequest(c, extMessage)
		return
	}

	url, err := h.store.Upload(bucket, ext, file)
	if err != nil {
		apierrors.InternalError(c, "Upload failed")
		return
	}

	updated, err := record(userID, url)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*updated, true))
}

// ListRealmMembers returns the directory of a realm: everyone who created a
// live project there or contributes to one, oldest member first.
func (h *ProfileHandler) ListRealmMembers(c *gin.Context) {
	realm, ok := middleware.GetRealm(c)
	if !ok {
		apierrors.NotFound(c, "Realm not found")
		return
	}

	members, err := h.profileService.RealmMembers(realm)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch members")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": dto.ToProfileDTOs(members),
	})
}

// ListMemberProjects returns the projects a member created or contributes
// to, across realms.
func (h *ProfileHandler) ListMemberProjects(c *gin.Context) {
	memberIDStr := c.Param("id")
	memberID, err := strconv.ParseUint(memberIDStr, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid member ID")
		return
	}

	items, err := h.profileService.MemberProjects(memberID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToMemberProjectDTOs(items),
	})
}

// GetMember returns a member's public profile.
func (h *ProfileHandler) GetMember(c *gin.Context) {
	memberIDStr := c.Param("id")
	memberID, err := strconv.ParseUint(memberIDStr, 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid member ID")
		return
	}

	member, err := h.profileService.GetPublicProfile(memberID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*member, false))
}

func respondProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
