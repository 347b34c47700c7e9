package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/geocoder89/taskhub/internal/domain/user"
	"github.com/gin-gonic/gin"
)

type ProfileManager interface {
	GetProfile(ctx context.Context, userID string) (user.Profile, error)
	UpdateProfile(ctx context.Context, userID string, name, email *string) (user.Profile, error)
}

type ProfileHandler struct {
	profiles ProfileManager
}

func NewProfileHandler(profiles ProfileManager) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) GetProfile(ctx *gin.Context, userID string) {
	cctx, cancel := withTimeout(ctx, 2*time.Second)
	defer cancel()

	p, err := h.profiles.GetProfile(cctx, userID)
	if err != nil {
		RespondAppError(ctx, err)
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, p)
}

func (h *ProfileHandler) UpdateProfile(ctx *gin.Context, userID string) {
	var req user.UpdateProfileRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := withTimeout(ctx, 3*time.Second)
	defer cancel()

	p, err := h.profiles.UpdateProfile(cctx, userID, req.Name, req.Email)
	if err != nil {
		RespondAppError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Profile updated",
		"user":    p,
	})
}
