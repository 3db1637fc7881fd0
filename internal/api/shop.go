package api

import (
	"errors"
	"net/http"

	"habitquest/internal/model"
	"habitquest/internal/service"
	"habitquest/pkg/auth"
	"habitquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type shopRoutes struct {
	ss *service.ShopService
	a  *auth.TelegramAuth
}

func NewShopRoutes(handler *gin.RouterGroup, ss *service.ShopService, a *auth.TelegramAuth) {
	r := &shopRoutes{ss: ss, a: a}

	avatars := handler.Group("/avatars")
	avatars.Use(a.TelegramAuthMiddleware())
	{
		avatars.GET("/", r.ListAvatars)
		avatars.POST("/:avatar_id/unlock", r.UnlockAvatar)
		avatars.POST("/:avatar_id/select", r.SelectAvatar)
	}

	rewards := handler.Group("/rewards")
	rewards.Use(a.TelegramAuthMiddleware())
	{
		rewards.GET("/", r.ListRewards)
		rewards.POST("/", r.AddReward)
		rewards.DELETE("/:reward_id", r.DeleteReward)
		rewards.POST("/:reward_id/buy", r.BuyReward)
	}
}

type AvatarResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Cost        int    `json:"cost"`
	Description string `json:"description"`
}

func (r *shopRoutes) ListAvatars(c *gin.Context) {
	avatars := r.ss.Avatars()

	out := make([]AvatarResponse, 0, len(avatars))
	for _, a := range avatars {
		out = append(out, AvatarResponse{
			ID:          a.ID,
			Name:        a.Name,
			Cost:        a.Cost,
			Description: a.Description,
		})
	}

	c.JSON(http.StatusOK, out)
}

func (r *shopRoutes) UnlockAvatar(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	player, err := r.ss.UnlockAvatar(c.Request.Context(), user.ID, c.Param("avatar_id"))
	if err != nil {
		log.Error("failed to unlock avatar", zap.Error(err))
		switch {
		case errors.Is(err, service.ErrAvatarUnknown):
			c.JSON(http.StatusNotFound, gin.H{"error": "avatar does not exist"})
		case errors.Is(err, service.ErrPlayerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
		case errors.Is(err, service.ErrInsufficientGold):
			c.JSON(http.StatusConflict, gin.H{"error": "not enough gold"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unlock avatar"})
		}
		return
	}

	c.JSON(http.StatusOK, toPlayerResponse(player))
}

func (r *shopRoutes) SelectAvatar(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	player, err := r.ss.SelectAvatar(c.Request.Context(), user.ID, c.Param("avatar_id"))
	if err != nil {
		log.Error("failed to select avatar", zap.Error(err))
		switch {
		case errors.Is(err, service.ErrPlayerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
		case errors.Is(err, service.ErrAvatarNotUnlocked):
			c.JSON(http.StatusConflict, gin.H{"error": "avatar is not unlocked"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to select avatar"})
		}
		return
	}

	c.JSON(http.StatusOK, toPlayerResponse(player))
}

type RewardResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Cost  int    `json:"cost"`
}

func toRewardResponse(w *model.Reward) RewardResponse {
	return RewardResponse{
		ID:    w.ID.String(),
		Title: w.Title,
		Cost:  w.Cost,
	}
}

func (r *shopRoutes) ListRewards(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	rewards, err := r.ss.ListRewards(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("failed to list rewards", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rewards"})
		return
	}

	out := make([]RewardResponse, 0, len(rewards))
	for _, w := range rewards {
		out = append(out, toRewardResponse(w))
	}

	c.JSON(http.StatusOK, out)
}

type AddRewardRequest struct {
	Title string `json:"title"`
	Cost  int    `json:"cost"`
}

func (r *shopRoutes) AddReward(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req AddRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	reward, err := r.ss.AddReward(c.Request.Context(), user.ID, req.Title, req.Cost)
	if err != nil {
		log.Error("failed to add reward", zap.Error(err))
		if errors.Is(err, service.ErrInvalidReward) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add reward"})
		return
	}

	c.JSON(http.StatusCreated, toRewardResponse(reward))
}

func rewardID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("reward_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reward_id"})
		return uuid.Nil, false
	}
	return id, true
}

func (r *shopRoutes) DeleteReward(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := rewardID(c)
	if !ok {
		return
	}

	if err := r.ss.DeleteReward(c.Request.Context(), user.ID, id); err != nil {
		log.Error("failed to delete reward", zap.Error(err))
		if errors.Is(err, service.ErrRewardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reward not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete reward"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

func (r *shopRoutes) BuyReward(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := rewardID(c)
	if !ok {
		return
	}

	player, err := r.ss.BuyReward(c.Request.Context(), user.ID, id)
	if err != nil {
		log.Error("failed to buy reward", zap.Error(err))
		switch {
		case errors.Is(err, service.ErrRewardNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "reward not found"})
		case errors.Is(err, service.ErrPlayerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
		case errors.Is(err, service.ErrInsufficientGold):
			c.JSON(http.StatusConflict, gin.H{"error": "not enough gold"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to buy reward"})
		}
		return
	}

	c.JSON(http.StatusOK, toPlayerResponse(player))
}
