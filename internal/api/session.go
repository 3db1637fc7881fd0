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
)

type sessionRoutes struct {
	ss *service.SessionService
	a  *auth.TelegramAuth
}

func NewSessionRoutes(handler *gin.RouterGroup, ss *service.SessionService, a *auth.TelegramAuth) {
	r := &sessionRoutes{ss: ss, a: a}
	h := handler.Group("/")
	h.Use(a.TelegramAuthMiddleware())
	{
		h.POST("/session", r.Bootstrap)
		h.GET("/players/me", r.GetPlayer)
		h.POST("/players/me/reset", r.ResetAll)
		h.GET("/settings", r.GetSettings)
		h.PUT("/settings", r.UpdateSettings)
	}
}

type PlayerResponse struct {
	Level           int      `json:"level"`
	CurrentXP       int      `json:"current_xp"`
	MaxXP           int      `json:"max_xp"`
	Health          int      `json:"health"`
	Gold            int      `json:"gold"`
	AvatarID        string   `json:"avatar_id"`
	UnlockedAvatars []string `json:"unlocked_avatars"`
}

func toPlayerResponse(p *model.Player) PlayerResponse {
	return PlayerResponse{
		Level:           p.Level,
		CurrentXP:       p.CurrentXP,
		MaxXP:           p.MaxXP,
		Health:          p.Health,
		Gold:            p.Gold,
		AvatarID:        p.AvatarID,
		UnlockedAvatars: p.UnlockedAvatars,
	}
}

type SnapshotResponse struct {
	Player  PlayerResponse         `json:"player"`
	Quests  []QuestResponse        `json:"quests"`
	History []HistoryEntryResponse `json:"history"`
	Rewards []RewardResponse       `json:"rewards"`
}

func toSnapshotResponse(snap *model.Snapshot) SnapshotResponse {
	quests := make([]QuestResponse, 0, len(snap.Quests))
	for _, q := range snap.Quests {
		quests = append(quests, toQuestResponse(q))
	}

	history := make([]HistoryEntryResponse, 0, len(snap.History))
	for _, entry := range snap.History {
		history = append(history, toHistoryEntryResponse(entry))
	}

	rewards := make([]RewardResponse, 0, len(snap.Rewards))
	for _, w := range snap.Rewards {
		rewards = append(rewards, toRewardResponse(w))
	}

	return SnapshotResponse{
		Player:  toPlayerResponse(snap.Player),
		Quests:  quests,
		History: history,
		Rewards: rewards,
	}
}

func (r *sessionRoutes) Bootstrap(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	snap, err := r.ss.Bootstrap(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("failed to bootstrap session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to bootstrap session"})
		return
	}

	c.JSON(http.StatusOK, toSnapshotResponse(snap))
}

func (r *sessionRoutes) GetPlayer(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	player, err := r.ss.GetPlayer(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("failed to get player", zap.Error(err))
		if errors.Is(err, service.ErrPlayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get player"})
		return
	}

	c.JSON(http.StatusOK, toPlayerResponse(player))
}

func (r *sessionRoutes) ResetAll(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	snap, err := r.ss.ResetAll(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("failed to reset", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset"})
		return
	}

	c.JSON(http.StatusOK, toSnapshotResponse(snap))
}

type SettingsResponse struct {
	Theme             string   `json:"theme"`
	LastSeenDay       string   `json:"last_seen_day"`
	Notes             []string `json:"notes"`
	InstallPromptSeen bool     `json:"install_prompt_seen"`
}

func toSettingsResponse(prefs *model.UserPrefs) SettingsResponse {
	return SettingsResponse{
		Theme:             prefs.Theme,
		LastSeenDay:       prefs.LastSeenDay,
		Notes:             prefs.Notes,
		InstallPromptSeen: prefs.InstallPromptSeen,
	}
}

func (r *sessionRoutes) GetSettings(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	prefs, err := r.ss.GetPrefs(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("failed to get settings", zap.Error(err))
		if errors.Is(err, service.ErrPlayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get settings"})
		return
	}

	c.JSON(http.StatusOK, toSettingsResponse(prefs))
}

type UpdateSettingsRequest struct {
	Theme             *string   `json:"theme"`
	Notes             *[]string `json:"notes"`
	InstallPromptSeen *bool     `json:"install_prompt_seen"`
}

func (r *sessionRoutes) UpdateSettings(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	prefs, err := r.ss.UpdatePrefs(c.Request.Context(), user.ID, service.UpdatePrefsSpec{
		Theme:             req.Theme,
		Notes:             req.Notes,
		InstallPromptSeen: req.InstallPromptSeen,
	})
	if err != nil {
		log.Error("failed to update settings", zap.Error(err))
		if errors.Is(err, service.ErrPlayerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, toSettingsResponse(prefs))
}
