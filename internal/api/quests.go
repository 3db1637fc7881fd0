package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"habitquest/internal/model"
	"habitquest/internal/service"
	"habitquest/pkg/auth"
	"habitquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type questRoutes struct {
	qs *service.QuestService
	a  *auth.TelegramAuth
}

func NewQuestRoutes(handler *gin.RouterGroup, qs *service.QuestService, a *auth.TelegramAuth) {
	r := &questRoutes{qs: qs, a: a}
	h := handler.Group("/quests")
	h.Use(a.TelegramAuthMiddleware())
	{
		h.GET("/", r.ListQuests)
		h.POST("/", r.CreateQuest)
		h.DELETE("/:quest_id", r.DeleteQuest)
		h.POST("/:quest_id/complete", r.CompleteQuest)
		h.POST("/:quest_id/fail", r.FailQuest)
		h.POST("/:quest_id/focus", r.ResolveFocusSession)
	}

	hist := handler.Group("/history")
	hist.Use(a.TelegramAuthMiddleware())
	hist.GET("/", r.ListHistory)
}

type QuestResponse struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Difficulty        string          `json:"difficulty"`
	XP                int             `json:"xp"`
	Gold              int             `json:"gold"`
	Type              string          `json:"type"`
	Streak            int             `json:"streak"`
	LastCompletedDate *string         `json:"last_completed_date,omitempty"`
	CompletionHistory map[string]bool `json:"completion_history"`
	ScheduledTime     *string         `json:"scheduled_time,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

func toQuestResponse(q *model.Quest) QuestResponse {
	return QuestResponse{
		ID:                q.ID.String(),
		Title:             q.Title,
		Difficulty:        string(q.Difficulty),
		XP:                q.XP,
		Gold:              q.Gold,
		Type:              string(q.Type),
		Streak:            q.Streak,
		LastCompletedDate: q.LastCompletedDate,
		CompletionHistory: q.CompletionHistory,
		ScheduledTime:     q.ScheduledTime,
		CreatedAt:         q.CreatedAt,
	}
}

func (r *questRoutes) ListQuests(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	quests, err := r.qs.List(c.Request.Context(), user.ID)
	if err != nil {
		log.Error("failed to list quests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list quests"})
		return
	}

	out := make([]QuestResponse, 0, len(quests))
	for _, q := range quests {
		out = append(out, toQuestResponse(q))
	}

	c.JSON(http.StatusOK, out)
}

type CreateQuestRequest struct {
	Title         string  `json:"title"`
	Difficulty    string  `json:"difficulty"`
	Type          string  `json:"type"`
	ScheduledTime *string `json:"scheduled_time"`
	XP            *int    `json:"xp"`
	Gold          *int    `json:"gold"`
}

func (r *questRoutes) CreateQuest(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	quest, err := r.qs.Create(c.Request.Context(), user.ID, service.CreateQuestSpec{
		Title:         req.Title,
		Difficulty:    model.Difficulty(req.Difficulty),
		Type:          model.QuestType(req.Type),
		ScheduledTime: req.ScheduledTime,
		XP:            req.XP,
		Gold:          req.Gold,
	})
	if err != nil {
		log.Error("failed to create quest", zap.Error(err))
		if errors.Is(err, service.ErrInvalidQuest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create quest"})
		return
	}

	c.JSON(http.StatusCreated, toQuestResponse(quest))
}

func questID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("quest_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest_id"})
		return uuid.Nil, false
	}
	return id, true
}

func (r *questRoutes) DeleteQuest(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := questID(c)
	if !ok {
		return
	}

	if err := r.qs.Delete(c.Request.Context(), user.ID, id); err != nil {
		log.Error("failed to delete quest", zap.Error(err))
		if errors.Is(err, service.ErrQuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete quest"})
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

type CompleteQuestResponse struct {
	Status     string          `json:"status"`
	XPGained   int             `json:"xp_gained"`
	GoldGained int             `json:"gold_gained"`
	LeveledUp  bool            `json:"leveled_up"`
	Player     *PlayerResponse `json:"player,omitempty"`
}

func toCompleteQuestResponse(result *service.CompleteResult) CompleteQuestResponse {
	out := CompleteQuestResponse{
		Status:     string(result.Status),
		XPGained:   result.XPGained,
		GoldGained: result.GoldGained,
		LeveledUp:  result.LeveledUp,
	}
	if result.Player != nil {
		player := toPlayerResponse(result.Player)
		out.Player = &player
	}
	return out
}

func (r *questRoutes) CompleteQuest(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := questID(c)
	if !ok {
		return
	}

	result, err := r.qs.Complete(c.Request.Context(), user.ID, id)
	if err != nil {
		log.Error("failed to complete quest", zap.Error(err))
		switch {
		case errors.Is(err, service.ErrQuestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
		case errors.Is(err, service.ErrPlayerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete quest"})
		}
		return
	}

	c.JSON(http.StatusOK, toCompleteQuestResponse(result))
}

type FailQuestRequest struct {
	Reason string `json:"reason"`
}

func (r *questRoutes) FailQuest(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := questID(c)
	if !ok {
		return
	}

	var req FailQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	player, err := r.qs.Fail(c.Request.Context(), user.ID, id, req.Reason)
	if err != nil {
		log.Error("failed to fail quest", zap.Error(err))
		switch {
		case errors.Is(err, service.ErrQuestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
		case errors.Is(err, service.ErrPlayerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fail quest"})
		}
		return
	}

	c.JSON(http.StatusOK, toPlayerResponse(player))
}

type FocusSessionRequest struct {
	Minutes int `json:"minutes"`
}

func (r *questRoutes) ResolveFocusSession(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := questID(c)
	if !ok {
		return
	}

	var req FocusSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := r.qs.ResolveFocusSession(c.Request.Context(), user.ID, id, req.Minutes)
	if err != nil {
		log.Error("failed to resolve focus session", zap.Error(err))
		switch {
		case errors.Is(err, service.ErrQuestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
		case errors.Is(err, service.ErrPlayerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "player not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve focus session"})
		}
		return
	}

	c.JSON(http.StatusOK, toCompleteQuestResponse(result))
}

type HistoryEntryResponse struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Reason    *string   `json:"reason,omitempty"`
}

func toHistoryEntryResponse(entry *model.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:        entry.ID.String(),
		Timestamp: entry.Timestamp,
		Title:     entry.Title,
		Status:    string(entry.Status),
		Reason:    entry.Reason,
	}
}

func (r *questRoutes) ListHistory(c *gin.Context) {
	log := logger.Logger()

	user, ok := currentUser(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	entries, err := r.qs.History(c.Request.Context(), user.ID, limit)
	if err != nil {
		log.Error("failed to list history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list history"})
		return
	}

	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toHistoryEntryResponse(entry))
	}

	c.JSON(http.StatusOK, out)
}
