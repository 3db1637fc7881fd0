package service

import (
	"testing"

	"habitquest/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestApplyCompletionReward(t *testing.T) {
	quest := func(xp, gold int) *model.Quest {
		return &model.Quest{Title: "q", XP: xp, Gold: gold}
	}

	tests := []struct {
		name       string
		player     model.Player
		quest      *model.Quest
		multiplier int
		extraGold  int
		expected   progressionResult
	}{
		{
			name:       "Plain completion below threshold",
			player:     model.Player{Level: 1, CurrentXP: 100, MaxXP: 500, Health: 80, Gold: 30},
			quest:      quest(50, 10),
			multiplier: 1,
			expected: progressionResult{
				Player:     model.Player{Level: 1, CurrentXP: 150, MaxXP: 500, Health: 85, Gold: 40},
				EarnedXP:   50,
				EarnedGold: 10,
				LeveledUp:  false,
			},
		},
		{
			name:       "Completion health gain caps at max",
			player:     model.Player{Level: 1, CurrentXP: 0, MaxXP: 500, Health: 98, Gold: 0},
			quest:      quest(50, 10),
			multiplier: 1,
			expected: progressionResult{
				Player:     model.Player{Level: 1, CurrentXP: 50, MaxXP: 500, Health: 100, Gold: 10},
				EarnedXP:   50,
				EarnedGold: 10,
			},
		},
		{
			name:       "Level up carries overflow and restores health",
			player:     model.Player{Level: 1, CurrentXP: 450, MaxXP: 500, Health: 40, Gold: 0},
			quest:      quest(100, 20),
			multiplier: 1,
			expected: progressionResult{
				Player:     model.Player{Level: 2, CurrentXP: 50, MaxXP: 750, Health: 100, Gold: 20},
				EarnedXP:   100,
				EarnedGold: 20,
				LeveledUp:  true,
			},
		},
		{
			name:       "Landing exactly on the threshold levels up to zero XP",
			player:     model.Player{Level: 1, CurrentXP: 450, MaxXP: 500, Health: 100, Gold: 0},
			quest:      quest(50, 10),
			multiplier: 1,
			expected: progressionResult{
				Player:     model.Player{Level: 2, CurrentXP: 0, MaxXP: 750, Health: 100, Gold: 10},
				EarnedXP:   50,
				EarnedGold: 10,
				LeveledUp:  true,
			},
		},
		{
			name:       "Oversized reward crosses several levels at once",
			player:     model.Player{Level: 1, CurrentXP: 400, MaxXP: 500, Health: 10, Gold: 0},
			quest:      quest(900, 0),
			multiplier: 1,
			expected: progressionResult{
				// 1300 total: -500 (level 2, max 750), -750 (level 3, max 1125),
				// leaving 50.
				Player:    model.Player{Level: 3, CurrentXP: 50, MaxXP: 1125, Health: 100, Gold: 0},
				EarnedXP:  900,
				LeveledUp: true,
			},
		},
		{
			name:       "Focus session doubles rewards and adds bonus gold",
			player:     model.Player{Level: 1, CurrentXP: 0, MaxXP: 500, Health: 50, Gold: 0},
			quest:      quest(20, 10),
			multiplier: 2,
			extraGold:  5,
			expected: progressionResult{
				Player:     model.Player{Level: 1, CurrentXP: 40, MaxXP: 500, Health: 55, Gold: 25},
				EarnedXP:   40,
				EarnedGold: 25,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := applyCompletionReward(tt.player, tt.quest, tt.multiplier, tt.extraGold)
			assert.Equal(t, tt.expected, got)
			assert.Less(t, got.Player.CurrentXP, got.Player.MaxXP)
		})
	}
}

func TestApplyCompletionReward_DoesNotMutateInput(t *testing.T) {
	before := model.Player{Level: 1, CurrentXP: 450, MaxXP: 500, Health: 40, Gold: 0}
	player := before

	applyCompletionReward(player, &model.Quest{XP: 100, Gold: 20}, 1, 0)
	assert.Equal(t, before, player)
}

func TestApplyFailurePenalty(t *testing.T) {
	tests := []struct {
		name           string
		health         int
		expectedHealth int
	}{
		{name: "Normal damage", health: 50, expectedHealth: 40},
		{name: "Floors at zero", health: 5, expectedHealth: 0},
		{name: "Already at zero", health: 0, expectedHealth: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.Player{Level: 3, CurrentXP: 120, MaxXP: 750, Health: tt.health, Gold: 99}
			got := applyFailurePenalty(p)

			assert.Equal(t, tt.expectedHealth, got.Health)
			// Everything but health is untouched.
			assert.Equal(t, p.Level, got.Level)
			assert.Equal(t, p.CurrentXP, got.CurrentXP)
			assert.Equal(t, p.Gold, got.Gold)
		})
	}
}

func TestSpendGold(t *testing.T) {
	t.Run("Sufficient gold", func(t *testing.T) {
		got, err := spendGold(model.Player{Gold: 100}, 60)
		assert.NoError(t, err)
		assert.Equal(t, 40, got.Gold)
	})

	t.Run("Exact balance", func(t *testing.T) {
		got, err := spendGold(model.Player{Gold: 60}, 60)
		assert.NoError(t, err)
		assert.Equal(t, 0, got.Gold)
	})

	t.Run("Insufficient gold", func(t *testing.T) {
		got, err := spendGold(model.Player{Gold: 10}, 60)
		assert.ErrorIs(t, err, ErrInsufficientGold)
		assert.Equal(t, 10, got.Gold)
	})
}

func TestFocusSessionBonusGold(t *testing.T) {
	assert.Equal(t, 0, focusSessionBonusGold(0))
	assert.Equal(t, 0, focusSessionBonusGold(4))
	assert.Equal(t, 1, focusSessionBonusGold(5))
	assert.Equal(t, 5, focusSessionBonusGold(25))
	assert.Equal(t, 5, focusSessionBonusGold(29))
}
