package service

import "habitquest/internal/model"

const (
	// maxXP grows by half, floored, on every level-up.
	levelUpGrowthNum = 3
	levelUpGrowthDen = 2

	completionHealthGain = 5
	failureHealthLoss    = 10

	focusBonusMultiplier = 2
	focusGoldPerFiveMin  = 5
)

type progressionResult struct {
	Player     model.Player
	EarnedXP   int
	EarnedGold int
	LeveledUp  bool
}

// applyCompletionReward is the core progression transition. It never mutates
// its input; callers persist the returned copy. The level-up check loops so a
// single large reward can cross several thresholds at once, and the invariant
// CurrentXP < MaxXP holds on return.
func applyCompletionReward(p model.Player, q *model.Quest, bonusMultiplier, extraGold int) progressionResult {
	earnedXP := q.XP * bonusMultiplier
	earnedGold := q.Gold*bonusMultiplier + extraGold

	newXP := p.CurrentXP + earnedXP
	leveledUp := false

	for newXP >= p.MaxXP {
		newXP -= p.MaxXP
		p.Level++
		p.MaxXP = p.MaxXP * levelUpGrowthNum / levelUpGrowthDen
		leveledUp = true
	}

	p.CurrentXP = newXP
	p.Gold += earnedGold

	// A level-up fully restores health; an ordinary completion heals a little.
	if leveledUp {
		p.Health = model.MaxHealth
	} else {
		p.Health = min(model.MaxHealth, p.Health+completionHealthGain)
	}

	return progressionResult{
		Player:     p,
		EarnedXP:   earnedXP,
		EarnedGold: earnedGold,
		LeveledUp:  leveledUp,
	}
}

// applyFailurePenalty damages the player without touching XP or gold.
func applyFailurePenalty(p model.Player) model.Player {
	p.Health = max(0, p.Health-failureHealthLoss)
	return p
}

// spendGold debits the player or reports ErrInsufficientGold leaving it
// untouched.
func spendGold(p model.Player, cost int) (model.Player, error) {
	if p.Gold < cost {
		return p, ErrInsufficientGold
	}
	p.Gold -= cost
	return p, nil
}

// focusSessionBonusGold converts elapsed focus minutes into flat bonus gold.
func focusSessionBonusGold(minutes int) int {
	return minutes / focusGoldPerFiveMin
}
