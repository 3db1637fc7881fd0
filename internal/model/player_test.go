package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPlayerDefaults(t *testing.T) {
	p := NewPlayer(42)

	assert.Equal(t, int64(42), p.UserID)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.CurrentXP)
	assert.Equal(t, 500, p.MaxXP)
	assert.Equal(t, MaxHealth, p.Health)
	assert.Equal(t, 0, p.Gold)
	assert.Equal(t, StarterAvatarID, p.AvatarID)
	assert.True(t, p.HasAvatar(StarterAvatarID))
}
