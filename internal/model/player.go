package model

const (
	MaxHealth = 100

	StartingLevel  = 1
	StartingMaxXP  = 500
	StartingHealth = MaxHealth

	// StarterAvatarID is free and unlocked for every new player.
	StarterAvatarID = "kai"
)

type Player struct {
	UserID          int64    `json:"user_id"`
	Level           int      `json:"level"`
	CurrentXP       int      `json:"current_xp"`
	MaxXP           int      `json:"max_xp"`
	Health          int      `json:"health"`
	Gold            int      `json:"gold"`
	AvatarID        string   `json:"avatar_id"`
	UnlockedAvatars []string `json:"unlocked_avatars"`
}

func NewPlayer(userID int64) *Player {
	return &Player{
		UserID:          userID,
		Level:           StartingLevel,
		CurrentXP:       0,
		MaxXP:           StartingMaxXP,
		Health:          StartingHealth,
		Gold:            0,
		AvatarID:        StarterAvatarID,
		UnlockedAvatars: []string{StarterAvatarID},
	}
}

func (p *Player) HasAvatar(avatarID string) bool {
	for _, id := range p.UnlockedAvatars {
		if id == avatarID {
			return true
		}
	}
	return false
}
