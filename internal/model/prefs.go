package model

// UserPrefs holds the ancillary per-user scalars that live next to the game
// snapshot: UI theme, the last-seen-day marker of the daily reset detector,
// the free-text journal notes and the install-prompt flag.
type UserPrefs struct {
	UserID            int64    `json:"user_id"`
	Theme             string   `json:"theme"`
	LastSeenDay       string   `json:"last_seen_day"`
	Notes             []string `json:"notes"`
	InstallPromptSeen bool     `json:"install_prompt_seen"`
}

const DefaultTheme = "theme-midnight"

func NewUserPrefs(userID int64) *UserPrefs {
	return &UserPrefs{
		UserID: userID,
		Theme:  DefaultTheme,
		Notes:  []string{},
	}
}
