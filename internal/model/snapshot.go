package model

// Snapshot is the full serializable state of one user at one instant. The
// local store and the remote store share this schema; the remote sync layer
// always writes the whole document (last write wins).
type Snapshot struct {
	Player  *Player         `json:"player"`
	Quests  []*Quest        `json:"quests"`
	History []*HistoryEntry `json:"history"`
	Rewards []*Reward       `json:"rewards"`
}
