package model

// Avatar is an unlockable hero skin sold for gold.
type Avatar struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Cost        int    `json:"cost"`
	Description string `json:"description"`
}

// Avatars is the built-in hero catalog. The first entry is the free starter.
var Avatars = []Avatar{
	{ID: "kai", Name: "Kai the Ninja", Cost: 0, Description: "Silent but deadly. Great for focus tasks."},
	{ID: "elara", Name: "Elara the Mage", Cost: 500, Description: "Master of wisdom and reading habits."},
	{ID: "rex", Name: "Rex the Titan", Cost: 1000, Description: "Unstoppable force for workout goals."},
	{ID: "zephyr", Name: "Zephyr the Rogue", Cost: 2500, Description: "Quick and agile. Perfect for busy days."},
	{ID: "nova", Name: "Nova the Cyborg", Cost: 5000, Description: "Future tech for coding mastery."},
}

func AvatarByID(id string) (Avatar, bool) {
	for _, a := range Avatars {
		if a.ID == id {
			return a, true
		}
	}
	return Avatar{}, false
}
