package config

const (
	// Configuration file paths. Schema paths live next to the loaders
	// that validate against them.
	ConfigPathAchievements  = "configs/achievements.json"
	ConfigPathChallengePool = "configs/challenges.json"
	ConfigPathGuidesDir     = "configs/guides"
)
