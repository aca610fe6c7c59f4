package config

// Default filesystem locations
const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./soundboard.db"

	// DefaultAudioDir is the default directory scanned by the catalog sync
	DefaultAudioDir = "./static/audio"

	// DefaultAudioURLPrefix is prepended to stored relative file paths when
	// building playable sound URLs
	DefaultAudioURLPrefix = "/static/audio/"
)
