package constants

// DateFormat is the standard date format (YYYY-MM-DD) used for all
// day-granularity values in storage and CLI flags.
const DateFormat = "2006-01-02"

// TimestampFormat is the format used for full timestamps in storage.
const TimestampFormat = "2006-01-02T15:04:05Z07:00"

// DefaultConfigPath is the default database location.
const DefaultConfigPath = "~/.config/habitlife/habitlife.db"

// Game defaults.
const (
	// DefaultStartingLives is the life total a fresh attempt begins with.
	DefaultStartingLives = 100

	// ZeroEffortPenaltyFactor multiplies a weekly habit's XP value when a
	// week passes with zero completions.
	ZeroEffortPenaltyFactor = 2

	// DaysPerWeek is the settlement window length.
	DaysPerWeek = 7
)
