package images

import "fmt"

// Level controls how many lot photos are analyzed and how they are
// combined, trading descriptive richness against billed vision usage.
type Level string

const (
	// LevelBasic skips image retrieval entirely (text-only research).
	LevelBasic Level = "basic"
	// LevelStandard analyzes the first photo only.
	LevelStandard Level = "standard"
	// LevelComprehensive tiles up to four photos into one grid for a
	// single analysis call.
	LevelComprehensive Level = "comprehensive"
	// LevelPremium fetches up to four photos individually; one is billed
	// for analysis, the rest are kept for supplementary use.
	LevelPremium Level = "premium"
)

// Levels lists all research levels in ascending cost order.
var Levels = []Level{LevelBasic, LevelStandard, LevelComprehensive, LevelPremium}

// ParseLevel validates a level name from the CLI.
func ParseLevel(s string) (Level, error) {
	for _, l := range Levels {
		if s == string(l) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown research level %q (valid: basic, standard, comprehensive, premium)", s)
}

func (l Level) String() string {
	return string(l)
}

// WantsImages reports whether the level requires image retrieval at all.
func (l Level) WantsImages() bool {
	return l != LevelBasic
}
