package mode

// Mode is the ranking strategy chosen for a request.
type Mode string

// Ranking mode constants.
const (
	// Skill ranks by cosine similarity between requested skills and catalog text.
	Skill Mode = "skill"
	// Duration orders by ascending assessment duration.
	Duration Mode = "duration"
)
