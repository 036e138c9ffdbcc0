package srs

// Response is a user's grade for a presented card. The numeric values are
// part of the bot callback payloads and must stay stable.
type Response int

const (
	// ResponseIncorrect means the user failed to recall the card
	ResponseIncorrect Response = -1
	// ResponseVague means the user half-remembered the card
	ResponseVague Response = 0
	// ResponseCorrect means the user recalled the card
	ResponseCorrect Response = 1
	// ResponseNewCard acknowledges a freshly presented card
	ResponseNewCard Response = 2
)

// Valid reports whether r is one of the four known responses
func (r Response) Valid() bool {
	switch r {
	case ResponseIncorrect, ResponseVague, ResponseCorrect, ResponseNewCard:
		return true
	}
	return false
}

func (r Response) String() string {
	switch r {
	case ResponseIncorrect:
		return "incorrect"
	case ResponseVague:
		return "vague"
	case ResponseCorrect:
		return "correct"
	case ResponseNewCard:
		return "new_card"
	}
	return "invalid"
}
