// Package points turns graded learning events into point awards and the
// idempotency keys that guard them.
package points

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vytor/learntrack/internal/models"
)

type Kind string

const (
	KindQuizAnswer Kind = "quiz_answer"
	KindGameWord   Kind = "game_word"
	KindCompletion Kind = "completion"
)

const (
	CompletionBonus = 50
	pointsPerWord   = 5
)

var quizPoints = map[models.Difficulty]int{
	models.DifficultyEasy:   10,
	models.DifficultyMedium: 15,
	models.DifficultyHard:   20,
}

var wordMultiplier = map[models.Difficulty]int{
	models.DifficultyEasy:   1,
	models.DifficultyMedium: 2,
	models.DifficultyHard:   3,
}

var (
	ErrUnknownKind       = errors.New("unknown event kind")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

// GradedEvent is a scoring event after grading. Count is the number of
// words found for game events and is treated as at least one.
type GradedEvent struct {
	Kind       Kind
	Correct    bool
	Difficulty models.Difficulty
	Count      int
}

// Calculate returns the points earned by e. Incorrect answers earn nothing.
func Calculate(e GradedEvent) (int, error) {
	switch e.Kind {
	case KindCompletion:
		return CompletionBonus, nil
	case KindQuizAnswer, KindGameWord:
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, e.Kind)
	}

	if !e.Difficulty.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDifficulty, e.Difficulty)
	}
	if !e.Correct {
		return 0, nil
	}

	if e.Kind == KindQuizAnswer {
		return quizPoints[e.Difficulty], nil
	}
	count := e.Count
	if count < 1 {
		count = 1
	}
	return pointsPerWord * count * wordMultiplier[e.Difficulty], nil
}

// ReasonCode is the ledger reason recorded for awards of kind k.
func ReasonCode(k Kind) string {
	return string(k)
}

func QuizKey(itemID int64) string {
	return "quiz-q-" + strconv.FormatInt(itemID, 10)
}

func WordKey(itemID int64) string {
	return "word-" + strconv.FormatInt(itemID, 10)
}

// CompletionKey guards the completion bonus, once overall or once per subject.
func CompletionKey(subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "completion"
	}
	return "completion-" + subject
}
