package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Item is a vocabulary word or quiz question owned by a subject.
type Item struct {
	ID         int64      `json:"id" db:"id"`
	Subject    string     `json:"subject" db:"subject"`
	Prompt     string     `json:"prompt" db:"prompt"`
	Answer     string     `json:"answer" db:"answer"`
	Difficulty Difficulty `json:"difficulty" db:"difficulty"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
