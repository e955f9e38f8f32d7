package services

import (
	"context"
	"strings"

	"github.com/vytor/learntrack/internal/errors"
	"github.com/vytor/learntrack/internal/logger"
	"github.com/vytor/learntrack/internal/matcher"
	"github.com/vytor/learntrack/internal/points"
	"github.com/vytor/learntrack/internal/repository"
)

type QuizResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	PointsAwarded int    `json:"points_awarded"`
	Accepted      bool   `json:"accepted"`
	TotalAfter    int    `json:"total_after"`
}

type CompletionResult struct {
	PointsAwarded int  `json:"points_awarded"`
	Accepted      bool `json:"accepted"`
	TotalAfter    int  `json:"total_after"`
}

// QuizService grades free-text answers and credits the points they earn.
type QuizService interface {
	CheckAnswer(userAnswer, correctAnswer string) bool
	SubmitAnswer(ctx context.Context, userID string, itemID int64, answer string, kind points.Kind) (*QuizResult, error)
	CompleteSubject(ctx context.Context, userID, subject string) (*CompletionResult, error)
}

type quizService struct {
	userRepo   repository.UserRepository
	itemRepo   repository.ItemRepository
	pointsRepo repository.PointsRepository
	points     PointsService
}

// NewQuizService creates a new QuizService
func NewQuizService(
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	pointsRepo repository.PointsRepository,
	pointsService PointsService,
) QuizService {
	return &quizService{userRepo: userRepo, itemRepo: itemRepo, pointsRepo: pointsRepo, points: pointsService}
}

func (s *quizService) CheckAnswer(userAnswer, correctAnswer string) bool {
	return matcher.IsEquivalent(userAnswer, correctAnswer)
}

// SubmitAnswer grades answer against the item. A correct answer is credited
// once per item; wrong answers earn nothing and leave the ledger untouched.
func (s *quizService) SubmitAnswer(ctx context.Context, userID string, itemID int64, answer string, kind points.Kind) (*QuizResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting answer: user_id=%s, item_id=%d, kind=%s", userID, itemID, kind)

	if kind == "" {
		kind = points.KindQuizAnswer
	}
	var key string
	switch kind {
	case points.KindQuizAnswer:
		key = points.QuizKey(itemID)
	case points.KindGameWord:
		key = points.WordKey(itemID)
	default:
		return nil, errors.NewValidationError("kind", "must be quiz_answer or game_word")
	}
	if strings.TrimSpace(answer) == "" {
		return nil, errors.NewValidationError("answer", "cannot be empty")
	}

	if _, err := loadUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}
	item, err := loadItem(ctx, s.itemRepo, itemID)
	if err != nil {
		return nil, err
	}

	correct := matcher.IsEquivalent(answer, item.Answer)
	earned, err := points.Calculate(points.GradedEvent{Kind: kind, Correct: correct, Difficulty: item.Difficulty})
	if err != nil {
		return nil, errors.NewValidationError("item", err.Error())
	}

	result := &QuizResult{Correct: correct, CorrectAnswer: item.Answer}
	if earned == 0 {
		total, err := s.pointsRepo.Total(ctx, userID)
		if err != nil {
			log.Error("failed to get points total: %v", err)
			return nil, errors.NewInternalError(err)
		}
		result.TotalAfter = total
		return result, nil
	}

	award, err := s.points.Award(ctx, userID, earned, points.ReasonCode(kind), key)
	if err != nil {
		return nil, err
	}
	result.Accepted = award.Accepted
	result.TotalAfter = award.TotalAfter
	if award.Accepted {
		result.PointsAwarded = earned
	}
	return result, nil
}

func (s *quizService) CompleteSubject(ctx context.Context, userID, subject string) (*CompletionResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("completing subject: user_id=%s, subject=%s", userID, subject)

	earned, err := points.Calculate(points.GradedEvent{Kind: points.KindCompletion, Correct: true})
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	award, err := s.points.Award(ctx, userID, earned, points.ReasonCode(points.KindCompletion), points.CompletionKey(subject))
	if err != nil {
		return nil, err
	}

	result := &CompletionResult{Accepted: award.Accepted, TotalAfter: award.TotalAfter}
	if award.Accepted {
		result.PointsAwarded = earned
	}
	return result, nil
}
