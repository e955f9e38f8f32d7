package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/learntrack/internal/flashcard"
	"github.com/vytor/learntrack/internal/models"
	"github.com/vytor/learntrack/internal/repository"
	"github.com/vytor/learntrack/internal/repository/sqlite"
	"github.com/vytor/learntrack/internal/testutil"
)

type ProgressRepositorySuite struct {
	suite.Suite
	db     *sql.DB
	repo   repository.ProgressRepository
	events repository.ReviewEventRepository
	now    time.Time
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProgressRepository(s.db)
	s.events = sqlite.NewReviewEventRepository(s.db)
	s.now = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	testutil.SeedUser(s.T(), s.db, "u1", "Ana", "5A")
}

func (s *ProgressRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

// review schedules and stores one rating the way the review service does.
func (s *ProgressRepositorySuite) review(current *models.ProgressRecord, itemID int64, q models.Quality, at time.Time) (models.ProgressRecord, error) {
	next, err := flashcard.Schedule(current, q, at)
	s.Require().NoError(err)
	next.UserID = "u1"
	next.ItemID = itemID
	return s.repo.Put(context.Background(), next, models.ReviewEvent{
		ID: uuid.NewString(), UserID: "u1", ItemID: itemID, Quality: q, ReviewedAt: at,
	})
}

func (s *ProgressRepositorySuite) TestPutCreatesThenUpdates() {
	ctx := context.Background()
	item := testutil.SeedItem(s.T(), s.db, "animals", "gato", "cat", models.DifficultyEasy)

	first, err := s.review(nil, item.ID, models.QualityEasy, s.now)
	s.Require().NoError(err)
	s.Assert().Equal(int64(1), first.Version)

	got, err := s.repo.Get(ctx, "u1", item.ID)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(1, got.Repetitions)
	s.Assert().Equal(1.0, got.IntervalDays)
	s.Assert().Equal(models.QualityEasy, got.LastQuality)
	s.Assert().True(s.now.AddDate(0, 0, 1).Equal(got.NextReviewDueAt))
	s.Require().NotNil(got.LastReviewedAt)
	s.Assert().True(s.now.Equal(*got.LastReviewedAt))

	second, err := s.review(got, item.ID, models.QualityDifficult, s.now.AddDate(0, 0, 1))
	s.Require().NoError(err)
	s.Assert().Equal(int64(2), second.Version)

	got, err = s.repo.Get(ctx, "u1", item.ID)
	s.Require().NoError(err)
	s.Assert().Equal(0, got.Repetitions)
	s.Assert().Equal(0.5, got.IntervalDays)
	s.Assert().Equal(int64(2), got.Version)

	events, err := s.events.Recent(ctx, "u1", 10)
	s.Require().NoError(err)
	s.Require().Len(events, 2)
	s.Assert().Equal(models.QualityDifficult, events[0].Quality, "newest first")
	s.Assert().Equal(models.QualityEasy, events[1].Quality)
}

func (s *ProgressRepositorySuite) TestPut_StaleVersionConflicts() {
	ctx := context.Background()
	item := testutil.SeedItem(s.T(), s.db, "animals", "gato", "cat", models.DifficultyEasy)

	_, err := s.review(nil, item.ID, models.QualityEasy, s.now)
	s.Require().NoError(err)
	stale, err := s.repo.Get(ctx, "u1", item.ID)
	s.Require().NoError(err)

	_, err = s.review(stale, item.ID, models.QualityAverage, s.now.Add(time.Hour))
	s.Require().NoError(err)

	_, err = s.review(stale, item.ID, models.QualityEasy, s.now.Add(2*time.Hour))
	s.Assert().ErrorIs(err, repository.ErrConflict)

	events, err := s.events.Recent(ctx, "u1", 10)
	s.Require().NoError(err)
	s.Assert().Len(events, 2, "losing write must not append an event")
}

func (s *ProgressRepositorySuite) TestPut_ConcurrentCreateConflicts() {
	item := testutil.SeedItem(s.T(), s.db, "animals", "gato", "cat", models.DifficultyEasy)

	_, err := s.review(nil, item.ID, models.QualityEasy, s.now)
	s.Require().NoError(err)

	_, err = s.review(nil, item.ID, models.QualityAverage, s.now)
	s.Assert().ErrorIs(err, repository.ErrConflict)
}

func (s *ProgressRepositorySuite) TestGet_NotFound() {
	got, err := s.repo.Get(context.Background(), "u1", 12345)
	s.Assert().NoError(err)
	s.Assert().Nil(got)
}

func (s *ProgressRepositorySuite) TestListDueAndUpcoming() {
	ctx := context.Background()
	a := testutil.SeedItem(s.T(), s.db, "animals", "gato", "cat", models.DifficultyEasy)
	b := testutil.SeedItem(s.T(), s.db, "animals", "cavalo", "horse", models.DifficultyMedium)
	c := testutil.SeedItem(s.T(), s.db, "animals", "peixe", "fish", models.DifficultyHard)
	d := testutil.SeedItem(s.T(), s.db, "animals", "vaca", "cow", models.DifficultyHard)

	// a: due 12h after now-2d, b: due now-1d+1d = now, c: due now+1d, d: far future
	_, err := s.review(nil, a.ID, models.QualityDifficult, s.now.AddDate(0, 0, -2))
	s.Require().NoError(err)
	_, err = s.review(nil, b.ID, models.QualityEasy, s.now.AddDate(0, 0, -1))
	s.Require().NoError(err)
	_, err = s.review(nil, c.ID, models.QualityAverage, s.now)
	s.Require().NoError(err)
	rec := models.ProgressRecord{Repetitions: 5, IntervalDays: 30}
	_, err = s.review(&rec, d.ID, models.QualityEasy, s.now)
	s.Require().NoError(err)

	due, err := s.repo.ListDue(ctx, "u1", s.now, 0)
	s.Require().NoError(err)
	s.Require().Len(due, 2)
	s.Assert().Equal(a.ID, due[0].Item.ID)
	s.Assert().Equal("cat", due[0].Item.Answer)
	s.Assert().Equal(b.ID, due[1].Item.ID)

	limited, err := s.repo.ListDue(ctx, "u1", s.now, 1)
	s.Require().NoError(err)
	s.Assert().Len(limited, 1)

	upcoming, err := s.repo.ListUpcoming(ctx, "u1", s.now, s.now.AddDate(0, 0, 7), 10)
	s.Require().NoError(err)
	s.Require().Len(upcoming, 1)
	s.Assert().Equal(c.ID, upcoming[0].ItemID)
	s.Assert().Equal("peixe", upcoming[0].Prompt)
	s.Assert().Equal(models.DifficultyHard, upcoming[0].Difficulty)

	none, err := s.repo.ListUpcoming(ctx, "u2", s.now, s.now.AddDate(0, 0, 7), 10)
	s.Require().NoError(err)
	s.Assert().NotNil(none)
	s.Assert().Empty(none)
}

func (s *ProgressRepositorySuite) TestSummary() {
	ctx := context.Background()
	a := testutil.SeedItem(s.T(), s.db, "animals", "gato", "cat", models.DifficultyEasy)
	b := testutil.SeedItem(s.T(), s.db, "animals", "cavalo", "horse", models.DifficultyMedium)

	_, err := s.review(nil, a.ID, models.QualityDifficult, s.now.AddDate(0, 0, -1))
	s.Require().NoError(err)
	mastered := models.ProgressRecord{Repetitions: 2, IntervalDays: 3}
	_, err = s.review(&mastered, b.ID, models.QualityEasy, s.now)
	s.Require().NoError(err)

	sum, err := s.repo.Summary(ctx, "u1", s.now)
	s.Require().NoError(err)
	s.Assert().Equal(2, sum.Total)
	s.Assert().Equal(1, sum.Due)
	s.Assert().Equal(1, sum.Mastered)

	empty, err := s.repo.Summary(ctx, "nobody", s.now)
	s.Require().NoError(err)
	s.Assert().Zero(empty.Total)
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}
