package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/learntrack/internal/models"
	"github.com/vytor/learntrack/internal/repository"
	"github.com/vytor/learntrack/internal/repository/sqlite"
	"github.com/vytor/learntrack/internal/testutil"
)

type UserRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewUserRepository(s.db)
}

func (s *UserRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *UserRepositorySuite) TestCreateAndGet() {
	ctx := context.Background()
	created := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)

	err := s.repo.Create(ctx, models.User{
		ID:          "u-ana",
		DisplayName: "Ana",
		ClassName:   "5A",
		Timezone:    "America/Sao_Paulo",
		CreatedAt:   created,
	})
	s.Require().NoError(err)

	u, err := s.repo.Get(ctx, "u-ana")
	s.Require().NoError(err)
	s.Require().NotNil(u)
	s.Assert().Equal("Ana", u.DisplayName)
	s.Assert().Equal("5A", u.ClassName)
	s.Assert().Equal("America/Sao_Paulo", u.Timezone)
	s.Assert().True(created.Equal(u.CreatedAt))
}

func (s *UserRepositorySuite) TestGet_NotFound() {
	u, err := s.repo.Get(context.Background(), "ghost")
	s.Assert().NoError(err)
	s.Assert().Nil(u)
}

func (s *UserRepositorySuite) TestCreate_Duplicate() {
	ctx := context.Background()
	u := models.User{ID: "u1", DisplayName: "One", CreatedAt: time.Now()}

	s.Require().NoError(s.repo.Create(ctx, u))
	err := s.repo.Create(ctx, u)
	s.Assert().ErrorIs(err, repository.ErrAlreadyExists)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
