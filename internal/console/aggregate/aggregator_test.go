package aggregate

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"bibliodesk/internal/console/aggregate/mocks"
	"bibliodesk/internal/console/models"
	dErrors "bibliodesk/pkg/domain-errors"
)

type AggregatorSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	users   *mocks.MockUserLister
	books   *mocks.MockBookLister
	borrows *mocks.MockBorrowLister
	fines   *mocks.MockFineLister
	agg     *Aggregator
}

func (s *AggregatorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.users = mocks.NewMockUserLister(s.ctrl)
	s.books = mocks.NewMockBookLister(s.ctrl)
	s.borrows = mocks.NewMockBorrowLister(s.ctrl)
	s.fines = mocks.NewMockFineLister(s.ctrl)
	s.agg = New(s.users, s.books, s.borrows, s.fines,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *AggregatorSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAggregatorSuite(t *testing.T) {
	suite.Run(t, new(AggregatorSuite))
}

func borrowFixture(id, userID, bookID int64) models.BorrowRecord {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return models.BorrowRecord{
		ID: id, UserID: userID, BookID: bookID,
		BorrowDate: now, DueDate: now.AddDate(0, 0, 14),
		Status: models.StatusBorrowed,
	}
}

// TestBorrowsJoinMissResolvesToSentinel covers the canonical join scenario:
// a user snapshot that resolves, a book snapshot that does not.
func (s *AggregatorSuite) TestBorrowsJoinMissResolvesToSentinel() {
	s.borrows.EXPECT().List(gomock.Any()).Return([]models.BorrowRecord{borrowFixture(1, 10, 100)}, nil)
	s.users.EXPECT().List(gomock.Any()).Return([]models.UserProfile{{UserID: 10, Name: "Alice"}}, nil)
	s.books.EXPECT().List(gomock.Any()).Return([]models.Book{}, nil)

	rows, err := s.agg.Borrows(context.Background())
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal("Alice", rows[0].UserName)
	s.Equal(models.Sentinel, rows[0].BookTitle)
}

// TestBorrowsRowCountAndOrderPreserved asserts the engine never drops,
// sorts, or deduplicates primary rows regardless of join outcomes.
func (s *AggregatorSuite) TestBorrowsRowCountAndOrderPreserved() {
	primary := []models.BorrowRecord{
		borrowFixture(3, 99, 100),
		borrowFixture(1, 10, 999),
		borrowFixture(2, 10, 100),
	}
	s.borrows.EXPECT().List(gomock.Any()).Return(primary, nil)
	s.users.EXPECT().List(gomock.Any()).Return([]models.UserProfile{{UserID: 10, Name: "Alice"}}, nil)
	s.books.EXPECT().List(gomock.Any()).Return([]models.Book{{ID: 100, Title: "Dune"}}, nil)

	rows, err := s.agg.Borrows(context.Background())
	s.Require().NoError(err)
	s.Require().Len(rows, len(primary))
	for i := range primary {
		s.Equal(primary[i].ID, rows[i].ID)
	}
	s.Equal(models.Sentinel, rows[0].UserName)
	s.Equal("Dune", rows[0].BookTitle)
	s.Equal(models.Sentinel, rows[1].BookTitle)
}

// TestBorrowsPrimaryFailureFailsThePass verifies the uniform policy: a
// failing primary fetch aborts the pass so the caller can keep its last
// good snapshot.
func (s *AggregatorSuite) TestBorrowsPrimaryFailureFailsThePass() {
	s.borrows.EXPECT().List(gomock.Any()).Return(nil,
		dErrors.New(dErrors.CodeUpstreamUnavailable, "borrows unreachable"))
	s.users.EXPECT().List(gomock.Any()).Return(nil, nil).AnyTimes()
	s.books.EXPECT().List(gomock.Any()).Return(nil, nil).AnyTimes()

	_, err := s.agg.Borrows(context.Background())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUpstreamUnavailable))
}

// TestBorrowsSecondaryFailureDegrades verifies enrichment is best-effort:
// both secondaries down still yields the full primary set, all sentinels.
func (s *AggregatorSuite) TestBorrowsSecondaryFailureDegrades() {
	s.borrows.EXPECT().List(gomock.Any()).Return([]models.BorrowRecord{borrowFixture(1, 10, 100)}, nil)
	s.users.EXPECT().List(gomock.Any()).Return(nil,
		dErrors.New(dErrors.CodeUpstreamUnavailable, "users unreachable"))
	s.books.EXPECT().List(gomock.Any()).Return(nil,
		dErrors.New(dErrors.CodeUpstreamStatus, "books returned status 500"))

	rows, err := s.agg.Borrows(context.Background())
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal(models.Sentinel, rows[0].UserName)
	s.Equal(models.Sentinel, rows[0].BookTitle)
}

// TestFinesEnrichment verifies the fine pass joins only against users and
// applies the same policies as the borrow pass.
func (s *AggregatorSuite) TestFinesEnrichment() {
	s.fines.EXPECT().List(gomock.Any()).Return([]models.Fine{
		{ID: 1, BorrowID: 5, UserID: 10, Amount: 50000, Reason: models.ReasonLate},
		{ID: 2, BorrowID: 6, UserID: 77, Amount: 20000, Reason: models.ReasonLost},
	}, nil)
	s.users.EXPECT().List(gomock.Any()).Return([]models.UserProfile{{UserID: 10, Name: "Alice"}}, nil)

	rows, err := s.agg.Fines(context.Background())
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal("Alice", rows[0].UserName)
	s.Equal(models.Sentinel, rows[1].UserName)
}

// TestFinesPrimaryFailureFailsThePass pins the uniform-policy decision for
// fines as well: no silent degrade-to-empty.
func (s *AggregatorSuite) TestFinesPrimaryFailureFailsThePass() {
	s.fines.EXPECT().List(gomock.Any()).Return(nil,
		dErrors.New(dErrors.CodeUpstreamStatus, "fines returned status 503"))
	s.users.EXPECT().List(gomock.Any()).Return(nil, nil).AnyTimes()

	rows, err := s.agg.Fines(context.Background())
	s.Require().Error(err)
	s.Nil(rows)
}

func TestResolvePresentButEmptyIsNotSentinel(t *testing.T) {
	m := map[int64]string{7: ""}
	assert.Equal(t, "", resolve(m, 7))
	assert.Equal(t, models.Sentinel, resolve(m, 8))
	require.Equal(t, models.Sentinel, resolve(nil, 7))
}
