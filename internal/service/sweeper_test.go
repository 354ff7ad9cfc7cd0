package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"atomizer/internal/config"
	"atomizer/internal/domain"
	"atomizer/internal/service/mocks"
)

type SweeperTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	store    *mocks.MockSweepStore
	notifier *mocks.MockNotifier

	sweeper *Sweeper
	now     time.Time
}

func (s *SweeperTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.store = mocks.NewMockSweepStore(s.ctrl)
	s.notifier = mocks.NewMockNotifier(s.ctrl)

	cfg := config.SweeperConfig{
		Interval:           time.Minute,
		PendingStaleAfter:  24 * time.Hour,
		TextStaleAfter:     30 * time.Minute,
		ClipStaleAfter:     20 * time.Minute,
		ReformatStaleAfter: 15 * time.Minute,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.sweeper = NewSweeper(s.store, s.notifier, cfg, config.PipelineConfig{}, logger)
	s.sweeper.now = func() time.Time { return s.now }
}

func (s *SweeperTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSweeperTestSuite(t *testing.T) {
	suite.Run(t, new(SweeperTestSuite))
}

func (s *SweeperTestSuite) TestSweep_FailsStaleWork() {
	ctx := context.Background()

	s.store.EXPECT().FailStaleContent(ctx, domain.StatusGeneratingText, s.now.Add(-30*time.Minute), "processing timed out").Return([]string{"c1"}, nil)
	s.store.EXPECT().FailStaleContent(ctx, domain.StatusPending, s.now.Add(-24*time.Hour), "processing timed out").Return([]string{"c0"}, nil)
	s.store.EXPECT().FailStaleClips(ctx, s.now.Add(-20*time.Minute)).Return([]string{"c2", "c2", "c3"}, nil)
	s.store.EXPECT().CompleteIfDone(ctx, "c2", true).Return(true, nil)
	s.store.EXPECT().CompleteIfDone(ctx, "c3", true).Return(false, nil)
	s.store.EXPECT().FailStaleReformatJobs(ctx, s.now.Add(-15*time.Minute)).Return([]domain.StaleReformat{
		{ReformatJobID: "r1", ContentID: "c4", UserID: "u1"},
	}, nil)
	s.notifier.EXPECT().Notify(ctx, "u1", domain.EventReformatResult, domain.ReformatFailureEvent{
		UserID:        "u1",
		ReformatJobID: "r1",
		Error:         "Failed to generate video.",
	}).Return(nil)

	stats, err := s.sweeper.Sweep(ctx)

	s.Require().NoError(err)
	s.Equal(2, stats.Content)
	s.Equal(3, stats.Clips)
	s.Equal(1, stats.Completed)
	s.Equal(1, stats.Reformats)
}

func (s *SweeperTestSuite) TestSweep_NothingStale() {
	ctx := context.Background()

	s.store.EXPECT().FailStaleContent(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	s.store.EXPECT().FailStaleClips(ctx, gomock.Any()).Return(nil, nil)
	s.store.EXPECT().FailStaleReformatJobs(ctx, gomock.Any()).Return(nil, nil)

	stats, err := s.sweeper.Sweep(ctx)

	s.Require().NoError(err)
	s.Zero(stats.Content + stats.Clips + stats.Reformats)
}

func (s *SweeperTestSuite) TestSweep_ContinuesPastErrors() {
	ctx := context.Background()
	dbErr := errors.New("deadlock detected")

	s.store.EXPECT().FailStaleContent(ctx, domain.StatusGeneratingText, gomock.Any(), gomock.Any()).Return(nil, dbErr)
	s.store.EXPECT().FailStaleContent(ctx, domain.StatusPending, gomock.Any(), gomock.Any()).Return([]string{"c1"}, nil)
	s.store.EXPECT().FailStaleClips(ctx, gomock.Any()).Return([]string{"c2"}, nil)
	s.store.EXPECT().CompleteIfDone(ctx, "c2", true).Return(false, dbErr)
	s.store.EXPECT().FailStaleReformatJobs(ctx, gomock.Any()).Return(nil, nil)

	stats, err := s.sweeper.Sweep(ctx)

	s.Require().Error(err)
	s.ErrorIs(err, dbErr)
	s.Equal(1, stats.Content)
	s.Equal(1, stats.Clips)
	s.Zero(stats.Completed)
}
