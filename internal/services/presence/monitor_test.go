package presence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/uolchat/batepapo/internal/dependencies/mocks"
	"github.com/uolchat/batepapo/internal/model"
	"github.com/uolchat/batepapo/internal/services/chat"
	"github.com/uolchat/batepapo/internal/services/directory"
	"github.com/uolchat/batepapo/internal/storage/memory"
	"github.com/uolchat/batepapo/internal/testutil"
)

type MonitorSuite struct {
	suite.Suite
	storage   *memory.Storage
	clock     *mocks.MockClock
	directory *directory.Service
	monitor   *Monitor
	ctx       context.Context
}

func TestMonitorSuite(t *testing.T) {
	suite.Run(t, new(MonitorSuite))
}

func (s *MonitorSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()
	chatService := chat.New(s.storage, s.clock, logger)
	s.directory = directory.New(s.storage, chatService, s.clock, logger)
	s.monitor = New(s.directory, s.clock, Config{
		SweepInterval: 15 * time.Second,
		IdleThreshold: 10 * time.Second,
	}, logger)
	s.ctx = context.Background()
}

func (s *MonitorSuite) TestSweepEvictsStaleParticipant() {
	_, err := s.directory.Login(s.ctx, "ann")
	s.Require().NoError(err)

	s.clock.Advance(11 * time.Second)
	s.Require().NoError(s.monitor.Sweep(s.ctx))

	participants, err := s.directory.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(participants)
}

func (s *MonitorSuite) TestSweepAppendsLeaveStatusMessage() {
	_, err := s.directory.Login(s.ctx, "ann")
	s.Require().NoError(err)

	s.clock.Advance(11 * time.Second)
	s.Require().NoError(s.monitor.Sweep(s.ctx))

	messages, err := s.storage.ListMessages(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(messages, 2)
	s.Equal("sai da sala...", messages[1].Text)
	s.Equal(model.Everyone, messages[1].To)
	s.Equal(model.TypeStatus, messages[1].Type)
}

func (s *MonitorSuite) TestSweepKeepsParticipantWithinThreshold() {
	_, err := s.directory.Login(s.ctx, "ann")
	s.Require().NoError(err)

	s.clock.Advance(9 * time.Second)
	s.Require().NoError(s.monitor.Sweep(s.ctx))

	participants, err := s.directory.List(s.ctx)
	s.Require().NoError(err)
	s.Len(participants, 1)
}

func (s *MonitorSuite) TestSweepEvictsOnlyStaleParticipants() {
	_, err := s.directory.Login(s.ctx, "ann")
	s.Require().NoError(err)

	s.clock.Advance(11 * time.Second)
	_, err = s.directory.Login(s.ctx, "bob")
	s.Require().NoError(err)

	s.Require().NoError(s.monitor.Sweep(s.ctx))

	participants, err := s.directory.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(participants, 1)
	s.Equal("bob", participants[0].Name)
}

func (s *MonitorSuite) TestSweepDoesNotLoseConcurrentTouch() {
	_, err := s.directory.Login(s.ctx, "ann")
	s.Require().NoError(err)
	s.clock.Advance(11 * time.Second)

	// The heartbeat lands between the sweep's snapshot and its eviction:
	// the re-check against the current record must let ann live.
	cutoff := s.clock.Now().Add(-10 * time.Second)
	s.Require().NoError(s.directory.Touch(s.ctx, "ann"))

	evicted, err := s.directory.LogoffIfIdleSince(s.ctx, "ann", cutoff)
	s.Require().NoError(err)
	s.False(evicted)

	participants, err := s.directory.List(s.ctx)
	s.Require().NoError(err)
	s.Len(participants, 1)
}

func (s *MonitorSuite) TestRunStopsOnContextCancel() {
	ctx, cancel := context.WithCancel(s.ctx)

	done := make(chan struct{})
	go func() {
		s.monitor.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("monitor did not stop after context cancellation")
	}
}
