package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/uolchat/batepapo/internal/dependencies/mocks"
	"github.com/uolchat/batepapo/internal/model"
	"github.com/uolchat/batepapo/internal/services/chat"
	"github.com/uolchat/batepapo/internal/storage/memory"
	"github.com/uolchat/batepapo/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	chat    *chat.Service
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()
	s.chat = chat.New(s.storage, s.clock, logger)
	s.service = New(s.storage, s.chat, s.clock, logger)
	s.ctx = context.Background()
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	p, err := s.service.Login(s.ctx, "ann")
	s.Require().NoError(err)

	s.Equal("ann", p.Name)
	s.Equal(s.clock.Now(), p.LastSeen)

	participants, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(participants, 1)
	s.Equal("ann", participants[0].Name)
}

func (s *ServiceSuite) TestLoginDuplicateNameFails() {
	_, err := s.service.Login(s.ctx, "ann")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "ann")
	s.ErrorIs(err, model.ErrNameTaken)
}

func (s *ServiceSuite) TestLoginIsCaseSensitive() {
	_, err := s.service.Login(s.ctx, "ann")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "Ann")
	s.NoError(err)
}

func (s *ServiceSuite) TestLoginEmptyNameFails() {
	_, err := s.service.Login(s.ctx, "")

	var ve *model.ValidationError
	s.Require().ErrorAs(err, &ve)
	s.NotEmpty(ve.Problems)
}

func (s *ServiceSuite) TestLoginWhitespaceNameFails() {
	_, err := s.service.Login(s.ctx, "   ")

	var ve *model.ValidationError
	s.ErrorAs(err, &ve)
}

func (s *ServiceSuite) TestLoginShortNameFails() {
	_, err := s.service.Login(s.ctx, "ab")

	var ve *model.ValidationError
	s.Require().ErrorAs(err, &ve)
	s.Contains(ve.Problems[0], "at least 3 characters")
}

func (s *ServiceSuite) TestLoginStripsMarkup() {
	p, err := s.service.Login(s.ctx, "<script>x</script>ann")
	s.Require().NoError(err)
	s.Equal("ann", p.Name)
}

func (s *ServiceSuite) TestLoginMarkupOnlyNameFails() {
	// The tags are stripped before length is checked
	_, err := s.service.Login(s.ctx, "<b>ab</b>")

	var ve *model.ValidationError
	s.ErrorAs(err, &ve)
}

func (s *ServiceSuite) TestLoginEmitsJoinStatusMessage() {
	_, err := s.service.Login(s.ctx, "ann")
	s.Require().NoError(err)

	messages, err := s.storage.ListMessages(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(messages, 1)
	s.Equal("ann", messages[0].From)
	s.Equal(model.Everyone, messages[0].To)
	s.Equal("entra na sala...", messages[0].Text)
	s.Equal(model.TypeStatus, messages[0].Type)
}

// Touch tests

func (s *ServiceSuite) TestTouchUpdatesLastSeen() {
	p, err := s.service.Login(s.ctx, "ann")
	s.Require().NoError(err)
	loginTime := p.LastSeen

	s.clock.Advance(5 * time.Second)
	s.Require().NoError(s.service.Touch(s.ctx, "ann"))

	updated, err := s.storage.GetParticipant(s.ctx, "ann")
	s.Require().NoError(err)
	s.Equal(loginTime.Add(5*time.Second), updated.LastSeen)
}

func (s *ServiceSuite) TestTouchUnknownParticipantFails() {
	err := s.service.Touch(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

// Logoff tests

func (s *ServiceSuite) TestLogoffRemovesParticipant() {
	_, err := s.service.Login(s.ctx, "ann")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Logoff(s.ctx, "ann"))

	participants, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(participants)
}

func (s *ServiceSuite) TestLogoffEmitsLeaveStatusMessage() {
	_, err := s.service.Login(s.ctx, "ann")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Logoff(s.ctx, "ann"))

	messages, err := s.storage.ListMessages(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(messages, 2)
	s.Equal("sai da sala...", messages[1].Text)
	s.Equal(model.Everyone, messages[1].To)
	s.Equal(model.TypeStatus, messages[1].Type)
}

func (s *ServiceSuite) TestLogoffUnknownNameIsNoOp() {
	s.NoError(s.service.Logoff(s.ctx, "ghost"))

	messages, err := s.storage.ListMessages(s.ctx)
	s.Require().NoError(err)
	s.Empty(messages)
}

// LogoffIfIdleSince tests

func (s *ServiceSuite) TestLogoffIfIdleSinceEvictsStale() {
	_, err := s.service.Login(s.ctx, "ann")
	s.Require().NoError(err)

	cutoff := s.clock.Now().Add(time.Second)
	evicted, err := s.service.LogoffIfIdleSince(s.ctx, "ann", cutoff)
	s.Require().NoError(err)
	s.True(evicted)

	participants, _ := s.service.List(s.ctx)
	s.Empty(participants)
}

func (s *ServiceSuite) TestLogoffIfIdleSinceKeepsRecentlyTouched() {
	_, err := s.service.Login(s.ctx, "ann")
	s.Require().NoError(err)
	cutoff := s.clock.Now()

	// A heartbeat lands after the sweep took its snapshot
	s.clock.Advance(2 * time.Second)
	s.Require().NoError(s.service.Touch(s.ctx, "ann"))

	evicted, err := s.service.LogoffIfIdleSince(s.ctx, "ann", cutoff)
	s.Require().NoError(err)
	s.False(evicted)

	participants, _ := s.service.List(s.ctx)
	s.Len(participants, 1)
}

func (s *ServiceSuite) TestLogoffIfIdleSinceUnknownNameIsNoOp() {
	evicted, err := s.service.LogoffIfIdleSince(s.ctx, "ghost", s.clock.Now())
	s.Require().NoError(err)
	s.False(evicted)
}
