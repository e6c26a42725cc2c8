package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/uolchat/batepapo/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) participant(name string) *model.Participant {
	return &model.Participant{
		Name:     name,
		LastSeen: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) message(id, from, text string) *model.Message {
	return &model.Message{
		ID:     model.MessageID(id),
		From:   from,
		To:     model.Everyone,
		Text:   text,
		Type:   model.TypeMessage,
		Time:   "12:00:00",
		SentAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Participant tests

func (s *StorageSuite) TestCreateAndGetParticipant() {
	err := s.storage.CreateParticipant(s.ctx, s.participant("ann"))
	s.Require().NoError(err)

	retrieved, err := s.storage.GetParticipant(s.ctx, "ann")
	s.Require().NoError(err)
	s.Equal("ann", retrieved.Name)
	s.True(retrieved.LastSeen.Equal(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
}

func (s *StorageSuite) TestCreateParticipantConflict() {
	s.Require().NoError(s.storage.CreateParticipant(s.ctx, s.participant("ann")))

	err := s.storage.CreateParticipant(s.ctx, s.participant("ann"))
	s.ErrorIs(err, model.ErrNameTaken)
}

func (s *StorageSuite) TestGetParticipantNotFound() {
	_, err := s.storage.GetParticipant(s.ctx, "ghost")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

func (s *StorageSuite) TestSaveParticipantUpdatesRecord() {
	p := s.participant("ann")
	s.Require().NoError(s.storage.CreateParticipant(s.ctx, p))

	p.LastSeen = p.LastSeen.Add(time.Minute)
	s.Require().NoError(s.storage.SaveParticipant(s.ctx, p))

	retrieved, err := s.storage.GetParticipant(s.ctx, "ann")
	s.Require().NoError(err)
	s.True(retrieved.LastSeen.Equal(p.LastSeen))
}

func (s *StorageSuite) TestSaveParticipantCannotResurrectEvicted() {
	p := s.participant("ann")
	s.Require().NoError(s.storage.CreateParticipant(s.ctx, p))
	s.Require().NoError(s.storage.DeleteParticipant(s.ctx, "ann"))

	err := s.storage.SaveParticipant(s.ctx, p)
	s.ErrorIs(err, model.ErrParticipantNotFound)

	_, err = s.storage.GetParticipant(s.ctx, "ann")
	s.ErrorIs(err, model.ErrParticipantNotFound)
}

func (s *StorageSuite) TestDeleteParticipantIsIdempotent() {
	s.NoError(s.storage.DeleteParticipant(s.ctx, "ghost"))
}

func (s *StorageSuite) TestListParticipants() {
	s.Require().NoError(s.storage.CreateParticipant(s.ctx, s.participant("ann")))
	s.Require().NoError(s.storage.CreateParticipant(s.ctx, s.participant("bob")))

	participants, err := s.storage.ListParticipants(s.ctx)
	s.Require().NoError(err)
	s.Len(participants, 2)
}

func (s *StorageSuite) TestListParticipantsSkipsDeletedRecords() {
	s.Require().NoError(s.storage.CreateParticipant(s.ctx, s.participant("ann")))
	s.Require().NoError(s.storage.CreateParticipant(s.ctx, s.participant("bob")))

	// Drop the record but not the index entry, as a concurrent eviction
	// between SMEMBERS and MGET would.
	s.mini.Del(participantKey("ann"))

	participants, err := s.storage.ListParticipants(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(participants, 1)
	s.Equal("bob", participants[0].Name)
}

// Message tests

func (s *StorageSuite) TestAppendAndListMessagesInOrder() {
	s.Require().NoError(s.storage.AppendMessage(s.ctx, s.message("m1", "ann", "one")))
	s.Require().NoError(s.storage.AppendMessage(s.ctx, s.message("m2", "ann", "two")))
	s.Require().NoError(s.storage.AppendMessage(s.ctx, s.message("m3", "bob", "three")))

	messages, err := s.storage.ListMessages(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(messages, 3)
	s.Equal("one", messages[0].Text)
	s.Equal("two", messages[1].Text)
	s.Equal("three", messages[2].Text)
}

func (s *StorageSuite) TestGetMessageNotFound() {
	_, err := s.storage.GetMessage(s.ctx, "nope")
	s.ErrorIs(err, model.ErrMessageNotFound)
}

func (s *StorageSuite) TestSaveMessageReplacesInPlace() {
	s.Require().NoError(s.storage.AppendMessage(s.ctx, s.message("m1", "ann", "one")))
	s.Require().NoError(s.storage.AppendMessage(s.ctx, s.message("m2", "ann", "two")))

	edited := s.message("m1", "ann", "edited")
	s.Require().NoError(s.storage.SaveMessage(s.ctx, edited))

	messages, err := s.storage.ListMessages(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(messages, 2)
	s.Equal("edited", messages[0].Text)
}

func (s *StorageSuite) TestSaveMessageCannotRecreateDeleted() {
	msg := s.message("m1", "ann", "one")
	s.Require().NoError(s.storage.AppendMessage(s.ctx, msg))
	s.Require().NoError(s.storage.DeleteMessage(s.ctx, "m1"))

	err := s.storage.SaveMessage(s.ctx, msg)
	s.ErrorIs(err, model.ErrMessageNotFound)
}

func (s *StorageSuite) TestDeleteMessageRemovesFromLog() {
	s.Require().NoError(s.storage.AppendMessage(s.ctx, s.message("m1", "ann", "one")))
	s.Require().NoError(s.storage.AppendMessage(s.ctx, s.message("m2", "ann", "two")))

	s.Require().NoError(s.storage.DeleteMessage(s.ctx, "m1"))

	messages, err := s.storage.ListMessages(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(messages, 1)
	s.Equal("two", messages[0].Text)

	_, err = s.storage.GetMessage(s.ctx, "m1")
	s.ErrorIs(err, model.ErrMessageNotFound)
}

func (s *StorageSuite) TestDeleteMessageIsIdempotent() {
	s.NoError(s.storage.DeleteMessage(s.ctx, "nope"))
}
