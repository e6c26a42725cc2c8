package storage

import (
	"context"

	"github.com/uolchat/batepapo/internal/model"
)

// Storage defines the interface for data persistence. Two logical
// collections: participants keyed by name, messages keyed by id and
// kept in creation order.
type Storage interface {
	// Participant operations
	//
	// CreateParticipant fails with model.ErrNameTaken if a live
	// participant with the same name already exists; the check and the
	// insert are a single atomic step.
	CreateParticipant(ctx context.Context, p *model.Participant) error
	GetParticipant(ctx context.Context, name string) (*model.Participant, error)
	// SaveParticipant updates an existing participant in place and fails
	// with model.ErrParticipantNotFound if it is no longer live.
	SaveParticipant(ctx context.Context, p *model.Participant) error
	DeleteParticipant(ctx context.Context, name string) error
	ListParticipants(ctx context.Context) ([]*model.Participant, error)

	// Message operations
	AppendMessage(ctx context.Context, msg *model.Message) error
	GetMessage(ctx context.Context, id model.MessageID) (*model.Message, error)
	// SaveMessage replaces an existing message in place and fails with
	// model.ErrMessageNotFound if it was deleted meanwhile.
	SaveMessage(ctx context.Context, msg *model.Message) error
	DeleteMessage(ctx context.Context, id model.MessageID) error
	// ListMessages returns the full log in creation order.
	ListMessages(ctx context.Context) ([]*model.Message, error)
}
