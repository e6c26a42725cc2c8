package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/uolchat/batepapo/internal/dependencies/clock"
	"github.com/uolchat/batepapo/internal/model"
	"github.com/uolchat/batepapo/internal/sanitize"
	"github.com/uolchat/batepapo/internal/storage"
)

// timeLayout is the display format for Message.Time
const timeLayout = "15:04:05"

var validate = validator.New()

// messageParams is the validated shape of a participant-authored message.
// Fields are sanitized before validation so markup-only input counts as
// empty.
type messageParams struct {
	To   string `validate:"required"`
	Text string `validate:"required"`
	Type string `validate:"required,oneof=message private_message"`
}

// Service is the message log: an append-only, mutable-by-owner store of
// chat messages with per-requester visibility filtering.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new chat service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Post appends a message authored by a live participant. The sender is
// checked against the participant directory at call time, never cached.
func (s *Service) Post(ctx context.Context, from, to, text, msgType string) (*model.Message, error) {
	if err := s.checkSenderLive(ctx, from); err != nil {
		return nil, err
	}

	params, err := cleanAndValidate(to, text, msgType)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	msg := &model.Message{
		ID:     model.MessageID(uuid.NewString()),
		From:   from,
		To:     params.To,
		Text:   params.Text,
		Type:   model.MessageType(params.Type),
		Time:   now.Format(timeLayout),
		SentAt: now,
	}

	if err := s.storage.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// PostStatus appends a system-generated join/leave notice. Status
// messages are always public and bypass the sender liveness check, since
// the departure notice is written for a participant who just left.
func (s *Service) PostStatus(ctx context.Context, from, text string) (*model.Message, error) {
	now := s.clock.Now()
	msg := &model.Message{
		ID:     model.MessageID(uuid.NewString()),
		From:   from,
		To:     model.Everyone,
		Text:   text,
		Type:   model.TypeStatus,
		Time:   now.Format(timeLayout),
		SentAt: now,
	}

	if err := s.storage.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// Edit replaces a message's to/text/type in place. Only a live author may
// edit; from, time and id are preserved.
func (s *Service) Edit(ctx context.Context, id model.MessageID, requester, to, text, msgType string) (*model.Message, error) {
	if err := s.checkSenderLive(ctx, requester); err != nil {
		return nil, err
	}

	msg, err := s.storage.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}

	if msg.From != requester {
		return nil, model.ErrNotMessageOwner
	}

	params, err := cleanAndValidate(to, text, msgType)
	if err != nil {
		return nil, err
	}

	msg.To = params.To
	msg.Text = params.Text
	msg.Type = model.MessageType(params.Type)

	if err := s.storage.SaveMessage(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

// Delete removes a message. Only a live author may delete.
func (s *Service) Delete(ctx context.Context, id model.MessageID, requester string) error {
	if err := s.checkSenderLive(ctx, requester); err != nil {
		return err
	}

	msg, err := s.storage.GetMessage(ctx, id)
	if err != nil {
		return err
	}

	if msg.From != requester {
		return model.ErrNotMessageOwner
	}

	return s.storage.DeleteMessage(ctx, id)
}

// ListVisibleTo returns the messages the requester may see, in creation
// order. Visibility is a read-time filter over the full log, so edits and
// deletes by owners change what later reads return. A positive limit
// keeps only the last limit entries of the filtered sequence.
func (s *Service) ListVisibleTo(ctx context.Context, requester string, limit int) ([]*model.Message, error) {
	all, err := s.storage.ListMessages(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]*model.Message, 0, len(all))
	for _, msg := range all {
		if msg.VisibleTo(requester) {
			visible = append(visible, msg)
		}
	}

	if limit > 0 && len(visible) > limit {
		visible = visible[len(visible)-limit:]
	}

	return visible, nil
}

// checkSenderLive verifies the sender against the participant directory.
// Every mutation by a claimed identity goes through this, so a sender who
// logged off or was swept loses authorship rights immediately.
func (s *Service) checkSenderLive(ctx context.Context, name string) error {
	if _, err := s.storage.GetParticipant(ctx, name); err != nil {
		if errors.Is(err, model.ErrParticipantNotFound) {
			return model.ErrSenderNotLoggedIn
		}
		return err
	}
	return nil
}

// cleanAndValidate sanitizes the mutable message fields and validates
// them in a single pass, collecting every violation.
func cleanAndValidate(to, text, msgType string) (messageParams, error) {
	params := messageParams{
		To:   sanitize.Clean(to),
		Text: sanitize.Clean(text),
		Type: sanitize.Clean(msgType),
	}

	if err := validate.Struct(params); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return params, model.NewValidationError(describeProblems(fieldErrs)...)
		}
		return params, err
	}

	return params, nil
}

func describeProblems(fieldErrs validator.ValidationErrors) []string {
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, fmt.Sprintf("%s is required", fieldName(fe.Field())))
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s must be one of: %s", fieldName(fe.Field()), fe.Param()))
		default:
			problems = append(problems, fmt.Sprintf("%s is invalid", fieldName(fe.Field())))
		}
	}
	return problems
}

// fieldName lowercases struct field names to match the JSON payload
func fieldName(field string) string {
	switch field {
	case "To":
		return "to"
	case "Text":
		return "text"
	case "Type":
		return "type"
	default:
		return field
	}
}
