package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/uolchat/batepapo/internal/dependencies/clock"
	"github.com/uolchat/batepapo/internal/model"
	"github.com/uolchat/batepapo/internal/sanitize"
	"github.com/uolchat/batepapo/internal/services/chat"
	"github.com/uolchat/batepapo/internal/storage"
)

// Status message texts, matching what the front end displays
const (
	joinedRoomText = "entra na sala..."
	leftRoomText   = "sai da sala..."
)

// minNameLength applies after trimming and HTML stripping
const minNameLength = 3

var validate = validator.New()

type loginParams struct {
	Name string `validate:"required,min=3"`
}

// Service is the participant directory: the set of currently-logged-in
// participants and their last-seen timestamps. Live participant names
// form a set; membership is case-sensitive exact match.
type Service struct {
	storage storage.Storage
	chat    *chat.Service
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new directory service
func New(storage storage.Storage, chat *chat.Service, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		chat:    chat,
		clock:   clock,
		logger:  logger,
	}
}

// Login registers a participant by display name and announces the join.
// The name is sanitized before validation; the uniqueness check and the
// insert are one atomic storage step.
func (s *Service) Login(ctx context.Context, name string) (*model.Participant, error) {
	clean := sanitize.Clean(name)

	if err := validate.Struct(loginParams{Name: clean}); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return nil, model.NewValidationError(describeProblems(fieldErrs)...)
		}
		return nil, err
	}

	p := &model.Participant{
		Name:     clean,
		LastSeen: s.clock.Now(),
	}

	if err := s.storage.CreateParticipant(ctx, p); err != nil {
		return nil, err
	}

	if _, err := s.chat.PostStatus(ctx, p.Name, joinedRoomText); err != nil {
		return nil, err
	}

	s.logger.Info("participant logged in", slog.String("name", p.Name))
	return p, nil
}

// Touch records a liveness heartbeat, moving lastSeen to now
func (s *Service) Touch(ctx context.Context, name string) error {
	p, err := s.storage.GetParticipant(ctx, name)
	if err != nil {
		return err
	}

	p.LastSeen = s.clock.Now()
	return s.storage.SaveParticipant(ctx, p)
}

// List returns a snapshot of all currently-live participants
func (s *Service) List(ctx context.Context) ([]*model.Participant, error) {
	return s.storage.ListParticipants(ctx)
}

// Logoff removes a participant and announces the departure. Idempotent:
// logging off a name that is not live is a no-op.
func (s *Service) Logoff(ctx context.Context, name string) error {
	_, err := s.storage.GetParticipant(ctx, name)
	if err != nil {
		if errors.Is(err, model.ErrParticipantNotFound) {
			return nil
		}
		return err
	}

	if err := s.storage.DeleteParticipant(ctx, name); err != nil {
		return err
	}

	if _, err := s.chat.PostStatus(ctx, name, leftRoomText); err != nil {
		return err
	}

	s.logger.Info("participant logged off", slog.String("name", name))
	return nil
}

// LogoffIfIdleSince evicts the named participant only if its lastSeen is
// still at or before cutoff. The re-read means a heartbeat arriving after
// the sweep's snapshot wins over the stale eviction decision. Returns
// whether the participant was evicted.
func (s *Service) LogoffIfIdleSince(ctx context.Context, name string, cutoff time.Time) (bool, error) {
	p, err := s.storage.GetParticipant(ctx, name)
	if err != nil {
		if errors.Is(err, model.ErrParticipantNotFound) {
			return false, nil
		}
		return false, err
	}

	if p.LastSeen.After(cutoff) {
		return false, nil
	}

	if err := s.Logoff(ctx, name); err != nil {
		return false, err
	}
	return true, nil
}

func describeProblems(fieldErrs validator.ValidationErrors) []string {
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, "name is required")
		case "min":
			problems = append(problems, fmt.Sprintf("name must be at least %d characters", minNameLength))
		default:
			problems = append(problems, "name is invalid")
		}
	}
	return problems
}
