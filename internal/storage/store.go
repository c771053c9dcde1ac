// Package storage owns the durable round and participant records. The
// mint engine is the only writer; both records touched by one mint are
// committed together.
package storage

import (
	"context"
	"errors"

	"luckymint/internal/models"
)

// ErrRoundNotFound indicates the requested round record is absent.
var ErrRoundNotFound = errors.New("round not found")

// ErrParticipantNotFound indicates the requested participant record is
// absent.
var ErrParticipantNotFound = errors.New("participant not found")

// Store is the persistence port for rounds and participants.
type Store interface {
	// CreateRound persists a new round, assigning an ID when absent.
	CreateRound(ctx context.Context, round models.Round) (models.Round, error)
	GetRound(ctx context.Context, roundID string) (models.Round, error)

	// GetOrCreateParticipant returns the participant record, creating
	// it with zeroed fields on first contact.
	GetOrCreateParticipant(ctx context.Context, participantID string) (models.Participant, error)
	GetParticipant(ctx context.Context, participantID string) (models.Participant, error)

	// CommitMint atomically writes the round and participant state of
	// one resolved mint. Either both records are updated or neither.
	CommitMint(ctx context.Context, round models.Round, participant models.Participant) error

	Close() error
}
