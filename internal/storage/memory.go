package storage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"luckymint/internal/models"
)

// MemoryStore is an in-memory Store used by tests and ephemeral
// deployments.
type MemoryStore struct {
	mu           sync.RWMutex
	rounds       map[string]models.Round
	participants map[string]models.Participant
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rounds:       make(map[string]models.Round),
		participants: make(map[string]models.Participant),
	}
}

func (s *MemoryStore) CreateRound(ctx context.Context, round models.Round) (models.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if round.ID == "" {
		round.ID = uuid.New().String()
	}
	s.rounds[round.ID] = round
	return round, nil
}

func (s *MemoryStore) GetRound(ctx context.Context, roundID string) (models.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	round, ok := s.rounds[roundID]
	if !ok {
		return models.Round{}, ErrRoundNotFound
	}
	return round, nil
}

func (s *MemoryStore) GetOrCreateParticipant(ctx context.Context, participantID string) (models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	participant, ok := s.participants[participantID]
	if !ok {
		participant = models.Participant{ID: participantID}
		s.participants[participantID] = participant
	}
	return copyParticipant(participant), nil
}

func (s *MemoryStore) GetParticipant(ctx context.Context, participantID string) (models.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	participant, ok := s.participants[participantID]
	if !ok {
		return models.Participant{}, ErrParticipantNotFound
	}
	return copyParticipant(participant), nil
}

func (s *MemoryStore) CommitMint(ctx context.Context, round models.Round, participant models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rounds[round.ID]; !ok {
		return ErrRoundNotFound
	}
	s.rounds[round.ID] = round
	s.participants[participant.ID] = copyParticipant(participant)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// copyParticipant clones the badge slice so callers never alias stored
// state.
func copyParticipant(p models.Participant) models.Participant {
	if p.Badges != nil {
		badges := make([]string, len(p.Badges))
		copy(badges, p.Badges)
		p.Badges = badges
	}
	return p
}
