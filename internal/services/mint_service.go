package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/logger"
	"github.com/google/uuid"

	"luckymint/internal/ledger"
	"luckymint/internal/models"
	"luckymint/internal/notify"
	"luckymint/internal/random"
	"luckymint/internal/storage"
)

// Reward constants. All amounts are unsigned token units; with these
// ranges no intermediate value can approach uint64 overflow.
const (
	RoundMaxSupply     uint64 = 10000
	MinProbability     uint64 = 1
	MaxProbability     uint64 = 100
	ComboThreshold     uint64 = 80
	MaxComboMultiplier uint64 = 5
	JackpotThreshold   uint64 = 95

	// Non-jackpot mints contribute 1/10 of their payout to the pool.
	jackpotShareDivisor uint64 = 10

	DefaultMintFee      uint64 = 10
	DefaultMintCooldown        = 60 * time.Second
	DefaultAssetKind           = "LUCKY"
)

// Errors surfaced to callers of the mint engine.
var (
	ErrRoundNotInitialized = errors.New("round not initialized")
	ErrCooldownNotFinished = errors.New("mint cooldown not finished")
	ErrExceedRoundMax      = errors.New("payout exceeds remaining round supply")
	ErrInsufficientMintFee = errors.New("insufficient mint fee")
)

// MintService resolves mints: it turns one random draw into a payout
// while enforcing the cooldown, supply, pool and combo rules, then
// delivers the reward through the asset ledger and notifies the sink.
type MintService struct {
	// mu serializes resolves so each mint is one atomic transaction
	// against its round and participant records.
	mu        sync.Mutex
	store     storage.Store
	rng       random.Source
	assets    ledger.AssetLedger
	sink      notify.Sink
	now       func() time.Time
	cooldown  time.Duration
	assetKind string
}

// NewMintService creates a mint engine with default cooldown and asset
// kind.
func NewMintService(store storage.Store, rng random.Source, assets ledger.AssetLedger, sink notify.Sink) *MintService {
	return &MintService{
		store:     store,
		rng:       rng,
		assets:    assets,
		sink:      sink,
		now:       time.Now,
		cooldown:  DefaultMintCooldown,
		assetKind: DefaultAssetKind,
	}
}

// WithCooldown overrides the per-participant mint cooldown.
func (s *MintService) WithCooldown(d time.Duration) { s.cooldown = d }

// WithAssetKind overrides the asset kind delivered to participants.
func (s *MintService) WithAssetKind(kind string) { s.assetKind = kind }

// WithClock overrides the time source. Used by tests.
func (s *MintService) WithClock(now func() time.Time) { s.now = now }

// CreateRound initializes a new round with full supply, an empty pool
// and a lucky number drawn once for its lifetime.
func (s *MintService) CreateRound(ctx context.Context) (models.Round, error) {
	lucky, err := s.rng.DrawUniform(MinProbability, MaxProbability)
	if err != nil {
		return models.Round{}, fmt.Errorf("draw lucky number: %w", err)
	}

	round, err := s.store.CreateRound(ctx, models.Round{
		StartTime:       s.now().UTC(),
		RemainingSupply: RoundMaxSupply,
		LuckyNumber:     lucky,
	})
	if err != nil {
		return models.Round{}, fmt.Errorf("create round: %w", err)
	}

	logger.Infof("round created: id=%s supply=%d", round.ID, round.RemainingSupply)
	return round, nil
}

// ResolveMint runs the reward pipeline for one participant against one
// round. It either commits fully (both ledgers updated, reward
// delivered, record appended) or fails with zero observable mutation.
func (s *MintService) ResolveMint(ctx context.Context, participantID, roundID string) (models.MintRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	round, err := s.store.GetRound(ctx, roundID)
	if err != nil {
		if errors.Is(err, storage.ErrRoundNotFound) {
			return models.MintRecord{}, ErrRoundNotInitialized
		}
		return models.MintRecord{}, fmt.Errorf("load round: %w", err)
	}

	participant, err := s.store.GetOrCreateParticipant(ctx, participantID)
	if err != nil {
		return models.MintRecord{}, fmt.Errorf("load participant: %w", err)
	}

	now := s.now().UTC()
	if !participant.LastMintTime.IsZero() && now.Before(participant.LastMintTime.Add(s.cooldown)) {
		return models.MintRecord{}, ErrCooldownNotFinished
	}

	probability, err := s.rng.DrawUniform(MinProbability, MaxProbability)
	if err != nil {
		return models.MintRecord{}, fmt.Errorf("draw probability: %w", err)
	}

	baseAmount := RoundMaxSupply * probability / 100

	// Combo streak: the counter is uncapped, the multiplier is not.
	multiplier := uint64(1)
	if probability >= ComboThreshold {
		participant.CurrentCombo++
		multiplier = participant.CurrentCombo
		if multiplier > MaxComboMultiplier {
			multiplier = MaxComboMultiplier
		}
	} else {
		participant.CurrentCombo = 0
	}
	finalAmount := baseAmount * multiplier

	participant.LastMintTime = now
	participant.TotalMints++
	if probability > participant.BestProbability {
		participant.BestProbability = probability
	}
	if participant.CurrentCombo > participant.BestCombo {
		participant.BestCombo = participant.CurrentCombo
	}

	// Jackpot resolution: a very high draw claims the whole pool,
	// any other draw feeds it.
	isJackpot := probability >= JackpotThreshold
	if isJackpot {
		finalAmount += round.JackpotPool
		round.JackpotPool = 0
	} else {
		contribution := finalAmount / jackpotShareDivisor
		round.JackpotPool += contribution
		finalAmount -= contribution
	}

	// Lucky-number bonus doubles whatever the jackpot step produced.
	if probability == round.LuckyNumber {
		finalAmount *= 2
	}

	// All updates so far live on local copies, so failing here leaves
	// both records untouched.
	if finalAmount > round.RemainingSupply {
		return models.MintRecord{}, ErrExceedRoundMax
	}
	round.RemainingSupply -= finalAmount
	round.TotalMints++

	participant.Badges = append(participant.Badges, EvaluateAchievements(participant, probability)...)

	if err := s.deliver(participantID, finalAmount); err != nil {
		return models.MintRecord{}, fmt.Errorf("deliver reward: %w", err)
	}

	if err := s.store.CommitMint(ctx, round, participant); err != nil {
		return models.MintRecord{}, fmt.Errorf("commit mint: %w", err)
	}

	record := models.MintRecord{
		ID:            uuid.New().String(),
		ParticipantID: participantID,
		RoundID:       round.ID,
		Probability:   probability,
		Amount:        finalAmount,
		IsJackpot:     isJackpot,
		Combo:         participant.CurrentCombo,
		MintedAt:      now,
	}
	s.sink.Append(record)

	logger.Infof("mint resolved: participant=%s round=%s probability=%d amount=%d jackpot=%t",
		participantID, round.ID, probability, finalAmount, isJackpot)
	return record, nil
}

// GetRoundInfo returns the current state of a round.
func (s *MintService) GetRoundInfo(ctx context.Context, roundID string) (models.Round, error) {
	round, err := s.store.GetRound(ctx, roundID)
	if errors.Is(err, storage.ErrRoundNotFound) {
		return models.Round{}, ErrRoundNotInitialized
	}
	return round, err
}

// GetParticipantInfo returns the lifetime statistics of a participant.
func (s *MintService) GetParticipantInfo(ctx context.Context, participantID string) (models.Participant, error) {
	return s.store.GetParticipant(ctx, participantID)
}

// deliver mints the reward on the external ledger and deposits it,
// creating the participant's store on first contact.
func (s *MintService) deliver(accountID string, amount uint64) error {
	if !s.assets.StoreExists(accountID, s.assetKind) {
		if err := s.assets.CreateStore(accountID, s.assetKind); err != nil {
			return err
		}
	}
	asset, err := s.assets.Mint(s.assetKind, amount)
	if err != nil {
		return err
	}
	return s.assets.Deposit(accountID, asset)
}
