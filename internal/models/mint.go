package models

import "time"

// Round is a bounded minting epoch with a fixed issuable supply and a
// lucky number committed once at creation. RemainingSupply only ever
// decreases; JackpotPool grows from ordinary mints and drains to zero
// when a jackpot triggers.
type Round struct {
	ID              string    `json:"id"`
	StartTime       time.Time `json:"startTime"`
	RemainingSupply uint64    `json:"remainingSupply"`
	JackpotPool     uint64    `json:"jackpotPool"`
	TotalMints      uint64    `json:"totalMints"`
	LuckyNumber     uint64    `json:"luckyNumber"`
}

// Participant holds the lifetime statistics for one minter.
// LastMintTime is the zero time before the first accepted mint.
type Participant struct {
	ID              string    `json:"id"`
	LastMintTime    time.Time `json:"lastMintTime"`
	TotalMints      uint64    `json:"totalMints"`
	BestProbability uint64    `json:"bestProbability"`
	CurrentCombo    uint64    `json:"currentCombo"`
	BestCombo       uint64    `json:"bestCombo"`
	// Badges is kept in grant order for display; membership is what
	// matters for equality and each badge is granted at most once.
	Badges []string `json:"badges"`
}

// HasBadge reports whether the participant already holds the badge.
func (p Participant) HasBadge(name string) bool {
	for _, b := range p.Badges {
		if b == name {
			return true
		}
	}
	return false
}

// MintRecord is the immutable notification payload appended after each
// committed mint.
type MintRecord struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participantId"`
	RoundID       string    `json:"roundId"`
	Probability   uint64    `json:"probability"`
	Amount        uint64    `json:"amount"`
	IsJackpot     bool      `json:"isJackpot"`
	Combo         uint64    `json:"combo"`
	MintedAt      time.Time `json:"mintedAt"`
}
