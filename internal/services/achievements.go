package services

import "luckymint/internal/models"

// Badge identifiers. Each is granted at most once per participant.
const (
	BadgePerfectRoll   = "Perfect Roll"
	BadgeVeteranMinter = "Veteran Minter"
	BadgeComboMaster   = "Combo Master"
)

// EvaluateAchievements returns the badges newly earned by the
// participant's post-mint statistics. probability is the draw of the
// mint that produced them. Re-evaluating a state that already holds a
// badge never returns it again.
func EvaluateAchievements(participant models.Participant, probability uint64) []string {
	var earned []string

	if probability == MaxProbability && !participant.HasBadge(BadgePerfectRoll) {
		earned = append(earned, BadgePerfectRoll)
	}
	// Exact-equality trigger: a participant who passes 100 mints
	// without this evaluation never receives the badge retroactively.
	if participant.TotalMints == 100 && !participant.HasBadge(BadgeVeteranMinter) {
		earned = append(earned, BadgeVeteranMinter)
	}
	if participant.CurrentCombo >= 5 && !participant.HasBadge(BadgeComboMaster) {
		earned = append(earned, BadgeComboMaster)
	}
	return earned
}
