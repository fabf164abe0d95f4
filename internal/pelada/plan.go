package pelada

// PlanTier is an account's subscription tier, bounding roster size.
type PlanTier string

const (
	TierPelada       PlanTier = "Pelada"
	TierAmador       PlanTier = "Amador"
	TierProfissional PlanTier = "Profissional"
)

var planLimits = map[PlanTier]int{
	TierPelada:       20,
	TierAmador:       30,
	TierProfissional: 50,
}

// PlanLimit returns the maximum roster size for a tier. Unknown tiers get
// the smallest limit rather than an error; the cap is enforced only at
// insert time and never retroactively trims a roster.
func PlanLimit(tier PlanTier) int {
	if limit, ok := planLimits[tier]; ok {
		return limit
	}
	return planLimits[TierPelada]
}
