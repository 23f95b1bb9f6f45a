package yield

// Tier is the yield band a prediction falls into.
type Tier int

const (
	TierLow Tier = iota
	TierModerate
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierModerate:
		return "moderate"
	case TierHigh:
		return "high"
	default:
		return "unknown"
	}
}

// Band edges in hg/ha. A value equal to an edge belongs to the upper band.
const (
	ModerateYieldThreshold = 20000.0
	HighYieldThreshold     = 40000.0
)

// Recommendation is the advice shown for a prediction. Style is the alert
// flavour the page renders it with.
type Recommendation struct {
	Tier   Tier
	Style  string
	Advice []string
}

var recommendations = map[Tier]Recommendation{
	TierLow: {
		Tier:  TierLow,
		Style: "warning",
		Advice: []string{
			"Improve irrigation practices",
			"Enhance soil nutrient management",
			"Monitor weather conditions closely",
		},
	},
	TierModerate: {
		Tier:  TierModerate,
		Style: "info",
		Advice: []string{
			"Yield is moderate",
			"Optimize fertilizer and pesticide usage",
			"Regular crop monitoring is recommended",
		},
	},
	TierHigh: {
		Tier:  TierHigh,
		Style: "success",
		Advice: []string{
			"Excellent yield conditions",
			"Maintain current farming practices",
			"Ensure sustainable resource usage",
		},
	},
}

func TierFor(prediction float64) Tier {
	switch {
	case prediction < ModerateYieldThreshold:
		return TierLow
	case prediction < HighYieldThreshold:
		return TierModerate
	default:
		return TierHigh
	}
}

func Recommend(prediction float64) Recommendation {
	rec := recommendations[TierFor(prediction)]
	rec.Advice = append([]string(nil), rec.Advice...)
	return rec
}
