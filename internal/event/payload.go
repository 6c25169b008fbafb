package event

// GemPayload describes a single gem at a grid position.
type GemPayload struct {
	X, Y   int
	Color  string
	Tier   int
	Payout float64
	BirdID int // collecting bird, 0 when not applicable
}

// ComboPayload reports a bird's streak at a threshold.
type ComboPayload struct {
	BirdID     int
	Streak     int
	Multiplier float64
}

// ClusterPayload reports one payable cluster.
type ClusterPayload struct {
	Color  string
	Count  int
	Payout float64
}

// ExpandPayload reports the board dimensions after an expansion.
type ExpandPayload struct {
	Direction     string
	Width, Height int
}

// FeaturePayload describes a feature instance.
type FeaturePayload struct {
	Kind     string
	Strength string
	Outcome  string // empty until resolved
	X, Y     int
}

// SpinPayload summarizes a resolved spin.
type SpinPayload struct {
	Spin       int
	Stake      float64
	TotalWin   float64
	Multiplier float64
	Balance    float64
	Collected  int
	Clusters   int
	Feature    string
}

// RejectPayload explains a refused spin.
type RejectPayload struct {
	Reason string
}

// BirdPayload describes a bird moving off or back onto the board.
type BirdPayload struct {
	BirdID int
	Name   string
	Color  string
	X, Y   int
}
