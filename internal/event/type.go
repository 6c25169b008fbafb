// Package event carries the semantic events the engine emits for renderers,
// audio layers and persistence adapters. Consumers observe; they never feed
// back into the simulation.
package event

// Type identifies the kind of an engine event.
type Type int

const (
	// GemSpawned fires for every gem placed by population or redistribution.
	// Payload: GemPayload
	GemSpawned Type = iota + 1

	// GemCollected fires when a bird collects a gem.
	// Payload: GemPayload (Payout set, BirdID set)
	GemCollected

	// ComboReached fires when a bird's streak hits a combo threshold.
	// Payload: ComboPayload
	ComboReached

	// ClusterFound fires once per payable cluster at spin end.
	// Payload: ClusterPayload
	ClusterFound

	// GridExpanded fires after a row or column is inserted.
	// Payload: ExpandPayload
	GridExpanded

	// FeatureSpawned fires when a random feature instance appears.
	// Payload: FeaturePayload
	FeatureSpawned

	// FeatureResolved fires at feature teardown.
	// Payload: FeaturePayload (Outcome set)
	FeatureResolved

	// SpinResolved fires once per completed spin.
	// Payload: SpinPayload
	SpinResolved

	// SpinRejected fires when a spin request is refused.
	// Payload: RejectPayload
	SpinRejected

	// ItemDropped fires when a redistributed gem finds no empty cell.
	// Payload: GemPayload
	ItemDropped

	// BirdAbsorbed fires when a feature removes a bird from the board.
	// Payload: BirdPayload
	BirdAbsorbed

	// BirdReturned fires when an absorbed bird is reinstated.
	// Payload: BirdPayload
	BirdReturned

	// WildSpawned fires when a wildcard marker is placed on a cell.
	// Payload: GemPayload (Tier 0)
	WildSpawned
)

var typeNames = map[Type]string{
	GemSpawned:      "gem-spawned",
	GemCollected:    "gem-collected",
	ComboReached:    "combo-reached",
	ClusterFound:    "cluster-found",
	GridExpanded:    "grid-expanded",
	FeatureSpawned:  "feature-spawned",
	FeatureResolved: "feature-resolved",
	SpinResolved:    "spin-resolved",
	SpinRejected:    "spin-rejected",
	ItemDropped:     "item-dropped",
	BirdAbsorbed:    "bird-absorbed",
	BirdReturned:    "bird-returned",
	WildSpawned:     "wild-spawned",
}

// String returns the kebab-case event name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}
