package domain

// Export is the denormalized event/member document produced by the data
// reader collaborator. One export is fetched per analytics request and every
// derived structure is rebuilt from it.
type Export struct {
	Taps    []InteractionEvent
	Members []Member

	// DroppedTaps counts raw records discarded during decoding (missing
	// endpoint, self-pair, unparseable timestamp). Exposed via debug meta.
	DroppedTaps int
}
