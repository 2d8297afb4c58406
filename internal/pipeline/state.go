package pipeline

// State is the orchestrator's position in the build sequence. Transitions
// are strictly sequential; no state is re-entered except EncoderSelecting
// and its successors via the single fallback retry.
type State int

const (
	StateAnalyzing State = iota
	StateReconciling
	StateSubtitleBuilding
	StateEncoderSelecting
	StateFilterBuilding
	StateTranscoding
	StateValidating
	StateSucceeded
	StateFailed
)

var stateNames = map[State]string{
	StateAnalyzing:        "analyzing",
	StateReconciling:      "reconciling",
	StateSubtitleBuilding: "subtitle_building",
	StateEncoderSelecting: "encoder_selecting",
	StateFilterBuilding:   "filter_building",
	StateTranscoding:      "transcoding",
	StateValidating:       "validating",
	StateSucceeded:        "succeeded",
	StateFailed:           "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
