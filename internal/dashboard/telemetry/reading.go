package telemetry

import "sort"

// Reading is one partial telemetry sample. A channel missing from the map is
// omitted for this cycle, which is different from an explicit zero.
// Values are raw and unvalidated.
type Reading map[Channel]any

// Supplied returns the supplied channel names in a stable order.
func (r Reading) Supplied() []Channel {
	out := make([]Channel, 0, len(r))
	for ch := range r {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
