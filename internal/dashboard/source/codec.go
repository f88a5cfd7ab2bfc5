// Package source decodes telemetry payloads shared by every transport.
package source

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
)

// ErrMalformedPayload is returned for payloads that are not a JSON object.
var ErrMalformedPayload = errors.New("malformed telemetry payload")

// DecodeReading parses a JSON object into a partial reading. Keys become
// channels as-is; values are not validated here. JSON numbers arrive as
// float64, so an integral 120 or 120.0 both validate.
func DecodeReading(payload []byte) (telemetry.Reading, error) {
	var s structpb.Struct
	if err := protojson.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	r := make(telemetry.Reading, len(s.GetFields()))
	for k, v := range s.GetFields() {
		r[telemetry.Channel(k)] = v.AsInterface()
	}
	return r, nil
}

// EncodeReading is the inverse of DecodeReading, used by simulators and tests.
func EncodeReading(r telemetry.Reading) ([]byte, error) {
	fields := make(map[string]any, len(r))
	for ch, v := range r {
		if g, ok := v.(telemetry.Gear); ok {
			v = g.String()
		}
		fields[ch.String()] = v
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode reading: %w", err)
	}
	return protojson.Marshal(s)
}
