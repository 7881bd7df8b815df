// Package codec centralizes trace-snapshot encoding.
//
// Trace files are self-describing: the header stores the codec name, and
// DecodeTrace selects the codec by name. Changing the default codec
// therefore never breaks previously written traces.
package codec

import "encoding/json"

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// JSON is the standard-library JSON codec. The most portable option; use
// it when trace files must be readable without third-party decoders.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used when none is configured. Trace files record
// the codec name in their header, so this may change between releases
// without breaking old files.
var Default Codec = GoJSON{}
