package gruntime

import (
	"encoding/json"
	"fmt"
	"io"
)

// snapValue is the JSON wire form of one binding.
type snapValue struct {
	Kind string   `json:"kind"`
	I    int64    `json:"i,omitempty"`
	S    string   `json:"s,omitempty"`
	Arr  []string `json:"arr,omitempty"`
}

// WriteSnapshot serializes the environment as indented JSON, one kind-tagged
// record per binding.
func (in *Interp) WriteSnapshot(w io.Writer) error {
	snap := make(map[string]snapValue, in.env.Len())
	for _, name := range in.env.Names() {
		v, _ := in.env.Get(name)
		switch v.Kind() {
		case IntKind:
			snap[name] = snapValue{Kind: "int", I: v.Int64()}
		case StringKind:
			snap[name] = snapValue{Kind: "string", S: v.String()}
		case ArrayKind:
			snap[name] = snapValue{Kind: "array", Arr: append([]string(nil), v.Elems()...)}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// ReadSnapshot replaces matching bindings from a snapshot produced by
// WriteSnapshot. Unknown kinds are an error; existing bindings not present
// in the snapshot are left alone.
func (in *Interp) ReadSnapshot(r io.Reader) error {
	var snap map[string]snapValue
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	for name, sv := range snap {
		switch sv.Kind {
		case "int":
			in.env.Set(name, Int(sv.I))
		case "string":
			in.env.Set(name, Str(sv.S))
		case "array":
			in.env.Set(name, StrArrayOf(append([]string(nil), sv.Arr...)))
		default:
			return fmt.Errorf("snapshot %s: unknown kind %q", name, sv.Kind)
		}
	}
	return nil
}
