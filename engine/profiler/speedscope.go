//go:build profile

package profiler

import (
	"encoding/json"
	"errors"
	"os"
)

const speedscopeSchema = "https://www.speedscope.app/file-format-schema.json"

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // O or C
	At    int64  `json:"at"`   // µs since the first event
	Frame int    `json:"frame"`
}

// balance converts raw events to speedscope events. Timestamps never go
// backwards, closes that do not match the innermost open scope are
// dropped, and scopes still open at the end are closed at the last
// timestamp, innermost first.
func balance(evs []event) (out []ssEvent, end int64) {
	if len(evs) == 0 {
		return nil, 0
	}
	base := evs[0].at
	out = make([]ssEvent, 0, len(evs)+8)
	var stack []int
	for _, e := range evs {
		at := max((e.at-base)/1000, end)
		if e.open {
			stack = append(stack, e.name)
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.name})
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.name {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.name})
		}
		end = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: end, Frame: stack[i]})
	}
	return out, end
}

func writeSpeedscope(path string, frameNames []string, evs []event) error {
	out, end := balance(evs)
	if len(out) == 0 {
		return errors.New("no balanced scopes")
	}
	frames := make([]ssFrame, len(frameNames))
	for i, n := range frameNames {
		frames[i] = ssFrame{Name: n}
	}
	doc := ssFile{
		Schema: speedscopeSchema,
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "imbridge frames",
			Unit:     "microseconds",
			EndValue: end,
			Events:   out,
		}},
		Exporter: "imbridge-profiler",
		Name:     "imbridge capture",
	}

	// Readers see either the previous file or the complete new one.
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&doc); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
