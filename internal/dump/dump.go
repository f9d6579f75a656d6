// Package dump renders decoded LVB graphs as JSON for the CLI and the
// query server. Hex ids are spelled "<XXXXXXXX>" so they can be fed back
// into lookups, and raw payload bytes are included only on request.
package dump

import (
	"encoding/hex"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/roccodev/xeno-lvb/pkg/lvb"
)

// Options control rendering. IncludeBytes toggles hex dumps of Raw
// payloads; it is plumbed explicitly instead of living in process state.
type Options struct {
	IncludeBytes bool
	Indent       string
}

// jsonFielder lets extension payloads contribute their own fields to an
// entry's JSON object.
type jsonFielder interface {
	JSONFields() map[string]any
}

// HexID spells a 32-bit id the way the CLI accepts it back.
func HexID(v uint32) string {
	return fmt.Sprintf("<%08X>", v)
}

// Container renders the whole structured dump: version plus every
// non-special section.
func Container(c *lvb.Container, o Options) ([]byte, error) {
	return marshal(ContainerValue(c, o), o)
}

// Gimmick renders a single resolved entry.
func Gimmick(c *lvb.Container, e *lvb.Entry, o Options) ([]byte, error) {
	return marshal(EntryValue(c, e, o), o)
}

// ContainerValue builds the JSON-ready value for a container.
func ContainerValue(c *lvb.Container, o Options) any {
	sections := make([]any, 0, len(c.Sections))
	for _, s := range c.Sections {
		sections = append(sections, sectionValue(c, s, o))
	}
	return map[string]any{
		"version":  c.Version,
		"sections": sections,
	}
}

func sectionValue(c *lvb.Container, s *lvb.Section, o Options) any {
	entries := make([]any, 0, len(s.Entries))
	for i := range s.Entries {
		entries = append(entries, EntryValue(c, &s.Entries[i], o))
	}
	return map[string]any{
		"magic":   s.Magic.String(),
		"entries": entries,
	}
}

// EntryValue builds the JSON-ready value for one entry: resolved name,
// info and transform, with the payload's own fields merged on top.
func EntryValue(c *lvb.Container, e *lvb.Entry, o Options) map[string]any {
	res := map[string]any{
		"name":  nullableName(e.Name),
		"info":  infoValue(c.InfoFor(e)),
		"xform": transformValue(c.TransformFor(e)),
	}
	for k, v := range payloadFields(e.Payload, o) {
		res[k] = v
	}
	return res
}

func nullableName(name string) any {
	if name == "" {
		return nil
	}
	return name
}

func infoValue(p lvb.Payload) any {
	switch info := p.(type) {
	case *lvb.Info:
		return map[string]any{
			"bdat_id":       HexID(info.BdatID),
			"shape":         info.Shape,
			"sequential_id": info.SequentialID,
			"hash_id":       HexID(info.HashID),
		}
	case *lvb.LegacyInfo:
		return map[string]any{
			"shape": info.Shape,
		}
	}
	return nil
}

func transformValue(t *lvb.Transform) any {
	if t == nil {
		return nil
	}
	return t.Matrix[:]
}

func payloadFields(p lvb.Payload, o Options) map[string]any {
	switch v := p.(type) {
	case *lvb.Raw:
		if o.IncludeBytes {
			return map[string]any{"bytes": hex.EncodeToString(v.Data)}
		}
	case *lvb.Info:
		return infoValue(v).(map[string]any)
	case *lvb.LegacyInfo:
		return infoValue(v).(map[string]any)
	case *lvb.Transform:
		return map[string]any{"matrix": v.Matrix[:]}
	case *lvb.Debug:
		return map[string]any{
			"gimmick_id": HexID(v.GimmickID),
			"type_id":    v.TypeID,
			"string_id":  v.StringID,
			"parent_id":  v.ParentID,
		}
	case jsonFielder:
		return v.JSONFields()
	}
	return nil
}

func marshal(v any, o Options) ([]byte, error) {
	if o.Indent != "" {
		return json.MarshalIndent(v, "", o.Indent)
	}
	return json.Marshal(v)
}
