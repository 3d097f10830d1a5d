package domain

import (
	"bytes"
	"encoding/json"
)

// Classification is the partitioning outcome for one input element.
type Classification int

const (
	Dropped Classification = iota
	Incomplete
	Complete
)

func (c Classification) String() string {
	switch c {
	case Complete:
		return "complete"
	case Incomplete:
		return "incomplete"
	default:
		return "dropped"
	}
}

// Classify inspects one input element without modifying it.
func Classify(raw json.RawMessage) Classification {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return Dropped
	}

	pickup, ok := endpoint(obj, "pickup_latlng")
	if !ok {
		return Dropped
	}
	destination, ok := endpoint(obj, "destination_latlng")
	if !ok {
		return Dropped
	}

	if hasValue(pickup, "latitude") && hasValue(pickup, "longitude") &&
		hasValue(destination, "latitude") && hasValue(destination, "longitude") {
		return Complete
	}
	return Incomplete
}

// PartitionRecords classifies every element in order. Elements are kept
// verbatim so the written documents preserve the source formatting of keys.
func PartitionRecords(raws []json.RawMessage) Partition {
	var p Partition
	p.Complete = make([]json.RawMessage, 0, len(raws))
	p.Incomplete = make([]json.RawMessage, 0)

	for _, raw := range raws {
		switch Classify(raw) {
		case Complete:
			p.Complete = append(p.Complete, raw)
		case Incomplete:
			p.Incomplete = append(p.Incomplete, raw)
		default:
			p.Dropped++
		}
	}
	return p
}

// endpoint returns the named field decoded as an object. Absent fields, null,
// and non-object values all report false.
func endpoint(obj map[string]json.RawMessage, key string) (map[string]json.RawMessage, bool) {
	raw, ok := obj[key]
	if !ok {
		return nil, false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

func hasValue(m map[string]json.RawMessage, key string) bool {
	raw, ok := m[key]
	return ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
