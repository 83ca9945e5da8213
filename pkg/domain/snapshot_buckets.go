package domain

import (
	"encoding/json"
	"fmt"
)

// SnapshotBuckets lists the state-table buckets a snapshot is split into.
// SQL-backed stores persist one JSON payload per bucket.
var SnapshotBuckets = []string{
	"meta",
	"gen_kw",
	"fields",
	"gen_data",
	"surfaces",
	"summaries",
	"containers",
	"statics",
}

// snapshotMeta carries the non-node state of a snapshot.
type snapshotMeta struct {
	TagFormat string `json:"tag_format"`
}

// MarshalBucket encodes one bucket of the snapshot as JSON.
func MarshalBucket(snapshot Snapshot, bucket string) ([]byte, error) {
	var v any
	switch bucket {
	case "meta":
		v = snapshotMeta{TagFormat: snapshot.TagFormat}
	case "gen_kw":
		v = snapshot.GenKW
	case "fields":
		v = snapshot.Fields
	case "gen_data":
		v = snapshot.GenData
	case "surfaces":
		v = snapshot.Surfaces
	case "summaries":
		v = snapshot.Summaries
	case "containers":
		v = snapshot.Containers
	case "statics":
		v = snapshot.Statics
	default:
		return nil, fmt.Errorf("unknown snapshot bucket %q", bucket)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", bucket, err)
	}
	return data, nil
}

// UnmarshalBucket decodes one bucket payload into the snapshot. Unknown
// buckets are skipped so stores can load state written by newer layouts.
func UnmarshalBucket(snapshot *Snapshot, bucket string, payload []byte) error {
	if len(payload) == 0 {
		return nil
	}
	var target any
	switch bucket {
	case "meta":
		var meta snapshotMeta
		if err := json.Unmarshal(payload, &meta); err != nil {
			return fmt.Errorf("decode meta: %w", err)
		}
		snapshot.TagFormat = meta.TagFormat
		return nil
	case "gen_kw":
		target = &snapshot.GenKW
	case "fields":
		target = &snapshot.Fields
	case "gen_data":
		target = &snapshot.GenData
	case "surfaces":
		target = &snapshot.Surfaces
	case "summaries":
		target = &snapshot.Summaries
	case "containers":
		target = &snapshot.Containers
	case "statics":
		target = &snapshot.Statics
	default:
		return nil
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("decode %s: %w", bucket, err)
	}
	return nil
}
