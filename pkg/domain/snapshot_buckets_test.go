package domain

import "testing"

func TestBucketRoundTrip(t *testing.T) {
	in := Snapshot{
		TagFormat: "$%s$",
		GenKW: []GenKWRecord{{
			NodeRecord:    NodeRecord{Key: "MULTFLT", Internalize: true},
			TemplateFile:  "template.txt",
			ParameterFile: "params.txt",
		}},
		Summaries: []SummaryRecord{{
			NodeRecord:     NodeRecord{Key: "WOPR:OP_1", ObservationKeys: []string{"OBS_1"}},
			LoadFailPolicy: "WARN",
		}},
	}

	var out Snapshot
	for _, bucket := range SnapshotBuckets {
		data, err := MarshalBucket(in, bucket)
		if err != nil {
			t.Fatalf("marshal %s: %v", bucket, err)
		}
		if err := UnmarshalBucket(&out, bucket, data); err != nil {
			t.Fatalf("unmarshal %s: %v", bucket, err)
		}
	}

	if out.TagFormat != "$%s$" {
		t.Fatalf("tag format = %q", out.TagFormat)
	}
	if len(out.GenKW) != 1 || out.GenKW[0].Key != "MULTFLT" || !out.GenKW[0].Internalize {
		t.Fatalf("gen_kw bucket mangled: %+v", out.GenKW)
	}
	if len(out.Summaries) != 1 || out.Summaries[0].LoadFailPolicy != "WARN" {
		t.Fatalf("summaries bucket mangled: %+v", out.Summaries)
	}
	if len(out.Fields) != 0 || len(out.Containers) != 0 {
		t.Fatal("empty buckets should stay empty")
	}
}

func TestBucketUnknownNames(t *testing.T) {
	if _, err := MarshalBucket(Snapshot{}, "no_such"); err == nil {
		t.Fatal("marshal of unknown bucket should fail")
	}
	var snap Snapshot
	if err := UnmarshalBucket(&snap, "future_bucket", []byte(`{"x":1}`)); err != nil {
		t.Fatalf("unknown buckets should be skipped on load, got %v", err)
	}
	if err := UnmarshalBucket(&snap, "gen_kw", nil); err != nil {
		t.Fatalf("empty payload should be skipped, got %v", err)
	}
}
