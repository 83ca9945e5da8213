package core

import (
	"errors"
	"strings"
	"testing"

	"ensemblecore/internal/configtext"
	"ensemblecore/pkg/domain"
)

func parseConfig(t *testing.T, text string) *configtext.Config {
	t.Helper()
	cfg, err := configtext.Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return cfg
}

const fullConfig = `
GEN_KW_TAG_FORMAT  $%s$
GEN_KW    MULTFLT  template.txt  target.txt  params.txt  MIN_STD:min_std.txt
GEN_PARAM SEED     seed.txt  OUTPUT_FORMAT:ASCII
GEN_DATA  RFT      RESULT_FILE:rft_%d  INPUT_FORMAT:ASCII
SURFACE   TOP      BASE_SURFACE:base.irap INIT_FILES:top_%d.irap OUTPUT_FILE:top.irap
FIELD     PRESSURE DYNAMIC  MIN:0
FIELD     PERMX    PARAMETER permx.grdecl INIT_FILES:permx_%d.grdecl INIT_TRANSFORM:LOG OUTPUT_TRANSFORM:EXP MIN:0.001 MAX:1000
FIELD     VELOCITY GENERAL  velocity.out velocity.in
SUMMARY   WOPR:OP_1 FOPT
CONTAINER GROUP PERMX MULTFLT
`

func TestIngestFullConfig(t *testing.T) {
	r := NewRegistry()
	if err := r.IngestConfig(parseConfig(t, fullConfig), testGrid{}); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if r.TagFormat() != "$%s$" {
		t.Fatalf("tag format = %q", r.TagFormat())
	}
	if r.Len() != 10 {
		t.Fatalf("len = %d, keys = %v", r.Len(), r.Keys())
	}

	genKW, err := r.Node("MULTFLT")
	if err != nil {
		t.Fatalf("node: %v", err)
	}
	kw, err := genKW.GenKWConfig()
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if kw.TemplateFile() != "template.txt" || kw.MinStdFile() != "min_std.txt" {
		t.Fatalf("gen_kw fields: %q %q", kw.TemplateFile(), kw.MinStdFile())
	}
	if kw.TaggedName("F1") != "$F1$" {
		t.Fatalf("tag format not applied: %q", kw.TaggedName("F1"))
	}

	seed, _ := r.Node("SEED")
	seedData, err := seed.GenDataConfig()
	if err != nil {
		t.Fatalf("gen_param payload: %v", err)
	}
	if seedData.OutputFile() != "seed.txt" || seedData.IsResponse() {
		t.Fatalf("gen_param should be a sampled parameter writing seed.txt")
	}
	if seed.VariableClass() != ClassParameter {
		t.Fatalf("gen_param class = %s", seed.VariableClass())
	}

	rft, _ := r.Node("RFT")
	if rft.VariableClass() != ClassDynamicState {
		t.Fatalf("response gen_data class = %s", rft.VariableClass())
	}

	pressure, _ := r.Node("PRESSURE")
	pressureField, err := pressure.FieldConfig()
	if err != nil {
		t.Fatalf("field payload: %v", err)
	}
	if pressureField.Usage() != domain.FieldState {
		t.Fatalf("usage = %s", pressureField.Usage())
	}
	truncation, minValue, _ := pressureField.Truncation()
	if truncation != TruncateMin || minValue != 0 {
		t.Fatalf("truncation = %v min = %v", truncation, minValue)
	}

	permx, _ := r.Node("PERMX")
	permxField, _ := permx.FieldConfig()
	initTransform, _, outputTransform := permxField.Transforms()
	if initTransform != "LOG" || outputTransform != "EXP" {
		t.Fatalf("transforms = %q %q", initTransform, outputTransform)
	}
	truncation, minValue, maxValue := permxField.Truncation()
	if truncation != TruncateMin|TruncateMax || minValue != 0.001 || maxValue != 1000 {
		t.Fatalf("truncation = %v [%v, %v]", truncation, minValue, maxValue)
	}

	velocity, _ := r.Node("VELOCITY")
	velocityField, _ := velocity.FieldConfig()
	if velocityField.Usage() != domain.FieldGeneral || velocityField.InputFile() != "velocity.in" {
		t.Fatalf("general field: usage=%s input=%q", velocityField.Usage(), velocityField.InputFile())
	}

	container, _ := r.Node("GROUP")
	cc, err := container.ContainerConfig()
	if err != nil {
		t.Fatalf("container payload: %v", err)
	}
	if children := cc.ChildKeys(); len(children) != 2 || children[0] != "PERMX" || children[1] != "MULTFLT" {
		t.Fatalf("children = %v", children)
	}
}

func TestIngestSummaryWildcardExpansion(t *testing.T) {
	r := NewRegistry()
	r.SetReferenceCase(fakeRefcase{id: "REF", variables: []string{"WOPR:A1", "WOPR:A2", "WWCT:A1"}})
	if err := r.IngestConfig(parseConfig(t, "SUMMARY WOPR:*\n"), nil); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	keys := r.KeysByKind(KindSummary)
	if len(keys) != 2 || keys[0] != "WOPR:A1" || keys[1] != "WOPR:A2" {
		t.Fatalf("expanded keys = %v", keys)
	}
}

func TestIngestSummaryWildcardWithoutRefcase(t *testing.T) {
	r := NewRegistry()
	err := r.IngestConfig(parseConfig(t, "SUMMARY F*PT\n"), nil)
	var wildcard domain.UnresolvedWildcardError
	if !errors.As(err, &wildcard) {
		t.Fatalf("expected UnresolvedWildcardError, got %v", err)
	}
	if wildcard.Pattern != "F*PT" {
		t.Fatalf("pattern = %q", wildcard.Pattern)
	}
}

func TestIngestContainerUnknownChild(t *testing.T) {
	r := NewRegistry()
	err := r.IngestConfig(parseConfig(t, "CONTAINER GROUP NO_SUCH_CHILD\n"), nil)
	var unknown domain.UnknownKeyError
	if !errors.As(err, &unknown) || unknown.Key != "NO_SUCH_CHILD" {
		t.Fatalf("expected UnknownKeyError for the child, got %v", err)
	}
}

func TestIngestContainerResolvesForwardReferences(t *testing.T) {
	// Containers are wired last, so a container statement may reference a
	// variable declared after it.
	text := "CONTAINER GROUP MULTFLT\nGEN_KW MULTFLT template.txt target.txt params.txt\n"
	r := NewRegistry()
	if err := r.IngestConfig(parseConfig(t, text), nil); err != nil {
		t.Fatalf("ingest: %v", err)
	}
	node, err := r.Node("GROUP")
	if err != nil {
		t.Fatalf("node: %v", err)
	}
	cc, _ := node.ContainerConfig()
	if cc.Len() != 1 {
		t.Fatalf("children = %v", cc.ChildKeys())
	}
}

func TestIngestFieldErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"unknown usage", "FIELD K WEIRD\n"},
		{"parameter missing output", "FIELD K PARAMETER\n"},
		{"general missing input", "FIELD K GENERAL out.grdecl\n"},
		{"bad min value", "FIELD K DYNAMIC MIN:abc\n"},
		{"unknown transform", "FIELD K PARAMETER out.grdecl INIT_TRANSFORM:NO_SUCH\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry()
			if err := r.IngestConfig(parseConfig(t, tc.text), testGrid{}); err == nil {
				t.Fatal("expected ingest error")
			}
		})
	}
}

func TestIngestGenDataBadFormatToken(t *testing.T) {
	r := NewRegistry()
	err := r.IngestConfig(parseConfig(t, "GEN_DATA RFT RESULT_FILE:rft_%d INPUT_FORMAT:EBCDIC\n"), nil)
	var tokenErr domain.UnrecognizedFormatTokenError
	if !errors.As(err, &tokenErr) {
		t.Fatalf("expected UnrecognizedFormatTokenError, got %v", err)
	}
}
