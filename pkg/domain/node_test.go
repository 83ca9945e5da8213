package domain

import (
	"errors"
	"testing"
)

type testGrid struct{}

func (testGrid) Name() string     { return "TESTGRID" }
func (testGrid) ActiveCells() int { return 1000 }

func TestNodeKindAccessors(t *testing.T) {
	node := NewConfigNode("WOPR", ClassDynamicState, NewSummaryConfig("WOPR", LoadFailSilent))

	if _, err := node.SummaryConfig(); err != nil {
		t.Fatalf("summary accessor: %v", err)
	}
	_, err := node.FieldConfig()
	var mismatch KindMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected KindMismatchError, got %v", err)
	}
	if mismatch.Want != KindField || mismatch.Got != KindSummary {
		t.Fatalf("unexpected mismatch detail: %+v", mismatch)
	}
	if err := node.UpdateGenKW("tmpl", "out", "params", "", ""); !errors.As(err, &mismatch) {
		t.Fatalf("expected mismatch from wrong-kind update, got %v", err)
	}
}

func TestNodeObservationKeys(t *testing.T) {
	node := NewConfigNode("PORO", ClassParameter, NewGenKWConfig("PORO", "<%s>"))

	node.AddObservationKey("OBS_B")
	node.AddObservationKey("OBS_A")
	node.AddObservationKey("OBS_A")

	if !node.HasObservationKey("OBS_A") || node.HasObservationKey("OBS_C") {
		t.Fatal("observation membership wrong")
	}
	keys := node.ObservationKeys()
	if len(keys) != 2 || keys[0] != "OBS_A" || keys[1] != "OBS_B" {
		t.Fatalf("expected sorted deduplicated keys, got %v", keys)
	}
	node.ClearObservationKeys()
	if len(node.ObservationKeys()) != 0 {
		t.Fatal("clear left observation keys behind")
	}
}

func TestNodeInternalizationDefaults(t *testing.T) {
	cases := []struct {
		name  string
		class VariableClass
		want  bool
	}{
		{"parameter", ClassParameter, true},
		{"dynamic state", ClassDynamicState, true},
		{"static state", ClassStaticState, false},
		{"invalid", ClassInvalid, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			node := NewConfigNode("KEY", tc.class, NewStaticConfig("KEY"))
			node.InitInternalization()
			if node.ShouldInternalize() != tc.want {
				t.Fatalf("class %s: internalize = %v, want %v", tc.class, node.ShouldInternalize(), tc.want)
			}
		})
	}
}

func TestNodeInternalizeOverride(t *testing.T) {
	node := NewConfigNode("KEY", ClassStaticState, NewStaticConfig("KEY"))
	node.SetInternalize(true)
	if !node.ShouldInternalize() {
		t.Fatal("override not applied")
	}
	node.InitInternalization()
	if node.ShouldInternalize() {
		t.Fatal("init should reset static state to not internalized")
	}
}

func TestUpdateGenDataSetsClass(t *testing.T) {
	response := NewConfigNode("RFT", ClassInvalid, NewGenDataConfig("RFT"))
	if err := response.UpdateGenData(FormatASCII, FormatUndefined, "", "", "", "", "rft_%d", ""); err != nil {
		t.Fatalf("update response: %v", err)
	}
	if response.VariableClass() != ClassDynamicState {
		t.Fatalf("response class = %s, want dynamic_state", response.VariableClass())
	}

	parameter := NewConfigNode("SEED", ClassInvalid, NewGenDataConfig("SEED"))
	if err := parameter.UpdateGenData(FormatUndefined, FormatASCII, "seed_%d", "", "", "seed.txt", "", ""); err != nil {
		t.Fatalf("update parameter: %v", err)
	}
	if parameter.VariableClass() != ClassParameter {
		t.Fatalf("parameter class = %s, want parameter", parameter.VariableClass())
	}
}

func TestUpdateFieldVariantsSetClass(t *testing.T) {
	table := NewTransformTable()

	dynamic := NewConfigNode("PRESSURE", ClassInvalid, NewFieldConfig("PRESSURE", testGrid{}, table))
	if err := dynamic.UpdateStateField(TruncateMin, 0, 0); err != nil {
		t.Fatalf("dynamic update: %v", err)
	}
	if dynamic.VariableClass() != ClassDynamicState {
		t.Fatalf("dynamic class = %s", dynamic.VariableClass())
	}

	param := NewConfigNode("PERMX", ClassInvalid, NewFieldConfig("PERMX", testGrid{}, table))
	if err := param.UpdateParameterField("permx.grdecl", "permx_%d.grdecl", "", TruncateNone, 0, 0, "LOG", "EXP"); err != nil {
		t.Fatalf("parameter update: %v", err)
	}
	if param.VariableClass() != ClassParameter {
		t.Fatalf("parameter class = %s", param.VariableClass())
	}

	bad := NewConfigNode("PERMZ", ClassInvalid, NewFieldConfig("PERMZ", testGrid{}, table))
	err := bad.UpdateParameterField("permz.grdecl", "", "", TruncateNone, 0, 0, "NO_SUCH", "")
	var unknownErr UnknownTransformNameError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("expected UnknownTransformNameError, got %v", err)
	}
}

func TestContainerChildKeysCopied(t *testing.T) {
	node := NewConfigNode("GROUP", ClassInvalid, NewContainerConfig("GROUP"))
	if err := node.AppendContainerChild("A"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := node.AppendContainerChild("B"); err != nil {
		t.Fatalf("append: %v", err)
	}
	container, err := node.ContainerConfig()
	if err != nil {
		t.Fatalf("accessor: %v", err)
	}
	keys := container.ChildKeys()
	keys[0] = "MUTATED"
	if fresh := container.ChildKeys(); fresh[0] != "A" || container.Len() != 2 {
		t.Fatalf("child keys not isolated: %v", fresh)
	}
}
