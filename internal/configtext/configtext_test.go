package configtext

import (
	"strings"
	"testing"
)

const sampleConfig = `
-- ensemble definition
GEN_KW_TAG_FORMAT  <%s>
GEN_KW   MULTFLT  template.txt  target.txt  params.txt  MIN_STD:min_std.txt
FIELD    PERMX  PARAMETER  permx.grdecl  INIT_FILES:permx_%d.grdecl  MIN:0.001 MAX:1000
SUMMARY  WOPR:OP_1 WGOR:OP_1   -- trailing comment
SUMMARY  FOPT
GEN_DATA RFT  RESULT_FILE:rft_%d  INPUT_FORMAT:ASCII
SURFACE  TOP  BASE_SURFACE:base.irap INIT_FILES:top_%d.irap OUTPUT_FILE:top.irap
CONTAINER GROUP PERMX MULTFLT
`

func TestParseSample(t *testing.T) {
	cfg, err := Parse(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.Statements()) != 8 {
		t.Fatalf("expected 8 statements, got %d", len(cfg.Statements()))
	}

	format, ok := cfg.Value(KeywordGenKWTagFormat)
	if !ok || format != "<%s>" {
		t.Fatalf("tag format = %q, ok=%v", format, ok)
	}

	genKW := cfg.Occurrences(KeywordGenKW)
	if len(genKW) != 1 {
		t.Fatalf("expected one GEN_KW, got %d", len(genKW))
	}
	if got := genKW[0].Args; len(got) != 4 || got[0] != "MULTFLT" {
		t.Fatalf("GEN_KW args = %v", got)
	}
	if genKW[0].Option(OptionMinStd) != "min_std.txt" {
		t.Fatalf("MIN_STD option = %q", genKW[0].Option(OptionMinStd))
	}

	field := cfg.Occurrences(KeywordField)[0]
	if !field.HasOption(OptionMin) || field.Option(OptionMax) != "1000" {
		t.Fatalf("field options = %v", field.Options)
	}
}

func TestParseSummaryKeysStayPositional(t *testing.T) {
	cfg, err := Parse(strings.NewReader("SUMMARY WOPR:OP_1 WGOR:OP_1\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	stmt := cfg.Occurrences(KeywordSummary)[0]
	if len(stmt.Args) != 2 || stmt.Args[0] != "WOPR:OP_1" {
		t.Fatalf("summary keys should be positional, got args=%v options=%v", stmt.Args, stmt.Options)
	}
	if len(stmt.Options) != 0 {
		t.Fatalf("summary should carry no options, got %v", stmt.Options)
	}
}

func TestParseCommentsAndBlankLines(t *testing.T) {
	cfg, err := Parse(strings.NewReader("-- full comment line\n\n   \nSUMMARY FOPT -- inline\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(cfg.Statements()) != 1 {
		t.Fatalf("expected one statement, got %d", len(cfg.Statements()))
	}
	if args := cfg.Occurrences(KeywordSummary)[0].Args; len(args) != 1 || args[0] != "FOPT" {
		t.Fatalf("inline comment not stripped: %v", args)
	}
}

func TestParseErrorsNameLine(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"unknown keyword", "SUMMARY FOPT\nNOT_A_KEYWORD x\n", "line 2"},
		{"too few args", "GEN_KW MULTFLT template.txt\n", "line 1"},
		{"too many args", "GEN_KW_TAG_FORMAT a b\n", "line 1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q should name %s", err, tc.want)
			}
		})
	}
}

func TestParseFieldArityBounds(t *testing.T) {
	if _, err := Parse(strings.NewReader("FIELD PRESSURE\n")); err == nil {
		t.Fatal("FIELD with one arg should fail")
	}
	if _, err := Parse(strings.NewReader("FIELD K GENERAL out in extra\n")); err == nil {
		t.Fatal("FIELD with five args should fail")
	}
	if _, err := Parse(strings.NewReader("CONTAINER GROUP\n")); err == nil {
		t.Fatal("CONTAINER needs at least one child")
	}
}
