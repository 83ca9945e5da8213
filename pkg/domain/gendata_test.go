package domain

import (
	"errors"
	"testing"
)

func TestParseGenDataFormat(t *testing.T) {
	cases := []struct {
		token string
		want  GenDataFormat
	}{
		{"", FormatUndefined},
		{"ASCII", FormatASCII},
		{"ASCII_TEMPLATE", FormatASCIITemplate},
		{"BINARY_FLOAT", FormatBinaryFloat},
		{"BINARY_DOUBLE", FormatBinaryDouble},
	}
	for _, tc := range cases {
		got, err := ParseGenDataFormat(tc.token)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.token, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q = %v, want %v", tc.token, got, tc.want)
		}
		if tc.token != "" && got.String() != tc.token {
			t.Fatalf("round trip of %q produced %q", tc.token, got.String())
		}
	}

	_, err := ParseGenDataFormat("EBCDIC")
	var tokenErr UnrecognizedFormatTokenError
	if !errors.As(err, &tokenErr) {
		t.Fatalf("expected UnrecognizedFormatTokenError, got %v", err)
	}
}

func TestGenDataValidate(t *testing.T) {
	cases := []struct {
		name       string
		resultFile string
		outputFile string
		format     GenDataFormat
		ok         bool
	}{
		{"response only", "rft_%d", "", FormatUndefined, true},
		{"parameter with format", "", "seed.txt", FormatASCII, true},
		{"output without format", "", "seed.txt", FormatUndefined, false},
		{"nothing", "", "", FormatUndefined, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewGenDataConfig("KEY")
			err := cfg.Update(FormatUndefined, tc.format, "", "", "", tc.outputFile, tc.resultFile, "")
			if tc.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.ok {
				var invalid InvalidPayloadError
				if !errors.As(err, &invalid) {
					t.Fatalf("expected InvalidPayloadError, got %v", err)
				}
			}
		})
	}
}

func TestGenDataIsResponse(t *testing.T) {
	cfg := NewGenDataConfig("RFT")
	if err := cfg.Update(FormatASCII, FormatUndefined, "", "", "", "", "rft_%d", ""); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !cfg.IsResponse() {
		t.Fatal("result-file node should be a response")
	}
}
