package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ensemblecore/internal/configtext"
)

const fixturePath = "testdata/ensemble.conf"

func TestCLIValidConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cli([]string{"-config", fixturePath}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "Configuration valid: 10 variables.") {
		t.Fatalf("missing summary line:\n%s", out)
	}
	for _, want := range []string{"GEN_KW", "FIELD", "SUMMARY", "CONTAINER"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s line:\n%s", want, out)
		}
	}
}

func TestCLIMissingConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cli([]string{"-config", "testdata/no_such.conf"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr.String(), "Configuration check failed") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestCLIInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.conf")
	if err := os.WriteFile(bad, []byte("FIELD ONLY_A_KEY\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	// cli refuses absolute paths, so run relative to the temp dir.
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})

	var stdout, stderr bytes.Buffer
	code := cli([]string{"-config", "bad.conf"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d, stdout: %s", code, stdout.String())
	}
}

func TestCLIBadFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cli([]string{"-no-such-flag"}, &stdout, &stderr)
	if code != 2 {
		t.Fatalf("exit code = %d", code)
	}
}

func TestCLIEmitRoundTrips(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := cli([]string{"-config", fixturePath, "-emit"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	// Everything after the report must parse as configuration text again.
	out := stdout.String()
	idx := strings.Index(out, "GEN_KW_TAG_FORMAT")
	if idx < 0 {
		t.Fatalf("emitted text missing tag format line:\n%s", out)
	}
	cfg, err := configtext.Parse(strings.NewReader(out[idx:]))
	if err != nil {
		t.Fatalf("emitted text does not re-parse: %v", err)
	}
	if len(cfg.Statements()) == 0 {
		t.Fatal("emitted text has no statements")
	}
}

func TestCLISnapshotFlag(t *testing.T) {
	t.Setenv("ENSEMBLECORE_STORAGE_DRIVER", "memory")
	var stdout, stderr bytes.Buffer
	code := cli([]string{"-config", fixturePath, "-snapshot"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Snapshot saved.") {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestCLIArchiveFlag(t *testing.T) {
	t.Setenv("ENSEMBLECORE_BLOB_DRIVER", "memory")
	var stdout, stderr bytes.Buffer
	code := cli([]string{"-config", fixturePath, "-archive", "exports/ensemble.conf"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Archived exports/ensemble.conf") {
		t.Fatalf("stdout = %q", stdout.String())
	}
}

func TestRunBuildsRegistry(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	registry, err := run(fixturePath, staticGrid{name: "GRID", cells: 1000}, logger)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if registry.Len() != 10 {
		t.Fatalf("registered %d variables", registry.Len())
	}
	if !registry.HasKey("PERMX") || !registry.HasKey("GROUP") {
		t.Fatal("expected keys missing")
	}
}

func TestValidatePath(t *testing.T) {
	cases := []struct {
		path string
		ok   bool
	}{
		{"ensemble.conf", true},
		{"testdata/ensemble.conf", true},
		{"./testdata/ensemble.conf", true},
		{"", false},
		{"   ", false},
		{"/etc/passwd", false},
		{"../outside.conf", false},
		{"a/../../b.conf", false},
	}
	for _, tc := range cases {
		_, err := validatePath(tc.path)
		if tc.ok && err != nil {
			t.Errorf("validatePath(%q) = %v, want ok", tc.path, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("validatePath(%q) accepted", tc.path)
		}
	}
}
