package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/multipick/internal/option"
)

func TestParseFlags(t *testing.T) {
	var stderr bytes.Buffer
	opts, err := parseFlags([]string{"-c", "x.toml", "-limit", "2", "-pick", "bitcoin, tether", "-list"}, &stderr)
	if err != nil {
		t.Fatalf("parseFlags() failed: %v", err)
	}

	if opts.configPath != "x.toml" {
		t.Errorf("configPath = %q", opts.configPath)
	}
	if opts.limit != 2 || !opts.list {
		t.Errorf("limit = %d list = %v", opts.limit, opts.list)
	}
	for _, name := range []string{"c", "limit", "pick", "list"} {
		if !opts.set[name] {
			t.Errorf("flag %q not recorded as set", name)
		}
	}
	if opts.set["query"] {
		t.Error("query recorded as set but was not given")
	}
}

func TestParseFlagsRejectsArguments(t *testing.T) {
	var stderr bytes.Buffer
	if _, err := parseFlags([]string{"extra"}, &stderr); err == nil {
		t.Error("expected error for positional arguments")
	}
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multipick.toml")
	content := "[select]\nlimit = 5\nquery = \"bit\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	opts, err := parseFlags([]string{"-config", path, "-limit", "2", "-pick", "bitcoin,tether"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}

	if cfg.Select.Limit != 2 {
		t.Errorf("limit = %d, want flag value 2", cfg.Select.Limit)
	}
	if cfg.Select.Query != "bit" {
		t.Errorf("query = %q, want file value bit", cfg.Select.Query)
	}
	if want := []string{"bitcoin", "tether"}; !reflect.DeepEqual(cfg.Select.Picked, want) {
		t.Errorf("picked = %v, want %v", cfg.Select.Picked, want)
	}
}

func TestLoadConfigValidatesFlags(t *testing.T) {
	var stderr bytes.Buffer
	opts, err := parseFlags([]string{"-limit", "1", "-pick", "a,b"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(opts); err == nil {
		t.Error("expected validation error for more picks than limit")
	}
}

func TestEncodeResult(t *testing.T) {
	selected := []option.Option{option.New("bitcoin", "btc")}
	remaining := []option.Option{option.New("ethereum", "eth").With("rank", 2)}

	out, err := encodeResult(selected, remaining, false)
	if err != nil {
		t.Fatalf("encodeResult() failed: %v", err)
	}
	if !bytes.HasSuffix(out, []byte("\n")) {
		t.Error("output should end with a newline")
	}
	if got := gjson.GetBytes(out, "selected.0.symbol").String(); got != "btc" {
		t.Errorf("selected.0.symbol = %q", got)
	}
	if got := gjson.GetBytes(out, "remaining.0.rank").Int(); got != 2 {
		t.Errorf("remaining.0.rank = %d", got)
	}
}

func TestEncodeResultOmitsRemaining(t *testing.T) {
	out, err := encodeResult(nil, nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if gjson.GetBytes(out, "remaining").Exists() {
		t.Errorf("remaining present in %s", out)
	}
	if !gjson.GetBytes(out, "selected").IsArray() {
		t.Errorf("selected missing in %s", out)
	}
	if !strings.Contains(string(out), "\n  ") {
		t.Errorf("expected indented output, got %s", out)
	}
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "multipick dev") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-h"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr.String(), "Usage: multipick") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
