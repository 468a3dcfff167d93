package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
)

// capture swaps the package writers for buffers and restores every switch
// on cleanup.
func capture(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()

	origOut, origErr := stdout, stderr
	origDebug, origVerbose := debugMode, verboseMode
	origExit := exit
	origNoColor := color.NoColor
	t.Cleanup(func() {
		stdout, stderr = origOut, origErr
		debugMode, verboseMode = origDebug, origVerbose
		exit = origExit
		color.NoColor = origNoColor
	})

	color.NoColor = true
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	SetOutput(out, errOut)
	return out, errOut
}

func TestSetDebugMode(t *testing.T) {
	capture(t)

	tests := []struct {
		name    string
		enabled bool
	}{
		{name: "enable debug", enabled: true},
		{name: "disable debug", enabled: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetDebugMode(tt.enabled)
			if debugMode != tt.enabled {
				t.Errorf("SetDebugMode(%v) did not set debugMode correctly", tt.enabled)
			}
		})
	}
}

func TestDebugOutput(t *testing.T) {
	out, _ := capture(t)

	SetDebugMode(true)
	Debug("test %s", "message")

	if !strings.Contains(out.String(), "test message") {
		t.Errorf("Debug() did not output expected message, got: %s", out)
	}
	if !strings.Contains(out.String(), "[DEBUG]") {
		t.Errorf("Debug() did not include [DEBUG] prefix, got: %s", out)
	}
}

func TestDebugDisabled(t *testing.T) {
	out, _ := capture(t)

	SetDebugMode(false)
	Debug("test message")
	DebugH2("test message")

	if out.String() != "" {
		t.Errorf("Debug() should not output when disabled, got: %s", out)
	}
}

func TestInfo_GatedByVerbose(t *testing.T) {
	out, _ := capture(t)

	SetVerboseMode(false)
	Info("hidden")
	InfoH2("hidden")
	InfoH3("hidden")
	Created("directory", "/tmp/x")
	if out.String() != "" {
		t.Fatalf("info output should be silent without verbose, got: %q", out)
	}

	SetVerboseMode(true)
	if !verboseMode {
		t.Fatal("SetVerboseMode(true) did not enable verbose output")
	}
	Created("directory", "/tmp/x")
	if got := out.String(); got != "  [x] created directory: /tmp/x\n" {
		t.Errorf("Created() = %q", got)
	}
}

func TestError_AlwaysPrinted(t *testing.T) {
	out, errOut := capture(t)

	SetVerboseMode(false)
	Error("boom: %d", 42)

	if out.String() != "" {
		t.Errorf("Error() should not write to stdout, got: %q", out)
	}
	if got := errOut.String(); got != "[x] boom: 42\n" {
		t.Errorf("Error() = %q", got)
	}
}

func TestFatal(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, "[x] fatal error occurred\n"},
		{"error", []interface{}{errors.New("disk full")}, "[x] disk full\n"},
		{"format", []interface{}{"failed %s", "here"}, "[x] failed here\n"},
		{"multi-line", []interface{}{"a\nb"}, "[x] a\n[x] b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut := capture(t)
			code := -1
			exit = func(c int) { code = c }

			Fatal(tt.args...)

			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if errOut.String() != tt.want {
				t.Errorf("Fatal() = %q, want %q", errOut.String(), tt.want)
			}
		})
	}
}
