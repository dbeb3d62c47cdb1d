package hint

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		headline string
		hint     string
		details  []string
		want     string
	}{
		{"headline only", "store is locked", "", nil, "store is locked"},
		{"with hint", "config file not found: /x", "Run 'edu-ai config init'", nil,
			"config file not found: /x\n💡 Run 'edu-ai config init'"},
		{"empty details skipped", "denied", "Fix: chmod", []string{"", "Current permissions: 0400"},
			"denied\nCurrent permissions: 0400\n💡 Fix: chmod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.headline, tt.hint, tt.details...); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPermissionFixes(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("chmod hints are unix-only")
	}
	if got := WritePermissionFix("/data"); got != "Run: chmod u+w /data" {
		t.Errorf("WritePermissionFix() = %q", got)
	}
	if got := ReadPermissionFix("/data"); got != "Run: chmod u+r /data" {
		t.Errorf("ReadPermissionFix() = %q", got)
	}
	if !strings.HasPrefix(Fix("x"), "Fix: ") {
		t.Error("Fix should prefix 'Fix: '")
	}
}

func TestModeDetails(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("mode bits are unix-only")
	}
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, nil, 0o640); err != nil {
		t.Fatal(err)
	}
	if got := ModeDetails(path); got != "Current permissions: 0640" {
		t.Errorf("ModeDetails() = %q", got)
	}
	if got := ModeDetails(filepath.Join(t.TempDir(), "missing")); got != "" {
		t.Errorf("ModeDetails(missing) = %q, want empty", got)
	}
}
