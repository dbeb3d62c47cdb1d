/*
Package hint renders the user-facing error messages of edu-ai.

Every message has the same shape: a headline, optional detail lines, and a
final "💡" line telling the user what to do next.

	permission denied (cannot write config): /home/me/.edu-ai.json
	Current permissions: 0444
	💡 Fix: Run: chmod u+w /home/me/.edu-ai.json
*/
package hint

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Format joins headline, the non-empty details and hint.
func Format(headline, hint string, details ...string) string {
	var b strings.Builder
	b.WriteString(headline)
	for _, d := range details {
		if d != "" {
			b.WriteString("\n")
			b.WriteString(d)
		}
	}
	if hint != "" {
		b.WriteString("\n💡 ")
		b.WriteString(hint)
	}
	return b.String()
}

// Fix formats a hint that is a command to run.
func Fix(command string) string {
	return "Fix: " + command
}

// ReadPermissionFix returns the platform-specific way to make path readable.
func ReadPermissionFix(path string) string {
	if runtime.GOOS == "windows" {
		return fmt.Sprintf("Right-click %s → Properties → Security → Edit permissions", path)
	}
	return fmt.Sprintf("Run: chmod u+r %s", path)
}

// WritePermissionFix returns the platform-specific way to make path writable.
func WritePermissionFix(path string) string {
	if runtime.GOOS == "windows" {
		return fmt.Sprintf("Right-click %s → Properties → Security → Grant 'Write' permission", path)
	}
	return fmt.Sprintf("Run: chmod u+w %s", path)
}

// ModeDetails reports the permission bits of path, or "" when unknown.
func ModeDetails(path string) string {
	if runtime.GOOS == "windows" {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("Current permissions: %04o", info.Mode().Perm())
}
