package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Trend label constants for z-score rendering.
const (
	StrongGainValue = "Strong gain"
	GainValue       = "Gain"
	DropValue       = "Drop"
	StrongDropValue = "Strong drop"
)

// Color variables for console output.
var (
	StrongGainColor = color.New(color.FgGreen, color.Bold)
	GainColor       = color.New(color.FgGreen)
	DropColor       = color.New(color.FgYellow)
	StrongDropColor = color.New(color.FgRed, color.Bold)
)

// GetPlainLabel returns a plain text label for a z-score. Polarity has
// already been applied upstream, so positive always means improvement.
func GetPlainLabel(zScore float64) string {
	switch {
	case zScore >= 1.0:
		return StrongGainValue
	case zScore >= 0:
		return GainValue
	case zScore > -1.0:
		return DropValue
	default:
		return StrongDropValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(zScore float64) string {
	text := GetPlainLabel(zScore)

	switch text {
	case StrongGainValue:
		return StrongGainColor.Sprint(text)
	case GainValue:
		return GainColor.Sprint(text)
	case DropValue:
		return DropColor.Sprint(text)
	default: // "Strong drop"
		return StrongDropColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path falls back to os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "❌ %s: %v\n", msg, err)
	os.Exit(1)
}

// Warning logs a warning.
func Warning(msg string) {
	fmt.Fprintf(os.Stderr, "⚠️  %s\n", msg)
}

// GetDefaultDBFilePath returns the path to the SQLite DB file for event storage.
func GetDefaultDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".devpulse.db"
	}
	return filepath.Join(homeDir, ".devpulse.db")
}

// TruncateLabel truncates a label to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one
// character of content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
