package domain

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf16"
)

// DataDirName is the per-project directory holding salesdeck data.
const DataDirName = ".salesdeck"

// RepoDataDir returns the salesdeck data directory for a project root.
func RepoDataDir(root string) string {
	return filepath.Join(root, DataDirName)
}

// BoardStorePath returns the path to the board.json file.
func BoardStorePath(dataDir string) string {
	return filepath.Join(dataDir, "board.json")
}

// PagesDBPath returns the default path to the pages database.
func PagesDBPath(dataDir string) string {
	return filepath.Join(dataDir, "pages.db")
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "salesdeck.log")
}

// MovesLogPath returns the path to the card move audit log.
func MovesLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "moves.log")
}

var (
	slugStrip   = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugHyphens = regexp.MustCompile(`-+`)
)

// Slugify lowercases title, drops characters outside [a-z0-9], whitespace and
// hyphens, turns whitespace runs into single hyphens and trims edge hyphens.
// It does not add a uniqueness suffix; see Mapper.DeriveSlug.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// CountWords returns the number of whitespace-delimited tokens in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// HashID computes a 31-based polynomial hash over the UTF-16 code units of s,
// wrapped to 32-bit signed arithmetic, and returns its absolute value.
func HashID(s string) int64 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}
