package source

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/klauern/skillhub/internal/model"
)

// platformsPattern matches a single-line bracketed list anywhere in the
// manifest. Multi-line YAML sequences are deliberately not recognized.
var platformsPattern = regexp.MustCompile(`(?m)^platforms:\s*\[(.*?)\]`)

// ParsePlatforms extracts the platforms restriction from manifest content.
// It returns nil when no platforms line is present.
func ParsePlatforms(content []byte) []string {
	m := platformsPattern.FindSubmatch(content)
	if m == nil {
		return nil
	}
	platforms := []string{}
	for _, tok := range strings.Split(string(m[1]), ",") {
		tok = strings.Trim(strings.TrimSpace(tok), `'"`)
		if tok != "" {
			platforms = append(platforms, tok)
		}
	}
	return platforms
}

// readPlatforms reads the manifest in dir and parses its platforms line.
func readPlatforms(dir string) ([]string, error) {
	path := filepath.Join(dir, model.ManifestFile)
	// #nosec G304 - path comes from walking a configured source
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}
	return ParsePlatforms(content), nil
}
