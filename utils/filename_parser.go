package utils

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"tribe-africa-store/models"
)

var imageExtRegex = regexp.MustCompile(`\.(png|jpg|jpeg|webp)$`)

// designSuffixes is ordered so longer names are tried first
var designSuffixes = []struct {
	suffix string
	design models.DesignType
}{
	{"maxi dress", models.DesignMaxiDress},
	{"mini dress", models.DesignMiniDress},
	{"coat", models.DesignCoat},
}

// ParsedDesignFile is the result of parsing a gallery image filename
type ParsedDesignFile struct {
	Design models.DesignType
	// Fabric is the fabric or colourway named before the design, e.g. "Earth Blue"
	Fabric string
	// Slug is a stable identifier derived from the filename, e.g. "earth-blue-maxi-dress"
	Slug string
}

// ParseDesignFileName parses a gallery filename following the pattern:
// <fabric words> <design type>.<ext>
// Example: "earth blue maxi dress.png", "kijani Coat.png"
func ParseDesignFileName(filename string) (*ParsedDesignFile, error) {
	base := strings.ToLower(path.Base(strings.ReplaceAll(filename, "\\", "/")))
	if !imageExtRegex.MatchString(base) {
		return nil, fmt.Errorf("invalid filename %q: expected a png, jpg, jpeg or webp image", filename)
	}
	name := imageExtRegex.ReplaceAllString(base, "")
	name = strings.Join(strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(name)), " ")

	for _, ds := range designSuffixes {
		if name != ds.suffix && !strings.HasSuffix(name, " "+ds.suffix) {
			continue
		}
		fabric := strings.TrimSpace(strings.TrimSuffix(name, ds.suffix))
		return &ParsedDesignFile{
			Design: ds.design,
			Fabric: CapitalizeWords(fabric),
			Slug:   strings.ReplaceAll(name, " ", "-"),
		}, nil
	}

	return nil, fmt.Errorf("invalid filename %q: no known design type (maxi dress, mini dress, coat)", filename)
}
