package names

import (
	"regexp"
	"strings"
)

var (
	nonCanonicalSep = regexp.MustCompile(`\s*/+\s*`)
	extraWhitespace = regexp.MustCompile(`\s{2,}|^\s|\s$`)
	specialChars    = regexp.MustCompile(`[^A-Za-z0-9 /]`)
)

// ModificationInfo reports which transformation categories fired for a
// name. It exists for import-time debugging; everything it reports is
// reproducible from ForDisplay and ForSearch alone.
type ModificationInfo struct {
	HasVariantPrefix   bool
	HasSpecialChars    bool
	HasNonCanonicalSep bool
	HasExtraWhitespace bool
	SearchKey          string
}

// Modifications inspects a raw name and reports the transformations its
// normalization involves, together with the final search key.
func Modifications(name string) ModificationInfo {
	if name == "" {
		return ModificationInfo{}
	}

	hasPrefix := strings.HasPrefix(name, VariantPrefix)
	if !hasPrefix {
		for _, face := range strings.Split(name, FaceSeparator) {
			if strings.HasPrefix(face, VariantPrefix) {
				hasPrefix = true
				break
			}
		}
	}

	hasNonCanonicalSep := false
	for _, sep := range nonCanonicalSep.FindAllString(name, -1) {
		if sep != FaceSeparator {
			hasNonCanonicalSep = true
			break
		}
	}

	return ModificationInfo{
		HasVariantPrefix:   hasPrefix,
		HasSpecialChars:    specialChars.MatchString(name),
		HasNonCanonicalSep: hasNonCanonicalSep,
		HasExtraWhitespace: extraWhitespace.MatchString(name),
		SearchKey:          ForSearch(name),
	}
}
