package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// version is a parsed "major.minor[.patch][-prerelease]" string.
type version struct {
	major      int
	minor      int
	patch      int
	prerelease string
}

// parseVersion parses the value of the openapi field.
// Examples: "3.0", "3.0.3", "3.0.0-rc1"
func parseVersion(s string) (*version, error) {
	var prerelease string
	if idx := strings.IndexByte(s, '-'); idx >= 0 {
		prerelease = s[idx+1:]
		s = s[:idx]
	}

	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("invalid version format: %q", s)
	}

	major, err := parseVersionPart(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid major version: %q", parts[0])
	}
	minor, err := parseVersionPart(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid minor version: %q", parts[1])
	}
	patch := 0
	if len(parts) == 3 {
		if patch, err = parseVersionPart(parts[2]); err != nil {
			return nil, fmt.Errorf("invalid patch version: %q", parts[2])
		}
	}

	return &version{
		major:      major,
		minor:      minor,
		patch:      patch,
		prerelease: prerelease,
	}, nil
}

func parseVersionPart(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > math.MaxInt32 {
		return 0, fmt.Errorf("out of range")
	}
	return n, nil
}

// String returns the version in "major.minor.patch[-prerelease]" form.
func (v *version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
	if v.prerelease != "" {
		s += "-" + v.prerelease
	}
	return s
}
