package helper

import (
	"fmt"
	"sort"
	"strings"
)

// GenerateUniqueKey generates a unique key based on the provided map
func GenerateUniqueKey(args map[string]string) string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s;", k, args[k])
	}

	return b.String()
}

// BearerValue returns the credential of an "<scheme> <credential>" header
// value, or false when the scheme does not match.
func BearerValue(header, scheme string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || parts[0] != scheme || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
