package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const shortIDLen = 8

func newID() string {
	return uuid.NewString()
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

// resolveID finds the one id that equals or starts with prefix.
func resolveID(kind, prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}
	var match []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			match = append(match, id)
		}
	}
	switch len(match) {
	case 0:
		return "", fmt.Errorf("no %s matches %q", kind, prefix)
	case 1:
		return match[0], nil
	}
	return "", fmt.Errorf("%q matches %d %ss, use more characters", prefix, len(match), kind)
}
