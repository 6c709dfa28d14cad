package handlers

import (
	"fmt"
	"net/url"
	"unicode/utf8"
)

// Request limits.
const (
	maxParamLen      = 300
	maxReorderItems  = 5_000
	maxReorderBodyLen = 1 << 20
)

// validateParam checks a path segment or query value and returns the first
// error found, or "".
func validateParam(name, value string) string {
	if utf8.RuneCountInString(value) > maxParamLen {
		return fmt.Sprintf("%s is too long (max %d characters)", name, maxParamLen)
	}
	return ""
}

// validateQuery checks every value of the given query keys.
func validateQuery(q url.Values) string {
	for key, values := range q {
		for _, v := range values {
			if msg := validateParam(key, v); msg != "" {
				return msg
			}
		}
	}
	return ""
}
