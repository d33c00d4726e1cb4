package models

import "strings"

// Category is a spending category. Names are unique within a registry.
type Category struct {
	ID   int    `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// NormalizeKey is the lookup key used by the common-transaction store and the cache.
func NormalizeKey(description string) string {
	return normalize(description)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
