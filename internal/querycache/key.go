package querycache

import (
	"sort"
	"strings"
)

// Key builds the canonical cache key for a resource path and its filter
// parameters. Parameters are ordered by name so structurally equal filter
// sets always produce the same key regardless of construction order.
// Empty values are dropped: `/buses` with an unset status filter and
// `/buses` with status="" are the same read.
func Key(path string, params map[string]string) string {
	path = "/" + strings.Trim(path, "/")
	if len(params) == 0 {
		return path
	}

	names := make([]string, 0, len(params))
	for name, value := range params {
		if value == "" {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return path
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(path)
	for i, name := range names {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(params[name])
	}
	return b.String()
}

// Family returns the resource family a key belongs to: the first path
// segment. Every `/buses` variant, filtered lists and `/buses/:id` reads
// alike, shares the `/buses` family and is invalidated together.
func Family(key string) string {
	key = strings.TrimPrefix(key, "/")
	if i := strings.IndexAny(key, "/?"); i >= 0 {
		key = key[:i]
	}
	return "/" + key
}
