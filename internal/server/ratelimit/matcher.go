package ratelimit

import (
	"strings"
)

// unlimited lists "METHOD path" pairs that are never rate limited.
var unlimited = map[string]bool{
	"GET /health": true,
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Exact paths win over prefixes; a configured path ending in "/" matches any
// path below it.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method || !strings.HasSuffix(c.Path, "/") || !strings.HasPrefix(path, c.Path) {
			continue
		}
		// longest prefix wins
		if best == nil || len(c.Path) > len(best.Path) {
			best = c
		}
	}
	return best
}
