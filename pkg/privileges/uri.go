package privileges

import (
	"strings"
)

// URIRestrictPrefix is the privilege name of a URI restriction grant.
const URIRestrictPrefix = "urirestrict:"

// URIForAction maps a "service.action" name to the REST path pattern that the
// urirestrict privilege matches against. A wildcard action covers every
// action of the service:
//
//	media.*         -> /api_v3/service/media/action/*
//	baseentry.list  -> /api_v3/service/baseentry/action/list/
func URIForAction(action string) string {
	path := "/api_v3/service/" + strings.Replace(action, ".", "/action/", 1)
	if strings.Contains(action, "*") {
		return path
	}
	return path + "/"
}

// BuildURIRestrict encodes a list of "service.action" names as a single
// urirestrict privilege, with the URIs joined by "|".
func BuildURIRestrict(actions []string) string {
	uris := make([]string, 0, len(actions))
	for _, action := range actions {
		uris = append(uris, URIForAction(action))
	}
	return URIRestrictPrefix + strings.Join(uris, "|")
}

// MergeURIRestrict appends the URIs for actions to an existing urirestrict
// privilege value. Duplicates are dropped, keeping the first occurrence, so
// the order of the existing list is preserved.
func MergeURIRestrict(existing string, actions []string) string {
	existing = strings.TrimPrefix(existing, URIRestrictPrefix)
	uris := []string{}
	if existing != "" {
		uris = strings.Split(existing, "|")
	}
	for _, action := range actions {
		uris = append(uris, URIForAction(action))
	}
	seen := map[string]bool{}
	merged := []string{}
	for _, uri := range uris {
		if !seen[uri] {
			seen[uri] = true
			merged = append(merged, uri)
		}
	}
	return URIRestrictPrefix + strings.Join(merged, "|")
}
