package privileges

// Package privileges encodes Kaltura session privilege strings, which are
// comma-separated lists of "name:value" grants attached to a session or an
// app token.

import (
	"strings"
)

// Kind determines how a privilege's value is rendered.
type Kind int

const (
	// KindValue renders as "name:value", with the supplied value verbatim.
	KindValue Kind = iota
	// KindWildcardOnly renders as "name:*" regardless of the supplied value.
	// The API only supports the wildcard form for these.
	KindWildcardOnly
)

type Privilege struct {
	Name string
	Kind Kind
}

// All lists the supported privileges. A built privilege string follows this
// order, not the order the options were supplied in.
var All = []Privilege{
	{"edit", KindValue},
	{"sview", KindValue},
	{"list", KindWildcardOnly},
	{"download", KindValue},
	{"downloadasset", KindValue},
	{"editplaylist", KindValue},
	{"sviewplaylist", KindValue},
	{"edituser", KindValue},
	{"actionslimit", KindValue},
	{"setrole", KindValue},
	{"iprestrict", KindValue},
	{"urirestrict", KindValue},
	{"enableentitlement", KindValue},
	{"disableentitlement", KindValue},
	{"disableentitlementforentry", KindValue},
	{"privacycontext", KindValue},
	{"enablecategorymoderation", KindValue},
	{"reftime", KindValue},
	{"preview", KindValue},
	{"sessionid", KindValue},
}

// Encode renders a single privilege token.
func Encode(name, value string) string {
	for _, p := range All {
		if p.Name == name && p.Kind == KindWildcardOnly {
			return name + ":*"
		}
	}
	return name + ":" + value
}

// Build joins the supplied privilege values into a session privilege string.
// Only names present in values are included, in the order of All. An empty
// map yields an empty string.
func Build(values map[string]string) string {
	tokens := []string{}
	for _, p := range All {
		if v, ok := values[p.Name]; ok {
			tokens = append(tokens, Encode(p.Name, v))
		}
	}
	return strings.Join(tokens, ",")
}
