package diagnostics

import "strings"

// Pattern is a known failure signature worth tracking across requests.
type Pattern struct {
	// Name is the stable identifier used as metric label and store key.
	Name string

	// substrings are matched case-insensitively against the full error text;
	// any hit means the pattern applies.
	substrings []string
}

// knownPatterns is the catalog of signatures the side channel recognizes.
// These are the failure modes that look like application bugs at the request
// boundary but actually indicate a missing optional dependency in the
// deployment.
var knownPatterns = []Pattern{
	{
		Name: "missing_module",
		substrings: []string{
			"cannot find module",
			"no required module provides",
			"unknown import path",
		},
	},
	{
		Name: "missing_plugin_symbol",
		substrings: []string{
			"plugin: symbol",
			"undefined symbol",
		},
	},
	{
		Name: "plugin_open_failed",
		substrings: []string{
			"plugin.open",
			"plugin was built with a different version",
		},
	},
	{
		Name: "missing_binary",
		substrings: []string{
			"executable file not found",
		},
	},
	{
		Name: "missing_shared_library",
		substrings: []string{
			"error while loading shared libraries",
			"no such file or directory: lib",
		},
	},
}

// Match reports the first known pattern whose signature appears in the
// error text. The error's full chain text is inspected, since wrapping
// preserves the root message.
func Match(err error) (Pattern, bool) {
	if err == nil {
		return Pattern{}, false
	}
	msg := strings.ToLower(err.Error())
	for _, p := range knownPatterns {
		for _, s := range p.substrings {
			if strings.Contains(msg, s) {
				return p, true
			}
		}
	}
	return Pattern{}, false
}
