package cmd

import "strings"

// filterFlags take a value; the rest of the root flags are switches.
var filterFlags = map[string]bool{
	"-o": true, "--output": true,
	"-s": true, "--seat": true,
}

// NormalizeArgs rewrites the historical -vt spelling to --view-tags and
// removes a filter flag left without a value at the end of the command
// line. The removed flags are returned so they can be reported.
func NormalizeArgs(args []string) (normalized []string, dangling []string) {
	normalized = make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			normalized = append(normalized, args[i:]...)
			break
		}
		if arg == "-vt" {
			normalized = append(normalized, "--view-tags")
			continue
		}
		if filterFlags[arg] && i == len(args)-1 {
			dangling = append(dangling, arg)
			continue
		}
		normalized = append(normalized, arg)
	}
	return normalized, dangling
}

var flagAliases = map[string]string{
	"urgent-tags": "urgency",
	"tags":        "focused-tags",
	"title":       "focused-view",
	"layout-name": "layout",
}

// normalizeFlagName maps underscores to dashes and resolves aliases.
func normalizeFlagName(name string) string {
	name = strings.ReplaceAll(name, "_", "-")
	if alias, ok := flagAliases[name]; ok {
		return alias
	}
	return name
}
