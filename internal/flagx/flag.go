// Package flagx separates the client's global flags from the command words
// that follow them, so the config loader and the command dispatcher can each
// parse only what they own.
package flagx

import (
	"flag"
	"strings"
)

// Split walks args and partitions them into recognised flags (with their
// values) and everything else, preserving order in both slices.
//
// Recognised forms:
//
//	-s http://host:8080     flag and value as separate arguments
//	-s=http://host:8080     flag and value joined by '='
//
// A recognised flag followed by a token starting with '-' is kept without a
// value. Neither result is ever nil.
func Split(args []string, known []string) (flags []string, rest []string) {
	allowed := make(map[string]struct{}, len(known))
	for _, f := range known {
		allowed[f] = struct{}{}
	}

	flags = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				flags = append(flags, arg)
			} else {
				rest = append(rest, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			rest = append(rest, arg)
			continue
		}

		flags = append(flags, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			flags = append(flags, args[i+1])
			i++
		}
	}

	return flags, rest
}

// FilterArgs returns only the recognised flags of args. See Split.
func FilterArgs(args []string, known []string) []string {
	flags, _ := Split(args, known)
	return flags
}

// ConfigPath extracts the JSON config path given via -c or -config.
// It returns "" when neither is present.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
