// Package flagx contains small helpers for parsing a subset of the
// command line without tripping over flags owned by other packages.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags listed in allowed (plus their values)
// and drops everything else. Both "-f value" and "--flag=value" forms
// are recognized. A dash-prefixed token never counts as a value.
func FilterArgs(args []string, allowed []string) []string {
	keep := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		keep[f] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := keep[name]; ok {
				out = append(out, arg)
			}
			continue
		}

		if _, ok := keep[arg]; ok {
			out = append(out, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				out = append(out, args[i+1])
				i++
			}
		}
	}
	return out
}

// JsonConfigFlags extracts the config file path given via -c or -config.
// Other command-line flags are left for the caller's own flag set.
// Returns "" when neither form is present.
func JsonConfigFlags() string {
	var path string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (shorthand)")
	_ = fs.Parse(args)

	return path
}
