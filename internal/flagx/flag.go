// Package flagx holds small helpers that let several config layers parse
// their own subset of os.Args without tripping over each other's flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the flags listed in allowed, together with their
// values. Both "-f value" and "-f=value" forms are recognised; a following
// token that starts with "-" is never taken as a value.
func FilterArgs(args []string, allowed []string) []string {
	known := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		known[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := known[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := known[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// ConfigPath returns the JSON config file named by -c or -config in args
// (usually os.Args[1:]). The last occurrence wins; "" when absent.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	return path
}
