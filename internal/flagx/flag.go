// Package flagx contains small helpers for parsing a subset of command-line
// flags without interfering with flags owned by other components.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs returns the arguments from args that belong to allowedFlags,
// keeping each flag's value when it is given as a separate argument.
//
// Supported formats:
//
//	-c conf.json
//	--config=conf.json
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// lookupString parses os.Args for a string flag known under a short and a
// long name. The last occurrence wins; absent flags yield "".
func lookupString(short, long, usage string) string {
	var value string

	args := FilterArgs(os.Args[1:], []string{"-" + short, "-" + long, "--" + long})

	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&value, long, "", usage)
	fs.StringVar(&value, short, "", usage+" (short)")
	_ = fs.Parse(args)

	return value
}

// JsonConfigFlags returns the config file path given via -c or -config.
func JsonConfigFlags() string {
	return lookupString("c", "config", "Path to config file")
}

// EnvFileFlags returns the dotenv file path given via -e or -env.
func EnvFileFlags() string {
	return lookupString("e", "env", "Path to dotenv file")
}
