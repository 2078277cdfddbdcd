package main

import (
	"os"
	"strconv"
	"strings"

	"hackevents/internal/cli"
)

func isEventID(s string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil && n >= 0
}

// rewriteDirectEventLookupArgs turns `hackevents <id>` into `hackevents show <id>`.
//
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before parsing.
// Persistent flags may come first (`hackevents --dir x 12`), so the first positional token is
// located rather than assuming argv[1].
func rewriteDirectEventLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":      true,
		"--endpoint": true,
		"--api":      true,
		"--format":   true,
	}

	insertShow := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "show")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isEventID(argv[i+1]) {
				return insertShow(i)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if isEventID(a) {
			return insertShow(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectEventLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
