// Package hexconfig centralizes the small pieces of CLI configuration
// shared across subcommands, ported from the teacher's cmd/root.go. The
// root command's persistent --workers flag is parsed here.
package hexconfig

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// ParseWorkers parses the --workers flag value. Accepts "full" -> NumCPU(),
// "half" -> NumCPU()/2, or an integer string -> that value. Ported from the
// teacher's cmd/root.go parseWorkers.
func ParseWorkers(value string) (int, error) {
	value = strings.TrimSpace(strings.ToLower(value))

	switch value {
	case "full":
		return runtime.NumCPU(), nil
	case "half":
		count := runtime.NumCPU() / 2
		if count < 1 {
			count = 1
		}
		return count, nil
	default:
		count, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("must be 'full', 'half', or a positive integer (got: %s)", value)
		}
		if count < 1 {
			return 0, fmt.Errorf("must be at least 1 (got: %d)", count)
		}
		return count, nil
	}
}
