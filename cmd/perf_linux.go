//go:build linux

package cmd

import (
	perf "github.com/hodgesds/perf-utils"
)

// countInstructions runs f under a CPU instruction counter. When the counter can not be opened,
// f still runs and counted is false.
func countInstructions(f func() error) (instructions uint64, counted bool, err error) {
	var (
		ran  bool
		fErr error
	)
	pv, perfErr := perf.CPUInstructions(func() error {
		ran = true
		fErr = f()
		return fErr
	})
	switch {
	case !ran:
		return 0, false, f()
	case perfErr != nil:
		return 0, false, fErr
	}
	return pv.Value, true, nil
}
