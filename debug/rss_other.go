//go:build !windows && !linux && !darwin && !freebsd

package debug

import "errors"

func readRSS() (uint64, error) { return 0, errors.New("rss not supported on this platform") }
