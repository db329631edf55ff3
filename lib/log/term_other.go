//go:build !linux

package log

import "io"

func isTerminal(io.Writer) bool {
	return false
}
