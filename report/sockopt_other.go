//go:build !unix

package report

import "syscall"

func enableBroadcast(_, _ string, _ syscall.RawConn) error {
	return nil
}
