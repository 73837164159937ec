//go:build !windows

package termwidth

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

func resizeNotifications() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)
	return ch, func() { signal.Stop(ch) }
}
