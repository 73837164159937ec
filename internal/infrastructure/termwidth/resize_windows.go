//go:build windows

package termwidth

import "os"

// Windows consoles have no resize signal; the width stays as resolved at startup.
func resizeNotifications() (<-chan os.Signal, func()) {
	return make(chan os.Signal), func() {}
}
