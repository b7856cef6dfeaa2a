//go:build windows

package expand

import (
	"io/fs"
	"path/filepath"

	"golang.org/x/sys/windows"
)

// isVisibleAndOrdinary rejects entries with the HIDDEN or SYSTEM attribute.
// Entries whose attributes cannot be read are rejected as well.
func isVisibleAndOrdinary(dir string, d fs.DirEntry) bool {
	p, err := windows.UTF16PtrFromString(filepath.Join(dir, d.Name()))
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&(windows.FILE_ATTRIBUTE_HIDDEN|windows.FILE_ATTRIBUTE_SYSTEM) == 0
}
