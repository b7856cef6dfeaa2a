//go:build !windows

package expand

import (
	"io/fs"
	"strings"
)

func isVisibleAndOrdinary(_ string, d fs.DirEntry) bool {
	return !strings.HasPrefix(d.Name(), ".")
}
