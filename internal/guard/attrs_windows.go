package guard

import (
	"golang.org/x/sys/windows"

	"github.com/lakshaymaurya-felt/syscleaner/internal/core"
)

func readAttributes(path string) (Attributes, error) {
	p, err := windows.UTF16PtrFromString(core.LongPath(path))
	if err != nil {
		return 0, err
	}
	raw, err := windows.GetFileAttributes(p)
	if err != nil {
		return 0, err
	}

	var attrs Attributes
	if raw&windows.FILE_ATTRIBUTE_HIDDEN != 0 {
		attrs |= AttrHidden
	}
	if raw&windows.FILE_ATTRIBUTE_SYSTEM != 0 {
		attrs |= AttrSystem
	}
	return attrs, nil
}
