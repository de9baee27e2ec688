package clean

import "errors"

// ErrRecycleBinUnsupported is returned by the recycle bin on systems
// without a shell recycle bin API.
var ErrRecycleBinUnsupported = errors.New("recycle bin is not supported on this system")

// RecycleBin queries and empties the system recycle bin as a whole.
type RecycleBin interface {
	// Query returns the item count and total size across all drives.
	Query() (Tally, error)

	// Empty removes every item without confirmation, progress UI or sound.
	Empty() error
}

// SystemRecycleBin returns the recycle bin of the running system.
func SystemRecycleBin() RecycleBin {
	return newSystemRecycleBin()
}
