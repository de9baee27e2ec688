//go:build !windows

package clean

type unsupportedRecycleBin struct{}

func newSystemRecycleBin() RecycleBin { return unsupportedRecycleBin{} }

func (unsupportedRecycleBin) Query() (Tally, error) { return Tally{}, ErrRecycleBinUnsupported }

func (unsupportedRecycleBin) Empty() error { return ErrRecycleBinUnsupported }
