package clean

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modShell32          = windows.NewLazySystemDLL("shell32.dll")
	procEmptyRecycleBin = modShell32.NewProc("SHEmptyRecycleBinW")
	procQueryRecycleBin = modShell32.NewProc("SHQueryRecycleBinW")
)

const (
	sherbNoConfirmation = 0x00000001
	sherbNoProgressUI   = 0x00000002
	sherbNoSound        = 0x00000004

	// eUnexpected is what SHEmptyRecycleBinW returns for an already empty bin.
	eUnexpected = 0x8000FFFF
)

// shQueryRBInfo mirrors SHQUERYRBINFO. Natural alignment pads cbSize to
// match the C layout on both 32-bit and 64-bit.
type shQueryRBInfo struct {
	cbSize      uint32
	i64Size     int64
	i64NumItems int64
}

type shellRecycleBin struct{}

func newSystemRecycleBin() RecycleBin { return shellRecycleBin{} }

func (shellRecycleBin) Query() (Tally, error) {
	if err := procQueryRecycleBin.Find(); err != nil {
		return Tally{}, err
	}

	var info shQueryRBInfo
	info.cbSize = uint32(unsafe.Sizeof(info))

	// A NULL root queries every drive.
	ret, _, _ := procQueryRecycleBin.Call(0, uintptr(unsafe.Pointer(&info)))
	if ret != 0 {
		return Tally{}, fmt.Errorf("SHQueryRecycleBinW: HRESULT 0x%08x", uint32(ret))
	}
	if info.i64NumItems < 0 || info.i64Size < 0 {
		return Tally{}, nil
	}
	return Tally{Files: uint64(info.i64NumItems), Bytes: uint64(info.i64Size)}, nil
}

func (shellRecycleBin) Empty() error {
	if err := procEmptyRecycleBin.Find(); err != nil {
		return err
	}

	flags := uintptr(sherbNoConfirmation | sherbNoProgressUI | sherbNoSound)
	ret, _, _ := procEmptyRecycleBin.Call(0, 0, flags)
	if hr := uint32(ret); hr != 0 && hr != eUnexpected {
		return fmt.Errorf("SHEmptyRecycleBinW: HRESULT 0x%08x", hr)
	}
	return nil
}
