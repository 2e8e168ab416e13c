//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"machine"

	"tinygo.org/x/drivers/sdcard"
	"tinygo.org/x/tinyfs/fatfs"
)

// sdStorage reads video files from a FAT-formatted SD card on SPI0.
type sdStorage struct {
	sd  *sdcard.Device
	fat *fatfs.FATFS
}

func newSDStorage() (*sdStorage, error) {
	sd := sdcard.New(machine.SPI0, machine.GP18, machine.GP19, machine.GP16, machine.GP17)
	if err := sd.Configure(); err != nil {
		return nil, fmt.Errorf("sd: %v", err)
	}

	fat := fatfs.New(&sd).Configure(&fatfs.Config{SectorSize: fatfs.SectorSize})
	if err := fat.Mount(); err != nil {
		// Do not auto-format removable media.
		return nil, fmt.Errorf("sd mount: %v", err)
	}

	return &sdStorage{sd: &sd, fat: fat}, nil
}

func (s *sdStorage) ReadFile(path string) ([]byte, error) {
	f, err := s.fat.OpenFile(path, os.O_RDONLY)
	if err != nil {
		return nil, fmt.Errorf("sd open %q: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	var out []byte
	buf := make([]byte, 4096)
	for {
		n, err := f.Read(buf)
		out = append(out, buf[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, fmt.Errorf("sd read %q: %v", path, err)
		}
		if n == 0 {
			return out, nil
		}
	}
}
