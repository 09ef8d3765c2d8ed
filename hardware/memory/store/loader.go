package store

import (
	"os"

	"github.com/archtrace/mipscore/errors"
)

// Loader reads a flat, big-endian binary image of 32-bit instruction words
// into main memory starting at address 0, the simplest possible program
// format for a simulator with no notion of an object file or linker.
type Loader struct {
	Filename string
}

// NewLoaderFromFilename is the preferred method of initialisation for Loader.
func NewLoaderFromFilename(filename string) (Loader, error) {
	if filename == "" {
		return Loader{}, errors.Errorf(errors.LoaderError, "no filename")
	}
	return Loader{Filename: filename}, nil
}

// Load reads the image file and writes its bytes into mem starting at
// address 0. The image length must be a multiple of 4 (whole instruction
// words); this is the only validation performed.
func (ld Loader) Load(mem *MainMemory) error {
	data, err := os.ReadFile(ld.Filename)
	if err != nil {
		return errors.Errorf(errors.LoaderFileError, err)
	}

	if len(data)%4 != 0 {
		return errors.Errorf(errors.LoaderAlignError, len(data))
	}

	for i, b := range data {
		if err := mem.Write(uint32(i), b); err != nil {
			return errors.Errorf(errors.LoaderError, err)
		}
	}

	return nil
}
