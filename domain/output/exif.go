package output

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"os"

	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
)

// ErrNoExif is returned when the source carries no EXIF block.
var ErrNoExif = errors.New("output: no exif data")

const maxSegment = 0xFFFF - 2

var exifHeader = []byte("Exif\x00\x00")

// SourceExif reads the EXIF block of the file at path and adapts it to a
// crop of the given size: Orientation is reset to 1 since decoded pixels are
// already upright, the pixel dimensions are replaced by size, and the IFD1
// thumbnail of the uncropped source is dropped. A zero size keeps the
// dimension tags as they are.
func SourceExif(path string, size image.Point) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return uprightExif(data, size)
}

func uprightExif(data []byte, size image.Point) (raw []byte, err error) {
	// go-exif reports some malformed input by panicking
	defer func() {
		if r := recover(); r != nil {
			raw, err = nil, fmt.Errorf("exif: %v", r)
		}
	}()
	raw, err = exif.SearchAndExtractExif(data)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return nil, ErrNoExif
		}
		return nil, fmt.Errorf("search exif: %w", err)
	}
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, fmt.Errorf("exif mapping: %w", err)
	}
	_, index, err := exif.Collect(im, exif.NewTagIndex(), raw)
	if err != nil {
		return nil, fmt.Errorf("parse exif: %w", err)
	}
	ib := exif.NewIfdBuilderFromExistingChain(index.RootIfd)
	if err := ib.SetNextIb(nil); err != nil {
		return nil, fmt.Errorf("drop thumbnail: %w", err)
	}
	if err := ib.SetStandardWithName("Orientation", []uint16{1}); err != nil {
		return nil, fmt.Errorf("reset orientation: %w", err)
	}
	if size.X > 0 && size.Y > 0 {
		if err := setPixelSize(ib, size); err != nil {
			return nil, err
		}
	}
	out, err := exif.NewIfdByteEncoder().EncodeToExif(ib)
	if err != nil {
		return nil, fmt.Errorf("encode exif: %w", err)
	}
	return out, nil
}

func setPixelSize(root *exif.IfdBuilder, size image.Point) error {
	ib, err := exif.GetOrCreateIbFromRootIb(root, exifcommon.IfdExifStandardIfdIdentity.String())
	if err != nil {
		return fmt.Errorf("exif ifd: %w", err)
	}
	if err := ib.SetStandardWithName("PixelXDimension", []uint32{uint32(size.X)}); err != nil {
		return fmt.Errorf("set width: %w", err)
	}
	if err := ib.SetStandardWithName("PixelYDimension", []uint32{uint32(size.Y)}); err != nil {
		return fmt.Errorf("set height: %w", err)
	}
	return nil
}

// EmbedExif inserts raw EXIF as an APP1 segment right after the SOI marker
// of a JPEG stream.
func EmbedExif(jpeg, raw []byte) ([]byte, error) {
	if len(jpeg) < 2 || jpeg[0] != 0xFF || jpeg[1] != 0xD8 {
		return nil, errors.New("output: not a jpeg stream")
	}
	size := len(exifHeader) + len(raw)
	if size > maxSegment {
		return nil, fmt.Errorf("output: exif block of %d bytes exceeds one segment", size)
	}
	var b bytes.Buffer
	b.Grow(len(jpeg) + size + 4)
	b.Write(jpeg[:2])
	b.Write([]byte{0xFF, 0xE1})
	_ = binary.Write(&b, binary.BigEndian, uint16(size+2))
	b.Write(exifHeader)
	b.Write(raw)
	b.Write(jpeg[2:])
	return b.Bytes(), nil
}
