package images

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// DensityUnit is JFIF pixel density unit.
type DensityUnit uint8

const (
	DensityNone DensityUnit = iota
	DensityPerInch
	DensityPerCm
)

var (
	app0Marker = []byte{0xFF, 0xE0}
	jfifHeader = []byte{'J', 'F', 'I', 'F', 0x00, 0x01, 0x02}
)

// EnsureJFIFAPP0 inserts JFIF APP0 segment carrying pixel density right after
// SOI marker unless data already starts with APP0. Go jpeg encoder never
// writes one.
func EnsureJFIFAPP0(data []byte, unit DensityUnit, xdensity, ydensity uint16) ([]byte, bool, error) {
	if len(data) < 4 {
		return nil, false, errors.New("jpeg too small")
	}
	if data[0] != 0xFF || data[1] != 0xD8 {
		return nil, false, errors.New("not a jpeg")
	}
	if bytes.Equal(data[2:4], app0Marker) {
		return data, false, nil
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(data)+18))
	buf.Write(data[:2])
	buf.Write(app0Marker)
	_ = binary.Write(buf, binary.BigEndian, uint16(16))
	buf.Write(jfifHeader)
	buf.WriteByte(byte(unit))
	_ = binary.Write(buf, binary.BigEndian, xdensity)
	_ = binary.Write(buf, binary.BigEndian, ydensity)
	buf.Write([]byte{0, 0}) // no thumbnail
	buf.Write(data[2:])
	return buf.Bytes(), true, nil
}

// EncodeJPEG encodes img with given quality and records dpi in JFIF header.
func EncodeJPEG(img image.Image, quality, dpi int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	unit := DensityPerInch
	if dpi <= 0 {
		unit, dpi = DensityNone, 1
	}
	out, _, err := EnsureJFIFAPP0(buf.Bytes(), unit, uint16(dpi), uint16(dpi))
	return out, err
}
