package exif

import (
	"bytes"
	"encoding/binary"
	"strings"

	"github.com/plaraje/pineutils/errors"
)

// JPEG and TIFF framing constants.
var (
	markerSOI      = []byte{0xFF, 0xD8}
	markerAPP1     = []byte{0xFF, 0xE1}
	exifIdentifier = []byte("Exif\x00\x00")
	tiffLittle     = []byte{'I', 'I', 0x2A, 0x00}
	tiffBig        = []byte{'M', 'M', 0x00, 0x2A}
)

// TIFF field types the decoder understands.
const (
	typeByte      = 1
	typeASCII     = 2
	typeShort     = 3
	typeLong      = 4
	typeRational  = 5
	typeUndefined = 7
)

const entrySize = 12

// ValueKind identifies the decoded shape of a tag value.
type ValueKind int

const (
	// KindASCII is a NUL-terminated string value.
	KindASCII ValueKind = iota
	// KindBytes is an uninterpreted byte blob.
	KindBytes
	// KindIntegers is a sequence of unsigned integers. Rationals
	// contribute two integers per value, numerator then denominator.
	KindIntegers
)

// String returns a string representation of the ValueKind.
func (k ValueKind) String() string {
	switch k {
	case KindASCII:
		return "ascii"
	case KindBytes:
		return "bytes"
	case KindIntegers:
		return "integers"
	default:
		return "unknown"
	}
}

// Value is one decoded tag value. Exactly one of the payload fields is
// populated, selected by Kind.
type Value struct {
	Kind     ValueKind
	ASCII    string
	Raw      []byte
	Integers []uint32
}

// TagMap maps a raw 16-bit tag identifier to its decoded value.
type TagMap map[uint16]Value

// Decode extracts the tag map from a JPEG byte stream.
//
// It fails with INVALID_FORMAT when the bytes are not a JPEG or the
// embedded TIFF structure is malformed, and with NO_METADATA when the JPEG
// is well formed but carries no EXIF segment. The TIFF byte-order
// signature selects the byte order for every subsequent multi-byte read.
func Decode(data []byte) (TagMap, error) {
	if len(data) < 2 || !bytes.Equal(data[0:2], markerSOI) {
		return nil, errors.New(errors.CodeInvalidFormat, "missing JPEG start-of-image marker")
	}

	app1 := bytes.Index(data, markerAPP1)
	if app1 < 0 {
		return nil, errors.New(errors.CodeNoMetadata, "no APP1 segment found")
	}

	// Segment length is always big-endian, before any TIFF byte-order
	// detection applies.
	if len(data) < app1+4 {
		return nil, errors.New(errors.CodeInvalidFormat, "truncated APP1 segment")
	}
	segLen := int(binary.BigEndian.Uint16(data[app1+2 : app1+4]))
	if segLen < 2 || app1+2+segLen > len(data) {
		return nil, errors.New(errors.CodeInvalidFormat, "APP1 length exceeds buffer")
	}

	if segLen < 8 || !bytes.Equal(data[app1+4:app1+10], exifIdentifier) {
		return nil, errors.New(errors.CodeNoMetadata, "APP1 segment carries no Exif identifier")
	}

	// All IFD and value offsets are relative to the TIFF header, and the
	// TIFF block ends where the APP1 segment does, so bytes outside the
	// segment can never satisfy an offset.
	tiff := data[app1+10 : app1+2+segLen]
	if len(tiff) < 8 {
		return nil, errors.New(errors.CodeInvalidFormat, "truncated TIFF header")
	}

	var order binary.ByteOrder
	switch {
	case bytes.Equal(tiff[0:4], tiffLittle):
		order = binary.LittleEndian
	case bytes.Equal(tiff[0:4], tiffBig):
		order = binary.BigEndian
	default:
		return nil, errors.New(errors.CodeInvalidFormat, "unrecognized TIFF byte-order signature")
	}

	ifdOffset := int(order.Uint32(tiff[4:8]))
	if ifdOffset+2 > len(tiff) {
		return nil, errors.New(errors.CodeInvalidFormat, "IFD offset exceeds buffer")
	}
	count := int(order.Uint16(tiff[ifdOffset : ifdOffset+2]))

	tags := make(TagMap, count)
	for i := 0; i < count; i++ {
		entry := ifdOffset + 2 + i*entrySize
		if entry+entrySize > len(tiff) {
			return nil, errors.New(errors.CodeInvalidFormat, "truncated IFD entry")
		}
		tag := order.Uint16(tiff[entry : entry+2])
		value, err := decodeValue(tiff, entry, order)
		if err != nil {
			return nil, err
		}
		tags[tag] = value
	}
	return tags, nil
}

// decodeValue decodes the value of the 12-byte entry starting at off.
// The 4-byte value field holds the value inline when it fits, otherwise an
// offset to the value bytes relative to the TIFF header.
func decodeValue(tiff []byte, off int, order binary.ByteOrder) (Value, error) {
	fieldType := order.Uint16(tiff[off+2 : off+4])
	valueCount := int(order.Uint32(tiff[off+4 : off+8]))

	switch fieldType {
	case typeASCII, typeUndefined:
		raw, err := valueBytes(tiff, off, valueCount, order)
		if err != nil {
			return Value{}, err
		}
		if fieldType == typeUndefined {
			return Value{Kind: KindBytes, Raw: raw}, nil
		}
		return Value{Kind: KindASCII, ASCII: strings.TrimRight(string(raw), "\x00")}, nil

	case typeByte, typeShort, typeLong, typeRational:
		width := map[uint16]int{typeByte: 1, typeShort: 2, typeLong: 4, typeRational: 8}[fieldType]
		raw, err := valueBytes(tiff, off, valueCount*width, order)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: KindIntegers, Integers: decodeIntegers(raw, fieldType, order)}, nil

	default:
		return Value{}, errors.Newf(errors.CodeInvalidFormat, "unsupported field type %d", fieldType)
	}
}

// valueBytes returns size bytes of value data for the entry at off,
// reading inline when size fits in the 4-byte value field and following
// the TIFF-relative offset otherwise.
func valueBytes(tiff []byte, off, size int, order binary.ByteOrder) ([]byte, error) {
	if size < 0 {
		return nil, errors.New(errors.CodeInvalidFormat, "negative value size")
	}
	if size <= 4 {
		return tiff[off+8 : off+8+size], nil
	}
	valueOffset := int(order.Uint32(tiff[off+8 : off+12]))
	if valueOffset+size > len(tiff) {
		return nil, errors.New(errors.CodeInvalidFormat, "value offset exceeds buffer")
	}
	return tiff[valueOffset : valueOffset+size], nil
}

func decodeIntegers(raw []byte, fieldType uint16, order binary.ByteOrder) []uint32 {
	var out []uint32
	switch fieldType {
	case typeByte:
		for _, b := range raw {
			out = append(out, uint32(b))
		}
	case typeShort:
		for i := 0; i+2 <= len(raw); i += 2 {
			out = append(out, uint32(order.Uint16(raw[i:i+2])))
		}
	default:
		// LONG, and RATIONAL as numerator/denominator pairs.
		for i := 0; i+4 <= len(raw); i += 4 {
			out = append(out, order.Uint32(raw[i:i+4]))
		}
	}
	return out
}
