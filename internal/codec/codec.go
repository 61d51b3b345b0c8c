// Package codec decodes the T8 REST API's binary array payloads.
//
// Numeric arrays travel inside JSON responses as base64 text, optionally
// zlib-compressed, packing little-endian fixed-width elements. The server's
// "factor" scalar (applied by the client, not here) carries the physical
// scale; this package only reconstructs the raw sample values.
package codec

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Format identifies the transport encoding of an array payload. The format
// is part of the wire contract: the caller must know which one applies, it
// is never inferred from the payload bytes.
type Format int

const (
	// FormatRaw is base64 of raw little-endian 32-bit floats ("b64").
	FormatRaw Format = iota
	// FormatZlibFloat32 is base64 of zlib-compressed little-endian 32-bit
	// floats ("zlib").
	FormatZlibFloat32
	// FormatZlibInt16 is base64 of zlib-compressed little-endian signed
	// 16-bit integers ("zint"). Elements are widened to float32 with no
	// rescaling; the raw integer value is preserved and the server-side
	// factor carries the true physical scale. This is a quirk of the wire
	// format, not a bug.
	FormatZlibInt16
)

// String returns the wire name of the format as used in the array_fmt
// query parameter.
func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "b64"
	case FormatZlibFloat32:
		return "zlib"
	case FormatZlibInt16:
		return "zint"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps a wire format name to its Format. Unrecognized names
// return ErrUnknownFormat rather than falling back to a default.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "b64":
		return FormatRaw, nil
	case "zlib":
		return FormatZlibFloat32, nil
	case "zint":
		return FormatZlibInt16, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Width selects the element width used when reinterpreting the decoded
// byte buffer.
type Width int

const (
	WidthInt16 Width = iota
	WidthUint8
	WidthUint16
	WidthUint32
	WidthFloat32
)

func (w Width) size() int {
	switch w {
	case WidthUint8:
		return 1
	case WidthInt16, WidthUint16:
		return 2
	default:
		return 4
	}
}

// Decode failure modes. All are recoverable value errors.
var (
	ErrInvalidBase64 = errors.New("invalid base64")
	ErrInflate       = errors.New("zlib inflate failed")
	ErrMisaligned    = errors.New("buffer not a multiple of element width")
	ErrUnknownFormat = errors.New("unknown array format")
)

// Decode decodes a transport-encoded payload into float32 samples.
//
// FormatRaw and FormatZlibFloat32 yield the buffer reinterpreted as
// little-endian float32. FormatZlibInt16 yields each signed 16-bit element
// widened to float32 without rescaling. Decoding is deterministic and has
// no side effects.
func Decode(raw string, format Format) ([]float32, error) {
	switch format {
	case FormatRaw:
		return DecodeWidth(raw, format, WidthFloat32)
	case FormatZlibFloat32:
		return DecodeWidth(raw, format, WidthFloat32)
	case FormatZlibInt16:
		return DecodeWidth(raw, format, WidthInt16)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
	}
}

// DecodeWidth decodes a payload whose elements have the given width,
// widening every element to float32. Trend payloads reuse the zlib framing
// with per-field element widths, so the width is declared independently of
// the format.
//
// Widening uint32 to float32 is lossy above 2^24; callers that need exact
// integers (trend timestamps) should use the typed helpers instead.
func DecodeWidth(raw string, format Format, width Width) ([]float32, error) {
	buf, err := payload(raw, format)
	if err != nil {
		return nil, err
	}

	switch width {
	case WidthFloat32:
		u, err := elements32(buf)
		if err != nil {
			return nil, err
		}
		out := make([]float32, len(u))
		for i, v := range u {
			out[i] = math.Float32frombits(v)
		}
		return out, nil
	case WidthInt16:
		u, err := elements16(buf)
		if err != nil {
			return nil, err
		}
		out := make([]float32, len(u))
		for i, v := range u {
			out[i] = float32(int16(v))
		}
		return out, nil
	case WidthUint16:
		u, err := elements16(buf)
		if err != nil {
			return nil, err
		}
		out := make([]float32, len(u))
		for i, v := range u {
			out[i] = float32(v)
		}
		return out, nil
	case WidthUint8:
		out := make([]float32, len(buf))
		for i, v := range buf {
			out[i] = float32(v)
		}
		return out, nil
	case WidthUint32:
		u, err := elements32(buf)
		if err != nil {
			return nil, err
		}
		out := make([]float32, len(u))
		for i, v := range u {
			out[i] = float32(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: width %d", ErrUnknownFormat, int(width))
	}
}

// DecodeUint32 decodes a payload of little-endian uint32 elements,
// preserving exact integer values.
func DecodeUint32(raw string, format Format) ([]uint32, error) {
	buf, err := payload(raw, format)
	if err != nil {
		return nil, err
	}
	return elements32(buf)
}

// DecodeUint16 decodes a payload of little-endian uint16 elements.
func DecodeUint16(raw string, format Format) ([]uint16, error) {
	buf, err := payload(raw, format)
	if err != nil {
		return nil, err
	}
	return elements16(buf)
}

// DecodeUint8 decodes a payload of single-byte elements.
func DecodeUint8(raw string, format Format) ([]uint8, error) {
	buf, err := payload(raw, format)
	if err != nil {
		return nil, err
	}
	out := make([]uint8, len(buf))
	copy(out, buf)
	return out, nil
}

// payload base64-decodes raw and, for the zlib formats, inflates it.
func payload(raw string, format Format) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}

	switch format {
	case FormatRaw:
		return data, nil
	case FormatZlibFloat32, FormatZlibInt16:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInflate, err)
		}
		defer zr.Close()
		inflated, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInflate, err)
		}
		return inflated, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
	}
}

func elements16(buf []byte) ([]uint16, error) {
	if len(buf)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes, element width 2", ErrMisaligned, len(buf))
	}
	out := make([]uint16, len(buf)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(buf[2*i:])
	}
	return out, nil
}

func elements32(buf []byte) ([]uint32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("%w: %d bytes, element width 4", ErrMisaligned, len(buf))
	}
	out := make([]uint32, len(buf)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(buf[4*i:])
	}
	return out, nil
}
