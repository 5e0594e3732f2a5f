package theme

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"io"

	"golang.org/x/image/riff"
)

// RIFF PAL: a LOGPALETTE (version 3) per data chunk, 4 bytes per entry
// (red, green, blue, flags). A file with one data chunk loads as a flat
// theme; with several, each chunk becomes a numbered variation.

var (
	palType  = riff.FourCC{'P', 'A', 'L', ' '}
	dataType = riff.FourCC{'d', 'a', 't', 'a'}
)

func isRIFF(data []byte) bool {
	return len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "PAL "
}

func readPALThemes(r io.Reader) ([]Variation, error) {
	formType, rd, err := riff.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open RIFF stream: %w", err)
	}
	if formType != palType {
		return nil, fmt.Errorf("%w: unsupported RIFF content type %q", ErrParse, string(formType[:]))
	}

	vars, err := readPALChunks(rd)
	if err != nil {
		return nil, err
	}
	if len(vars) == 0 {
		return nil, fmt.Errorf("%w: no palette chunks in RIFF stream", ErrParse)
	}

	if len(vars) > 1 {
		for i := range vars {
			vars[i].Name = fmt.Sprintf("palette%d", i)
		}
	}
	return vars, nil
}

func readPALChunks(r *riff.Reader) ([]Variation, error) {
	var res []Variation

	for {
		id, size, data, err := r.Next()
		if err != nil {
			if err == io.EOF {
				return res, nil
			}
			return res, fmt.Errorf("could not read chunk #%d: %w", len(res), err)
		}

		switch id {
		case riff.LIST:
			listType, list, err := riff.NewListReader(size, data)
			if err != nil {
				return res, fmt.Errorf("could not read list in chunk #%d: %w", len(res), err)
			}
			if listType != palType {
				return res, fmt.Errorf("%w: chunk #%d has unsupported list type %q",
					ErrParse, len(res), string(listType[:]))
			}
			nested, err := readPALChunks(list)
			res = append(res, nested...)
			if err != nil {
				return res, err
			}
		case dataType:
			v, err := readPALData(data, len(res))
			if err != nil {
				return res, err
			}
			res = append(res, v)
		default:
			return res, fmt.Errorf("%w: unsupported chunk type %q", ErrParse, string(id[:]))
		}
	}
}

func readPALData(r io.Reader, ident int) (Variation, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Variation{}, fmt.Errorf("could not read palette header of chunk #%d: %w", ident, err)
	}

	if ver := binary.BigEndian.Uint16(header[:2]); ver != 3 {
		return Variation{}, fmt.Errorf("%w: unsupported palette version %d in chunk #%d", ErrParse, ver, ident)
	}

	count := binary.LittleEndian.Uint16(header[2:])
	v := Variation{Colors: make([]NamedColor, 0, count)}
	var entry [4]byte
	for i := uint16(0); i < count; i++ {
		if _, err := io.ReadFull(r, entry[:]); err != nil {
			return v, fmt.Errorf("could not read color %d/%d of chunk #%d: %w", i, count, ident, err)
		}
		v.Colors = append(v.Colors, NamedColor{
			Name: fmt.Sprintf("color%d", i),
			RGB:  color.RGBA{R: entry[0], G: entry[1], B: entry[2], A: 0xFF},
		})
	}

	return v, nil
}

// WritePAL writes the variations as a RIFF PAL document, one data chunk per
// variation. Names are not representable in the format and are dropped.
func WritePAL(w io.Writer, vars []Variation) error {
	size := 4
	for _, v := range vars {
		size += 8 + 4 + len(v.Colors)*4 // chunk header + LOGPALETTE header + entries
	}

	if _, err := w.Write([]byte("RIFF")); err != nil {
		return fmt.Errorf("could not write RIFF magic: %w", err)
	}
	if _, err := w.Write(binary.LittleEndian.AppendUint32(nil, uint32(size))); err != nil {
		return fmt.Errorf("could not write document size: %w", err)
	}
	if _, err := w.Write(palType[:]); err != nil {
		return fmt.Errorf("could not write content type: %w", err)
	}

	for i, v := range vars {
		if err := writePALData(w, v); err != nil {
			return fmt.Errorf("could not write palette chunk %d: %w", i, err)
		}
	}
	return nil
}

func writePALData(w io.Writer, v Variation) error {
	if _, err := w.Write(dataType[:]); err != nil {
		return err
	}
	if _, err := w.Write(binary.LittleEndian.AppendUint32(nil, uint32(4+len(v.Colors)*4))); err != nil {
		return err
	}
	if _, err := w.Write([]byte{0, 0x03}); err != nil {
		return err
	}
	if _, err := w.Write(binary.LittleEndian.AppendUint16(nil, uint16(len(v.Colors)))); err != nil {
		return err
	}

	for _, c := range v.Colors {
		if _, err := w.Write([]byte{c.RGB.R, c.RGB.G, c.RGB.B, 0}); err != nil {
			return err
		}
	}
	return nil
}
