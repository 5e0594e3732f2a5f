package theme

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// member is one key/value pair of a JSON object, in document order.
// encoding/json's map decoding would lose that order, and order decides which
// palette entry wins a distance tie, so objects are walked token by token.
type member struct {
	key string
	raw json.RawMessage
}

type object []member

func (o object) lookup(key string) (json.RawMessage, bool) {
	for _, m := range o {
		if m.key == key {
			return m.raw, true
		}
	}
	return nil, false
}

func parseObject(r io.Reader) (object, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("could not read JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top level is not a JSON object", ErrParse)
	}

	var obj object
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("could not read JSON key: %w", err)
		}
		key := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("could not read JSON value for %q: %w", key, err)
		}
		obj = append(obj, member{key: key, raw: raw})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("could not read JSON: %w", err)
	}
	return obj, nil
}

func parseNestedObject(raw json.RawMessage) (object, error) {
	return parseObject(bytes.NewReader(raw))
}

// parsePalette reads one palette object: every member is a color.
func parsePalette(name string, obj object) (Variation, error) {
	v := Variation{Name: name, Colors: make([]NamedColor, 0, len(obj))}
	for _, m := range obj {
		rgb, err := parseColor(m.raw)
		if err != nil {
			return Variation{}, fmt.Errorf("color %q: %w", m.key, err)
		}
		v.Colors = append(v.Colors, NamedColor{Name: m.key, RGB: rgb})
	}
	return v, nil
}

// parseColor accepts the three JSON spellings of a color: a "#RGB"/"#RRGGBB"
// hex string, a [r, g, b] array, or a {"r":..,"g":..,"b":..} object.
func parseColor(raw json.RawMessage) (color.RGBA, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return color.RGBA{}, fmt.Errorf("%w: empty color value", ErrParse)
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return color.RGBA{}, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return parseHexColor(s)
	case '[':
		var arr []json.Number
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return color.RGBA{}, fmt.Errorf("%w: color array: %v", ErrParse, err)
		}
		if len(arr) != 3 {
			return color.RGBA{}, fmt.Errorf("%w: color array has %d elements instead of 3", ErrParse, len(arr))
		}
		return channelTriple(arr[0], arr[1], arr[2])
	case '{':
		var obj struct {
			R *json.Number `json:"r"`
			G *json.Number `json:"g"`
			B *json.Number `json:"b"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return color.RGBA{}, fmt.Errorf("%w: color object: %v", ErrParse, err)
		}
		if obj.R == nil || obj.G == nil || obj.B == nil {
			return color.RGBA{}, fmt.Errorf(`%w: color object needs "r", "g" and "b" keys`, ErrParse)
		}
		return channelTriple(*obj.R, *obj.G, *obj.B)
	}
	return color.RGBA{}, fmt.Errorf("%w: color is not a string, array or object: %s", ErrParse, trimmed)
}

func parseHexColor(s string) (color.RGBA, error) {
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("%w: color string %q is not in #HEX format", ErrParse, s)
	}
	if n := len(s); n != 4 && n != 7 {
		return color.RGBA{}, fmt.Errorf("%w: HEX color %q has an invalid length", ErrParse, s)
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: could not parse HEX color %q", ErrParse, s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

func channelTriple(r, g, b json.Number) (color.RGBA, error) {
	var out [3]uint8
	for i, num := range []json.Number{r, g, b} {
		val, err := num.Int64()
		if err != nil || val < 0 || val > 255 {
			return color.RGBA{}, fmt.Errorf("%w: channel value %s is not an integer in [0,255]", ErrParse, num)
		}
		out[i] = uint8(val)
	}
	return color.RGBA{R: out[0], G: out[1], B: out[2], A: 0xFF}, nil
}
