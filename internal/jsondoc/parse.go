package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// SyntaxError describes why a text is not a JSON document
type SyntaxError struct {
	Offset int64 // byte offset where the problem was detected
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid JSON at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Parse decodes exactly one JSON value from text, keeping object members in
// the order they were written.
func Parse(text []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, syntaxError(text, dec, err)
	}

	// Only whitespace may follow the top-level value
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return nil, syntaxError(text, dec, err)
	}

	return v, nil
}

// ParseString is Parse for string input
func ParseString(text string) (*Value, error) {
	return Parse([]byte(text))
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := newObjectBuilder(0)
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
				}
				member, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.set(key, member)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj.value(), nil
		case '[':
			arr := &Value{kind: KindArray}
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr.items = append(arr.items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case string:
		return String(t), nil
	case json.Number:
		f, err := strconv.ParseFloat(t.String(), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("invalid number %s", t)
		}
		return &Value{kind: KindNumber, n: f, raw: t.String()}, nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func syntaxError(text []byte, dec *json.Decoder, err error) *SyntaxError {
	se := &SyntaxError{Offset: dec.InputOffset(), Msg: err.Error()}

	var jsonErr *json.SyntaxError
	switch {
	case errors.As(err, &jsonErr):
		se.Offset = jsonErr.Offset
		se.Msg = jsonErr.Error()
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		se.Offset = int64(len(text))
		se.Msg = "unexpected end of JSON input"
	}

	se.Line, se.Column = position(text, se.Offset)
	return se
}

// position converts a byte offset into a 1-based line and column
func position(text []byte, offset int64) (line, col int) {
	if offset > int64(len(text)) {
		offset = int64(len(text))
	}
	line, col = 1, 1
	for _, b := range text[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
