package jsondoc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RootPath is the path of the document root
const RootPath = "$"

// ErrBadPath is returned for strings that are not valid paths
var ErrBadPath = errors.New("invalid path")

// Segment is one step of a path: an object key or an array index
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path represents a parsed path (e.g., $.user.address["zip code"][0])
type Path []Segment

// String returns the canonical path notation
func (p Path) String() string {
	var b strings.Builder
	b.WriteString(RootPath)
	for _, seg := range p {
		if seg.IsIndex {
			b.WriteString("[" + strconv.Itoa(seg.Index) + "]")
			continue
		}
		b.WriteString(keyAccessor(seg.Key))
	}
	return b.String()
}

// PostgreSQLPath returns the PostgreSQL #> operator notation
func (p Path) PostgreSQLPath() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		if seg.IsIndex {
			parts[i] = strconv.Itoa(seg.Index)
			continue
		}
		parts[i] = pgArrayElem(seg.Key)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func pgArrayElem(s string) string {
	if s != "" && !strings.ContainsAny(s, "{},\"\\ \t\n") && !strings.EqualFold(s, "null") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// IsIdentifier reports whether key can use dot notation ([A-Za-z_$][A-Za-z0-9_$]*)
func IsIdentifier(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// EscapeKey escapes backslashes and double quotes for the bracket form
func EscapeKey(key string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(key)
}

func keyAccessor(key string) string {
	if IsIdentifier(key) {
		return "." + key
	}
	return `["` + EscapeKey(key) + `"]`
}

// ChildPath builds the path of the child stored under key in a parent of the
// given kind. Array parents take the key as the element index.
func ChildPath(parentPath, key string, parentKind Kind) string {
	if parentKind == KindArray {
		return parentPath + "[" + key + "]"
	}
	return parentPath + keyAccessor(key)
}

// ParsePath parses the notation produced by ChildPath and Path.String
func ParsePath(s string) (Path, error) {
	if !strings.HasPrefix(s, RootPath) {
		return nil, fmt.Errorf("%w: %q must start with %q", ErrBadPath, s, RootPath)
	}

	var p Path
	i := len(RootPath)
	for i < len(s) {
		switch s[i] {
		case '.':
			j := i + 1
			for j < len(s) && s[j] != '.' && s[j] != '[' {
				j++
			}
			key := s[i+1 : j]
			if !IsIdentifier(key) {
				return nil, fmt.Errorf("%w: bad member name %q at offset %d", ErrBadPath, key, i)
			}
			p = append(p, Segment{Key: key})
			i = j

		case '[':
			if i+1 < len(s) && s[i+1] == '"' {
				key, next, err := parseQuotedKey(s, i+2)
				if err != nil {
					return nil, err
				}
				p = append(p, Segment{Key: key})
				i = next
				continue
			}
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated index at offset %d", ErrBadPath, i)
			}
			idx, err := strconv.Atoi(s[i+1 : i+end])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("%w: bad index %q at offset %d", ErrBadPath, s[i+1:i+end], i)
			}
			p = append(p, Segment{Index: idx, IsIndex: true})
			i += end + 1

		default:
			return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrBadPath, s[i], i)
		}
	}
	return p, nil
}

// parseQuotedKey reads an escaped key starting after `["` and returns the key
// and the offset just past the closing `"]`
func parseQuotedKey(s string, i int) (string, int, error) {
	var b strings.Builder
	for i < len(s) {
		c := s[i]
		switch c {
		case '\\':
			if i+1 >= len(s) {
				return "", 0, fmt.Errorf("%w: dangling escape", ErrBadPath)
			}
			b.WriteByte(s[i+1])
			i += 2
		case '"':
			if i+1 >= len(s) || s[i+1] != ']' {
				return "", 0, fmt.Errorf("%w: expected \"] at offset %d", ErrBadPath, i)
			}
			return b.String(), i + 2, nil
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, fmt.Errorf("%w: unterminated key", ErrBadPath)
}

// GetValueAtPath retrieves the value a parsed path addresses
func GetValueAtPath(root *Value, path Path) (*Value, error) {
	current := root
	for _, seg := range path {
		switch Classify(current) {
		case KindObject:
			if seg.IsIndex {
				return nil, fmt.Errorf("cannot index object with [%d]", seg.Index)
			}
			val, ok := current.Get(seg.Key)
			if !ok {
				return nil, fmt.Errorf("key '%s' not found", seg.Key)
			}
			current = val
		case KindArray:
			if !seg.IsIndex {
				return nil, fmt.Errorf("cannot select member '%s' of array", seg.Key)
			}
			val, ok := current.Index(seg.Index)
			if !ok {
				return nil, fmt.Errorf("array index out of bounds: %d", seg.Index)
			}
			current = val
		default:
			return nil, fmt.Errorf("cannot traverse into %s", Classify(current))
		}
	}
	return current, nil
}

// Resolve evaluates a path string against root. A path that does not parse
// or no longer addresses anything resolves to (nil, false).
func Resolve(root *Value, path string) (*Value, bool) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, false
	}
	v, err := GetValueAtPath(root, p)
	if err != nil {
		return nil, false
	}
	return v, true
}
