package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: a map key or a list index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path is a pre-parsed accessor such as "touches[0].x" or "item.name".
// The empty Path addresses the value itself.
type Path []Segment

// SyntaxError describes a malformed path.
type SyntaxError struct {
	Path   string
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("path %q: %s at offset %d", e.Path, e.Msg, e.Offset)
}

// ParsePath parses dotted keys and bracketed indices. A dotted segment made
// of digits also indexes lists, so "touches.0" and "touches[0]" agree.
func ParsePath(s string) (Path, error) {
	var p Path
	start, needKey := true, false

	for i := 0; i < len(s); {
		switch s[i] {
		case '.':
			if start || needKey {
				return nil, &SyntaxError{Path: s, Offset: i, Msg: "empty key"}
			}
			needKey = true
			i++
		case '[':
			if needKey {
				return nil, &SyntaxError{Path: s, Offset: i, Msg: "empty key"}
			}
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, &SyntaxError{Path: s, Offset: i, Msg: "unclosed '['"}
			}
			digits := s[i+1 : i+end]
			if !isDigits(digits) {
				return nil, &SyntaxError{Path: s, Offset: i + 1, Msg: "index must be a non-negative integer"}
			}
			n, err := strconv.Atoi(digits)
			if err != nil {
				return nil, &SyntaxError{Path: s, Offset: i + 1, Msg: "index out of range"}
			}
			p = append(p, Segment{Index: n, IsIndex: true})
			i += end + 1
			start = false
		default:
			if !start && !needKey {
				return nil, &SyntaxError{Path: s, Offset: i, Msg: "expected '.' or '['"}
			}
			j := i
			for j < len(s) && s[j] != '.' && s[j] != '[' {
				j++
			}
			p = append(p, Segment{Key: s[i:j]})
			i = j
			start, needKey = false, false
		}
	}

	if needKey {
		return nil, &SyntaxError{Path: s, Offset: len(s), Msg: "trailing '.'"}
	}
	return p, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Lookup walks p through v. It returns Undefined and false as soon as a
// segment is missing.
func (p Path) Lookup(v Value) (Value, bool) {
	cur := v
	for _, seg := range p {
		var ok bool
		switch {
		case seg.IsIndex:
			cur, ok = cur.Index(seg.Index)
		case cur.Kind() == KindList && isDigits(seg.Key):
			n, err := strconv.Atoi(seg.Key)
			if err != nil {
				return Undefined(), false
			}
			cur, ok = cur.Index(n)
		default:
			cur, ok = cur.Field(seg.Key)
		}
		if !ok {
			return Undefined(), false
		}
	}
	return cur, true
}

func (p Path) String() string {
	var sb strings.Builder
	for i, seg := range p {
		if seg.IsIndex {
			fmt.Fprintf(&sb, "[%d]", seg.Index)
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.Key)
	}
	return sb.String()
}
