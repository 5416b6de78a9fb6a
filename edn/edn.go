// Package edn provides the ordered serialization primitives used to
// emit extraction results: hashes that preserve insertion order,
// vectors, and keywords, all writable to a stream in a single pass.
package edn

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Node is any value that can be written as EDN.
type Node interface {
	encode(w io.Writer) error
}

// Keyword is an EDN keyword, written with a leading colon.
type Keyword string

func (k Keyword) encode(w io.Writer) error {
	_, err := io.WriteString(w, ":"+string(k))
	return err
}

// Hash is an ordered collection of keyword/value pairs. Push order is
// emission order.
type Hash struct {
	pairs []pair
}

type pair struct {
	key Keyword
	val Node
}

// NewHash returns a hash with capacity for n pairs.
func NewHash(n int) *Hash {
	return &Hash{pairs: make([]pair, 0, n)}
}

// Push appends a key/value pair. Values may be Nodes or plain Go
// scalars (string, bool, ints, float64), which are wrapped.
func (h *Hash) Push(key Keyword, value interface{}) {
	h.pairs = append(h.pairs, pair{key: key, val: wrap(value)})
}

// Len reports the number of pairs pushed so far.
func (h *Hash) Len() int { return len(h.pairs) }

func (h *Hash) encode(w io.Writer) error {
	if _, err := io.WriteString(w, "{"); err != nil {
		return err
	}
	for i, p := range h.pairs {
		if i > 0 {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if err := p.key.encode(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := p.val.encode(w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}")
	return err
}

// Vector is an ordered sequence of values.
type Vector struct {
	items []Node
}

// NewVector returns a vector with capacity for n items.
func NewVector(n int) *Vector {
	return &Vector{items: make([]Node, 0, n)}
}

// Push appends a value, wrapping plain Go scalars.
func (v *Vector) Push(value interface{}) {
	v.items = append(v.items, wrap(value))
}

// Len reports the number of items pushed so far.
func (v *Vector) Len() int { return len(v.items) }

func (v *Vector) encode(w io.Writer) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, item := range v.items {
		if i > 0 {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if err := item.encode(w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]")
	return err
}

type stringNode string

func (s stringNode) encode(w io.Writer) error {
	_, err := io.WriteString(w, quote(string(s)))
	return err
}

type boolNode bool

func (b boolNode) encode(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatBool(bool(b)))
	return err
}

type intNode int64

func (n intNode) encode(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatInt(int64(n), 10))
	return err
}

type floatNode float64

func (f floatNode) encode(w io.Writer) error {
	_, err := io.WriteString(w, formatFloat(float64(f)))
	return err
}

type nilNode struct{}

func (nilNode) encode(w io.Writer) error {
	_, err := io.WriteString(w, "nil")
	return err
}

func wrap(value interface{}) Node {
	switch v := value.(type) {
	case nil:
		return nilNode{}
	case Node:
		return v
	case string:
		return stringNode(v)
	case bool:
		return boolNode(v)
	case int:
		return intNode(v)
	case int64:
		return intNode(v)
	case uint8:
		return intNode(v)
	case uint32:
		return intNode(v)
	case uint64:
		return intNode(v)
	case float64:
		return floatNode(v)
	default:
		return stringNode(fmt.Sprint(v))
	}
}

// Encode writes n to w.
func Encode(w io.Writer, n Node) error {
	return n.encode(w)
}

// String renders n in memory. Intended for tests and small nodes; the
// emission path streams through Encode instead.
func String(n Node) string {
	var sb strings.Builder
	n.encode(&sb)
	return sb.String()
}

func formatFloat(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "0.0"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// EDN floats need a decimal point or exponent to parse as floats.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// quote escapes s as an EDN string. The escape set matches Go's quoted
// strings minus Go-only escapes EDN readers reject.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				sb.WriteString(fmt.Sprintf(`\u%04x`, r))
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
