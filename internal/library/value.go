package library

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Domain is the value type a definition's inputs and output operate over
type Domain int

const (
	// DomainNone marks the absence of a value (no output node, nothing evaluated)
	DomainNone Domain = iota
	DomainInt
	DomainString
)

func (d Domain) String() string {
	switch d {
	case DomainInt:
		return "int"
	case DomainString:
		return "string"
	case DomainNone:
		return "none"
	default:
		return fmt.Sprintf("Domain(%d)", int(d))
	}
}

// ParseDomain maps a key namespace ("int", "string") to its domain
func ParseDomain(s string) (Domain, bool) {
	switch s {
	case "int":
		return DomainInt, true
	case "string":
		return DomainString, true
	default:
		return DomainNone, false
	}
}

// Value is a tagged value in one of the two domains.
type Value struct {
	Domain Domain
	Int    int
	Str    string
}

// NoOutput is returned when the graph has no evaluated output node
var NoOutput = Value{Domain: DomainNone}

// Int wraps an integer
func Int(i int) Value {
	return Value{Domain: DomainInt, Int: i}
}

// String wraps a string
func String(s string) Value {
	return Value{Domain: DomainString, Str: s}
}

// Zero returns the zero value of a domain
func Zero(d Domain) Value {
	switch d {
	case DomainInt:
		return Int(0)
	case DomainString:
		return String("")
	default:
		return NoOutput
	}
}

// IsNone reports whether v carries no value
func (v Value) IsNone() bool {
	return v.Domain == DomainNone
}

// AsInt coerces v into the integer domain. Strings that do not parse become 0.
func (v Value) AsInt() int {
	switch v.Domain {
	case DomainInt:
		return v.Int
	case DomainString:
		i, err := strconv.Atoi(v.Str)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// AsString coerces v into the string domain
func (v Value) AsString() string {
	switch v.Domain {
	case DomainInt:
		return strconv.Itoa(v.Int)
	case DomainString:
		return v.Str
	default:
		return ""
	}
}

// Coerce converts v into domain d
func (v Value) Coerce(d Domain) Value {
	switch d {
	case DomainInt:
		return Int(v.AsInt())
	case DomainString:
		return String(v.AsString())
	default:
		return NoOutput
	}
}

// String renders the value for display; NoOutput renders as "".
func (v Value) String() string {
	return v.AsString()
}

// MarshalJSON emits the bare value: a number, a string, or null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Domain {
	case DomainInt:
		return json.Marshal(v.Int)
	case DomainString:
		return json.Marshal(v.Str)
	default:
		return []byte("null"), nil
	}
}
