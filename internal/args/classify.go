package args

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Kind identifies how a raw argument was classified.
type Kind int

const (
	// KindString is a single or double quoted literal.
	KindString Kind = iota + 1
	// KindObject is a brace-delimited object literal.
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Argument is a classified directive argument.
type Argument struct {
	Kind Kind
	// Raw is the trimmed source text of the argument.
	Raw string
	// Text holds the value of a KindString argument.
	Text string
	// Object holds the value of a KindObject argument.
	Object cty.Value
}

// IsString reports whether the argument is a string literal.
func (a Argument) IsString() bool { return a.Kind == KindString }

// IsObject reports whether the argument is an object literal.
func (a Argument) IsObject() bool { return a.Kind == KindObject }

// Decode copies an object argument into target using gocty struct tags.
func (a Argument) Decode(target any) error {
	if a.Kind != KindObject {
		return fmt.Errorf("cannot decode %s argument %s as an object", a.Kind, a.Raw)
	}
	return gocty.FromCtyValue(a.Object, target)
}

func isString(raw string) bool {
	if len(raw) < 2 {
		return false
	}
	first, last := raw[0], raw[len(raw)-1]
	return (first == '\'' && last == '\'') || (first == '"' && last == '"')
}

func isObject(raw string) bool {
	return len(raw) >= 2 && raw[0] == '{' && raw[len(raw)-1] == '}'
}

// Classify inspects one trimmed raw argument. ok is false when the text is
// neither a string nor an object literal; err is set only when an object
// literal fails to decode.
func Classify(raw string) (arg Argument, ok bool, err error) {
	switch {
	case isString(raw):
		return Argument{Kind: KindString, Raw: raw, Text: raw[1 : len(raw)-1]}, true, nil
	case isObject(raw):
		val, err := decodeObject(raw)
		if err != nil {
			return Argument{}, false, err
		}
		return Argument{Kind: KindObject, Raw: raw, Object: val}, true, nil
	default:
		return Argument{}, false, nil
	}
}

// Parse tokenizes and classifies the raw argument text of a directive call.
// Unclassifiable pieces are dropped.
func Parse(input string) ([]Argument, error) {
	var out []Argument
	for _, raw := range Tokenize(input) {
		arg, ok, err := Classify(raw)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, arg)
		}
	}
	return out, nil
}
