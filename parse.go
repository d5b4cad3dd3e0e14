package swayabi

import (
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// primitiveTypes maps grammar names to their type singletons.
var primitiveTypes = map[string]*Type{
	"bool": TypeBool,
	"u8":   TypeU8,
	"u16":  TypeU16,
	"u32":  TypeU32,
	"u64":  TypeU64,
	"u256": TypeU256,
	"b256": TypeB256,
}

// ParseType parses a type string in the ABI grammar: primitive names,
// fixed strings ("str[8]"), fixed arrays ("u32[4]", "b256[2]"), and tuples
// ("(u64,bool)"). Struct and enum types carry member names and therefore
// only exist in the JSON object form handled by ParseABI.
func ParseType(s string) (*Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &SyntaxError{Input: s, Msg: "empty type string"}
	}
	if s == "()" {
		return TypeUnit, nil
	}
	if t, ok := primitiveTypes[s]; ok {
		return t, nil
	}

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		inner := strings.TrimSpace(s[1 : len(s)-1])
		if inner == "" {
			return TypeUnit, nil
		}
		parts, err := splitTopLevel(s, inner)
		if err != nil {
			return nil, err
		}
		elems := make([]*Type, len(parts))
		for i, p := range parts {
			elem, err := ParseType(p)
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return TupleType(elems...), nil
	}

	if strings.HasSuffix(s, "]") {
		open := strings.LastIndex(s, "[")
		if open < 0 {
			return nil, &SyntaxError{Input: s, Msg: "unbalanced brackets"}
		}
		n, err := strconv.Atoi(strings.TrimSpace(s[open+1 : len(s)-1]))
		if err != nil || n < 0 {
			return nil, &SyntaxError{Input: s, Msg: "invalid length"}
		}
		base := strings.TrimSpace(s[:open])
		if base == "str" {
			return StringType(n), nil
		}
		elem, err := ParseType(base)
		if err != nil {
			return nil, err
		}
		return ArrayType(elem, n), nil
	}

	return nil, &SyntaxError{Input: s, Msg: "unknown type (struct and enum types require the JSON object form)"}
}

// MustParseType is like ParseType but panics on error.
func MustParseType(s string) *Type {
	t, err := ParseType(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseValue parses a value literal against a declared type. Accepted
// forms: "true"/"false", decimal or 0x-prefixed integers, 0x-prefixed
// 32-byte hex for b256, quoted or bare strings, "[a, b]" arrays, "(a, b)"
// tuples and structs (positional, declaration order), and "Variant" or
// "Variant(payload)" enums.
func ParseValue(t *Type, s string) (Value, error) {
	s = strings.TrimSpace(s)

	switch t.Kind() {
	case KindUnit:
		if s != "()" {
			return nil, &SyntaxError{Input: s, Msg: "expected ()"}
		}
		return Unit(), nil

	case KindBool:
		switch s {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		}
		return nil, &SyntaxError{Input: s, Msg: "expected true or false"}

	case KindU8, KindU16, KindU32, KindU64:
		n, err := strconv.ParseUint(s, 0, uintBits(t.Kind()))
		if err != nil {
			return nil, &SyntaxError{Input: s, Msg: "invalid " + t.String() + " literal"}
		}
		return &UintValue{typ: t, v: n}, nil

	case KindU256:
		var n *uint256.Int
		var err error
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			n, err = uint256.FromHex(s)
		} else {
			n, err = uint256.FromDecimal(s)
		}
		if err != nil {
			return nil, &SyntaxError{Input: s, Msg: "invalid u256 literal"}
		}
		return U256(n), nil

	case KindB256:
		raw, err := hexutil.Decode(s)
		if err != nil {
			return nil, &SyntaxError{Input: s, Msg: "b256 literal must be 0x-prefixed hex"}
		}
		if len(raw) != SlotSize {
			return nil, &SyntaxError{Input: s, Msg: "b256 literal must be exactly 32 bytes"}
		}
		var b B256Value
		copy(b.h[:], raw)
		return &b, nil

	case KindString:
		text := s
		if strings.HasPrefix(s, `"`) {
			unquoted, err := strconv.Unquote(s)
			if err != nil {
				return nil, &SyntaxError{Input: s, Msg: "invalid string literal"}
			}
			text = unquoted
		}
		return NewString(t, text)

	case KindArray:
		parts, err := delimited(s, "[", "]")
		if err != nil {
			return nil, err
		}
		if len(parts) != t.Len() {
			return nil, &SyntaxError{Input: s, Msg: "wrong element count for " + t.String()}
		}
		elems := make([]Value, len(parts))
		for i, p := range parts {
			elems[i], err = ParseValue(t.Elem(), p)
			if err != nil {
				return nil, err
			}
		}
		return NewArray(t, elems...)

	case KindTuple:
		parts, err := delimited(s, "(", ")")
		if err != nil {
			return nil, err
		}
		decl := t.Components()
		if len(parts) != len(decl) {
			return nil, &SyntaxError{Input: s, Msg: "wrong element count for " + t.String()}
		}
		elems := make([]Value, len(parts))
		for i, p := range parts {
			elems[i], err = ParseValue(decl[i].Type, p)
			if err != nil {
				return nil, err
			}
		}
		return &TupleValue{typ: t, elems: elems}, nil

	case KindStruct:
		parts, err := delimited(s, "(", ")")
		if err != nil {
			return nil, err
		}
		decl := t.Components()
		if len(parts) != len(decl) {
			return nil, &SyntaxError{Input: s, Msg: "wrong field count for " + t.String()}
		}
		fields := make([]Value, len(parts))
		for i, p := range parts {
			fields[i], err = ParseValue(decl[i].Type, p)
			if err != nil {
				return nil, err
			}
		}
		return NewStruct(t, fields...)

	case KindEnum:
		name := s
		var payloadLit string
		hasPayload := false
		if open := strings.Index(s, "("); open >= 0 {
			if !strings.HasSuffix(s, ")") {
				return nil, &SyntaxError{Input: s, Msg: "unbalanced parentheses"}
			}
			name = strings.TrimSpace(s[:open])
			payloadLit = s[open+1 : len(s)-1]
			hasPayload = true
		}
		tag, variant, ok := t.VariantByName(name)
		if !ok {
			return nil, &SyntaxError{Input: s, Msg: "no variant " + name + " in " + t.String()}
		}
		if !hasPayload {
			return NewEnum(t, tag, nil)
		}
		payload, err := ParseValue(variant.Type, payloadLit)
		if err != nil {
			return nil, err
		}
		return NewEnum(t, tag, payload)

	default:
		return nil, &SyntaxError{Input: s, Msg: "unsupported type " + t.String()}
	}
}

func uintBits(k Kind) int {
	switch k {
	case KindU8:
		return 8
	case KindU16:
		return 16
	case KindU32:
		return 32
	default:
		return 64
	}
}

// delimited strips the given outer delimiters and splits the inside at
// top-level commas.
func delimited(s, open, closing string) ([]string, error) {
	if !strings.HasPrefix(s, open) || !strings.HasSuffix(s, closing) {
		return nil, &SyntaxError{Input: s, Msg: "expected " + open + "..." + closing}
	}
	inner := strings.TrimSpace(s[len(open) : len(s)-len(closing)])
	if inner == "" {
		return nil, nil
	}
	return splitTopLevel(s, inner)
}

// splitTopLevel splits inner at commas that aren't nested inside brackets,
// parentheses, or string quotes. The original input is carried only for
// error reporting.
func splitTopLevel(original, inner string) ([]string, error) {
	var parts []string
	depth := 0
	inQuote := false
	start := 0
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		switch {
		case inQuote:
			if c == '\\' {
				i++
			} else if c == '"' {
				inQuote = false
			}
		case c == '"':
			inQuote = true
		case c == '(' || c == '[' || c == '{':
			depth++
		case c == ')' || c == ']' || c == '}':
			depth--
			if depth < 0 {
				return nil, &SyntaxError{Input: original, Msg: "unbalanced brackets"}
			}
		case c == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(inner[start:i]))
			start = i + 1
		}
	}
	if depth != 0 || inQuote {
		return nil, &SyntaxError{Input: original, Msg: "unbalanced brackets"}
	}
	parts = append(parts, strings.TrimSpace(inner[start:]))
	return parts, nil
}
