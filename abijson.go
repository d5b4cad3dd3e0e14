package swayabi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Parameter is one named input or output of an ABI function.
type Parameter struct {
	Name string
	Type *Type
}

// Function is one callable entry of an ABI description.
type Function struct {
	Name    string
	Inputs  []Parameter
	Outputs []Parameter
}

// Signature returns the canonical function signature string the selector is
// derived from: the function name followed by the parenthesized, structural
// parameter signatures.
func (f *Function) Signature() string {
	parts := make([]string, len(f.Inputs))
	for i, in := range f.Inputs {
		parts[i] = in.Type.Signature()
	}
	return f.Name + "(" + strings.Join(parts, ",") + ")"
}

// InputTypes returns the input types in declaration order.
func (f *Function) InputTypes() []*Type {
	return parameterTypes(f.Inputs)
}

// OutputTypes returns the output types in declaration order.
func (f *Function) OutputTypes() []*Type {
	return parameterTypes(f.Outputs)
}

func parameterTypes(params []Parameter) []*Type {
	types := make([]*Type, len(params))
	for i, p := range params {
		types[i] = p.Type
	}
	return types
}

// ABI is a parsed contract interface: an ordered list of function
// descriptors.
type ABI struct {
	functions map[string]*Function
	order     []string
}

// Function returns the named function descriptor.
func (a *ABI) Function(name string) (*Function, error) {
	fn, ok := a.functions[name]
	if !ok {
		return nil, &FunctionNotFoundError{Name: name}
	}
	return fn, nil
}

// HasFunction returns true if the ABI declares a function with the given
// name.
func (a *ABI) HasFunction(name string) bool {
	_, ok := a.functions[name]
	return ok
}

// FunctionNames returns all declared function names in declaration order.
func (a *ABI) FunctionNames() []string {
	return append([]string(nil), a.order...)
}

// JSON wire forms. A type reference is either a grammar string ("u64",
// "str[8]", "u32[4]", "(u64,bool)") or a tagged object:
//
//	{"type":"struct","name":"Point","components":[{"name":"x","type":"u64"}]}
//	{"type":"enum","name":"Shape","variants":[{"name":"Circle","type":"u64"}]}
type typeRef struct {
	typ *Type
}

func (r *typeRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t, err := ParseType(s)
		if err != nil {
			return err
		}
		r.typ = t
		return nil
	}

	var obj struct {
		Type       string         `json:"type"`
		Name       string         `json:"name"`
		Components []parameterRef `json:"components"`
		Variants   []parameterRef `json:"variants"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	switch obj.Type {
	case "struct":
		r.typ = StructType(obj.Name, componentsOf(obj.Components)...)
	case "enum":
		r.typ = EnumType(obj.Name, componentsOf(obj.Variants)...)
	case "tuple":
		types := make([]*Type, len(obj.Components))
		for i, c := range obj.Components {
			types[i] = c.Type.typ
		}
		r.typ = TupleType(types...)
	default:
		return &SyntaxError{Input: obj.Type, Msg: "unknown composite type tag"}
	}
	return nil
}

type parameterRef struct {
	Name string  `json:"name"`
	Type typeRef `json:"type"`
}

func componentsOf(refs []parameterRef) []Component {
	cs := make([]Component, len(refs))
	for i, r := range refs {
		cs[i] = Component{Name: r.Name, Type: r.Type.typ}
	}
	return cs
}

type functionRef struct {
	Name    string         `json:"name"`
	Inputs  []parameterRef `json:"inputs"`
	Outputs []parameterRef `json:"outputs"`
}

// ParseABI parses a JSON ABI description: an ordered array of function
// descriptors with name, inputs, and outputs.
func ParseABI(abiJSON string) (*ABI, error) {
	return ReadABI(strings.NewReader(abiJSON))
}

// MustParseABI is like ParseABI but panics on error.
func MustParseABI(abiJSON string) *ABI {
	parsed, err := ParseABI(abiJSON)
	if err != nil {
		panic(err)
	}
	return parsed
}

// ReadABI parses a JSON ABI description from a reader.
func ReadABI(r io.Reader) (*ABI, error) {
	var refs []functionRef
	if err := json.NewDecoder(r).Decode(&refs); err != nil {
		return nil, fmt.Errorf("swayabi: invalid ABI JSON: %w", err)
	}

	out := &ABI{functions: make(map[string]*Function, len(refs))}
	for _, ref := range refs {
		fn := &Function{
			Name:    ref.Name,
			Inputs:  parametersOf(ref.Inputs),
			Outputs: parametersOf(ref.Outputs),
		}
		if _, dup := out.functions[fn.Name]; dup {
			return nil, fmt.Errorf("swayabi: duplicate function %q in ABI", fn.Name)
		}
		for _, p := range fn.Inputs {
			if err := checkDeclaredType(p.Type); err != nil {
				return nil, fmt.Errorf("swayabi: function %q input %q: %w", fn.Name, p.Name, err)
			}
		}
		for _, p := range fn.Outputs {
			if err := checkDeclaredType(p.Type); err != nil {
				return nil, fmt.Errorf("swayabi: function %q output %q: %w", fn.Name, p.Name, err)
			}
		}
		out.functions[fn.Name] = fn
		out.order = append(out.order, fn.Name)
	}
	return out, nil
}

// checkDeclaredType rejects type trees containing a nil member, which happens
// when a JSON parameter or composite component omits the "type" key. Enum
// variants never trip this: a variant without a type carries the unit
// payload.
func checkDeclaredType(t *Type) error {
	if t == nil {
		return errors.New("missing type")
	}
	switch t.Kind() {
	case KindArray:
		return checkDeclaredType(t.Elem())
	case KindTuple, KindStruct:
		for _, c := range t.Components() {
			if err := checkDeclaredType(c.Type); err != nil {
				return err
			}
		}
	case KindEnum:
		for _, v := range t.Variants() {
			if err := checkDeclaredType(v.Type); err != nil {
				return err
			}
		}
	}
	return nil
}

func parametersOf(refs []parameterRef) []Parameter {
	params := make([]Parameter, len(refs))
	for i, r := range refs {
		params[i] = Parameter{Name: r.Name, Type: r.Type.typ}
	}
	return params
}
