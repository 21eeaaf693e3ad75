package library

// Definition describes a node type: its display label, the names of its
// inputs in socket order, the domain it operates over, and its evaluator.
//
// The only implementations are IntDefinition and StringDefinition.
type Definition interface {
	Key() string
	Label() string
	Domain() Domain
	Inputs() []string
	// Evaluate coerces every declared input into the definition's domain
	// (missing inputs become the domain zero) and applies the evaluator.
	Evaluate(inputs map[string]Value) Value

	definition()
}

// IntFunc evaluates an integer node
type IntFunc func(in map[string]int) int

// StringFunc evaluates a string node
type StringFunc func(in map[string]string) string

// IntDefinition is a node over the integer domain
type IntDefinition struct {
	key    string
	label  string
	inputs []string
	fn     IntFunc
}

// NewInt creates an integer definition
func NewInt(key, label string, inputs []string, fn IntFunc) *IntDefinition {
	return &IntDefinition{key: key, label: label, inputs: inputs, fn: fn}
}

func (d *IntDefinition) Key() string      { return d.key }
func (d *IntDefinition) Label() string    { return d.label }
func (d *IntDefinition) Domain() Domain   { return DomainInt }
func (d *IntDefinition) Inputs() []string { return append([]string(nil), d.inputs...) }
func (d *IntDefinition) definition()      {}

func (d *IntDefinition) Evaluate(inputs map[string]Value) Value {
	in := make(map[string]int, len(d.inputs))
	for _, name := range d.inputs {
		in[name] = inputs[name].AsInt()
	}
	return Int(d.fn(in))
}

// StringDefinition is a node over the string domain
type StringDefinition struct {
	key    string
	label  string
	inputs []string
	fn     StringFunc
}

// NewString creates a string definition
func NewString(key, label string, inputs []string, fn StringFunc) *StringDefinition {
	return &StringDefinition{key: key, label: label, inputs: inputs, fn: fn}
}

func (d *StringDefinition) Key() string      { return d.key }
func (d *StringDefinition) Label() string    { return d.label }
func (d *StringDefinition) Domain() Domain   { return DomainString }
func (d *StringDefinition) Inputs() []string { return append([]string(nil), d.inputs...) }
func (d *StringDefinition) definition()      {}

func (d *StringDefinition) Evaluate(inputs map[string]Value) Value {
	in := make(map[string]string, len(d.inputs))
	for _, name := range d.inputs {
		in[name] = inputs[name].AsString()
	}
	return String(d.fn(in))
}
