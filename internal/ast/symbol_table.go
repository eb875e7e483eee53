package ast

// Meaning distinguishes a name occurrence that denotes a value from one
// that denotes a type (spec §4.1).
type Meaning int

const (
	Value Meaning = iota
	TypeMeaning
)

func (m Meaning) String() string {
	if m == Value {
		return "value"
	}
	return "type"
}

// Symbol aggregates every declaration of one name within one scope (spec
// §3). A symbol produced by generic instantiation additionally carries
// Target/Mapper and never owns new declarations of its own.
type Symbol struct {
	Name             string
	Declarations     []Node
	ValueDeclaration Node

	ValueType Type
	TypeType  Type

	// Members is non-nil for symbols backing Object/ObjectLiteralType
	// nodes; it is that node's own property scope.
	Members *Table

	// Target/Mapper are set on symbols produced by instantiateSymbol
	// (spec §4.8); Target is the generic symbol this one specializes.
	Target *Symbol
	Mapper *Mapper

	valueInProgress bool
	typeInProgress  bool
}

func (s *Symbol) symbolMarker() {}

// ValueInProgress/SetValueInProgress and TypeInProgress/SetTypeInProgress
// implement the reentry guard of spec §5/§9: getValueTypeOfSymbol and
// getTypeTypeOfSymbol mark a symbol in progress before recursing into its
// declaration so a self-referential declaration falls back to anyType
// instead of diverging.
func (s *Symbol) ValueInProgress() bool     { return s.valueInProgress }
func (s *Symbol) SetValueInProgress(v bool) { s.valueInProgress = v }
func (s *Symbol) TypeInProgress() bool      { return s.typeInProgress }
func (s *Symbol) SetTypeInProgress(v bool)  { s.typeInProgress = v }

// MeaningOf classifies a declaration node by the fixed rule of spec §4.1:
// Var, Object, PropertyAssignment, PropertyDeclaration and Parameter are
// Value declarations; TypeAlias and TypeParameter are Type declarations.
// Function declarations classify as Value (a function is reachable by name
// only through an enclosing Var; its own symbol stays on the node and is
// never inserted into a scope table, named or not).
func MeaningOf(n Node) Meaning {
	switch n.(type) {
	case *TypeAlias, *TypeParameter:
		return TypeMeaning
	default:
		return Value
	}
}

// HasMeaning reports whether any of the symbol's declarations carries the
// given meaning.
func (s *Symbol) HasMeaning(want Meaning) bool {
	for _, d := range s.Declarations {
		if MeaningOf(d) == want {
			return true
		}
	}
	return false
}

// Table is an ordered name -> Symbol mapping owned by one scope (spec §3).
// Insertion order is preserved because it is observable (typeToString
// enumerates an object type's members in members-table iteration order,
// spec §4.2).
type Table struct {
	entries map[string]*Symbol
	order   []string
}

func NewTable() *Table {
	return &Table{entries: make(map[string]*Symbol)}
}

func (t *Table) Get(name string) (*Symbol, bool) {
	s, ok := t.entries[name]
	return s, ok
}

func (t *Table) Set(name string, sym *Symbol) {
	if _, exists := t.entries[name]; !exists {
		t.order = append(t.order, name)
	}
	t.entries[name] = sym
}

// Names returns the names in this table in insertion order.
func (t *Table) Names() []string {
	return append([]string(nil), t.order...)
}

func (t *Table) Len() int { return len(t.order) }
