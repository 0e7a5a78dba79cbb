package runtime

import (
	"errors"
	"fmt"
	"math"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindVoid Kind = iota
	KindInteger
	KindReal
	KindArray
	KindClass
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindArray:
		return "array"
	case KindClass:
		return "class"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// IsNumeric reports whether values of this kind take part in arithmetic.
func (k Kind) IsNumeric() bool {
	return k == KindInteger || k == KindReal
}

// KindOf maps a declared numeric type to the value kind it holds.
func KindOf(t ast.NumericType) Kind {
	if t == ast.TypeReal {
		return KindReal
	}
	return KindInteger
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type VoidValue struct{}

func (VoidValue) Kind() Kind { return KindVoid }

type IntegerValue struct {
	Val int64
}

func (IntegerValue) Kind() Kind { return KindInteger }

type RealValue struct {
	Val float64
}

func (RealValue) Kind() Kind { return KindReal }

// Zero is the initial value of a freshly declared scalar of kind k.
func Zero(k Kind) Value {
	switch k {
	case KindInteger:
		return IntegerValue{}
	case KindReal:
		return RealValue{}
	}
	return VoidValue{}
}

// Coerce computes the result kind of a binary arithmetic operation: equal
// numeric kinds pass through, Integer with Real widens to Real, and anything
// involving a non-numeric kind is Void.
func Coerce(a, b Kind) Kind {
	if !a.IsNumeric() || !b.IsNumeric() {
		return KindVoid
	}
	if a == b {
		return a
	}
	return KindReal
}

// AsReal widens a numeric value.
func AsReal(v Value) (float64, bool) {
	switch v := v.(type) {
	case IntegerValue:
		return float64(v.Val), true
	case RealValue:
		return v.Val, true
	}
	return 0, false
}

// Magnitude is the integer view of a value: reals truncate toward zero and
// anything non-numeric counts as 0.
func Magnitude(v Value) int64 {
	switch v := v.(type) {
	case IntegerValue:
		return v.Val
	case RealValue:
		return truncate(v.Val)
	}
	return 0
}

func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// ErrNotAssignable is returned when a value cannot be stored in a slot.
var ErrNotAssignable = errors.New("value not assignable")

// Convert narrows or widens a numeric value to kind k.
func Convert(v Value, k Kind) (Value, error) {
	if !v.Kind().IsNumeric() || !k.IsNumeric() {
		return nil, fmt.Errorf("%w: cannot store %s as %s", ErrNotAssignable, v.Kind(), k)
	}
	switch k {
	case KindInteger:
		return IntegerValue{Val: Magnitude(v)}, nil
	default:
		f, _ := AsReal(v)
		return RealValue{Val: f}, nil
	}
}

//-----------------------------------------------------------------------------
// Arrays
//-----------------------------------------------------------------------------

// ErrIndexOutOfRange is returned for element access outside an array.
var ErrIndexOutOfRange = errors.New("array index out of range")

// ArrayValue is a fixed-length, zero-filled buffer of one numeric kind.
type ArrayValue struct {
	Elem  Kind
	ints  []int64
	reals []float64
}

func (*ArrayValue) Kind() Kind { return KindArray }

// NewArray allocates a zero-filled array. elem must be numeric.
func NewArray(elem Kind, size int) *ArrayValue {
	if elem == KindReal {
		return &ArrayValue{Elem: elem, reals: make([]float64, size)}
	}
	return &ArrayValue{Elem: KindInteger, ints: make([]int64, size)}
}

func (a *ArrayValue) Len() int {
	if a.Elem == KindReal {
		return len(a.reals)
	}
	return len(a.ints)
}

func (a *ArrayValue) check(i int64) error {
	if i < 0 || i >= int64(a.Len()) {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, a.Len())
	}
	return nil
}

// Get returns element i tagged with the element kind.
func (a *ArrayValue) Get(i int64) (Value, error) {
	if err := a.check(i); err != nil {
		return nil, err
	}
	if a.Elem == KindReal {
		return RealValue{Val: a.reals[i]}, nil
	}
	return IntegerValue{Val: a.ints[i]}, nil
}

// Set stores v at i. The caller is responsible for matching kinds; v is
// converted to the element kind.
func (a *ArrayValue) Set(i int64, v Value) error {
	if err := a.check(i); err != nil {
		return err
	}
	conv, err := Convert(v, a.Elem)
	if err != nil {
		return err
	}
	if a.Elem == KindReal {
		a.reals[i] = conv.(RealValue).Val
	} else {
		a.ints[i] = conv.(IntegerValue).Val
	}
	return nil
}

// Elements copies the buffer out as values.
func (a *ArrayValue) Elements() []Value {
	out := make([]Value, a.Len())
	for i := range out {
		out[i], _ = a.Get(int64(i))
	}
	return out
}

//-----------------------------------------------------------------------------
// Classes and objects
//-----------------------------------------------------------------------------

// ClassValue references a class definition and, for derived classes, the
// parent it was declared against.
type ClassValue struct {
	Def    *ast.ClassDefinition
	Parent *ClassValue
}

func (*ClassValue) Kind() Kind { return KindClass }

func (c *ClassValue) Name() string { return c.Def.Name }

// LookupMethod searches the class and then its parent, one level only.
func (c *ClassValue) LookupMethod(name string) (*ast.Method, *ClassValue, bool) {
	if m, ok := c.Def.Method(name); ok {
		return m, c, true
	}
	if c.Parent != nil {
		if m, ok := c.Parent.Def.Method(name); ok {
			return m, c.Parent, true
		}
	}
	return nil, nil, false
}

// MethodNames lists the methods reachable through LookupMethod.
func (c *ClassValue) MethodNames() []string {
	var names []string
	for _, cls := range []*ClassValue{c, c.Parent} {
		if cls == nil || cls.Def.Methods == nil {
			continue
		}
		for _, m := range cls.Def.Methods.Methods {
			names = append(names, m.Name)
		}
	}
	return names
}

// ObjectValue is an instance with its own persistent field table.
type ObjectValue struct {
	Name   string
	Class  *ClassValue
	Fields *Environment
}

func (*ObjectValue) Kind() Kind { return KindObject }
