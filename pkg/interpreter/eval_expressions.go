package interpreter

import (
	"math"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/ast"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/runtime"
)

func (i *Interpreter) evaluateNumber(n *ast.Number) runtime.Value {
	if n.Type == ast.TypeReal {
		return runtime.RealValue{Val: n.Real}
	}
	return runtime.IntegerValue{Val: n.Int}
}

func (i *Interpreter) lookup(v *ast.Variable, env *runtime.Environment) (runtime.Value, error) {
	val, err := env.Get(v.Name)
	if err != nil {
		return nil, i.undefined(v, env, err)
	}
	return val, nil
}

// undefined decorates a name error with the closest visible names.
func (i *Interpreter) undefined(v *ast.Variable, env *runtime.Environment, err error) error {
	return runtimeError(v.Token(), err, "%v%s", err, hint(v.Name, env.VisibleNames()))
}

// evaluateNegate flips the sign of numeric values; anything else passes
// through unchanged.
func (i *Interpreter) evaluateNegate(n *ast.Negate, env *runtime.Environment) (runtime.Value, error) {
	v, err := i.evaluate(n.Operand, env)
	if err != nil {
		return nil, err
	}
	switch v := v.(type) {
	case runtime.IntegerValue:
		return runtime.IntegerValue{Val: -v.Val}, nil
	case runtime.RealValue:
		return runtime.RealValue{Val: -v.Val}, nil
	}
	return v, nil
}

func (i *Interpreter) evaluateBinaryOp(n *ast.BinaryOp, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(n.Right, env)
	if err != nil {
		return nil, err
	}
	v, err := Arithmetic(n.Op, left, right)
	if err != nil {
		return nil, wrap(n.Token(), err)
	}
	return v, nil
}

// Arithmetic applies a binary operator after coercing both operands to a
// common kind. A Void result kind yields Void without error.
func Arithmetic(op ast.Operator, left, right runtime.Value) (runtime.Value, error) {
	switch runtime.Coerce(left.Kind(), right.Kind()) {
	case runtime.KindInteger:
		a, b := left.(runtime.IntegerValue).Val, right.(runtime.IntegerValue).Val
		switch op {
		case ast.OpAdd:
			return runtime.IntegerValue{Val: a + b}, nil
		case ast.OpSub:
			return runtime.IntegerValue{Val: a - b}, nil
		case ast.OpMul:
			return runtime.IntegerValue{Val: a * b}, nil
		case ast.OpDiv:
			if b == 0 {
				return nil, ErrDivisionByZero
			}
			return runtime.IntegerValue{Val: a / b}, nil
		case ast.OpPow:
			return runtime.IntegerValue{Val: runtime.Magnitude(runtime.RealValue{Val: math.Pow(float64(a), float64(b))})}, nil
		}
	case runtime.KindReal:
		a, _ := runtime.AsReal(left)
		b, _ := runtime.AsReal(right)
		switch op {
		case ast.OpAdd:
			return runtime.RealValue{Val: a + b}, nil
		case ast.OpSub:
			return runtime.RealValue{Val: a - b}, nil
		case ast.OpMul:
			return runtime.RealValue{Val: a * b}, nil
		case ast.OpDiv:
			return runtime.RealValue{Val: a / b}, nil
		case ast.OpPow:
			return runtime.RealValue{Val: math.Pow(a, b)}, nil
		}
	default:
		return void, nil
	}
	return void, nil
}

// evaluateCondition compares the integer magnitudes of both sides and yields
// Integer 1 or 0.
func (i *Interpreter) evaluateCondition(n *ast.Condition, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(n.Right, env)
	if err != nil {
		return nil, err
	}
	a, b := runtime.Magnitude(left), runtime.Magnitude(right)
	var ok bool
	switch n.Op {
	case ast.OpLess:
		ok = a < b
	case ast.OpMore:
		ok = a > b
	case ast.OpIs:
		ok = a == b
	case ast.OpIsNot:
		ok = a != b
	default:
		return nil, runtimeError(n.Token(), nil, "unknown relational operator %q", n.Op)
	}
	if ok {
		return runtime.IntegerValue{Val: 1}, nil
	}
	return runtime.IntegerValue{Val: 0}, nil
}

func (i *Interpreter) array(v *ast.Variable, env *runtime.Environment) (*runtime.ArrayValue, error) {
	val, err := i.lookup(v, env)
	if err != nil {
		return nil, err
	}
	arr, ok := val.(*runtime.ArrayValue)
	if !ok {
		return nil, runtimeError(v.Token(), ErrNotAnArray, "%s is a %s, not an array", v.Name, val.Kind())
	}
	return arr, nil
}

// index evaluates a subscript to its integer magnitude.
func (i *Interpreter) index(n *ast.ArrayAccess, env *runtime.Environment) (int64, error) {
	v, err := i.evaluate(n.Index, env)
	if err != nil {
		return 0, err
	}
	if !v.Kind().IsNumeric() {
		return 0, runtimeError(n.Index.Token(), runtime.ErrIndexOutOfRange, "index into %s is %s, not a number", n.Array.Name, v.Kind())
	}
	return runtime.Magnitude(v), nil
}

func (i *Interpreter) evaluateArrayAccess(n *ast.ArrayAccess, env *runtime.Environment) (runtime.Value, error) {
	arr, err := i.array(n.Array, env)
	if err != nil {
		return nil, err
	}
	idx, err := i.index(n, env)
	if err != nil {
		return nil, err
	}
	v, err := arr.Get(idx)
	if err != nil {
		return nil, wrap(n.Token(), err)
	}
	return v, nil
}
