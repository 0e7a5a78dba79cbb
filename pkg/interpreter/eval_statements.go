package interpreter

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/ast"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/metrics"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/runtime"
)

var void runtime.Value = runtime.VoidValue{}

// evaluate is the single dispatch point over the closed node set.
func (i *Interpreter) evaluate(node ast.Node, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Program:
		return i.evaluateStatements(n.Statements, env)
	case *ast.Block:
		return i.evaluateStatements(n.Statements, env)
	case *ast.Number:
		return i.evaluateNumber(n), nil
	case *ast.Variable:
		return i.lookup(n, env)
	case *ast.Negate:
		return i.evaluateNegate(n, env)
	case *ast.BinaryOp:
		return i.evaluateBinaryOp(n, env)
	case *ast.Condition:
		return i.evaluateCondition(n, env)
	case *ast.VarDecl:
		return i.evaluateVarDecl(n, env)
	case *ast.ArrayInit:
		return i.evaluateArrayInit(n, env)
	case *ast.ArrayAccess:
		return i.evaluateArrayAccess(n, env)
	case *ast.ArrayAssign:
		return i.evaluateArrayAssign(n, env)
	case *ast.Assign:
		return i.evaluateAssign(n, env)
	case *ast.If:
		return i.evaluateIf(n, env)
	case *ast.While:
		return i.evaluateWhile(n, env)
	case *ast.Print:
		return i.evaluatePrint(n, env)
	case *ast.Scan:
		return i.evaluateScan(n, env)
	case *ast.ClassDefinition:
		return i.evaluateClassDefinition(n, env)
	case *ast.ObjectCreation:
		return i.evaluateObjectCreation(n, env)
	case *ast.MemberAccess:
		return i.evaluateMemberAccess(n, env)
	default:
		return nil, runtimeError(node.Token(), nil, "cannot evaluate %s node", node.NodeType())
	}
}

func (i *Interpreter) evaluateStatements(stmts []ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	for _, stmt := range stmts {
		i.metrics.Counter(metrics.Statements).Incr()
		i.log.WithFields(logrus.Fields{"node": stmt.NodeType(), "line": stmt.Token().Line}).Trace("evaluate")
		if _, err := i.evaluate(stmt, env); err != nil {
			return nil, err
		}
	}
	return void, nil
}

func (i *Interpreter) evaluateVarDecl(n *ast.VarDecl, env *runtime.Environment) (runtime.Value, error) {
	if err := env.Declare(n.Name.Name, runtime.Zero(runtime.KindOf(n.Type))); err != nil {
		return nil, wrap(n.Name.Token(), err)
	}
	return void, nil
}

func (i *Interpreter) evaluateArrayInit(n *ast.ArrayInit, env *runtime.Environment) (runtime.Value, error) {
	sizeVal, err := i.evaluate(n.Size, env)
	if err != nil {
		return nil, err
	}
	if !sizeVal.Kind().IsNumeric() {
		return nil, runtimeError(n.Size.Token(), ErrArraySize, "array %s size is %s, not a number", n.Name.Name, sizeVal.Kind())
	}
	size := runtime.Magnitude(sizeVal)
	if size < 0 || size > maxArrayLen {
		return nil, runtimeError(n.Size.Token(), ErrArraySize, "array %s size %d out of range", n.Name.Name, size)
	}
	arr := runtime.NewArray(runtime.KindOf(n.Type), int(size))
	if err := env.Declare(n.Name.Name, arr); err != nil {
		return nil, wrap(n.Name.Token(), err)
	}
	return void, nil
}

// evaluateArrayAssign evaluates the value before the index. A value whose
// kind differs from the element kind leaves the array untouched and is
// reported as a diagnostic rather than an error.
func (i *Interpreter) evaluateArrayAssign(n *ast.ArrayAssign, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluate(n.Value, env)
	if err != nil {
		return nil, err
	}
	arr, err := i.array(n.Target.Array, env)
	if err != nil {
		return nil, err
	}
	index, err := i.index(n.Target, env)
	if err != nil {
		return nil, err
	}
	if value.Kind() != arr.Elem {
		tok := n.Token()
		i.report(Diagnostic{
			Level:   LevelWarning,
			Code:    CodeArrayKindMismatch,
			Message: fmt.Sprintf("%s value does not match element type %s of array %s", value.Kind(), arr.Elem, n.Target.Array.Name),
			Line:    tok.Line,
			Col:     tok.Col,
		})
		return void, nil
	}
	if err := arr.Set(index, value); err != nil {
		return nil, wrap(n.Target.Token(), err)
	}
	return void, nil
}

func (i *Interpreter) evaluateAssign(n *ast.Assign, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluate(n.Value, env)
	if err != nil {
		return nil, err
	}
	if err := env.Assign(n.Target.Name, value); err != nil {
		if errors.Is(err, runtime.ErrUndefined) {
			return nil, i.undefined(n.Target, env, err)
		}
		return nil, wrap(n.Token(), err)
	}
	return void, nil
}

func (i *Interpreter) truthy(cond *ast.Condition, env *runtime.Environment) (bool, error) {
	v, err := i.evaluate(cond, env)
	if err != nil {
		return false, err
	}
	return runtime.Magnitude(v) == 1, nil
}

func (i *Interpreter) evaluateIf(n *ast.If, env *runtime.Environment) (runtime.Value, error) {
	ok, err := i.truthy(n.Cond, env)
	if err != nil || !ok {
		return void, err
	}
	return i.evaluate(n.Body, env)
}

func (i *Interpreter) evaluateWhile(n *ast.While, env *runtime.Environment) (runtime.Value, error) {
	var iterations int64
	defer func() { i.metrics.Histogram(metrics.WhileIterations).Update(iterations) }()
	for {
		ok, err := i.truthy(n.Cond, env)
		if err != nil {
			return nil, err
		}
		if !ok {
			return void, nil
		}
		if _, err := i.evaluate(n.Body, env); err != nil {
			return nil, err
		}
		iterations++
	}
}

func (i *Interpreter) evaluatePrint(n *ast.Print, env *runtime.Environment) (runtime.Value, error) {
	var err error
	if text, ok := n.Value.(*ast.Text); ok {
		sep := " "
		if n.Newline {
			sep = "\n"
		}
		_, err = io.WriteString(i.opts.Stdout, text.Value+sep)
	} else {
		var v runtime.Value
		v, err = i.evaluate(n.Value, env)
		if err != nil {
			return nil, err
		}
		_, err = io.WriteString(i.opts.Stdout, Format(v)+"\n")
	}
	if err != nil {
		return nil, runtimeError(n.Token(), err, "print: %v", err)
	}
	return void, nil
}

// evaluateScan reads one whitespace-delimited token into a numeric slot.
// Integer slots accept real input and truncate it.
func (i *Interpreter) evaluateScan(n *ast.Scan, env *runtime.Environment) (runtime.Value, error) {
	slot, err := env.Get(n.Name)
	if err != nil {
		return nil, i.undefined(ast.NewVariable(n.Token()), env, err)
	}
	if !slot.Kind().IsNumeric() {
		return nil, runtimeError(n.Token(), runtime.ErrNotAssignable, "scanf: %s holds a %s", n.Name, slot.Kind())
	}
	if !i.input.Scan() {
		if err := i.input.Err(); err != nil {
			return nil, runtimeError(n.Token(), ErrInput, "scanf %s: %v", n.Name, err)
		}
		return nil, runtimeError(n.Token(), ErrInput, "scanf %s: unexpected end of input", n.Name)
	}
	word := i.input.Text()
	var value runtime.Value
	if iv, err := strconv.ParseInt(word, 10, 64); err == nil {
		value = runtime.IntegerValue{Val: iv}
	} else if fv, err := strconv.ParseFloat(word, 64); err == nil {
		value = runtime.RealValue{Val: fv}
	} else {
		return nil, runtimeError(n.Token(), ErrInput, "scanf %s: %q is not a number", n.Name, word)
	}
	if err := env.Assign(n.Name, value); err != nil {
		return nil, wrap(n.Token(), err)
	}
	return void, nil
}
