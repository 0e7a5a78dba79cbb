package interpreter

import (
	"github.com/sirupsen/logrus"

	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/ast"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/metrics"
	"github.com/SAI-BHASKAR-PENNADA/compiler-design/pkg/runtime"
)

func (i *Interpreter) class(at ast.Node, name string, env *runtime.Environment) (*runtime.ClassValue, error) {
	val, err := env.Get(name)
	if err != nil {
		return nil, runtimeError(at.Token(), err, "%v%s", err, hint(name, env.VisibleNames()))
	}
	cls, ok := val.(*runtime.ClassValue)
	if !ok {
		return nil, runtimeError(at.Token(), ErrNotAClass, "%s is a %s, not a class", name, val.Kind())
	}
	return cls, nil
}

// evaluateClassDefinition binds the class name. A derived class resolves its
// parent now, so the parent must already be declared.
func (i *Interpreter) evaluateClassDefinition(n *ast.ClassDefinition, env *runtime.Environment) (runtime.Value, error) {
	cls := &runtime.ClassValue{Def: n}
	if n.Derived {
		parent, err := i.class(n, n.Parent, env)
		if err != nil {
			return nil, err
		}
		cls.Parent = parent
	}
	if err := env.Declare(n.Name, cls); err != nil {
		return nil, wrap(n.Token(), err)
	}
	i.log.WithFields(logrus.Fields{"class": n.Name, "parent": n.Parent}).Debug("class defined")
	return void, nil
}

// evaluateObjectCreation gives the new instance its own field table, seeded
// with the parent's fields and then the class's own.
func (i *Interpreter) evaluateObjectCreation(n *ast.ObjectCreation, env *runtime.Environment) (runtime.Value, error) {
	cls, err := i.class(n, n.Class, env)
	if err != nil {
		return nil, err
	}
	fields := env.Extend()
	for _, c := range []*runtime.ClassValue{cls.Parent, cls} {
		if c == nil || c.Def.Fields == nil {
			continue
		}
		for _, decl := range c.Def.Fields.Fields {
			if _, err := i.evaluate(decl, fields); err != nil {
				return nil, err
			}
		}
	}
	obj := &runtime.ObjectValue{Name: n.Object.Name, Class: cls, Fields: fields}
	if err := env.Declare(n.Object.Name, obj); err != nil {
		return nil, wrap(n.Object.Token(), err)
	}
	i.metrics.Counter(metrics.Objects).Incr()
	i.log.WithFields(logrus.Fields{"class": cls.Name(), "object": obj.Name}).Debug("object created")
	return void, nil
}

func (i *Interpreter) object(v *ast.Variable, env *runtime.Environment) (*runtime.ObjectValue, error) {
	val, err := i.lookup(v, env)
	if err != nil {
		return nil, err
	}
	obj, ok := val.(*runtime.ObjectValue)
	if !ok {
		return nil, runtimeError(v.Token(), ErrNotAnObject, "%s is a %s, not an object", v.Name, val.Kind())
	}
	return obj, nil
}

func (i *Interpreter) evaluateMemberAccess(n *ast.MemberAccess, env *runtime.Environment) (runtime.Value, error) {
	obj, err := i.object(n.Object, env)
	if err != nil {
		return nil, err
	}
	member := n.Member.Name
	if n.Call {
		return i.invoke(n, obj, env)
	}
	if !obj.Fields.Has(member) {
		return nil, runtimeError(n.Member.Token(), runtime.ErrUndefined, "field %s not defined in: %s%s",
			member, obj.Name, hint(member, obj.Fields.Keys()))
	}
	if n.Value == nil {
		return obj.Fields.Get(member)
	}
	value, err := i.evaluate(n.Value, env)
	if err != nil {
		return nil, err
	}
	if err := obj.Fields.Assign(member, value); err != nil {
		return nil, wrap(n.Token(), err)
	}
	return void, nil
}

// invoke runs a method against the instance. Arguments are evaluated in the
// caller's scope and bound as typed locals; the call scope's parent is the
// instance field table.
func (i *Interpreter) invoke(n *ast.MemberAccess, obj *runtime.ObjectValue, env *runtime.Environment) (runtime.Value, error) {
	name := n.Member.Name
	method, owner, ok := obj.Class.LookupMethod(name)
	if !ok {
		return nil, runtimeError(n.Member.Token(), ErrMethodNotFound, "Method: %s not found in: %s%s",
			name, obj.Name, hint(name, obj.Class.MethodNames()))
	}
	if len(n.Args) != len(method.Params) {
		return nil, runtimeError(n.Member.Token(), ErrArity, "%s.%s expects %d arguments, got %d",
			obj.Name, name, len(method.Params), len(n.Args))
	}
	args := make([]runtime.Value, len(n.Args))
	for idx, arg := range n.Args {
		v, err := i.evaluate(arg, env)
		if err != nil {
			return nil, err
		}
		args[idx] = v
	}

	if i.depth >= i.opts.MaxCallDepth {
		return nil, runtimeError(n.Member.Token(), ErrCallDepth, "call depth exceeds %d", i.opts.MaxCallDepth)
	}
	i.depth++
	defer func() { i.depth-- }()

	local := obj.Fields.Extend()
	for idx, param := range method.Params {
		if err := local.Declare(param.Name, runtime.Zero(runtime.KindOf(param.Type))); err != nil {
			return nil, wrap(n.Member.Token(), err)
		}
		if err := local.Assign(param.Name, args[idx]); err != nil {
			return nil, runtimeError(n.Args[idx].Token(), err, "argument %s of %s.%s: %v", param.Name, obj.Name, name, err)
		}
	}
	i.metrics.Counter(metrics.MethodCalls).Incr()
	i.log.WithFields(logrus.Fields{"object": obj.Name, "method": name, "class": owner.Name()}).Debug("method call")
	if _, err := i.evaluate(method.Body, local); err != nil {
		return nil, err
	}
	return void, nil
}
