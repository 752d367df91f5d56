package playerjs

import (
	"fmt"

	"github.com/dop251/goja"
)

// Script is a loaded snippet. It keeps its runtime for the rest of the session.
type Script struct {
	vm *goja.Runtime
}

// Load evaluates source in a fresh runtime.
func Load(source string) (*Script, error) {
	vm := goja.New()
	if _, err := vm.RunString(source); err != nil {
		return nil, &ScriptError{Function: "<load>", Err: err}
	}
	return &Script{vm: vm}, nil
}

// Call invokes a global one-argument function and returns its string result.
func (s *Script) Call(name, arg string) (string, error) {
	fn, ok := goja.AssertFunction(s.vm.Get(name))
	if !ok {
		return "", &ScriptError{Function: name, Err: fmt.Errorf("not a function")}
	}
	v, err := fn(goja.Undefined(), s.vm.ToValue(arg))
	if err != nil {
		return "", &ScriptError{Function: name, Err: err}
	}
	out, ok := v.Export().(string)
	if !ok {
		return "", &ScriptError{Function: name, Err: fmt.Errorf("returned %T, want string", v.Export())}
	}
	return out, nil
}
