package anchorfix

import (
	"strings"

	"github.com/dop251/goja"
)

// ScriptCapabilities resolves capabilities from the global object of a
// JavaScript runtime, so theme scripts can provide them the way they
// would in a browser:
//
//	window.sco = { switchDarkMode: function () { ... } };
type ScriptCapabilities struct {
	vm *goja.Runtime
}

// NewScriptCapabilities wraps vm, or a fresh runtime if vm is nil. The
// global object is also reachable as window and self.
func NewScriptCapabilities(vm *goja.Runtime) *ScriptCapabilities {
	if vm == nil {
		vm = goja.New()
	}
	global := vm.GlobalObject()
	_ = global.Set("window", global)
	_ = global.Set("self", global)
	return &ScriptCapabilities{vm: vm}
}

// Runtime returns the underlying runtime.
func (s *ScriptCapabilities) Runtime() *goja.Runtime { return s.vm }

// RunScript evaluates src. name is used in stack traces.
func (s *ScriptCapabilities) RunScript(name, src string) error {
	_, err := s.vm.RunScript(name, src)
	return err
}

// Lookup resolves a dotted path such as "sco.switchDarkMode" against the
// global object. Only callable values resolve.
func (s *ScriptCapabilities) Lookup(name string) (Capability, bool) {
	if name == "" {
		return nil, false
	}
	owner := s.vm.GlobalObject()
	var v goja.Value = owner
	for _, part := range strings.Split(name, ".") {
		if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
			return nil, false
		}
		obj, ok := v.(*goja.Object)
		if !ok {
			return nil, false
		}
		owner = obj
		v = obj.Get(part)
	}
	if v == nil {
		return nil, false
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, false
	}
	// Called as a method of the object it was found on, so "this" is
	// sco for sco.switchDarkMode and the global object for toRandomPost.
	return func() error {
		_, err := fn(owner)
		return err
	}, true
}
