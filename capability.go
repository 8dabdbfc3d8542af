package anchorfix

import "fmt"

// Capability is an optional zero-argument function provided by the host
// page, such as a theme's dark-mode toggle. Its result is ignored.
type Capability func() error

// Capabilities resolves capabilities by name at call time. Names are
// usually dotted paths into the page's global namespace, for example
// "sco.switchDarkMode".
type Capabilities interface {
	Lookup(name string) (Capability, bool)
}

// CapabilityMap is a Capabilities backed by a plain map.
type CapabilityMap map[string]Capability

// Lookup returns the named capability if it is present and non-nil.
func (m CapabilityMap) Lookup(name string) (Capability, bool) {
	c, ok := m[name]
	return c, ok && c != nil
}

// NoCapabilities resolves nothing.
var NoCapabilities Capabilities = CapabilityMap(nil)

// Call invokes c, converting a panic into an error wrapping
// ErrCapabilityPanicked.
func Call(c Capability) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCapabilityPanicked, r)
		}
	}()
	return c()
}
