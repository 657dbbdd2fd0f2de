package registry

import (
	"fmt"
	"plugin"
)

// RegisterFunc is the symbol a component plugin exports: given a Registry,
// it registers every component and/or entry point the plugin's shared
// object implements. This is the closest Go stdlib analogue to Python's
// importlib.util.spec_from_file_location — loading compiled code from a
// path chosen at runtime — short of shipping a source interpreter. Plugins
// must be built with `go build -buildmode=plugin` against the exact
// toolchain and dependency versions the host was built with; this is a
// real constraint plugin.Open enforces, not one this package adds.
type RegisterFunc func(*Registry)

// LoadPlugin opens the compiled plugin at path, resolves its exported
// "Register" symbol, and invokes it against reg.
func LoadPlugin(path string, reg *Registry) error {
	p, err := plugin.Open(path)
	if err != nil {
		return fmt.Errorf("open component plugin %s: %w", path, err)
	}
	sym, err := p.Lookup("Register")
	if err != nil {
		return fmt.Errorf("plugin %s does not export Register: %w", path, err)
	}
	register, ok := sym.(func(*Registry))
	if !ok {
		return fmt.Errorf("plugin %s: Register has the wrong signature", path)
	}
	register(reg)
	return nil
}
