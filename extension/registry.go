// registry.go holds the extensions compiled into the binary. Extensions
// register from init(), so the registry is complete before main() runs.
//
// MCP tool names share one namespace on the server: the registry rejects an
// extension whose tool name is already claimed, since the server would
// otherwise let the later handler silently replace the earlier one.

package extension

import "sync"

var (
	mu    sync.RWMutex
	order []Extension
	names = make(map[string]struct{})
	tools = make(map[string]string) // tool name -> owning extension
)

// Register adds an extension. It panics on a duplicate extension name or
// MCP tool name, the same way database/sql.Register treats duplicate drivers.
func Register(e Extension) {
	mu.Lock()
	defer mu.Unlock()

	name := e.Name()
	if _, exists := names[name]; exists {
		panic("extension already registered: " + name)
	}

	defs := e.MCPTools()
	for _, t := range defs {
		if owner, taken := tools[t.Tool.Name]; taken {
			panic("extension " + name + ": tool " + t.Tool.Name + " already registered by " + owner)
		}
	}
	for _, t := range defs {
		tools[t.Tool.Name] = name
	}

	names[name] = struct{}{}
	order = append(order, e)
}

// All returns all registered extensions in registration order.
func All() []Extension {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]Extension, len(order))
	copy(exts, order)
	return exts
}

// Names returns extension names in registration order. The version command
// reports them so a build's feature set is visible.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]string, len(order))
	for i, e := range order {
		out[i] = e.Name()
	}
	return out
}
