package prediction

import "sort"

// DefaultEngine is used when the client does not name one.
const DefaultEngine = "heuristic"

// aliases maps names older clients still send to current engines.
var aliases = map[string]string{
	"traditional": "heuristic",
}

// Registry holds the available prediction engines. Unlike the spell
// check registry there is no remote engine, so everything is constructed
// up front.
type Registry struct {
	engines     map[string]Engine
	defaultName string
}

func NewRegistry() *Registry {
	r := &Registry{engines: make(map[string]Engine), defaultName: DefaultEngine}
	r.register(NewHeuristicEngine())
	r.register(NewFrequencyEngine())
	return r
}

func (r *Registry) register(engine Engine) {
	r.engines[engine.Name()] = engine
}

// SetDefault changes the engine used when a request does not name one.
// Unknown names are refused so a configuration typo cannot silently
// disable prediction.
func (r *Registry) SetDefault(name string) bool {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	if _, ok := r.engines[name]; !ok {
		return false
	}
	r.defaultName = name
	return true
}

// Get returns the named engine, resolving legacy aliases, or nil when
// the name is unknown.
func (r *Registry) Get(name string) Engine {
	if name == "" {
		name = r.defaultName
	}
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	return r.engines[name]
}

// Names returns the engine names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered engines.
func (r *Registry) Count() int {
	return len(r.engines)
}
