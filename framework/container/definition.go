package container

// Definition describes how to build one named service: the registered class
// to construct, its positional constructor arguments and the setter calls to
// run on the fresh instance.
type Definition struct {
	Class     string
	Arguments []Argument
	Calls     []Call
}

// Call is a setter invocation run once after construction.
type Call struct {
	Method    string
	Arguments []Argument
}

// References returns the ids of all services referenced by the definition's
// constructor and call arguments, in declaration order, without duplicates.
func (d *Definition) References() []string {
	if d == nil {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	collect := func(args []Argument) {
		for _, a := range args {
			ref, ok := a.(ServiceReference)
			if !ok || seen[ref.Name] {
				continue
			}
			seen[ref.Name] = true
			out = append(out, ref.Name)
		}
	}
	collect(d.Arguments)
	for _, call := range d.Calls {
		collect(call.Arguments)
	}
	return out
}

type state uint8

const (
	stateUnresolved state = iota
	stateInProgress
	stateResolved
)

func (s state) String() string {
	switch s {
	case stateInProgress:
		return "in-progress"
	case stateResolved:
		return "resolved"
	default:
		return "unresolved"
	}
}

// entry is the container's private view of a definition.
type entry struct {
	def   *Definition
	state state
}
