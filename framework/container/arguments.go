package container

import "fmt"

// resolveArguments turns argument definitions into concrete values, left to
// right. owner is the id of the service being built. Errors from nested
// service or parameter lookups are returned as they are.
func (c *Container) resolveArguments(owner string, defs []Argument) ([]any, error) {
	values := make([]any, len(defs))
	for i, def := range defs {
		switch arg := def.(type) {
		case Literal:
			values[i] = arg.Value
		case ServiceReference:
			instance, err := c.get(arg.Name)
			if err != nil {
				return nil, err
			}
			values[i] = instance
		case ParameterReference:
			value, err := c.parameters.Resolve(arg.Name)
			if err != nil {
				return nil, err
			}
			values[i] = value
		case nil:
			values[i] = nil
		default:
			return nil, configError(owner, fmt.Sprintf("argument %d has unknown kind %T", i, def), nil)
		}
	}
	return values, nil
}
