package container

// Argument is one entry of a constructor or setter argument list. It is one
// of Literal, ServiceReference or ParameterReference.
type Argument interface {
	argument()
}

// Literal is passed to the factory or method unchanged.
type Literal struct {
	Value any
}

// ServiceReference is replaced by the instance of the named service.
type ServiceReference struct {
	Name string
}

// ParameterReference is replaced by the value found at the dotted path Name.
type ParameterReference struct {
	Name string
}

func (Literal) argument()            {}
func (ServiceReference) argument()   {}
func (ParameterReference) argument() {}

// Value wraps v as a Literal argument.
func Value(v any) Literal { return Literal{Value: v} }

// Ref returns a reference to the service id.
func Ref(id string) ServiceReference { return ServiceReference{Name: id} }

// Param returns a reference to the parameter at path.
func Param(path string) ParameterReference { return ParameterReference{Name: path} }

// Args builds an argument list. Values that already are an Argument are kept
// as they are; everything else becomes a Literal.
//
//	container.Args("demo", container.Ref("logger"), container.Param("db.host"))
func Args(values ...any) []Argument {
	out := make([]Argument, len(values))
	for i, v := range values {
		if arg, ok := v.(Argument); ok {
			out[i] = arg
			continue
		}
		out[i] = Literal{Value: v}
	}
	return out
}
