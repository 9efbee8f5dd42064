package container

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"sync"
	"unicode"
	"unicode/utf8"
)

// Factory builds an instance of a class from its resolved constructor
// arguments, in declaration order.
type Factory func(args []any) (any, error)

// Invoker runs a named setter on an instance with resolved arguments.
type Invoker func(instance any, args []any) error

var errNotInvocable = errors.New("method is not invocable")

// Types maps class names used in definitions to the factories that build
// them. The container never inspects types on its own; a class it cannot find
// here is not constructible.
type Types struct {
	mu        sync.RWMutex
	factories map[string]Factory
	methods   map[string]map[string]Invoker
}

// NewTypes creates an empty type registry.
func NewTypes() *Types {
	return &Types{
		factories: make(map[string]Factory),
		methods:   make(map[string]map[string]Invoker),
	}
}

// Register binds class to factory, replacing any earlier registration.
//
//	types.Register("Logger", func(args []any) (any, error) {
//	    return NewLogger(), nil
//	})
func (t *Types) Register(class string, factory Factory) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.factories[class] = factory
}

// RegisterConstructor binds class to a plain Go function. The function may
// return T or (T, error); resolved arguments are assigned (or converted) to
// its parameters positionally. It panics if fn is not a function.
//
//	types.RegisterConstructor("App", NewApp) // func NewApp(l *Logger) *App
func (t *Types) RegisterConstructor(class string, fn any) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		panic(fmt.Sprintf("container: constructor for [%s] is %T, not a func", class, fn))
	}
	t.Register(class, func(args []any) (any, error) {
		out, err := call(v, args)
		if err != nil {
			return nil, err
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("constructor for %s returns nothing", class)
		}
		return out[0].Interface(), nil
	})
}

// RegisterMethod binds an explicit setter invoker for instances of class.
// Explicit invokers take precedence over the exported methods of the instance.
func (t *Types) RegisterMethod(class, method string, invoker Invoker) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.methods[class] == nil {
		t.methods[class] = make(map[string]Invoker)
	}
	t.methods[class][method] = invoker
}

// Has reports whether class is registered.
func (t *Types) Has(class string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.factories[class]
	return ok
}

// Classes returns the registered class names, sorted.
func (t *Types) Classes() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.factories))
	for class := range t.factories {
		out = append(out, class)
	}
	sort.Strings(out)
	return out
}

func (t *Types) factory(class string) (Factory, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	f, ok := t.factories[class]
	return f, ok
}

// invoker finds the setter for method on an instance of class: an explicit
// invoker first, then an exported method of the same name with its first
// letter upper-cased ("setName" → "SetName").
func (t *Types) invoker(class, method string, instance any) (Invoker, bool) {
	t.mu.RLock()
	inv, ok := t.methods[class][method]
	t.mu.RUnlock()
	if ok {
		return inv, true
	}
	if instance == nil || method == "" {
		return nil, false
	}
	m := reflect.ValueOf(instance).MethodByName(exported(method))
	if !m.IsValid() {
		return nil, false
	}
	return func(_ any, args []any) error {
		_, err := call(m, args)
		return err
	}, true
}

// ── Reflect helpers ───────────────────────────────────────────────────────────

// call invokes fn with args applied positionally. A trailing error result is
// split off and returned.
func call(fn reflect.Value, args []any) ([]reflect.Value, error) {
	ft := fn.Type()
	if ft.IsVariadic() {
		if len(args) < ft.NumIn()-1 {
			return nil, fmt.Errorf("expected at least %d arguments, got %d", ft.NumIn()-1, len(args))
		}
	} else if len(args) != ft.NumIn() {
		return nil, fmt.Errorf("expected %d arguments, got %d", ft.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var want reflect.Type
		if ft.IsVariadic() && i >= ft.NumIn()-1 {
			want = ft.In(ft.NumIn() - 1).Elem()
		} else {
			want = ft.In(i)
		}
		v, err := assign(arg, want)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		in[i] = v
	}

	out := fn.Call(in)
	if n := len(out); n > 0 && ft.Out(n-1) == errorType {
		if errV := out[n-1]; !errV.IsNil() {
			return nil, errV.Interface().(error)
		}
		out = out[:n-1]
	}
	return out, nil
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// assign adapts arg to the parameter type want.
func assign(arg any, want reflect.Type) (reflect.Value, error) {
	if arg == nil {
		switch want.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(want), nil
		default:
			return reflect.Value{}, fmt.Errorf("cannot use nil as %s", want)
		}
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(want) {
		return v, nil
	}
	if isNumeric(v.Kind()) && isNumeric(want.Kind()) {
		return convertNumber(v, want)
	}
	if v.Kind() == reflect.String && want.Kind() == reflect.String {
		return v.Convert(want), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %s as %s", v.Type(), want)
}

// convertNumber converts v to want only when the value survives unchanged.
func convertNumber(v reflect.Value, want reflect.Type) (reflect.Value, error) {
	out := reflect.New(want).Elem()
	switch {
	case isFloat(want.Kind()):
		var f float64
		switch {
		case isFloat(v.Kind()):
			f = v.Float()
		case isSigned(v.Kind()):
			f = float64(v.Int())
		default:
			f = float64(v.Uint())
		}
		if out.OverflowFloat(f) {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", v, want)
		}
		out.SetFloat(f)
	case isSigned(want.Kind()):
		var i int64
		switch {
		case isFloat(v.Kind()):
			f := v.Float()
			if math.Trunc(f) != f || f < math.MinInt64 || f >= math.MaxInt64 {
				return reflect.Value{}, fmt.Errorf("%v is not representable as %s", v, want)
			}
			i = int64(f)
		case isSigned(v.Kind()):
			i = v.Int()
		default:
			u := v.Uint()
			if u > math.MaxInt64 {
				return reflect.Value{}, fmt.Errorf("%v overflows %s", v, want)
			}
			i = int64(u)
		}
		if out.OverflowInt(i) {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", v, want)
		}
		out.SetInt(i)
	default:
		var u uint64
		switch {
		case isFloat(v.Kind()):
			f := v.Float()
			if math.Trunc(f) != f || f < 0 || f >= math.MaxUint64 {
				return reflect.Value{}, fmt.Errorf("%v is not representable as %s", v, want)
			}
			u = uint64(f)
		case isSigned(v.Kind()):
			i := v.Int()
			if i < 0 {
				return reflect.Value{}, fmt.Errorf("negative value %d for %s", i, want)
			}
			u = uint64(i)
		default:
			u = v.Uint()
		}
		if out.OverflowUint(u) {
			return reflect.Value{}, fmt.Errorf("%v overflows %s", v, want)
		}
		out.SetUint(u)
	}
	return out, nil
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isSigned(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isNumeric(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Float64
}

func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
