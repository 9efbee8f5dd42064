package container_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-locator/framework/container"
)

type Port int

type server struct {
	host string
	port Port
	tags []string
}

func newServer(host string, port Port, tags ...string) *server {
	return &server{host: host, port: port, tags: tags}
}

func TestTypes_RegisterConstructor(t *testing.T) {
	types := container.NewTypes()
	types.RegisterConstructor("Server", newServer)

	c := container.New(map[string]*container.Definition{
		"server": {
			Class:     "Server",
			Arguments: container.Args(container.Param("host"), float64(8080), "a", "b"),
		},
	}, container.Parameters{"host": "localhost"}, types)

	srv, err := container.Resolve[*server](c, "server")
	require.NoError(t, err)
	assert.Equal(t, "localhost", srv.host)
	assert.Equal(t, Port(8080), srv.port)
	assert.Equal(t, []string{"a", "b"}, srv.tags)
}

func TestTypes_ConstructorError(t *testing.T) {
	boom := errors.New("boom")
	types := container.NewTypes()
	types.RegisterConstructor("Failing", func() (*server, error) { return nil, boom })

	c := container.New(map[string]*container.Definition{"failing": {Class: "Failing"}}, nil, types)

	_, err := c.Get("failing")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, container.ErrConfig)
}

func TestTypes_ConstructorArgumentMismatch(t *testing.T) {
	types := container.NewTypes()
	types.RegisterConstructor("Server", newServer)
	types.RegisterConstructor("Port", func(n int) int { return n })
	types.RegisterConstructor("Byte", func(b uint8) uint8 { return b })
	types.RegisterConstructor("Small", func(f float32) float32 { return f })

	tests := []struct {
		name string
		def  *container.Definition
	}{
		{"wrong kind", &container.Definition{Class: "Server", Arguments: container.Args(true, 1)}},
		{"fractional float to int", &container.Definition{Class: "Port", Arguments: container.Args(5432.9)}},
		{"int out of range", &container.Definition{Class: "Byte", Arguments: container.Args(300)}},
		{"negative to unsigned", &container.Definition{Class: "Byte", Arguments: container.Args(-1)}},
		{"negative float to unsigned", &container.Definition{Class: "Byte", Arguments: container.Args(-1.0)}},
		{"float out of range", &container.Definition{Class: "Small", Arguments: container.Args(1e300)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := container.New(map[string]*container.Definition{"svc": tt.def}, nil, types)

			_, err := c.Get("svc")
			assert.ErrorIs(t, err, container.ErrConfig)
		})
	}
}

func TestTypes_ConstructorNumericConversion(t *testing.T) {
	types := container.NewTypes()
	types.RegisterConstructor("Port", func(n int) int { return n })
	types.RegisterConstructor("Byte", func(b uint8) uint8 { return b })
	types.RegisterConstructor("Ratio", func(f float64) float64 { return f })

	c := container.New(map[string]*container.Definition{
		"port":  {Class: "Port", Arguments: container.Args(5432.0)},
		"byte":  {Class: "Byte", Arguments: container.Args(255)},
		"ratio": {Class: "Ratio", Arguments: container.Args(3)},
	}, nil, types)

	port, err := container.Resolve[int](c, "port")
	require.NoError(t, err)
	assert.Equal(t, 5432, port)

	b, err := container.Resolve[uint8](c, "byte")
	require.NoError(t, err)
	assert.Equal(t, uint8(255), b)

	ratio, err := container.Resolve[float64](c, "ratio")
	require.NoError(t, err)
	assert.Equal(t, 3.0, ratio)
}

func TestTypes_RegisterConstructorRejectsNonFunc(t *testing.T) {
	assert.Panics(t, func() { container.NewTypes().RegisterConstructor("X", 42) })
}

func TestTypes_Classes(t *testing.T) {
	types := container.NewTypes()
	types.RegisterConstructor("B", newServer)
	types.Register("A", func([]any) (any, error) { return nil, nil })

	assert.Equal(t, []string{"A", "B"}, types.Classes())
	assert.True(t, types.Has("A"))
	assert.False(t, types.Has("C"))
}

func TestArgs(t *testing.T) {
	args := container.Args("x", container.Ref("svc"), container.Param("p"), container.Value(3))

	assert.Equal(t, []container.Argument{
		container.Literal{Value: "x"},
		container.ServiceReference{Name: "svc"},
		container.ParameterReference{Name: "p"},
		container.Literal{Value: 3},
	}, args)
}
