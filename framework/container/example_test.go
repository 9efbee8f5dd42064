package container_test

import (
	"fmt"

	"github.com/km-arc/go-locator/framework/container"
)

type Mailer struct {
	Host   string
	Sender string
}

func (m *Mailer) SetSender(sender string) { m.Sender = sender }

func Example() {
	types := container.NewTypes()
	types.RegisterConstructor("Mailer", func(host string) *Mailer { return &Mailer{Host: host} })

	c := container.New(map[string]*container.Definition{
		"mailer": {
			Class:     "Mailer",
			Arguments: container.Args(container.Param("mail.host")),
			Calls:     []container.Call{{Method: "setSender", Arguments: container.Args("noreply@example.com")}},
		},
	}, container.Parameters{"mail": map[string]any{"host": "smtp.example.com"}}, types)

	mailer := container.MustResolve[*Mailer](c, "mailer")
	fmt.Println(mailer.Host, mailer.Sender)

	_, err := c.Get("cache")
	fmt.Println(err)
	// Output:
	// smtp.example.com noreply@example.com
	// container: service "cache" is not defined
}
