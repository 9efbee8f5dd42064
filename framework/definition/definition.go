// Package definition reads service definition files.
//
// A definition file is YAML (or JSON) with two top-level keys:
//
//	parameters:
//	  db:
//	    host: ${DB_HOST}
//	    port: 5432
//	services:
//	  logger:
//	    class: Logger
//	  app:
//	    class: App
//	    arguments: ["@logger", "%db.host%"]
//	    calls:
//	      - method: setName
//	        arguments: [demo]
//
// In argument lists "@id" references a service, "%path%" references a
// parameter and "@@text" is the literal "@text". Environment references of the form ${NAME} are
// expanded in the raw document before it is decoded; any other $ is literal.
//
// Only the document structure is checked here. A service entry that is not a
// mapping, or a call entry that is not one, is kept and reported by the
// container when that service is first requested.
package definition

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/km-arc/go-locator/framework/container"
)

// File is a decoded definition file.
type File struct {
	Parameters container.Parameters
	Services   map[string]*container.Definition
}

type rawFile struct {
	Parameters map[string]any             `json:"parameters"`
	Services   map[string]json.RawMessage `json:"services"`
}

type rawService struct {
	Class     string            `json:"class"`
	Arguments []any             `json:"arguments"`
	Calls     []json.RawMessage `json:"calls"`
}

type rawCall struct {
	Method    string `json:"method"`
	Arguments []any  `json:"arguments"`
}

// Load reads and parses the definition file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definition file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a definition document.
func Parse(data []byte) (*File, error) {
	var raw rawFile
	if err := yaml.Unmarshal(expandEnv(data), &raw); err != nil {
		return nil, err
	}

	f := &File{
		Parameters: container.Parameters(raw.Parameters),
		Services:   make(map[string]*container.Definition, len(raw.Services)),
	}
	if f.Parameters == nil {
		f.Parameters = container.Parameters{}
	}
	for id, msg := range raw.Services {
		f.Services[id] = parseService(msg)
	}
	return f, nil
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv substitutes ${NAME} with the environment value of NAME. Any other
// use of $ is left as written.
func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(m []byte) []byte {
		return []byte(os.Getenv(string(m[2 : len(m)-1])))
	})
}

// parseService returns nil for entries that are not a mapping.
func parseService(msg json.RawMessage) *container.Definition {
	var svc rawService
	if !isObject(msg) || json.Unmarshal(msg, &svc) != nil {
		return nil
	}
	def := &container.Definition{
		Class:     svc.Class,
		Arguments: ParseArguments(svc.Arguments),
	}
	for _, callMsg := range svc.Calls {
		var call rawCall
		if isObject(callMsg) && json.Unmarshal(callMsg, &call) == nil {
			def.Calls = append(def.Calls, container.Call{
				Method:    call.Method,
				Arguments: ParseArguments(call.Arguments),
			})
			continue
		}
		def.Calls = append(def.Calls, container.Call{})
	}
	return def
}

func isObject(msg json.RawMessage) bool {
	s := strings.TrimSpace(string(msg))
	return strings.HasPrefix(s, "{")
}

// ParseArguments converts every value with ParseArgument.
func ParseArguments(values []any) []container.Argument {
	out := make([]container.Argument, len(values))
	for i, v := range values {
		out[i] = ParseArgument(v)
	}
	return out
}

// ParseArgument turns the string forms "@id" and "%path%" into references.
// Any other value is a literal.
func ParseArgument(v any) container.Argument {
	s, ok := v.(string)
	if !ok {
		return container.Value(v)
	}
	switch {
	case strings.HasPrefix(s, "@@"):
		return container.Value(s[1:])
	case len(s) > 1 && s[0] == '@':
		return container.Ref(s[1:])
	case len(s) > 2 && s[0] == '%' && s[len(s)-1] == '%' && !strings.Contains(s[1:len(s)-1], "%"):
		return container.Param(s[1 : len(s)-1])
	default:
		return container.Value(s)
	}
}
