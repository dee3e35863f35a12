package storage

import (
	"fmt"
	"sort"

	"github.com/joho/godotenv"

	"github.com/blackcoderx/kurl/pkg/command"
)

// LoadDotenv reads a .env file into a named environment. Keys are sorted so
// the variable list renders in a stable order.
func LoadDotenv(path, name string) (*command.Environment, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := command.NewEnvironment(name)
	for _, k := range keys {
		env.AddVariable(k, values[k], false)
	}
	return env, nil
}
