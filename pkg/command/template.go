package command

import (
	"time"

	"github.com/google/uuid"
)

// Template is a named snapshot of a command. The snapshot is owned: loading
// a template clones it, so template and live command evolve independently.
type Template struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Command     CurlCommand `yaml:"command"`
	Category    string      `yaml:"category,omitempty"`
	CreatedAt   time.Time   `yaml:"created_at"`
	UpdatedAt   time.Time   `yaml:"updated_at"`
}

// NewTemplate snapshots cmd under the given name.
func NewTemplate(name string, cmd *CurlCommand) Template {
	now := time.Now().UTC()
	return Template{
		ID:        uuid.NewString(),
		Name:      name,
		Command:   *cmd.Clone(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Load returns a fresh copy of the stored command.
func (t *Template) Load() *CurlCommand {
	return t.Command.Clone()
}
