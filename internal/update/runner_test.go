package update

import (
	"fmt"
	"strings"
)

// mockRunner records commands for testing. Failures are keyed by the first
// two tokens of a command (e.g. "sudo rm") because later tokens contain
// per-test temporary paths.
type mockRunner struct {
	commands  []string
	errors    map[string]error
	onExtract func(dir string) error
}

func newMockRunner() *mockRunner {
	return &mockRunner{errors: make(map[string]error)}
}

func (m *mockRunner) key(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + args[0]
}

func (m *mockRunner) Run(name string, args ...string) ([]byte, error) {
	m.commands = append(m.commands, name+" "+strings.Join(args, " "))
	if err, ok := m.errors[m.key(name, args...)]; ok {
		return nil, err
	}
	return nil, nil
}

func (m *mockRunner) RunIn(dir, name string, args ...string) ([]byte, error) {
	m.commands = append(m.commands, name+" "+strings.Join(args, " "))
	if err, ok := m.errors[m.key(name, args...)]; ok {
		return nil, err
	}
	if len(args) > 0 && args[0] == "--appimage-extract" && m.onExtract != nil {
		return nil, m.onExtract(dir)
	}
	return nil, nil
}

// ran reports whether any recorded command starts with prefix.
func (m *mockRunner) ran(prefix string) bool {
	for _, cmd := range m.commands {
		if strings.HasPrefix(cmd, prefix) {
			return true
		}
	}
	return false
}

// failOn makes every command whose first two tokens match key fail.
func (m *mockRunner) failOn(key string) {
	m.errors[key] = fmt.Errorf("exit status 1")
}
