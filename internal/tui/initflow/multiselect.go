package initflow

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
)

// stdlibMultiSelect is a multi select whose submit help reflects how many
// libraries will be linked.
type stdlibMultiSelect struct {
	*huh.MultiSelect[string]
	keymap *huh.KeyMap
}

func newStdlibMultiSelect(selected *[]string) *stdlibMultiSelect {
	return &stdlibMultiSelect{
		MultiSelect: huh.NewMultiSelect[string]().Value(selected),
	}
}

func (s *stdlibMultiSelect) Options(options ...huh.Option[string]) *stdlibMultiSelect {
	s.MultiSelect.Options(options...)
	return s
}

func (s *stdlibMultiSelect) WithKeyMap(k *huh.KeyMap) huh.Field {
	s.keymap = k
	s.MultiSelect.WithKeyMap(k)
	return s
}

func (s *stdlibMultiSelect) KeyBinds() []key.Binding {
	binds := s.MultiSelect.KeyBinds()
	if s.keymap == nil {
		return binds
	}

	submitKeys := s.keymap.MultiSelect.Submit.Keys()
	if len(submitKeys) == 0 {
		return binds
	}

	helpDesc := "continue without libraries"
	if n := submitCount(s.MultiSelect); n > 0 {
		helpDesc = fmt.Sprintf("link %d librar%s", n, pluralY(n))
	}

	for i := range binds {
		if !bindingHasKeys(binds[i], submitKeys) {
			continue
		}
		helpKey := binds[i].Help().Key
		if helpKey == "" {
			helpKey = submitKeys[0]
		}
		binds[i].SetHelp(helpKey, helpDesc)
		break
	}

	return binds
}

func (s *stdlibMultiSelect) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := s.MultiSelect.Update(msg)
	s.MultiSelect = model.(*huh.MultiSelect[string])
	return s, cmd
}

func submitCount(m *huh.MultiSelect[string]) int {
	value, ok := m.GetValue().([]string)
	if !ok {
		return 0
	}
	return len(value)
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func bindingHasKeys(binding key.Binding, keys []string) bool {
	bindingKeys := binding.Keys()
	if len(bindingKeys) != len(keys) {
		return false
	}
	for i := range keys {
		if bindingKeys[i] != keys[i] {
			return false
		}
	}
	return true
}
