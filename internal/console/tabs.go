package console

import "fmt"

// Section names a panel of the console
type Section string

const (
	SectionRequest Section = "request"
	SectionHistory Section = "history"
	SectionConfig  Section = "config"
)

// DefaultSections is the tab order of the console
var DefaultSections = []Section{SectionRequest, SectionHistory, SectionConfig}

// Tabs tracks which single section is visible
type Tabs struct {
	sections []Section
	active   int
}

// NewTabs creates tabs over sections with the first one active
func NewTabs(sections ...Section) *Tabs {
	if len(sections) == 0 {
		sections = DefaultSections
	}
	s := make([]Section, len(sections))
	copy(s, sections)
	return &Tabs{sections: s}
}

// Activate makes section the only visible one
func (t *Tabs) Activate(section Section) error {
	for i, s := range t.sections {
		if s == section {
			t.active = i
			return nil
		}
	}
	return fmt.Errorf("unknown section %q", section)
}

// Next activates the following tab, wrapping around
func (t *Tabs) Next() {
	t.active = (t.active + 1) % len(t.sections)
}

// Prev activates the previous tab, wrapping around
func (t *Tabs) Prev() {
	t.active = (t.active - 1 + len(t.sections)) % len(t.sections)
}

// Active returns the visible section
func (t *Tabs) Active() Section {
	return t.sections[t.active]
}

// Visible reports whether section is the one shown
func (t *Tabs) Visible(section Section) bool {
	return t.Active() == section
}

// Sections returns the tab order
func (t *Tabs) Sections() []Section {
	s := make([]Section, len(t.sections))
	copy(s, t.sections)
	return s
}

// TabView is one tab header
type TabView struct {
	Section Section
	Active  bool
}

// RenderTabs maps the tabs to their headers
func RenderTabs(t *Tabs) []TabView {
	views := make([]TabView, len(t.sections))
	for i, s := range t.sections {
		views[i] = TabView{Section: s, Active: i == t.active}
	}
	return views
}
