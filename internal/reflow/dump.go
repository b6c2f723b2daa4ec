package reflow

import (
	"bufio"
	"fmt"
	"io"
)

type Entry struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

// Description is a full snapshot of one profile.
type Description struct {
	Index     int      `json:"index"`
	Name      string   `json:"name"`
	Custom    bool     `json:"custom"`
	Slot      int      `json:"slot,omitempty"`
	Active    bool     `json:"active"`
	Setpoints []uint16 `json:"setpoints"`
}

func (m *Manager) List() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]Entry, 0, m.registry.Count())
	for i := 0; i < m.registry.Count(); i++ {
		p := m.registry.Get(i)
		entries = append(entries, Entry{Index: i, Name: p.Name(), Custom: p.Mutable()})
	}
	return entries
}

// Describe returns profile idx without changing the selection.
func (m *Manager) Describe(idx int) (Description, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.describeLocked(idx)
}

// Active returns the active profile as a single consistent snapshot.
func (m *Manager) Active() Description {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, _ := m.describeLocked(m.active)
	return d
}

func (m *Manager) describeLocked(idx int) (Description, error) {
	p := m.registry.Get(idx)
	if p == nil {
		return Description{}, fmt.Errorf("no profile with id %d: %w", idx, ErrOutOfRange)
	}
	temps := p.Setpoints()
	return Description{
		Index:     idx,
		Name:      p.Name(),
		Custom:    p.Mutable(),
		Slot:      m.registry.SlotAt(idx),
		Active:    idx == m.active,
		Setpoints: append([]uint16(nil), temps[:]...),
	}, nil
}

// Dump writes the setpoints of profile idx to w, sixteen per line.
func (m *Manager) Dump(w io.Writer, idx int) error {
	d, err := m.Describe(idx)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	for i, v := range d.Setpoints {
		fmt.Fprintf(bw, "%4d,", v)
		if i == 15 || i == 31 {
			bw.WriteString("\n ")
		}
	}
	bw.WriteString("\n")
	return bw.Flush()
}

// WriteList writes one "index: name" line per profile.
func (m *Manager) WriteList(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range m.List() {
		fmt.Fprintf(bw, "%d: %s\n", e.Index, e.Name)
	}
	return bw.Flush()
}
