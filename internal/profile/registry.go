package profile

import (
	"fmt"
)

// Registry is the ordered catalogue of profiles. Custom profiles always form
// a contiguous tail, numbered 1..K in order, so a custom slot number maps to
// a registry index by arithmetic alone.
type Registry struct {
	profiles []Profile
	customs  []*Custom
}

func NewRegistry(profiles ...Profile) (*Registry, error) {
	r := &Registry{profiles: profiles}

	for i, p := range profiles {
		c, ok := p.(*Custom)
		if !ok {
			if len(r.customs) > 0 {
				return nil, fmt.Errorf("built-in profile %q at index %d follows a custom profile", p.Name(), i)
			}
			continue
		}
		if c.Slot.Number != len(r.customs)+1 {
			return nil, fmt.Errorf("custom profile %q has slot %d, want %d", c.Name(), c.Slot.Number, len(r.customs)+1)
		}
		if c.Slot.Length != SlotLength {
			return nil, fmt.Errorf("custom profile %q has slot length %d, want %d", c.Name(), c.Slot.Length, SlotLength)
		}
		for _, prev := range r.customs {
			if overlaps(prev.Slot, c.Slot) {
				return nil, fmt.Errorf("slots %d and %d overlap", prev.Slot.Number, c.Slot.Number)
			}
		}
		r.customs = append(r.customs, c)
	}

	if len(profiles) == 0 {
		return nil, fmt.Errorf("registry has no profiles")
	}
	return r, nil
}

func overlaps(a, b Slot) bool {
	return a.Offset < b.Offset+b.Length && b.Offset < a.Offset+a.Length
}

func (r *Registry) Count() int { return len(r.profiles) }

// Get returns the profile at i, or nil when i is out of range.
func (r *Registry) Get(i int) Profile {
	if i < 0 || i >= len(r.profiles) {
		return nil
	}
	return r.profiles[i]
}

func (r *Registry) Name(i int) string {
	if p := r.Get(i); p != nil {
		return p.Name()
	}
	return ""
}

func (r *Registry) Setpoints(i int) [NumSetpoints]uint16 {
	if p := r.Get(i); p != nil {
		return p.Setpoints()
	}
	return [NumSetpoints]uint16{}
}

// Customs returns the custom profiles in slot order.
func (r *Registry) Customs() []*Custom { return r.customs }

// Custom returns the profile for a 1-based slot number.
func (r *Registry) Custom(slot int) (*Custom, bool) {
	if slot < 1 || slot > len(r.customs) {
		return nil, false
	}
	return r.customs[slot-1], true
}

// IndexOfSlot maps a 1-based slot number to its registry index.
func (r *Registry) IndexOfSlot(slot int) (int, bool) {
	if slot < 1 || slot > len(r.customs) {
		return 0, false
	}
	return len(r.profiles) - len(r.customs) + slot - 1, true
}

// SlotAt returns the 1-based slot number of the profile at index i, or 0 for
// a built-in or out of range index.
func (r *Registry) SlotAt(i int) int {
	first := len(r.profiles) - len(r.customs)
	if i < first || i >= len(r.profiles) {
		return 0
	}
	return i - first + 1
}
