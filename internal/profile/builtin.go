package profile

// CHIPQUIK TS391LT50 low-temp lead-free paste. Liquidus 138°C, peak 165°C.
var ts391lt50 = NewBuiltin("CHIPQUIK TS391LT50", [NumSetpoints]uint16{
	// preheat to 90°C
	50, 50, 55,
	60, 65, 70,
	75, 80, 85,
	90, 90, 90,

	// soak at 130°C with a gentle rise
	95, 98, 102,
	106, 110, 114,
	118, 122, 126,
	130, 130, 130,
	132, 134, 135,
	136, 137, 138,

	// ramp to peak
	145, 152, 158,
	165, 165, 165,

	// controlled cooldown until below liquidus, then faster
	158, 152, 145,
	138, 130, 120,
	108, 95, 82,
	68, 55, 0,
})

// AMTECH SYNTECH-LF normal-temp lead-free paste, peak adjusted to 245°C.
var syntechLF = NewBuiltin("AMTECH SYNTECH-LF", [NumSetpoints]uint16{
	50, 50, 50, 50, 60, 70, 80, 90, 100, 110, 120, 130, 140, 149, 158, 166,
	175, 184, 193, 201, 210, 219, 230, 240, 245, 240, 230, 219, 212, 205, 198, 191,
	184, 177, 157, 137, 117, 97, 77, 57, 0, 0, 0, 0, 0, 0, 0, 0,
})

// Storage layout of the custom slots. The two bytes ahead of each region
// hold a validity marker owned by the storage layer.
const (
	slot1Offset = 0 + 2
	slot2Offset = 128 + 2
)

// Builtins returns the compiled-in profiles in registry order.
func Builtins() []Profile {
	return []Profile{ts391lt50, syntechLF}
}

// Default builds the standard registry: the built-ins followed by two
// custom slots.
func Default() *Registry {
	profiles := Builtins()
	profiles = append(profiles,
		NewCustom("CUSTOM #1", Slot{Number: 1, Offset: slot1Offset, Length: SlotLength}),
		NewCustom("CUSTOM #2", Slot{Number: 2, Offset: slot2Offset, Length: SlotLength}),
	)

	r, err := NewRegistry(profiles...)
	if err != nil {
		panic("invalid default profile registry: " + err.Error())
	}
	return r
}

// StorageSize is the minimum number of storage bytes the default layout needs.
func StorageSize() int {
	return slot2Offset + SlotLength
}
