// Package catalog holds the fixed reference data records are validated against.
package catalog

import "sort"

var movements = []string{
	"Back Squat",
	"Front Squat",
	"Overhead Squat",
	"Deadlift",
	"Bench Press",
	"Shoulder Press",
	"Push Press",
	"Push Jerk",
	"Clean",
	"Clean & Jerk",
	"Snatch",
	"Power Clean",
	"Power Snatch",
	"Thruster",
	"Sumo Deadlift High Pull",
}

var benchmarks = []string{
	"Fran",
	"Cindy",
	"Murph",
	"Helen",
	"Diane",
	"Grace",
	"Isabel",
	"Karen",
	"Annie",
	"Chelsea",
	"DT",
	"Jackie",
	"Mary",
	"Nancy",
	"Eva",
	"Filthy Fifty",
	"Fight Gone Bad",
	"The Seven",
	"Badger",
	"King Kong",
}

var units = []string{"lbs", "kg"}

// Catalog is an immutable set of valid names. The zero value is empty.
type Catalog struct {
	movements  []string
	benchmarks []string
	units      []string

	movementSet  map[string]struct{}
	benchmarkSet map[string]struct{}
	unitSet      map[string]struct{}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(movements, benchmarks, units)
}

// New builds a catalog from the given names. Inputs are copied.
func New(movementNames, benchmarkNames, unitNames []string) *Catalog {
	c := &Catalog{
		movements:  append([]string(nil), movementNames...),
		benchmarks: append([]string(nil), benchmarkNames...),
		units:      append([]string(nil), unitNames...),
	}
	c.movementSet = toSet(c.movements)
	c.benchmarkSet = toSet(c.benchmarks)
	c.unitSet = toSet(c.units)
	return c
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func (c *Catalog) IsMovement(name string) bool {
	_, ok := c.movementSet[name]
	return ok
}

func (c *Catalog) IsBenchmark(name string) bool {
	_, ok := c.benchmarkSet[name]
	return ok
}

func (c *Catalog) IsUnit(unit string) bool {
	_, ok := c.unitSet[unit]
	return ok
}

// Movements returns a copy of the movement names in catalog order.
func (c *Catalog) Movements() []string { return append([]string(nil), c.movements...) }

// Benchmarks returns a copy of the benchmark names in catalog order.
func (c *Catalog) Benchmarks() []string { return append([]string(nil), c.benchmarks...) }

// Units returns a copy of the allowed weight units.
func (c *Catalog) Units() []string { return append([]string(nil), c.units...) }

// Sorted returns names sorted alphabetically without touching the input.
func Sorted(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}
