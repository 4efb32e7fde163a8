// Package snapshot defines the ordered, typed metric buffer a poll cycle
// produces: a single-writer Builder and the immutable Snapshot it finalizes
// into.
package snapshot

// Type selects which value variant of a Sample is meaningful.
type Type int

const (
	TypeFloat Type = iota
	TypeInt
	TypeUint
	TypeString
)

func (t Type) String() string {
	switch t {
	case TypeFloat:
		return "f64"
	case TypeInt:
		return "i64"
	case TypeUint:
		return "u64"
	case TypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Sample is one named, typed metric value. Unit is optional ("" = none).
// Samples are never mutated after being appended to a Builder.
type Sample struct {
	Name  string
	Unit  string
	Type  Type
	Float float64
	Int   int64
	Uint  uint64
	Str   string
}

// initialCapacity is the builder's first allocation; growth doubles after.
const initialCapacity = 32

// Builder accumulates samples for one poll cycle. It is single-threaded and
// append-only; the terminal operations are Finalize and Discard.
type Builder struct {
	samples []Sample
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) add(s Sample) {
	if b.samples == nil {
		b.samples = make([]Sample, 0, initialCapacity)
	}
	b.samples = append(b.samples, s)
}

// AddFloat appends an f64 sample.
func (b *Builder) AddFloat(name, unit string, v float64) {
	b.add(Sample{Name: name, Unit: unit, Type: TypeFloat, Float: v})
}

// AddInt appends an i64 sample.
func (b *Builder) AddInt(name, unit string, v int64) {
	b.add(Sample{Name: name, Unit: unit, Type: TypeInt, Int: v})
}

// AddUint appends a u64 sample.
func (b *Builder) AddUint(name, unit string, v uint64) {
	b.add(Sample{Name: name, Unit: unit, Type: TypeUint, Uint: v})
}

// AddString appends a string sample. The value is copied; callers may reuse
// their buffer.
func (b *Builder) AddString(name, unit, v string) {
	b.add(Sample{Name: name, Unit: unit, Type: TypeString, Str: v})
}

// Len reports the number of pending samples.
func (b *Builder) Len() int {
	return len(b.samples)
}

// Finalize transfers the accumulated samples to an immutable Snapshot
// without copying and leaves the builder empty. Finalizing an empty builder
// yields an empty snapshot.
func (b *Builder) Finalize() *Snapshot {
	s := &Snapshot{samples: b.samples}
	b.samples = nil
	return s
}

// Discard drops all pending samples. The builder may be reused afterwards.
func (b *Builder) Discard() {
	b.samples = nil
}

// Snapshot is an ordered, immutable sequence of samples. Once returned by
// Finalize it is safe to share across goroutines.
type Snapshot struct {
	samples []Sample
}

// Len reports the number of samples.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.samples)
}

// At returns the sample at index i. Insertion order is preserved.
func (s *Snapshot) At(i int) (Sample, bool) {
	if s == nil || i < 0 || i >= len(s.samples) {
		return Sample{}, false
	}
	return s.samples[i], true
}

// Find returns the first sample with the given name. Names are not required
// to be unique across a snapshot.
func (s *Snapshot) Find(name string) (Sample, bool) {
	if s == nil {
		return Sample{}, false
	}
	for i := range s.samples {
		if s.samples[i].Name == name {
			return s.samples[i], true
		}
	}
	return Sample{}, false
}
