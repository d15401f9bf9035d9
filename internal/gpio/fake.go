package gpio

// FakeOutput is a test double that records the levels written to it.
type FakeOutput struct {
	// Level is the level currently driven on the line.
	Level bool

	// Writes contains every level passed to SetValue, in order.
	Writes []bool

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Value()
	ReadError error

	// WriteError, if set, will be returned by SetValue()
	WriteError error
}

// NewFakeOutput creates a FakeOutput that starts at the given level.
func NewFakeOutput(high bool) *FakeOutput {
	return &FakeOutput{Level: high}
}

func (f *FakeOutput) Value() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}
	return f.Level, nil
}

func (f *FakeOutput) SetValue(high bool) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Writes = append(f.Writes, high)
	f.Level = high
	return nil
}

// Close marks the output as closed.
func (f *FakeOutput) Close() error {
	f.Closed = true
	return nil
}
