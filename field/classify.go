package field

import "fmt"

// Classifier turns a field into a below-water (ocean) indicator.
//
// With a Threshold, a cell is below water when value <= *Threshold + Offset.
// With Binary set, boolean and integer input is read as an ocean indicator
// directly (non-zero is ocean). With neither, boolean input is read as an
// ocean indicator and anything else is rejected: continuous data needs a
// threshold before it means anything.
type Classifier struct {
	Threshold *float64
	Offset    float64
	Binary    bool
}

// Threshold is a helper for filling Classifier.Threshold from a literal.
func Threshold(v float64) *float64 { return &v }

// Below classifies f.
func (c Classifier) Below(f *Field) (*Binary, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: no data to classify", ErrValue)
	}
	if c.Binary {
		if f.Kind() == Continuous {
			return nil, fmt.Errorf("%w: %s data cannot be read as an ocean indicator, classify it first", ErrType, f.Kind())
		}
		return f.NonZero(), nil
	}
	if c.Threshold == nil {
		if f.Kind() == Boolean {
			return f.NonZero(), nil
		}
		return nil, fmt.Errorf("%w: threshold required for %s data", ErrType, f.Kind())
	}

	level := *c.Threshold + c.Offset
	below := NewBinary(f.Shape())
	for k, v := range f.Data() {
		below.data[k] = v <= level
	}
	return below, nil
}
