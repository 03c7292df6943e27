package contracts

// ProgressFunc receives fractional progress in [0,1] with an optional
// message. Implementations must be fire-and-forget and must never fail;
// a nil ProgressFunc is valid and reporting to it is a no-op.
type ProgressFunc func(fraction float64, message string)

// Report invokes the callback if one is set.
func (f ProgressFunc) Report(fraction float64, message string) {
	if f != nil {
		f(fraction, message)
	}
}

// Scaled returns a ProgressFunc that maps [0,1] onto [from,to] of the
// parent callback, so a sub-phase can report its own fractions.
func (f ProgressFunc) Scaled(from, to float64) ProgressFunc {
	if f == nil {
		return nil
	}
	return func(fraction float64, message string) {
		f(from+(to-from)*fraction, message)
	}
}
