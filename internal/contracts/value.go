package contracts

// Value is a nullable metric value. Missing observations are explicit
// nulls; no sentinel number ever stands in for "missing".
type Value struct {
	Float float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Some returns a valid Value
func Some(f float64) Value {
	return Value{Float: f, Valid: true}
}

// Null returns a missing Value
func Null() Value {
	return Value{}
}

// Or returns the value if valid, otherwise fallback.
func (v Value) Or(fallback float64) float64 {
	if v.Valid {
		return v.Float
	}
	return fallback
}
