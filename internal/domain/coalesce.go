package domain

// CoalesceStr picks the first non-empty string.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Float64FromPtrWithDefault dereferences the first non-nil pointer,
// falling back when all are nil. Roster numbers are pointers so an
// unset value and an explicit zero stay distinguishable.
func Float64FromPtrWithDefault(fallback float64, ptrs ...*float64) float64 {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

func Float64Ptr(v float64) *float64 { return &v }
