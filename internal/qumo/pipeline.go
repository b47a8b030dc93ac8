package qumo

// Reduce runs the full Model -> Boxify -> ToEquations -> ToPenalties ->
// Extract pipeline in place on m, returning the resulting QUMO
// instance. A non-nil *PenaltyWarning accompanies a nil error when
// lambda was approximately zero; it is advisory, not a failure.
func Reduce(m *Model, lambda float64) (Instance, *PenaltyWarning, error) {
	if err := Boxify(m); err != nil {
		return Instance{}, nil, err
	}
	if err := ToEquations(m); err != nil {
		return Instance{}, nil, err
	}
	warning, err := ToPenalties(m, lambda)
	if err != nil {
		return Instance{}, nil, err
	}
	return Extract(m), warning, nil
}

// ReduceClone deep-copies m, runs Reduce on the copy, and returns both
// the transformed copy and the resulting instance — the pure variant
// of Reduce for callers that want to keep their original model intact.
func ReduceClone(m *Model, lambda float64) (*Model, Instance, *PenaltyWarning, error) {
	out := m.Clone()
	inst, warning, err := Reduce(out, lambda)
	if err != nil {
		return nil, Instance{}, nil, err
	}
	return out, inst, warning, nil
}
