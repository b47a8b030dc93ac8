package settlement

import "errors"

// ErrNotMaximal is returned by CheckMaximality when a candidate
// solution admits at least one further transaction without violating
// any party's non-negativity constraint — i.e. it under-settles.
var ErrNotMaximal = errors.New("settlement: candidate solution is not maximal")

// ErrInsolvent is returned by Validate when applying a candidate
// solution's transactions would drive some party's security or
// conversion-augmented wealth negative. A negative currency balance
// alone is not insolvency when conversion covers it.
var ErrInsolvent = errors.New("settlement: candidate solution drives a party negative")
