package numeric

import "github.com/shopspring/decimal"

func decOf(i int64) decimal.Decimal { return decimal.NewFromInt(i) }
