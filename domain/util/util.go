package util

import (
	"fmt"
	"math"
	"math/bits"

	"voteapp/domain"

	"github.com/dustin/go-humanize"
	"github.com/tonkeeper/tongo/tlb"
)

const LamportsPerSol = 1_000_000_000

func LamportsToSolString(lamports tlb.Grams) string {
	return fmt.Sprintf("%v SOL", humanize.CommafWithDigits(float64(lamports)/LamportsPerSol, 9))
}

func LamportsString(lamports tlb.Grams) string {
	return fmt.Sprintf("%v lamports", humanize.Comma(toInt64(uint64(lamports))))
}

// TokenString renders raw asset units with the asset's precision.
func TokenString(amount uint64, decimals uint8) string {
	unit := math.Pow10(int(decimals))
	return fmt.Sprintf("%v tokens", humanize.CommafWithDigits(float64(amount)/unit, int(decimals)))
}

func AddUint64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, domain.ErrorArithmeticOverflow
	}
	return sum, nil
}

func SubUint64(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, domain.ErrorArithmeticOverflow
	}
	return diff, nil
}

func AddGrams(a, b tlb.Grams) (tlb.Grams, error) {
	sum, err := AddUint64(uint64(a), uint64(b))
	return tlb.Grams(sum), err
}

func toInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
