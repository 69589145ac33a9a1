// Package reference generates the human-readable identifiers used across the
// system: transaction and withdrawal references, account numbers, and
// transaction PINs.
package reference

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Deposit returns a deposit reference: DEP + unix millis + 5 random digits.
func Deposit() string {
	return fmt.Sprintf("DEP%d%s", time.Now().UnixMilli(), digits(5))
}

// Withdrawal returns a withdrawal reference: WD + 14-digit timestamp
// (yyyymmddhhmmss) + 6 random digits.
func Withdrawal() string {
	return fmt.Sprintf("WD%s%s", time.Now().Format("20060102150405"), digits(6))
}

// Transfer returns a transfer reference: TRF + unix millis + 5 random digits.
func Transfer() string {
	return fmt.Sprintf("TRF%d%s", time.Now().UnixMilli(), digits(5))
}

// AccountNumber returns a 10-digit account number with a non-zero leading
// digit. It is a display identifier, not a real routing number.
func AccountNumber() string {
	first := digitInRange(1, 9)
	return fmt.Sprintf("%d%s", first, digits(9))
}

// PIN returns a 4-digit transaction PIN.
func PIN() string {
	return digits(4)
}

// digits returns n random decimal digits.
func digits(n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte('0' + digitInRange(0, 9))
	}
	return string(out)
}

func digitInRange(lo, hi int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(hi-lo+1))
	if err != nil {
		// crypto/rand failing means the platform RNG is broken
		panic(fmt.Sprintf("reference: rand: %v", err))
	}
	return lo + n.Int64()
}
