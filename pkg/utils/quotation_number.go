package utils

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// QuotationNumberPrefix prefixes every generated quotation number
const QuotationNumberPrefix = "QT"

// GenerateQuotationNumber returns "QT-YYYYMMDD-NNNN" for the calendar date of
// now, with NNNN drawn uniformly from [1000, 9999].
// No uniqueness check is made here; collisions surface as a unique-index
// violation when the quotation is stored.
func GenerateQuotationNumber(now time.Time) string {
	return fmt.Sprintf("%s-%s-%d", QuotationNumberPrefix, now.Format("20060102"), 1000+rand.IntN(9000))
}
