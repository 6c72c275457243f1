package pos

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const suffixLen = 6

// GenerateTransactionNumber returns a date-stamped receipt number such as
// TRX-20261018-3F9A1C. The suffix is random; uniqueness is not guaranteed.
func GenerateTransactionNumber(now time.Time) string {
	return stampedNumber("TRX", now)
}

// GeneratePackingSlipNumber returns a number such as PAK-20261018-B71E02.
func GeneratePackingSlipNumber(now time.Time) string {
	return stampedNumber("PAK", now)
}

func stampedNumber(prefix string, now time.Time) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")

	return prefix + "-" + now.Format("20060102") + "-" + strings.ToUpper(id[:suffixLen])
}
