package payment

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const receiptPrefix = "RCP"

// NextReceiptNo returns the receipt number following the highest numbered one
// in payments, zero-padded to 3 digits: RCP001, RCP002... Receipts without a
// numeric suffix are ignored.
func NextReceiptNo(payments []Payment) string {
	var max int
	for _, p := range payments {
		if n, ok := receiptNumber(p.ReceiptNo); ok && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", receiptPrefix, max+1)
}

func receiptNumber(receiptNo string) (int, bool) {
	if !strings.HasPrefix(receiptNo, receiptPrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(receiptNo, receiptPrefix))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Recent returns at most n payments, most recent first. Payments sharing a date keep their order.
// payments is left untouched.
func Recent(payments []Payment, n int) []Payment {
	sorted := append([]Payment(nil), payments...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	if sorted == nil {
		sorted = []Payment{}
	}
	return sorted
}

// Total sums the amount of payments.
func Total(payments []Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}
