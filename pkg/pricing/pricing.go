package pricing

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var priceRe = regexp.MustCompile(`Rp\s+([\d.,]+)`)

// ExtractPrice pulls the numeric amount out of a display price such as
// "Rp 35.000/kg" (dot as thousands separator, comma as decimal separator).
// Malformed input yields 0 rather than an error; callers must tolerate the
// silent zero.
func ExtractPrice(priceString string) float64 {
	match := priceRe.FindStringSubmatch(priceString)
	if match == nil {
		return 0
	}

	normalized := strings.ReplaceAll(match[1], ".", "")
	normalized = strings.ReplaceAll(normalized, ",", ".")

	price, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0
	}
	return price
}

// Delivery methods accepted at checkout.
const (
	DeliveryStandard = "standard"
	DeliveryExpress  = "express"
	DeliverySameDay  = "same_day"
)

// DeliveryCost returns the flat delivery fee for a method. Unknown methods
// cost nothing, same as standard delivery.
func DeliveryCost(deliveryMethod string) float64 {
	switch deliveryMethod {
	case DeliveryExpress:
		return 20000
	case DeliverySameDay:
		return 35000
	default:
		return 0
	}
}

// GenerateOrderNumber produces an identifier of the form ORD-YYMMDD-RRRR.
// The random suffix is not globally unique; the orders table's unique
// constraint is the only collision guard and generation does not retry.
func GenerateOrderNumber() string {
	now := time.Now()
	random := rand.Intn(10000)
	return fmt.Sprintf("ORD-%s-%04d", now.Format("060102"), random)
}
