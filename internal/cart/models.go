package cart

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Price is a unit price. It is stored as a JSON number; stored strings are
// accepted and anything unparseable reads back as 0.
type Price float64

// ParsePrice accepts decimal text and rejects NaN, infinities and values <= 0.
func ParsePrice(s string) (Price, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, ErrInvalidItem
	}
	return Price(f), nil
}

func (p Price) Decimal() decimal.Decimal {
	f := float64(p)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func (p Price) String() string { return p.Decimal().StringFixed(2) }

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	*p = Price(f)
	return nil
}

type Item struct {
	Name  string `json:"name"`
	Price Price  `json:"price"`
}

// Sum adds prices as decimals so the displayed and ordered totals agree.
func Sum(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Decimal())
	}
	return total
}

type Status string

const StatusPreparing Status = "Preparing"

type Order struct {
	ID            int64  `json:"id"`
	Items         []Item `json:"items"`
	PaymentMethod string `json:"paymentMethod"`
	Status        Status `json:"status"`
	Customer      string `json:"customer"`
	OrderDate     string `json:"orderDate"`
}

func (o Order) Total() decimal.Decimal { return Sum(o.Items) }

type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

var _ json.Unmarshaler = (*Price)(nil)
