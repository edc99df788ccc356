package go_wcpay

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/ecomkit/go-wcpay/consts"
	"github.com/ecomkit/go-wcpay/store"
	"github.com/ecomkit/go-wcpay/wallet"
)

// Transformer maps the store's cart model onto the wallet display model
// and wallet-returned data back onto the store's address schema.
//
// It is resolved once from client configuration; the tax-inclusive flag
// and target precision are fixed for the lifetime of a client.
type Transformer struct {
	// TargetDecimals is the minor-unit precision the payment SDK expects.
	TargetDecimals int
	// PricesIncludeTax mirrors the store's tax-inclusive display setting.
	PricesIncludeTax bool
}

func (t Transformer) normalize(amount int64, sourceMinorUnit int) int64 {
	return TransformPrice(amount, sourceMinorUnit, t.TargetDecimals)
}

// Total is the cart total in wallet minor units.
func (t Transformer) Total(c *store.Cart) int64 {
	if c == nil {
		return 0
	}
	return t.normalize(c.Totals.TotalPrice, c.Totals.CurrencyMinorUnit)
}

// DisplayItems derives the wallet sheet line items from a cart snapshot.
//
// If the items would sum to more than the cart's net total the list is
// dropped entirely and the wallet shows only the aggregate total; an
// inconsistent breakdown would hard-fail validation inside the SDK over
// a rounding mismatch.
func (t Transformer) DisplayItems(c *store.Cart) []wallet.DisplayItem {
	if c == nil {
		return nil
	}
	mu := c.Totals.CurrencyMinorUnit
	items := make([]wallet.DisplayItem, 0, len(c.Items)+5)
	for _, it := range c.Items {
		amount := it.Totals.LineSubtotal
		if t.PricesIncludeTax {
			amount += it.Totals.LineSubtotalTax
		}
		items = append(items, wallet.DisplayItem{
			Name:   itemName(it),
			Amount: t.normalize(amount, mu),
		})
	}

	shipping := c.Totals.TotalShipping
	if t.PricesIncludeTax {
		shipping += c.Totals.TotalShippingTax
	}
	if shipping != 0 {
		items = append(items, wallet.DisplayItem{Name: "Shipping", Amount: t.normalize(shipping, mu)})
	}
	if c.Totals.TotalDiscount != 0 {
		items = append(items, wallet.DisplayItem{Name: "Discount", Amount: -t.normalize(c.Totals.TotalDiscount, mu)})
	}
	if c.Totals.TotalFees != 0 {
		items = append(items, wallet.DisplayItem{Name: "Fees", Amount: t.normalize(c.Totals.TotalFees, mu)})
	}
	if !t.PricesIncludeTax && c.Totals.TotalTax != 0 {
		items = append(items, wallet.DisplayItem{Name: "Tax", Amount: t.normalize(c.Totals.TotalTax, mu)})
	}
	if c.Totals.TotalRefund != 0 {
		items = append(items, wallet.DisplayItem{Name: "Refund", Amount: -t.normalize(c.Totals.TotalRefund, mu)})
	}

	var sum int64
	for _, it := range items {
		sum += it.Amount
	}
	if t.normalize(c.Totals.TotalPrice-c.Totals.TotalRefund, mu) < sum {
		return []wallet.DisplayItem{}
	}
	return items
}

// ShippingOptions flattens the first shipping package's rates into the
// wallet shape: previously selected rate first, capped at the wallet UI
// bound, amounts normalized (tax included when display is tax-inclusive).
func (t Transformer) ShippingOptions(c *store.Cart) []wallet.ShippingOption {
	if c == nil || len(c.ShippingRates) == 0 {
		return nil
	}
	mu := c.Totals.CurrencyMinorUnit
	src := c.ShippingRates[0].ShippingRates
	rates := make([]store.ShippingRate, len(src))
	copy(rates, src)

	sort.SliceStable(rates, func(i, j int) bool {
		return rates[i].Selected && !rates[j].Selected
	})
	if len(rates) > consts.MaxShippingRates {
		rates = rates[:consts.MaxShippingRates]
	}

	options := make([]wallet.ShippingOption, 0, len(rates))
	for _, r := range rates {
		amount := r.Price
		if t.PricesIncludeTax {
			amount += r.Taxes
		}
		options = append(options, wallet.ShippingOption{
			ID:               r.RateID,
			DisplayName:      html.UnescapeString(r.Name),
			Amount:           t.normalize(amount, mu),
			DeliveryEstimate: deliveryEstimate(r),
		})
	}
	return options
}

// ShippingAddressForStore maps a wallet shipping contact onto the
// store's address schema. The free-text recipient name splits at the
// first space; missing fields default to empty.
func (t Transformer) ShippingAddressForStore(name string, a wallet.Address) store.Address {
	first, last := splitName(name)
	return store.Address{
		FirstName: first,
		LastName:  last,
		Company:   a.Organization,
		Address1:  a.Line1,
		Address2:  a.Line2,
		City:      a.City,
		State:     a.State,
		Postcode:  strings.ReplaceAll(a.PostalCode, " ", ""),
		Country:   a.Country,
	}
}

// BillingAddressForStore maps wallet billing details onto the store's
// address schema. Billing requires a non-empty last name downstream, so
// it defaults to "-" when the wallet supplied none; shipping does not.
func (t Transformer) BillingAddressForStore(d wallet.BillingDetails) store.Address {
	addr := t.ShippingAddressForStore(d.Name, d.Address)
	if addr.LastName == "" {
		addr.LastName = "-"
	}
	addr.Email = d.Email
	addr.Phone = normalizePhone(d.Phone)
	return addr
}

func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if i := strings.Index(name, " "); i >= 0 {
		return name[:i], name[i+1:]
	}
	return name, ""
}

var phoneReplacer = strings.NewReplacer("(", "", ")", "", "-", "", " ", "")

func normalizePhone(phone string) string {
	return phoneReplacer.Replace(phone)
}

func itemName(it store.Item) string {
	name := html.UnescapeString(it.Name)
	for _, v := range it.Variation {
		if v.Attribute == "" && v.Value == "" {
			continue
		}
		name += fmt.Sprintf(", %s: %s", html.UnescapeString(v.Attribute), html.UnescapeString(v.Value))
	}
	if it.Quantity > 1 {
		name += fmt.Sprintf(" (x%d)", it.Quantity)
	}
	return name
}

func deliveryEstimate(r store.ShippingRate) string {
	var parts []string
	for _, key := range []string{"pickup_address", "pickup_details"} {
		for _, m := range r.MetaData {
			if m.Key == key && m.Value != "" {
				parts = append(parts, html.UnescapeString(m.Value))
			}
		}
	}
	return strings.Join(parts, ", ")
}
