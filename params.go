package lcswap

import (
	"strconv"
	"strings"
)

// Ref identifies a currency, payment method or trade type by numeric id,
// symbol or display name. Matching against the trade parameter table is
// case-insensitive; ids are compared in their string form.
type Ref string

// RefID builds a Ref from a known numeric id.
func RefID(id int64) Ref {
	return Ref(strconv.FormatInt(id, 10))
}

// CurrencyParam is one entry of the crypto or fiat currency table.
type CurrencyParam struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Symbol string `json:"symbol"`
}

// PaymentMethodParam is one entry of the payment method table.
type PaymentMethodParam struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TradeTypeParam is one entry of the trade type table (buy/sell).
type TradeTypeParam struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ActionName string `json:"action_name"`
}

// TradeParams is a snapshot of the exchange's enumerated reference data.
// The API requires numeric ids in requests; the lookup methods below turn
// human references (symbol, title, name) into those ids. A TradeParams value
// is never mutated once fetched, only replaced wholesale.
type TradeParams struct {
	CryptoCurrencies []CurrencyParam      `json:"crypto_currencies"`
	FiatCurrencies   []CurrencyParam      `json:"fiat_currencies"`
	PaymentMethods   []PaymentMethodParam `json:"payment_methods"`
	TradeTypes       []TradeTypeParam     `json:"trade_types"`
}

// CryptoCurrencyID resolves a crypto currency reference (id, title or
// symbol) to its numeric id.
func (p *TradeParams) CryptoCurrencyID(ref Ref) (int64, error) {
	if p == nil || len(p.CryptoCurrencies) == 0 {
		return 0, &InvalidParameterError{Kind: "crypto currency"}
	}
	return currencyID(p.CryptoCurrencies, ref, "crypto currency")
}

// FiatCurrencyID resolves a fiat currency reference (id, title or symbol)
// to its numeric id.
func (p *TradeParams) FiatCurrencyID(ref Ref) (int64, error) {
	if p == nil || len(p.FiatCurrencies) == 0 {
		return 0, &InvalidParameterError{Kind: "fiat currency"}
	}
	return currencyID(p.FiatCurrencies, ref, "fiat currency")
}

// PaymentMethodID resolves a payment method reference (id or name) to its
// numeric id.
func (p *TradeParams) PaymentMethodID(ref Ref) (int64, error) {
	if p == nil || len(p.PaymentMethods) == 0 {
		return 0, &InvalidParameterError{Kind: "payment method"}
	}
	needle := strings.ToLower(string(ref))
	for i := range p.PaymentMethods {
		m := &p.PaymentMethods[i]
		if string(ref) == strconv.FormatInt(m.ID, 10) ||
			needle == strings.ToLower(m.Name) {
			return m.ID, nil
		}
	}
	return 0, &InvalidParameterError{Kind: "payment method", Ref: string(ref)}
}

// TradeTypeID resolves a trade type reference (id, name or action name) to
// its numeric id.
func (p *TradeParams) TradeTypeID(ref Ref) (int64, error) {
	if p == nil || len(p.TradeTypes) == 0 {
		return 0, &InvalidParameterError{Kind: "trade type"}
	}
	needle := strings.ToLower(string(ref))
	for i := range p.TradeTypes {
		t := &p.TradeTypes[i]
		if string(ref) == strconv.FormatInt(t.ID, 10) ||
			needle == strings.ToLower(t.Name) ||
			needle == strings.ToLower(t.ActionName) {
			return t.ID, nil
		}
	}
	return 0, &InvalidParameterError{Kind: "trade type", Ref: string(ref)}
}

// currencyID scans a currency table in order and returns the first entry
// whose id, title or symbol matches the reference.
func currencyID(table []CurrencyParam, ref Ref, kind string) (int64, error) {
	needle := strings.ToLower(string(ref))
	for i := range table {
		c := &table[i]
		if string(ref) == strconv.FormatInt(c.ID, 10) ||
			needle == strings.ToLower(c.Title) ||
			needle == strings.ToLower(c.Symbol) {
			return c.ID, nil
		}
	}
	return 0, &InvalidParameterError{Kind: kind, Ref: string(ref)}
}
