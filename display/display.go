// Package display renders lcswap records as aligned text tables for
// terminal output. Column sets are fixed per record type; widths are
// computed from the actual cell contents.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/shopspring/decimal"

	"github.com/localcoinswap/lcswap"
)

// Options control table rendering.
type Options struct {
	Header  bool // print the column header and separator line
	Summary bool // print the "Found N ..." line above listings
	Color   bool // colorize statuses and trade directions
}

// DefaultOptions prints headers and summaries without color.
var DefaultOptions = Options{Header: true, Summary: true}

// Wallet prints one line per wallet entry.
func Wallet(w io.Writer, entries []lcswap.WalletEntry, opt Options) {
	t := newTable("Name", "Symbol", "ID", "Coin amount", "Fiat amount", "Address", "Payment ID")
	for _, e := range entries {
		t.row(
			e.Name,
			e.Symbol,
			strconv.FormatInt(e.ID, 10),
			amount(e.CoinAmount),
			amount(e.FiatAmount)+" "+e.FiatCurrency,
			e.Address,
			e.PaymentID,
		)
	}
	t.render(w, opt)
}

// DepositAddresses prints one line per deposit address.
func DepositAddresses(w io.Writer, addrs []lcswap.DepositAddress, opt Options) {
	t := newTable("Name", "Symbol", "Balance", "Address", "Payment ID")
	for _, a := range addrs {
		t.row(a.Name, a.Symbol, amount(a.Balance), a.Address, a.PaymentID)
	}
	t.render(w, opt)
}

// Transactions prints a transaction listing.
func Transactions(w io.Writer, page *lcswap.Page[lcswap.Transaction], opt Options) {
	if page.Count == 0 {
		fmt.Fprintln(w, "No transactions found.")
		return
	}
	if opt.Summary {
		summary(w, "transaction", page.Count, len(page.Results))
	}

	t := newTable("Transaction type", "From", "To", "Amount", "Currency", "Timestamp")
	for _, tx := range page.Results {
		t.row(tx.Type, tx.From, tx.To, tx.Amount, tx.Currency, strconv.FormatInt(tx.Timestamp, 10))
	}
	t.render(w, opt)
}

// Ads prints a public ad listing.
func Ads(w io.Writer, page *lcswap.Page[lcswap.Ad], opt Options) {
	if page.Count == 0 {
		fmt.Fprintln(w, "No ads found")
		return
	}
	if opt.Summary {
		summary(w, "ad", page.Count, len(page.Results))
	}

	t := newTable("Trade type", "Currency", "Payment method", "Limits", "Current price", "Location", "Response time", "UUID")
	for i := range page.Results {
		ad := &page.Results[i]
		t.row(
			direction(ad.TradingType, ad.TradingTypeID, opt),
			ad.CoinCurrency,
			ad.PaymentMethod,
			adLimits(ad),
			adPrice(ad),
			location(ad.LocationName, ad.CountryCode),
			strconv.FormatInt(ad.CreatedByResponseTime, 10),
			ad.UUID,
		)
	}
	t.render(w, opt)
}

// MyAds prints your own ads, with activity state instead of creator info.
func MyAds(w io.Writer, page *lcswap.Page[lcswap.Ad], opt Options) {
	if page.Count == 0 {
		fmt.Fprintln(w, "No ads found")
		return
	}
	if opt.Summary {
		summary(w, "ad", page.Count, len(page.Results))
	}

	t := newTable("Trade type", "Currency", "Payment method", "Limits", "Current price", "Location", "Liquidity tracking", "Status", "UUID")
	for i := range page.Results {
		ad := &page.Results[i]
		t.row(
			direction(ad.TradingType, ad.TradingTypeID, opt),
			ad.CoinCurrency,
			ad.PaymentMethod,
			adLimits(ad),
			adPrice(ad),
			location(ad.LocationName, ad.CountryCode),
			onOff(ad.LiquidityTracking),
			activeState(ad.IsActive, opt),
			ad.UUID,
		)
	}
	t.render(w, opt)
}

// Trades prints a trade listing.
func Trades(w io.Writer, page *lcswap.Page[lcswap.Trade], opt Options) {
	if page.Count == 0 {
		fmt.Fprintln(w, "No trades found")
		return
	}
	if opt.Summary {
		summary(w, "trade", page.Count, len(page.Results))
	}

	t := newTable("Status", "Coin amount", "Fiat amount", "Payment method", "Responder", "Ad created by", "Location", "Expires", "Trade UUID", "Ad UUID")
	for i := range page.Results {
		tr := &page.Results[i]
		t.row(
			status(tr.Status, opt),
			amount(tr.CoinAmount)+" "+tr.CoinCurrencySymbol,
			amount(tr.FiatAmount)+" "+tr.FiatCurrencySymbol,
			tr.PaymentMethod,
			tr.Responder,
			tr.CreatedBy,
			location(tr.LocationName, tr.CountryCode),
			strconv.FormatInt(tr.TimeOfExpiry, 10),
			tr.UUID,
			tr.AdUUID,
		)
	}
	t.render(w, opt)
}

// Trade prints a single trade in the listing format.
func Trade(w io.Writer, tr *lcswap.Trade, opt Options) {
	opt.Summary = false
	Trades(w, &lcswap.Page[lcswap.Trade]{Count: 1, Results: []lcswap.Trade{*tr}}, opt)
}

// Ad prints a single ad in the listing format.
func Ad(w io.Writer, ad *lcswap.Ad, opt Options) {
	opt.Summary = false
	Ads(w, &lcswap.Page[lcswap.Ad]{Count: 1, Results: []lcswap.Ad{*ad}}, opt)
}

// amount formats a float without exponent notation or float artifacts.
func amount(f float64) string {
	return decimal.NewFromFloat(f).String()
}

// adLimits combines the limit axis that applies to the ad's direction: buy
// ads bound the crypto size, sell ads the fiat amount.
func adLimits(ad *lcswap.Ad) string {
	if ad.TradingTypeID == lcswap.TradeTypeBuy {
		return amount(ad.MinTradeSize) + " - " + amount(ad.MaxTradeSize) + " " + ad.FiatCurrencySymbol
	}
	return amount(ad.MinFiatLimit) + " - " + amount(ad.MaxFiatLimit) + " " + ad.FiatCurrencySymbol
}

func adPrice(ad *lcswap.Ad) string {
	return amount(ad.CurrentPrice) + " " + ad.FiatCurrencySymbol + "/" + ad.CoinCurrencySymbol
}

func location(name, country string) string {
	return name + ", " + country
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func activeState(active bool, opt Options) string {
	if active {
		return colorize("active", opt, aurora.Green)
	}
	return colorize("paused", opt, aurora.Red)
}

func status(s string, opt Options) string {
	switch s {
	case lcswap.StatusAccepted, lcswap.StatusCompleted, lcswap.StatusFundReceived:
		return colorize(s, opt, aurora.Green)
	case lcswap.StatusRejected:
		return colorize(s, opt, aurora.Red)
	}
	return s
}

func direction(label string, typeID int64, opt Options) string {
	if typeID == lcswap.TradeTypeBuy {
		return colorize(label, opt, aurora.Green)
	}
	return colorize(label, opt, aurora.Yellow)
}

func colorize(s string, opt Options, color func(interface{}) aurora.Value) string {
	if !opt.Color {
		return s
	}
	return color(s).String()
}

func summary(w io.Writer, noun string, count int64, shown int) {
	if int64(shown) == count {
		plural := ""
		if count != 1 {
			plural = "s"
		}
		fmt.Fprintf(w, "Found %d %s%s:\n", count, noun, plural)
		return
	}
	fmt.Fprintf(w, "Found %d %ss (showing top %d):\n", count, noun, shown)
}

// table accumulates rows and renders them with per-column widths. Width
// accounting uses the uncolored cell text so ANSI escapes don't skew the
// layout.
type table struct {
	headers []string
	rows    [][]string
	widths  []int
}

func newTable(headers ...string) *table {
	t := &table{headers: headers, widths: make([]int, len(headers))}
	for i, h := range headers {
		t.widths[i] = len(h)
	}
	return t
}

func (t *table) row(cells ...string) {
	for i, c := range cells {
		if w := visibleLen(c); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer, opt Options) {
	if opt.Header {
		t.line(w, t.headers)
		seps := make([]string, len(t.widths))
		for i, width := range t.widths {
			seps[i] = strings.Repeat("-", width)
		}
		fmt.Fprintln(w, strings.Join(seps, "-+-"))
	}
	for _, r := range t.rows {
		t.line(w, r)
	}
}

func (t *table) line(w io.Writer, cells []string) {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = c + strings.Repeat(" ", t.widths[i]-visibleLen(c))
	}
	fmt.Fprintln(w, strings.Join(padded, " | "))
}

// visibleLen is the printable width of a cell, ignoring ANSI color escapes.
func visibleLen(s string) int {
	n := 0
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			n++
		}
	}
	return n
}
