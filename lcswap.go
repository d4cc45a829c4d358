// Package lcswap is a client for the LocalCoinSwap peer-to-peer exchange
// REST API. It authenticates with a bearer token and covers the wallet,
// ad and trade lifecycle endpoints, flattening the API's nested payloads
// into the package's record types.
package lcswap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	lcsAPIURL = "https://api.localcoinswap.com"
	// locale is fixed for now
	lcsDefaultBaseURL = lcsAPIURL + "/en/api"

	lcsTradeParams    = "new-trade/"
	lcsPortfolio      = "wallet/AJAX/get-portfolio-data/"
	lcsWalletInfo     = "wallet/AJAX/get-wallet-info/%d/"
	lcsWithdrawCreate = "wallet/withdraw/create/"
	lcsTransactions   = "wallet/transactions/"
	lcsAdByUUID       = "trade/%s"
	lcsAdListing      = "trade/"
	lcsMyAds          = "user-trade/%s/"
	lcsAdCreate       = "user-trade/"
	lcsAdControl      = "user-trade/update-delete/%s/"
	lcsContract       = "contracts/%s/"
	lcsContractCreate = "contracts/"
	lcsContractStatus = "contracts/status/%s/"

	defaultTimeout  = 10 * time.Second
	withdrawTimeout = 20 * time.Second

	defaultAdsLimit          = 20
	defaultMyAdsLimit        = 5
	defaultTradesLimit       = 10
	defaultTransactionsLimit = 20
	defaultAdsOrdering       = "-popularity"

	userAgent = "lcswap/go"
)

var errTokenEmpty = errors.New("api token is empty")

// Client talks to the LocalCoinSwap REST API. It owns one HTTP session and,
// unless constructed with WithoutParams, a snapshot of the exchange's trade
// parameter table used to resolve human currency/payment-method references
// into the numeric ids the API requires.
//
// All methods issue a single synchronous request (one per page for the
// fetch-all listings). The held parameter table is safe for concurrent
// reads; RefreshTradeParams needs external synchronization.
type Client struct {
	token       string
	baseURL     string
	http        *http.Client
	log         *logrus.Logger
	verbose     bool
	timeout     time.Duration
	fetchParams bool
	params      *TradeParams
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithBaseURL overrides the API base URL, e.g. for a sandbox or a test
// server. A trailing slash is trimmed.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

// WithHTTPClient supplies the HTTP session, replacing the default one.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger routes the client's logging through l.
func WithLogger(l *logrus.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithVerbose logs every request and response status at debug level.
func WithVerbose(v bool) Option {
	return func(c *Client) { c.verbose = v }
}

// WithTimeout sets the per-request timeout default (10s when unset).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithoutParams skips the initial trade parameter fetch. Reference
// resolution fails until RefreshTradeParams is called.
func WithoutParams() Option {
	return func(c *Client) { c.fetchParams = false }
}

// New builds a Client for the given API token and, by default, fetches the
// trade parameter table so reference resolution works immediately.
func New(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, errTokenEmpty
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		token:       token,
		baseURL:     lcsDefaultBaseURL,
		http:        &http.Client{},
		log:         discard,
		timeout:     defaultTimeout,
		fetchParams: true,
	}
	for _, o := range opts {
		o(c)
	}

	if c.fetchParams {
		if err := c.RefreshTradeParams(ctx); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + "/" + path
}

// doRaw performs one HTTP round trip and returns the response body. A
// status outside 200/201/204 becomes an *APIError carrying the parsed (or
// truncated) error body.
func (c *Client) doRaw(ctx context.Context, method, rawURL string, form url.Values, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Token "+c.token)
	req.Header.Set("User-Agent", userAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	if c.verbose {
		c.log.WithFields(logrus.Fields{"method": method, "url": rawURL}).Debug("request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if c.verbose {
		c.log.WithFields(logrus.Fields{"status": resp.StatusCode, "bytes": len(payload)}).Debug("response")
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
	default:
		return nil, newAPIError(resp, payload)
	}
	return payload, nil
}

// do performs a request and decodes the JSON body into result. A 2xx body
// that fails to decode is a *ResponseError. Pass a nil result for body-less
// operations.
func (c *Client) do(ctx context.Context, method, rawURL string, form url.Values, timeout time.Duration, result any) error {
	payload, err := c.doRaw(ctx, method, rawURL, form, timeout)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(payload, result); err != nil {
		return &ResponseError{Body: string(payload)}
	}
	return nil
}

// Raw issues a request against path (relative to the base URL) and returns
// the undecoded body. It is the escape hatch for endpoint fields the
// normalizers drop.
func (c *Client) Raw(ctx context.Context, method, path string, form url.Values) (json.RawMessage, error) {
	return c.doRaw(ctx, method, c.endpoint(path), form, 0)
}

/*
Trade parameters
*/

// GetTradeParams fetches and parses the trade parameter enumeration without
// touching the table held by the client.
func (c *Client) GetTradeParams(ctx context.Context) (*TradeParams, error) {
	payload, err := c.doRaw(ctx, http.MethodGet, c.endpoint(lcsTradeParams), nil, 0)
	if err != nil {
		return nil, err
	}
	p, err := ParseTradeParams(payload)
	if err != nil {
		return nil, &ResponseError{Body: string(payload)}
	}
	return p, nil
}

// RefreshTradeParams re-fetches the trade parameter table and replaces the
// held snapshot wholesale.
func (c *Client) RefreshTradeParams(ctx context.Context) error {
	p, err := c.GetTradeParams(ctx)
	if err != nil {
		return err
	}
	c.params = p
	return nil
}

// TradeParams returns the held parameter table snapshot, or nil when it was
// never fetched.
func (c *Client) TradeParams() *TradeParams {
	return c.params
}

/*
Wallet operations (portfolio, deposit addresses, withdrawal, transactions)
*/

// GetWallet retrieves the balance, fiat valuation and deposit address of
// every currency in the wallet.
func (c *Client) GetWallet(ctx context.Context) ([]WalletEntry, error) {
	payload, err := c.GetWalletRaw(ctx)
	if err != nil {
		return nil, err
	}
	return ParseWallet(payload)
}

// GetWalletRaw retrieves the undecoded portfolio payload.
func (c *Client) GetWalletRaw(ctx context.Context) (json.RawMessage, error) {
	return c.doRaw(ctx, http.MethodGet, c.endpoint(lcsPortfolio), nil, 0)
}

// GetDepositAddress retrieves the deposit information for one currency,
// given by id, title or symbol.
func (c *Client) GetDepositAddress(ctx context.Context, currency Ref) (*DepositAddress, error) {
	payload, err := c.GetDepositAddressRaw(ctx, currency)
	if err != nil {
		return nil, err
	}
	return ParseDepositAddress(payload)
}

// GetDepositAddressRaw retrieves the undecoded wallet info payload for one
// currency.
func (c *Client) GetDepositAddressRaw(ctx context.Context, currency Ref) (json.RawMessage, error) {
	id, err := c.params.CryptoCurrencyID(currency)
	if err != nil {
		return nil, err
	}
	return c.doRaw(ctx, http.MethodGet, c.endpoint(fmt.Sprintf(lcsWalletInfo, id)), nil, 0)
}

// GetDepositAddresses retrieves deposit information for several currencies,
// one request each, in argument order.
func (c *Client) GetDepositAddresses(ctx context.Context, currencies ...Ref) ([]DepositAddress, error) {
	addrs := make([]DepositAddress, 0, len(currencies))
	for _, cur := range currencies {
		a, err := c.GetDepositAddress(ctx, cur)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, *a)
	}
	return addrs, nil
}

// Withdraw creates a wallet withdrawal. Amount limits and the OTP are
// validated server-side.
func (c *Client) Withdraw(ctx context.Context, req WithdrawalRequest) (*WithdrawalReceipt, error) {
	id, err := c.params.CryptoCurrencyID(req.Currency)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("currency", strconv.FormatInt(id, 10))
	form.Set("to_address", req.ToAddress)
	form.Set("amount", strconv.FormatFloat(req.Amount, 'f', -1, 64))
	form.Set("otp", req.OTP)
	if req.PaymentID != "" {
		form.Set("to_chip", req.PaymentID)
	}

	var raw rawWithdrawal
	err = c.do(ctx, http.MethodPost, c.endpoint(lcsWithdrawCreate), form, withdrawTimeout, &raw)
	if err != nil {
		return nil, err
	}
	return &WithdrawalReceipt{ID: raw.ID}, nil
}

// GetTransactions lists the wallet's transaction history, newest first as
// the API returns it.
func (c *Client) GetTransactions(ctx context.Context, opts ListOptions) (*Page[Transaction], error) {
	limit := opts.limitOr(defaultTransactionsLimit)
	return collectPages(ctx, c, c.transactionsURL(limit), limit, opts, ParseTransactions)
}

// GetTransactionsRaw lists the transaction history with undecoded items.
func (c *Client) GetTransactionsRaw(ctx context.Context, opts ListOptions) (*Page[json.RawMessage], error) {
	limit := opts.limitOr(defaultTransactionsLimit)
	return collectPages(ctx, c, c.transactionsURL(limit), limit, opts, rawItems)
}

func (c *Client) transactionsURL(limit int) string {
	return c.endpoint(lcsTransactions) + "?limit=" + strconv.Itoa(limit) + "&offset=0"
}

/*
Ad operations (list, create, pause, resume, delete)
*/

// GetAd retrieves a single ad by uuid.
func (c *Client) GetAd(ctx context.Context, uuid string) (*Ad, error) {
	payload, err := c.GetAdRaw(ctx, uuid)
	if err != nil {
		return nil, err
	}
	return ParseAd(payload)
}

// GetAdRaw retrieves a single undecoded ad payload.
func (c *Client) GetAdRaw(ctx context.Context, uuid string) (json.RawMessage, error) {
	return c.doRaw(ctx, http.MethodGet, c.endpoint(fmt.Sprintf(lcsAdByUUID, uuid)), nil, 0)
}

// GetAds lists the public ad book, filtered and ordered by the given
// filter. Reference fields are resolved before the request goes out.
func (c *Client) GetAds(ctx context.Context, filter AdFilter, opts ListOptions) (*Page[Ad], error) {
	limit := opts.limitOr(defaultAdsLimit)
	u, err := c.adsURL(filter, limit)
	if err != nil {
		return nil, err
	}
	return collectPages(ctx, c, u, limit, opts, ParseAds)
}

// GetAdsRaw lists the public ad book with undecoded items.
func (c *Client) GetAdsRaw(ctx context.Context, filter AdFilter, opts ListOptions) (*Page[json.RawMessage], error) {
	limit := opts.limitOr(defaultAdsLimit)
	u, err := c.adsURL(filter, limit)
	if err != nil {
		return nil, err
	}
	return collectPages(ctx, c, u, limit, opts, rawItems)
}

func (c *Client) adsURL(filter AdFilter, limit int) (string, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	ordering := filter.Ordering
	if ordering == "" {
		ordering = defaultAdsOrdering
	}
	q.Set("ordering", ordering)

	type resolved struct {
		key string
		ref Ref
		fn  func(Ref) (int64, error)
	}
	for _, r := range []resolved{
		{"coin_currency", filter.CoinCurrency, c.params.CryptoCurrencyID},
		{"fiat_currency", filter.FiatCurrency, c.params.FiatCurrencyID},
		{"trading_type", filter.TradingType, c.params.TradeTypeID},
		{"payment_method", filter.PaymentMethod, c.params.PaymentMethodID},
	} {
		if r.ref == "" {
			continue
		}
		id, err := r.fn(r.ref)
		if err != nil {
			return "", err
		}
		q.Set(r.key, strconv.FormatInt(id, 10))
	}
	if filter.Location != "" {
		q.Set("location", filter.Location)
	}
	if filter.Country != "" {
		q.Set("country", filter.Country)
	}

	return c.endpoint(lcsAdListing) + "?" + q.Encode(), nil
}

// GetMyAds lists your own ads for the given scope (active, inactive or
// all).
func (c *Client) GetMyAds(ctx context.Context, scope AdScope, opts ListOptions) (*Page[Ad], error) {
	limit := opts.limitOr(defaultMyAdsLimit)
	return collectPages(ctx, c, c.myAdsURL(scope, limit), limit, opts, ParseAds)
}

// GetMyAdsRaw lists your own ads with undecoded items.
func (c *Client) GetMyAdsRaw(ctx context.Context, scope AdScope, opts ListOptions) (*Page[json.RawMessage], error) {
	limit := opts.limitOr(defaultMyAdsLimit)
	return collectPages(ctx, c, c.myAdsURL(scope, limit), limit, opts, rawItems)
}

func (c *Client) myAdsURL(scope AdScope, limit int) string {
	if scope == "" {
		scope = AdScopeAll
	}
	return c.endpoint(fmt.Sprintf(lcsMyAds, scope)) + "?limit=" + strconv.Itoa(limit) + "&offset=0"
}

// CreateAd publishes a new ad. Only reference resolution happens here;
// price formula, limits and the rest are validated server-side.
func (c *Client) CreateAd(ctx context.Context, req AdRequest) (*Ad, error) {
	form := url.Values{}

	type resolved struct {
		key string
		ref Ref
		fn  func(Ref) (int64, error)
	}
	for _, r := range []resolved{
		{"trading_type", req.TradingType, c.params.TradeTypeID},
		{"coin_currency", req.CoinCurrency, c.params.CryptoCurrencyID},
		{"fiat_currency", req.FiatCurrency, c.params.FiatCurrencyID},
		{"payment_method", req.PaymentMethod, c.params.PaymentMethodID},
	} {
		id, err := r.fn(r.ref)
		if err != nil {
			return nil, err
		}
		form.Set(r.key, strconv.FormatInt(id, 10))
	}

	form.Set("country_code", req.Country)
	form.Set("location_name", req.Location)
	form.Set("price_formula", req.PriceFormula)
	form.Set("min_trade_size", strconv.FormatFloat(req.MinTradeSize, 'f', -1, 64))
	form.Set("max_trade_size", strconv.FormatFloat(req.MaxTradeSize, 'f', -1, 64))

	payload, err := c.doRaw(ctx, http.MethodPost, c.endpoint(lcsAdCreate), form, withdrawTimeout)
	if err != nil {
		return nil, err
	}
	return ParseAd(payload)
}

// PauseAd deactivates an ad without deleting it.
func (c *Client) PauseAd(ctx context.Context, uuid string) (*AdStatus, error) {
	return c.patchAdActive(ctx, uuid, false)
}

// ResumeAd reactivates a paused ad.
func (c *Client) ResumeAd(ctx context.Context, uuid string) (*AdStatus, error) {
	return c.patchAdActive(ctx, uuid, true)
}

func (c *Client) patchAdActive(ctx context.Context, uuid string, active bool) (*AdStatus, error) {
	form := url.Values{}
	form.Set("is_active", strconv.FormatBool(active))

	var raw rawAdStatus
	err := c.do(ctx, http.MethodPatch, c.endpoint(fmt.Sprintf(lcsAdControl, uuid)), form, 0, &raw)
	if err != nil {
		return nil, err
	}
	return &AdStatus{UUID: raw.UUID, IsActive: raw.IsActive, IsAvailable: raw.IsAvailable}, nil
}

// DeleteAd removes an ad. The endpoint answers with an empty body, so a
// successful round trip is all the confirmation there is.
func (c *Client) DeleteAd(ctx context.Context, uuid string) error {
	_, err := c.doRaw(ctx, http.MethodDelete, c.endpoint(fmt.Sprintf(lcsAdControl, uuid)), nil, 0)
	return err
}

/*
Trade (contract) operations
*/

// GetTrade retrieves a single trade by uuid.
func (c *Client) GetTrade(ctx context.Context, uuid string) (*Trade, error) {
	payload, err := c.GetTradeRaw(ctx, uuid)
	if err != nil {
		return nil, err
	}
	return ParseTrade(payload)
}

// GetTradeRaw retrieves a single undecoded trade payload.
func (c *Client) GetTradeRaw(ctx context.Context, uuid string) (json.RawMessage, error) {
	return c.doRaw(ctx, http.MethodGet, c.endpoint(fmt.Sprintf(lcsContract, uuid)), nil, 0)
}

// GetActiveTrades lists your open trades.
func (c *Client) GetActiveTrades(ctx context.Context, opts ListOptions) (*Page[Trade], error) {
	return c.getTrades(ctx, "active", opts)
}

// GetInactiveTrades lists your finished trades.
func (c *Client) GetInactiveTrades(ctx context.Context, opts ListOptions) (*Page[Trade], error) {
	return c.getTrades(ctx, "inactive", opts)
}

func (c *Client) getTrades(ctx context.Context, scope string, opts ListOptions) (*Page[Trade], error) {
	limit := opts.limitOr(defaultTradesLimit)
	return collectPages(ctx, c, c.tradesURL(scope, limit), limit, opts, ParseTrades)
}

// GetActiveTradesRaw lists your open trades with undecoded items.
func (c *Client) GetActiveTradesRaw(ctx context.Context, opts ListOptions) (*Page[json.RawMessage], error) {
	limit := opts.limitOr(defaultTradesLimit)
	return collectPages(ctx, c, c.tradesURL("active", limit), limit, opts, rawItems)
}

// GetInactiveTradesRaw lists your finished trades with undecoded items.
func (c *Client) GetInactiveTradesRaw(ctx context.Context, opts ListOptions) (*Page[json.RawMessage], error) {
	limit := opts.limitOr(defaultTradesLimit)
	return collectPages(ctx, c, c.tradesURL("inactive", limit), limit, opts, rawItems)
}

func (c *Client) tradesURL(scope string, limit int) string {
	return c.endpoint(fmt.Sprintf(lcsContract, scope)) + "?limit=" + strconv.Itoa(limit) + "&offset=0"
}

// GetAllTrades merges the active and inactive listings. Count is the sum of
// both scopes; in first-page mode TotalPages reports each scope separately.
func (c *Client) GetAllTrades(ctx context.Context, opts ListOptions) (*CombinedTradePage, error) {
	active, err := c.GetActiveTrades(ctx, opts)
	if err != nil {
		return nil, err
	}
	inactive, err := c.GetInactiveTrades(ctx, opts)
	if err != nil {
		return nil, err
	}

	combined := &CombinedTradePage{
		Count:   active.Count + inactive.Count,
		Results: append(active.Results, inactive.Results...),
	}
	if !opts.All {
		combined.TotalPages = &ScopeTotals{Active: active.TotalPages, Inactive: inactive.TotalPages}
		combined.Limit = opts.limitOr(defaultTradesLimit)
	}
	return combined, nil
}

// StartTrade opens a new trade against an ad.
func (c *Client) StartTrade(ctx context.Context, req TradeRequest) (*StartedTrade, error) {
	walletType := req.WalletType
	if walletType == "" {
		walletType = "webwallet"
	}

	form := url.Values{}
	form.Set("ad", req.AdUUID)
	form.Set("fiat_amount", strconv.FormatFloat(req.FiatAmount, 'f', -1, 64))
	form.Set("wallet_type", walletType)

	payload, err := c.doRaw(ctx, http.MethodPost, c.endpoint(lcsContractCreate), form, withdrawTimeout)
	if err != nil {
		return nil, err
	}
	return ParseStartedTrade(payload)
}

// AcceptTrade accepts an open trade as the ad creator.
func (c *Client) AcceptTrade(ctx context.Context, uuid string) (*TradeStatus, error) {
	return c.respondToTrade(ctx, uuid, StatusAccepted, "")
}

// RejectTrade rejects an open trade.
func (c *Client) RejectTrade(ctx context.Context, uuid string) (*TradeStatus, error) {
	return c.respondToTrade(ctx, uuid, StatusRejected, "")
}

// MarkTradePaid reports that the fiat side has been paid.
func (c *Client) MarkTradePaid(ctx context.Context, uuid string) (*TradeStatus, error) {
	return c.respondToTrade(ctx, uuid, StatusFundPaid, "")
}

// ConfirmTrade confirms receipt of funds and releases escrow, finishing the
// trade. The OTP is required by the API for this step only.
func (c *Client) ConfirmTrade(ctx context.Context, uuid, otp string) (*TradeStatus, error) {
	return c.respondToTrade(ctx, uuid, StatusFundReceived, otp)
}

// respondToTrade issues a status patch. Whether the transition is legal
// from the trade's current state is entirely the server's call.
func (c *Client) respondToTrade(ctx context.Context, uuid, status, otp string) (*TradeStatus, error) {
	form := url.Values{}
	form.Set("status", status)
	if otp != "" {
		form.Set("otp", otp)
	}

	var raw rawTradeStatus
	err := c.do(ctx, http.MethodPatch, c.endpoint(fmt.Sprintf(lcsContractStatus, uuid)), form, 0, &raw)
	if err != nil {
		return nil, err
	}
	return &TradeStatus{UUID: uuid, Status: raw.Status}, nil
}
