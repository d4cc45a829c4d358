package lcswap

import "encoding/json"

// Trade statuses as the API reports and accepts them. A trade starts out
// pending, is accepted or rejected by the ad creator, then moves through
// fund payment to completion. Transition legality is enforced server-side;
// an illegal transition surfaces as an APIError.
const (
	StatusPending      = "PENDING"
	StatusAccepted     = "ACCEPTED"
	StatusRejected     = "REJECTED"
	StatusFundPaid     = "FUND_PAID"
	StatusFundReceived = "FUND_RECEIVED"
	StatusCompleted    = "COMPLETED"
)

// Transaction types for which the counterparty is another user rather than
// an on-chain address.
const (
	TransactionTypeEscrow        = "contract_escrow"
	TransactionTypeEscrowRevert  = "contract_escrow_revert"
	TransactionTypeEscrowRelease = "contract_escrow_release"
)

// Trade type ids as listed in the trade parameter table.
const (
	TradeTypeBuy  int64 = 1
	TradeTypeSell int64 = 2
)

// WalletEntry is one balance record from the portfolio endpoint.
type WalletEntry struct {
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	ID           int64   `json:"id"`
	CoinAmount   float64 `json:"coin_amount"`
	FiatAmount   float64 `json:"fiat_amount"`
	FiatCurrency string  `json:"fiat_currency"`
	Address      string  `json:"address"`
	PaymentID    string  `json:"payment_id"`
}

// DepositAddress is the deposit information for a single currency.
type DepositAddress struct {
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Balance   float64 `json:"balance"`
	Address   string  `json:"address"`
	PaymentID string  `json:"payment_id"`
}

// Transaction is one wallet ledger entry. For escrow transaction types To
// holds the counterparty's username, otherwise the destination address (or
// an empty string when the API sent none). Amount keeps the API's full
// precision string form.
type Transaction struct {
	Type      string `json:"transaction_type"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
	Timestamp int64  `json:"timestamp"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// Ad is a standing offer to buy or sell a cryptocurrency. Buy ads bound
// trades with the crypto-denominated MinTradeSize/MaxTradeSize axes, sell
// ads with the fiat-denominated MinFiatLimit/MaxFiatLimit axes.
type Ad struct {
	UUID                  string   `json:"uuid"`
	TradingType           string   `json:"trading_type"`
	TradingTypeID         int64    `json:"trading_type_id"`
	PaymentMethod         string   `json:"payment_method"`
	PaymentMethodID       int64    `json:"payment_method_id"`
	CoinCurrency          string   `json:"coin_currency"`
	CoinCurrencySymbol    string   `json:"coin_currency_symbol"`
	FiatCurrency          string   `json:"fiat_currency"`
	FiatCurrencySymbol    string   `json:"fiat_currency_symbol"`
	CurrentPrice          float64  `json:"current_price"`
	PriceFormula          string   `json:"price_formula"`
	PriceFormulaType      string   `json:"price_formula_type"`
	PhotoIDRequired       bool     `json:"photo_id_required"`
	SMSRequired           bool     `json:"sms_required"`
	OnlyFriends           bool     `json:"only_friends"`
	TradingHours          string   `json:"trading_hours"`
	TradingHoursLocalized string   `json:"trading_hours_localized"`
	IsActive              bool     `json:"is_active"`
	IsAvailable           bool     `json:"is_available"`
	MinimumFeedback       string   `json:"minimum_feedback"`
	AutomaticCancelTime   string   `json:"automatic_cancel_time"`
	LiquidityTracking     bool     `json:"liquidity_tracking"`
	LocationName          string   `json:"location_name"`
	CountryCode           string   `json:"country_code"`
	TradingConditions     string   `json:"trading_conditions"`
	EnforcedSizes         string   `json:"enforced_sizes"`
	MinTradeSize          float64  `json:"min_trade_size"`
	MaxTradeSize          float64  `json:"max_trade_size"`
	MinFiatLimit          float64  `json:"min_fiat_limit"`
	MaxFiatLimit          float64  `json:"max_fiat_limit"`
	CreatedByUsername     string   `json:"created_by_username"`
	CreatedByStatus       string   `json:"created_by_status"`
	CreatedByResponseTime int64    `json:"created_by_response_time"`
	CreatedByLanguages    []string `json:"created_by_languages"`
	CreatedByRatings      *float64 `json:"created_by_ratings"`
	CreatedByRatingsPct   *float64 `json:"created_by_ratings_percentage"`
}

// Trade is one contract: a responder acting on an ad, tracked through the
// status lifecycle.
type Trade struct {
	ID                 int64   `json:"id"`
	Status             string  `json:"status"`
	UUID               string  `json:"uuid"`
	Responder          string  `json:"responder"`
	FiatAmount         float64 `json:"fiat_amount"`
	CoinAmount         float64 `json:"coin_amount"`
	CoinCurrency       string  `json:"coin_currency"`
	CoinCurrencySymbol string  `json:"coin_currency_symbol"`
	CountryCode        string  `json:"country_code"`
	LocationName       string  `json:"location_name"`
	CreatedBy          string  `json:"created_by"`
	FiatCurrency       string  `json:"fiat_currency"`
	FiatCurrencySymbol string  `json:"fiat_currency_symbol"`
	PaymentMethod      string  `json:"payment_method"`
	TimeOfExpiry       int64   `json:"time_of_expiry"`
	AdUUID             string  `json:"ad_uuid"`
}

// StartedTrade is the confirmation returned when a new trade is opened
// against an ad.
type StartedTrade struct {
	AdUUID             string  `json:"ad_uuid"`
	CoinAmount         float64 `json:"coin_amount"`
	CoinCurrency       string  `json:"coin_currency"`
	CoinCurrencySymbol string  `json:"coin_currency_symbol"`
	FiatAmount         float64 `json:"fiat_amount"`
	FiatCurrency       string  `json:"fiat_currency"`
	FiatCurrencySymbol string  `json:"fiat_currency_symbol"`
	PromoCode          string  `json:"promo_code"`
	Status             string  `json:"status"`
	TimeOfExpiry       int64   `json:"time_of_expiry"`
	UUID               string  `json:"uuid"`
}

// AdStatus is the reduced ad state returned by the pause/resume operations.
type AdStatus struct {
	UUID        string `json:"uuid"`
	IsActive    bool   `json:"is_active"`
	IsAvailable bool   `json:"is_available"`
}

// TradeStatus is the reduced trade state returned by the lifecycle
// operations (accept, reject, mark paid, confirm).
type TradeStatus struct {
	UUID   string `json:"uuid"`
	Status string `json:"status"`
}

// WithdrawalReceipt confirms a created withdrawal.
type WithdrawalReceipt struct {
	ID int64 `json:"id"`
}

// WithdrawalRequest describes a wallet withdrawal. Currency accepts any
// reference form the parameter table can resolve. PaymentID carries the
// destination tag/payment id for chains that use one.
type WithdrawalRequest struct {
	Currency  Ref
	ToAddress string
	Amount    float64
	OTP       string
	PaymentID string
}

// AdRequest describes a new ad. The reference fields are resolved against
// the trade parameter table before the request is issued; everything else
// is validated server-side.
type AdRequest struct {
	TradingType   Ref
	CoinCurrency  Ref
	FiatCurrency  Ref
	PaymentMethod Ref
	Country       string
	Location      string
	PriceFormula  string
	MinTradeSize  float64
	MaxTradeSize  float64
}

// TradeRequest opens a new trade against an ad. WalletType defaults to
// "webwallet" when empty.
type TradeRequest struct {
	AdUUID     string
	FiatAmount float64
	WalletType string
}

// AdFilter narrows and orders an ad listing. Reference fields are resolved
// against the trade parameter table; zero values are omitted from the query.
type AdFilter struct {
	CoinCurrency  Ref
	FiatCurrency  Ref
	TradingType   Ref
	PaymentMethod Ref
	Location      string
	Country       string
	Ordering      string
}

// AdScope selects which of your own ads to list.
type AdScope string

// Ad listing scopes accepted by GetMyAds.
const (
	AdScopeAll      AdScope = "all"
	AdScopeActive   AdScope = "active"
	AdScopeInactive AdScope = "inactive"
)

// ScopeTotals carries per-scope page totals for the combined trade listing.
type ScopeTotals struct {
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

// CombinedTradePage is the merged result of the active and inactive trade
// listings. TotalPages and Limit are only set in first-page mode.
type CombinedTradePage struct {
	Count      int64        `json:"count"`
	TotalPages *ScopeTotals `json:"total_pages,omitempty"`
	Limit      int          `json:"limit,omitempty"`
	Results    []Trade      `json:"results"`
}

// Raw wire shapes. The API nests relation objects (currency, user, payment
// method) inside most payloads; required relations are pointers so a missing
// one is detectable and reported instead of silently flattening to zero
// values.

type rawCurrency struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Symbol string `json:"symbol"`
}

type rawPaymentMethod struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type rawTradeType struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ActionName string `json:"action_name"`
}

type rawUser struct {
	Username          string   `json:"username"`
	ActivityStatus    string   `json:"activity_status"`
	AvgResponseTime   int64    `json:"avg_response_time"`
	Languages         []string `json:"languages"`
	Ratings           *float64 `json:"ratings"`
	RatingsPercentage *float64 `json:"ratings_percentage"`
}

type rawAddress struct {
	Address string `json:"address"`
	Chip    string `json:"chip"`
}

type rawLocalAmount struct {
	Amount              json.Number `json:"amount_in_local_currency"`
	LocalCurrencySymbol string      `json:"local_currency_symbol"`
}

type rawWalletEntry struct {
	Currency    *rawCurrency    `json:"currency"`
	Amount      json.Number     `json:"amount"`
	LocalAmount *rawLocalAmount `json:"amount_in_local_currency"`
	Address     *rawAddress     `json:"address"`
}

type rawDepositInfo struct {
	Currency *rawCurrency `json:"currency"`
	Amount   json.Number  `json:"amount"`
	Address  *rawAddress  `json:"address"`
}

type rawTransaction struct {
	Type      string       `json:"transaction_type"`
	Amount    string       `json:"amount"`
	Currency  *rawCurrency `json:"currency"`
	Timestamp int64        `json:"timestamp"`
	FromUser  *rawUser     `json:"from_user"`
	ToUser    *rawUser     `json:"to_user"`
	ToAddress string       `json:"to_address"`
}

type rawPriceFormula struct {
	DisplayFormula string `json:"display_formula"`
	PricingType    string `json:"pricing_type"`
}

type rawAd struct {
	UUID                string            `json:"uuid"`
	TradingType         *rawTradeType     `json:"trading_type"`
	PaymentMethod       *rawPaymentMethod `json:"payment_method"`
	CoinCurrency        *rawCurrency      `json:"coin_currency"`
	FiatCurrency        *rawCurrency      `json:"fiat_currency"`
	CurrentPrice        json.Number       `json:"current_price"`
	PriceFormula        *rawPriceFormula  `json:"price_formula"`
	PhotoIDRequired     bool              `json:"photo_id_required"`
	SMSRequired         bool              `json:"sms_required"`
	OnlyFriends         bool              `json:"only_friends"`
	TradingHours        string            `json:"trading_hours"`
	TradingHoursLocal   string            `json:"trading_hours_localised"` // upstream spelling
	IsActive            bool              `json:"is_active"`
	IsAvailable         bool              `json:"is_available"`
	MinimumFeedback     string            `json:"minimum_feedback"`
	AutomaticCancelTime string            `json:"automatic_cancel_time"`
	LiquidityTracking   bool              `json:"liqudity_tracking"` // upstream spelling
	LocationName        string            `json:"location_name"`
	CountryCode         string            `json:"country_code"`
	TradingConditions   string            `json:"trading_conditions"`
	EnforcedSizes       string            `json:"enforced_sizes"`
	MinTradeSize        json.Number       `json:"min_trade_size"`
	MaxTradeSize        json.Number       `json:"max_trade_size"`
	MinFiatLimit        json.Number       `json:"min_fiat_limit"`
	MaxFiatLimit        json.Number       `json:"max_fiat_limit"`
	CreatedBy           *rawUser          `json:"created_by"`
}

type rawTradeAd struct {
	UUID          string            `json:"uuid"`
	CoinCurrency  *rawCurrency      `json:"coin_currency"`
	CountryCode   string            `json:"country_code"`
	LocationName  string            `json:"location_name"`
	CreatedBy     *rawUser          `json:"created_by"`
	PaymentMethod *rawPaymentMethod `json:"payment_method"`
}

type rawTrade struct {
	ID           int64        `json:"id"`
	Status       string       `json:"status"`
	UUID         string       `json:"uuid"`
	Responder    *rawUser     `json:"contract_responder"`
	FiatAmount   json.Number  `json:"fiat_amount"`
	CoinAmount   json.Number  `json:"coin_amount"`
	FiatCurrency *rawCurrency `json:"fiat_currency"`
	TimeOfExpiry int64        `json:"time_of_expiry"`
	Ad           *rawTradeAd  `json:"ad"`
}

type rawStartedTrade struct {
	Ad           *rawTradeAd  `json:"ad"`
	CoinAmount   json.Number  `json:"coin_amount"`
	CoinCurrency *rawCurrency `json:"coin_currency"`
	FiatAmount   json.Number  `json:"fiat_amount"`
	FiatCurrency *rawCurrency `json:"fiat_currency"`
	PromoCode    string       `json:"promo_code"`
	Status       string       `json:"status"`
	TimeOfExpiry int64        `json:"time_of_expiry"`
	UUID         string       `json:"uuid"`
}

type rawAdStatus struct {
	UUID        string `json:"uuid"`
	IsActive    bool   `json:"is_active"`
	IsAvailable bool   `json:"is_available"`
}

type rawTradeStatus struct {
	Status string `json:"status"`
}

type rawWithdrawal struct {
	ID int64 `json:"id"`
}
