package lcswap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const walletJSON = `[
  {
    "currency": {"id": 1, "title": "Bitcoin", "symbol": "BTC"},
    "amount": "0.04321000",
    "amount_in_local_currency": {
      "amount_in_local_currency": "352.322321230272",
      "local_currency_symbol": "USD"
    },
    "address": {"address": "1525DXstub", "chip": null}
  },
  {
    "currency": {"id": 17, "title": "XRP", "symbol": "XRP"},
    "amount": "0.00000000",
    "amount_in_local_currency": {
      "amount_in_local_currency": "0",
      "local_currency_symbol": "USD"
    },
    "address": {"address": "rsRhmFstub", "chip": "1234567890"}
  }
]`

const depositJSON = `{
  "currency": {"id": 2, "title": "Ethereum", "symbol": "ETH"},
  "amount": "0.01230000",
  "address": {"address": "0xfD6724stub", "chip": null}
}`

const transactionsJSON = `[
  {
    "transaction_type": "contract_escrow",
    "amount": "-0.000100000000000000",
    "currency": {"id": 2, "title": "Ethereum", "symbol": "ETH"},
    "timestamp": 1557336630,
    "from_user": {"username": "alex_csrf"},
    "to_user": {"username": "user2"},
    "to_address": null
  },
  {
    "transaction_type": "contract_fees",
    "amount": "-0.000010000000000000",
    "currency": {"id": 2, "title": "Ethereum", "symbol": "ETH"},
    "timestamp": 1557336631,
    "from_user": {"username": "alex_csrf"},
    "to_user": null,
    "to_address": "0x15e13Estub"
  },
  {
    "transaction_type": "deposit",
    "amount": "1.000000000000000000",
    "currency": {"id": 1, "title": "Bitcoin", "symbol": "BTC"},
    "timestamp": 1557336632,
    "from_user": null,
    "to_user": null,
    "to_address": null
  }
]`

const adJSON = `{
  "uuid": "dc010000-0000-0000-0000-000000000000",
  "trading_type": {"id": 1, "name": "buy", "action_name": "Buying"},
  "payment_method": {"id": 3, "name": "Cash in person"},
  "coin_currency": {"id": 2, "title": "Ethereum", "symbol": "ETH"},
  "fiat_currency": {"id": 10002, "title": "Afghan Afghani", "symbol": "AFN"},
  "current_price": 16302.5912738867,
  "price_formula": {"display_formula": "-1", "pricing_type": "MARGIN"},
  "photo_id_required": false,
  "sms_required": false,
  "only_friends": false,
  "trading_hours": "Mon - Sun: Trading all day<br />",
  "trading_hours_localised": "Mon - Sun: Trading all day<br />",
  "is_active": true,
  "is_available": true,
  "minimum_feedback": "0",
  "automatic_cancel_time": "120",
  "liqudity_tracking": false,
  "location_name": "Toledo",
  "country_code": "ES",
  "trading_conditions": "",
  "enforced_sizes": "",
  "min_trade_size": "1.00",
  "max_trade_size": "1000000.00",
  "min_fiat_limit": 1,
  "max_fiat_limit": 1000000,
  "created_by": {
    "username": "user1",
    "activity_status": "active",
    "avg_response_time": 507,
    "languages": [],
    "ratings": null,
    "ratings_percentage": null
  }
}`

const tradeJSON = `{
  "id": 321,
  "status": "REJECTED",
  "uuid": "6a830000-0000-0000-0000-000000000000",
  "contract_responder": {"username": "user2"},
  "fiat_amount": "1.30",
  "coin_amount": "0.0001",
  "fiat_currency": {"id": 10002, "title": "Afghan Afghani", "symbol": "AFN"},
  "time_of_expiry": 1557345712,
  "ad": {
    "uuid": "dc010000-0000-0000-0000-000000000000",
    "coin_currency": {"id": 2, "title": "Ethereum", "symbol": "ETH"},
    "country_code": "ES",
    "location_name": "Toledo",
    "created_by": {"username": "user1"},
    "payment_method": {"id": 3, "name": "Cash in person"}
  }
}`

const tradeParamsJSON = `{
  "crypto_currencies": [
    {"id": 1, "symbol": "BTC", "title": "Bitcoin", "chain": "bitcoin"},
    {"id": 2, "symbol": "ETH", "title": "Ethereum", "chain": "ethereum"}
  ],
  "fiat_currencies": [
    {"id": 10001, "symbol": "USD", "title": "United States Dollar"}
  ],
  "payment_methods": [
    {"id": 1, "name": "Local Bank transfer"},
    {"id": 2, "name": "Cash Deposit"}
  ],
  "trade_types": [
    {"action_name": "Buying", "id": 1, "name": "buy"},
    {"action_name": "Selling", "id": 2, "name": "sell"}
  ]
}`

func TestParseWallet(t *testing.T) {
	t.Parallel()
	entries, err := ParseWallet([]byte(walletJSON))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, WalletEntry{
		Name:         "Bitcoin",
		Symbol:       "BTC",
		ID:           1,
		CoinAmount:   0.04321,
		FiatAmount:   352.322321230272,
		FiatCurrency: "USD",
		Address:      "1525DXstub",
		PaymentID:    "",
	}, entries[0])

	assert.Equal(t, "1234567890", entries[1].PaymentID)
	assert.Zero(t, entries[1].CoinAmount)
}

func TestParseWalletMissingRelation(t *testing.T) {
	t.Parallel()
	_, err := ParseWallet([]byte(`[{"amount": "1.0"}]`))
	assert.Error(t, err)
}

func TestParseWalletBadAmount(t *testing.T) {
	t.Parallel()
	bad := `[{
	  "currency": {"id": 1, "title": "Bitcoin", "symbol": "BTC"},
	  "amount": "not a number",
	  "amount_in_local_currency": {"amount_in_local_currency": "0", "local_currency_symbol": "USD"},
	  "address": {"address": "x", "chip": null}
	}]`
	_, err := ParseWallet([]byte(bad))
	assert.Error(t, err)
}

func TestParseDepositAddress(t *testing.T) {
	t.Parallel()
	addr, err := ParseDepositAddress([]byte(depositJSON))
	require.NoError(t, err)
	assert.Equal(t, &DepositAddress{
		Name:      "Ethereum",
		Symbol:    "ETH",
		Balance:   0.0123,
		Address:   "0xfD6724stub",
		PaymentID: "",
	}, addr)
}

func TestParseTransactions(t *testing.T) {
	t.Parallel()
	txns, err := ParseTransactions([]byte(transactionsJSON))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	// escrow types settle between users
	assert.Equal(t, Transaction{
		Type:      TransactionTypeEscrow,
		Amount:    "-0.000100000000000000",
		Currency:  "ETH",
		Timestamp: 1557336630,
		From:      "alex_csrf",
		To:        "user2",
	}, txns[0])

	// everything else settles against an address
	assert.Equal(t, "0x15e13Estub", txns[1].To)

	// absent address and sender collapse to empty strings
	assert.Equal(t, "", txns[2].To)
	assert.Equal(t, "", txns[2].From)
}

func TestParseTransactionsEscrowWithoutUser(t *testing.T) {
	t.Parallel()
	bad := `[{
	  "transaction_type": "contract_escrow_release",
	  "amount": "1",
	  "currency": {"id": 1, "title": "Bitcoin", "symbol": "BTC"},
	  "timestamp": 1,
	  "from_user": null,
	  "to_user": null,
	  "to_address": "addr"
	}]`
	_, err := ParseTransactions([]byte(bad))
	assert.Error(t, err)
}

func TestParseAd(t *testing.T) {
	t.Parallel()
	ad, err := ParseAd([]byte(adJSON))
	require.NoError(t, err)

	assert.Equal(t, "dc010000-0000-0000-0000-000000000000", ad.UUID)
	assert.Equal(t, "Buying", ad.TradingType)
	assert.Equal(t, TradeTypeBuy, ad.TradingTypeID)
	assert.Equal(t, "Cash in person", ad.PaymentMethod)
	assert.Equal(t, int64(3), ad.PaymentMethodID)
	assert.Equal(t, "Ethereum", ad.CoinCurrency)
	assert.Equal(t, "ETH", ad.CoinCurrencySymbol)
	assert.Equal(t, "Afghan Afghani", ad.FiatCurrency)
	assert.Equal(t, "AFN", ad.FiatCurrencySymbol)
	assert.Equal(t, 16302.5912738867, ad.CurrentPrice)
	assert.Equal(t, "-1", ad.PriceFormula)
	assert.Equal(t, "MARGIN", ad.PriceFormulaType)
	assert.Equal(t, "Mon - Sun: Trading all day<br />", ad.TradingHoursLocalized)
	assert.True(t, ad.IsActive)
	assert.False(t, ad.LiquidityTracking)
	assert.Equal(t, 1.0, ad.MinTradeSize)
	assert.Equal(t, 1000000.0, ad.MaxTradeSize)
	assert.Equal(t, 1.0, ad.MinFiatLimit)
	assert.Equal(t, 1000000.0, ad.MaxFiatLimit)
	assert.Equal(t, "user1", ad.CreatedByUsername)
	assert.Equal(t, "active", ad.CreatedByStatus)
	assert.Equal(t, int64(507), ad.CreatedByResponseTime)
	assert.Empty(t, ad.CreatedByLanguages)
	assert.Nil(t, ad.CreatedByRatings)
}

func TestParseAdsOrder(t *testing.T) {
	t.Parallel()
	ads, err := ParseAds([]byte("[" + adJSON + "," + adJSON + "]"))
	require.NoError(t, err)
	require.Len(t, ads, 2)
	assert.Equal(t, ads[0].UUID, ads[1].UUID)
}

func TestParseAdMissingRelation(t *testing.T) {
	t.Parallel()
	_, err := ParseAd([]byte(`{"uuid": "x"}`))
	assert.Error(t, err)
}

func TestParseTrade(t *testing.T) {
	t.Parallel()
	trade, err := ParseTrade([]byte(tradeJSON))
	require.NoError(t, err)
	assert.Equal(t, &Trade{
		ID:                 321,
		Status:             StatusRejected,
		UUID:               "6a830000-0000-0000-0000-000000000000",
		Responder:          "user2",
		FiatAmount:         1.3,
		CoinAmount:         0.0001,
		CoinCurrency:       "Ethereum",
		CoinCurrencySymbol: "ETH",
		CountryCode:        "ES",
		LocationName:       "Toledo",
		CreatedBy:          "user1",
		FiatCurrency:       "Afghan Afghani",
		FiatCurrencySymbol: "AFN",
		PaymentMethod:      "Cash in person",
		TimeOfExpiry:       1557345712,
		AdUUID:             "dc010000-0000-0000-0000-000000000000",
	}, trade)
}

func TestParseTradeParams(t *testing.T) {
	t.Parallel()
	p, err := ParseTradeParams([]byte(tradeParamsJSON))
	require.NoError(t, err)

	require.Len(t, p.CryptoCurrencies, 2)
	assert.Equal(t, CurrencyParam{ID: 1, Title: "Bitcoin", Symbol: "BTC"}, p.CryptoCurrencies[0])
	require.Len(t, p.FiatCurrencies, 1)
	require.Len(t, p.PaymentMethods, 2)
	require.Len(t, p.TradeTypes, 2)
	assert.Equal(t, TradeTypeParam{ID: 2, Name: "sell", ActionName: "Selling"}, p.TradeTypes[1])

	id, err := p.CryptoCurrencyID("btc")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestParseStartedTrade(t *testing.T) {
	t.Parallel()
	started := `{
	  "ad": {"uuid": "dc010000-0000-0000-0000-000000000000"},
	  "coin_amount": "0.0001",
	  "coin_currency": {"id": 2, "title": "Ethereum", "symbol": "ETH"},
	  "fiat_amount": "1.30",
	  "fiat_currency": {"id": 10002, "title": "Afghan Afghani", "symbol": "AFN"},
	  "promo_code": null,
	  "status": "PENDING",
	  "time_of_expiry": 1557345712,
	  "uuid": "6a830000-0000-0000-0000-000000000000"
	}`
	st, err := ParseStartedTrade([]byte(started))
	require.NoError(t, err)
	assert.Equal(t, "dc010000-0000-0000-0000-000000000000", st.AdUUID)
	assert.Equal(t, 0.0001, st.CoinAmount)
	assert.Equal(t, 1.3, st.FiatAmount)
	assert.Equal(t, StatusPending, st.Status)
	assert.Equal(t, "", st.PromoCode)
}
