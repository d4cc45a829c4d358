package lcswap

import (
	"encoding/json"
	"fmt"
)

// Parse functions flatten the API's nested payloads into the package's flat
// record types. They are pure and usable without a Client, e.g. to
// post-process a raw response. A payload that is missing a required field or
// carries an unparsable amount is reported as an error; there is no partial
// or defensive parsing.

// ParseTradeParams decodes the trade parameter enumeration.
func ParseTradeParams(data []byte) (*TradeParams, error) {
	var p TradeParams
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("trade params: %w", err)
	}
	return &p, nil
}

// ParseWallet flattens the portfolio payload into wallet entries.
func ParseWallet(data []byte) ([]WalletEntry, error) {
	var raw []rawWalletEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("wallet: %w", err)
	}

	entries := make([]WalletEntry, 0, len(raw))
	for i := range raw {
		w := &raw[i]
		if w.Currency == nil || w.Address == nil || w.LocalAmount == nil {
			return nil, fmt.Errorf("wallet entry %d: missing relation", i)
		}
		coin, err := amount(w.Amount, "wallet amount")
		if err != nil {
			return nil, err
		}
		fiat, err := amount(w.LocalAmount.Amount, "wallet local amount")
		if err != nil {
			return nil, err
		}
		entries = append(entries, WalletEntry{
			Name:         w.Currency.Title,
			Symbol:       w.Currency.Symbol,
			ID:           w.Currency.ID,
			CoinAmount:   coin,
			FiatAmount:   fiat,
			FiatCurrency: w.LocalAmount.LocalCurrencySymbol,
			Address:      w.Address.Address,
			PaymentID:    w.Address.Chip,
		})
	}
	return entries, nil
}

// ParseDepositAddress flattens the wallet info payload for one currency.
func ParseDepositAddress(data []byte) (*DepositAddress, error) {
	var raw rawDepositInfo
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("deposit address: %w", err)
	}
	if raw.Currency == nil || raw.Address == nil {
		return nil, fmt.Errorf("deposit address: missing relation")
	}
	balance, err := amount(raw.Amount, "deposit balance")
	if err != nil {
		return nil, err
	}
	return &DepositAddress{
		Name:      raw.Currency.Title,
		Symbol:    raw.Currency.Symbol,
		Balance:   balance,
		Address:   raw.Address.Address,
		PaymentID: raw.Address.Chip,
	}, nil
}

// ParseTransactions flattens a page of ledger entries, preserving order.
func ParseTransactions(data []byte) ([]Transaction, error) {
	var raw []rawTransaction
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("transactions: %w", err)
	}

	txns := make([]Transaction, 0, len(raw))
	for i := range raw {
		t, err := parseTransaction(&raw[i])
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

func parseTransaction(t *rawTransaction) (Transaction, error) {
	if t.Currency == nil {
		return Transaction{}, fmt.Errorf("missing currency relation")
	}

	var from string
	if t.FromUser != nil {
		from = t.FromUser.Username
	}

	// Escrow movements happen between users; everything else settles
	// against an on-chain address, which the API may omit.
	var to string
	switch t.Type {
	case TransactionTypeEscrow, TransactionTypeEscrowRevert, TransactionTypeEscrowRelease:
		if t.ToUser == nil {
			return Transaction{}, fmt.Errorf("missing to_user for type %q", t.Type)
		}
		to = t.ToUser.Username
	default:
		to = t.ToAddress
	}

	return Transaction{
		Type:      t.Type,
		Amount:    t.Amount,
		Currency:  t.Currency.Symbol,
		Timestamp: t.Timestamp,
		From:      from,
		To:        to,
	}, nil
}

// ParseAds flattens a page of ads, preserving order.
func ParseAds(data []byte) ([]Ad, error) {
	var raw []rawAd
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ads: %w", err)
	}

	ads := make([]Ad, 0, len(raw))
	for i := range raw {
		ad, err := parseAd(&raw[i])
		if err != nil {
			return nil, fmt.Errorf("ad %d: %w", i, err)
		}
		ads = append(ads, *ad)
	}
	return ads, nil
}

// ParseAd flattens a single ad payload.
func ParseAd(data []byte) (*Ad, error) {
	var raw rawAd
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("ad: %w", err)
	}
	return parseAd(&raw)
}

func parseAd(raw *rawAd) (*Ad, error) {
	if raw.TradingType == nil || raw.PaymentMethod == nil ||
		raw.CoinCurrency == nil || raw.FiatCurrency == nil ||
		raw.PriceFormula == nil || raw.CreatedBy == nil {
		return nil, fmt.Errorf("missing relation")
	}

	price, err := amount(raw.CurrentPrice, "current price")
	if err != nil {
		return nil, err
	}
	minSize, err := amount(raw.MinTradeSize, "min trade size")
	if err != nil {
		return nil, err
	}
	maxSize, err := amount(raw.MaxTradeSize, "max trade size")
	if err != nil {
		return nil, err
	}
	minFiat, err := amount(raw.MinFiatLimit, "min fiat limit")
	if err != nil {
		return nil, err
	}
	maxFiat, err := amount(raw.MaxFiatLimit, "max fiat limit")
	if err != nil {
		return nil, err
	}

	return &Ad{
		UUID:                  raw.UUID,
		TradingType:           raw.TradingType.ActionName,
		TradingTypeID:         raw.TradingType.ID,
		PaymentMethod:         raw.PaymentMethod.Name,
		PaymentMethodID:       raw.PaymentMethod.ID,
		CoinCurrency:          raw.CoinCurrency.Title,
		CoinCurrencySymbol:    raw.CoinCurrency.Symbol,
		FiatCurrency:          raw.FiatCurrency.Title,
		FiatCurrencySymbol:    raw.FiatCurrency.Symbol,
		CurrentPrice:          price,
		PriceFormula:          raw.PriceFormula.DisplayFormula,
		PriceFormulaType:      raw.PriceFormula.PricingType,
		PhotoIDRequired:       raw.PhotoIDRequired,
		SMSRequired:           raw.SMSRequired,
		OnlyFriends:           raw.OnlyFriends,
		TradingHours:          raw.TradingHours,
		TradingHoursLocalized: raw.TradingHoursLocal,
		IsActive:              raw.IsActive,
		IsAvailable:           raw.IsAvailable,
		MinimumFeedback:       raw.MinimumFeedback,
		AutomaticCancelTime:   raw.AutomaticCancelTime,
		LiquidityTracking:     raw.LiquidityTracking,
		LocationName:          raw.LocationName,
		CountryCode:           raw.CountryCode,
		TradingConditions:     raw.TradingConditions,
		EnforcedSizes:         raw.EnforcedSizes,
		MinTradeSize:          minSize,
		MaxTradeSize:          maxSize,
		MinFiatLimit:          minFiat,
		MaxFiatLimit:          maxFiat,
		CreatedByUsername:     raw.CreatedBy.Username,
		CreatedByStatus:       raw.CreatedBy.ActivityStatus,
		CreatedByResponseTime: raw.CreatedBy.AvgResponseTime,
		CreatedByLanguages:    raw.CreatedBy.Languages,
		CreatedByRatings:      raw.CreatedBy.Ratings,
		CreatedByRatingsPct:   raw.CreatedBy.RatingsPercentage,
	}, nil
}

// ParseTrades flattens a page of trades, preserving order.
func ParseTrades(data []byte) ([]Trade, error) {
	var raw []rawTrade
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("trades: %w", err)
	}

	trades := make([]Trade, 0, len(raw))
	for i := range raw {
		t, err := parseTrade(&raw[i])
		if err != nil {
			return nil, fmt.Errorf("trade %d: %w", i, err)
		}
		trades = append(trades, *t)
	}
	return trades, nil
}

// ParseTrade flattens a single trade payload.
func ParseTrade(data []byte) (*Trade, error) {
	var raw rawTrade
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("trade: %w", err)
	}
	return parseTrade(&raw)
}

func parseTrade(raw *rawTrade) (*Trade, error) {
	if raw.Responder == nil || raw.FiatCurrency == nil || raw.Ad == nil {
		return nil, fmt.Errorf("missing relation")
	}
	if raw.Ad.CoinCurrency == nil || raw.Ad.CreatedBy == nil || raw.Ad.PaymentMethod == nil {
		return nil, fmt.Errorf("missing ad relation")
	}

	fiat, err := amount(raw.FiatAmount, "fiat amount")
	if err != nil {
		return nil, err
	}
	coin, err := amount(raw.CoinAmount, "coin amount")
	if err != nil {
		return nil, err
	}

	return &Trade{
		ID:                 raw.ID,
		Status:             raw.Status,
		UUID:               raw.UUID,
		Responder:          raw.Responder.Username,
		FiatAmount:         fiat,
		CoinAmount:         coin,
		CoinCurrency:       raw.Ad.CoinCurrency.Title,
		CoinCurrencySymbol: raw.Ad.CoinCurrency.Symbol,
		CountryCode:        raw.Ad.CountryCode,
		LocationName:       raw.Ad.LocationName,
		CreatedBy:          raw.Ad.CreatedBy.Username,
		FiatCurrency:       raw.FiatCurrency.Title,
		FiatCurrencySymbol: raw.FiatCurrency.Symbol,
		PaymentMethod:      raw.Ad.PaymentMethod.Name,
		TimeOfExpiry:       raw.TimeOfExpiry,
		AdUUID:             raw.Ad.UUID,
	}, nil
}

// ParseStartedTrade flattens the confirmation of a newly opened trade.
func ParseStartedTrade(data []byte) (*StartedTrade, error) {
	var raw rawStartedTrade
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("started trade: %w", err)
	}
	if raw.Ad == nil || raw.CoinCurrency == nil || raw.FiatCurrency == nil {
		return nil, fmt.Errorf("started trade: missing relation")
	}

	coin, err := amount(raw.CoinAmount, "coin amount")
	if err != nil {
		return nil, err
	}
	fiat, err := amount(raw.FiatAmount, "fiat amount")
	if err != nil {
		return nil, err
	}

	return &StartedTrade{
		AdUUID:             raw.Ad.UUID,
		CoinAmount:         coin,
		CoinCurrency:       raw.CoinCurrency.Title,
		CoinCurrencySymbol: raw.CoinCurrency.Symbol,
		FiatAmount:         fiat,
		FiatCurrency:       raw.FiatCurrency.Title,
		FiatCurrencySymbol: raw.FiatCurrency.Symbol,
		PromoCode:          raw.PromoCode,
		Status:             raw.Status,
		TimeOfExpiry:       raw.TimeOfExpiry,
		UUID:               raw.UUID,
	}, nil
}

// amount converts a numeric field the API sends as either a JSON number or
// a quoted decimal string. An absent or malformed value is an error.
func amount(n json.Number, field string) (float64, error) {
	f, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", field, n.String(), err)
	}
	return f, nil
}
