package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/localcoinswap/lcswap"
	"github.com/localcoinswap/lcswap/display"
)

var (
	token     string
	baseURL   string
	otpSecret string
	verbose   bool
	noColor   bool
)

func main() {
	app := &cli.App{
		Name:                 "lcsctl",
		Usage:                "command line interface for the LocalCoinSwap API",
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "token",
				Usage:       "API auth token",
				EnvVars:     []string{"LCS_TOKEN"},
				Destination: &token,
			},
			&cli.StringFlag{
				Name:        "url",
				Usage:       "override the API base url",
				EnvVars:     []string{"LCS_URL"},
				Destination: &baseURL,
			},
			&cli.StringFlag{
				Name:        "otp-secret",
				Usage:       "TOTP secret for withdraw/confirm operations",
				EnvVars:     []string{"LCS_OTP_SECRET"},
				Destination: &otpSecret,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "log requests and responses",
				Destination: &verbose,
			},
			&cli.BoolFlag{
				Name:        "no-color",
				Usage:       "disable colored output",
				Destination: &noColor,
			},
		},
		Commands: []*cli.Command{
			paramsCommand,
			walletCommand,
			depositCommand,
			withdrawCommand,
			transactionsCommand,
			adsCommand,
			myAdsCommand,
			adCommand,
			tradesCommand,
			tradeCommand,
			otpCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func tableOptions() display.Options {
	opt := display.DefaultOptions
	opt.Color = !noColor
	return opt
}

func listOptions(c *cli.Context) lcswap.ListOptions {
	return lcswap.ListOptions{
		Limit:   c.Int("limit"),
		All:     c.Bool("all"),
		Timeout: c.Duration("timeout"),
	}
}

var listFlags = []cli.Flag{
	&cli.IntFlag{Name: "limit", Usage: "results per page"},
	&cli.BoolFlag{Name: "all", Usage: "follow pagination to the end"},
	&cli.DurationFlag{Name: "timeout", Usage: "per-request timeout", Value: 10 * time.Second},
	&cli.BoolFlag{Name: "raw", Usage: "print the raw API response"},
}

var paramsCommand = &cli.Command{
	Name:  "params",
	Usage: "print the trade parameter table",
	Action: func(c *cli.Context) error {
		client, err := newClient(c)
		if err != nil {
			return err
		}
		return jsonOutput(client.TradeParams())
	},
}

var walletCommand = &cli.Command{
	Name:  "wallet",
	Usage: "show balances and deposit addresses for every currency",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "raw", Usage: "print the raw API response"},
	},
	Action: func(c *cli.Context) error {
		client, err := newClient(c)
		if err != nil {
			return err
		}
		if c.Bool("raw") {
			raw, err := client.GetWalletRaw(c.Context)
			if err != nil {
				return err
			}
			return jsonOutput(raw)
		}
		entries, err := client.GetWallet(c.Context)
		if err != nil {
			return err
		}
		display.Wallet(os.Stdout, entries, tableOptions())
		return nil
	},
}

var depositCommand = &cli.Command{
	Name:      "deposit",
	Usage:     "show deposit information for one or more currencies",
	ArgsUsage: "<currency> [currency...]",
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return cli.Exit("at least one currency is required", 1)
		}
		client, err := newClient(c)
		if err != nil {
			return err
		}
		refs := make([]lcswap.Ref, c.NArg())
		for i, arg := range c.Args().Slice() {
			refs[i] = lcswap.Ref(arg)
		}
		addrs, err := client.GetDepositAddresses(c.Context, refs...)
		if err != nil {
			return err
		}
		display.DepositAddresses(os.Stdout, addrs, tableOptions())
		return nil
	},
}

var withdrawCommand = &cli.Command{
	Name:  "withdraw",
	Usage: "withdraw from your wallet",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "currency", Required: true, Usage: "currency id, title or symbol"},
		&cli.StringFlag{Name: "to", Required: true, Usage: "destination address"},
		&cli.Float64Flag{Name: "amount", Required: true, Usage: "coin amount"},
		&cli.StringFlag{Name: "otp", Usage: "one-time passcode (generated from --otp-secret when empty)"},
		&cli.StringFlag{Name: "payment-id", Usage: "payment id / destination tag"},
	},
	Action: func(c *cli.Context) error {
		client, err := newClient(c)
		if err != nil {
			return err
		}
		code, err := otpCode(c.String("otp"))
		if err != nil {
			return err
		}
		receipt, err := client.Withdraw(c.Context, lcswap.WithdrawalRequest{
			Currency:  lcswap.Ref(c.String("currency")),
			ToAddress: c.String("to"),
			Amount:    c.Float64("amount"),
			OTP:       code,
			PaymentID: c.String("payment-id"),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Withdrawal created: %d\n", receipt.ID)
		return nil
	},
}

var transactionsCommand = &cli.Command{
	Name:  "transactions",
	Usage: "list wallet transactions",
	Flags: listFlags,
	Action: func(c *cli.Context) error {
		client, err := newClient(c)
		if err != nil {
			return err
		}
		if c.Bool("raw") {
			page, err := client.GetTransactionsRaw(c.Context, listOptions(c))
			if err != nil {
				return err
			}
			return jsonOutput(page)
		}
		page, err := client.GetTransactions(c.Context, listOptions(c))
		if err != nil {
			return err
		}
		display.Transactions(os.Stdout, page, tableOptions())
		return nil
	},
}

var adsCommand = &cli.Command{
	Name:  "ads",
	Usage: "list public ads",
	Flags: append([]cli.Flag{
		&cli.StringFlag{Name: "coin", Usage: "crypto currency id, title or symbol"},
		&cli.StringFlag{Name: "fiat", Usage: "fiat currency id, title or symbol"},
		&cli.StringFlag{Name: "type", Usage: "trade type (buy/sell)"},
		&cli.StringFlag{Name: "method", Usage: "payment method id or name"},
		&cli.StringFlag{Name: "location", Usage: "location name"},
		&cli.StringFlag{Name: "country", Usage: "country code"},
		&cli.StringFlag{Name: "ordering", Usage: "ordering keys, comma separated"},
	}, listFlags...),
	Action: func(c *cli.Context) error {
		client, err := newClient(c)
		if err != nil {
			return err
		}
		filter := lcswap.AdFilter{
			CoinCurrency:  lcswap.Ref(c.String("coin")),
			FiatCurrency:  lcswap.Ref(c.String("fiat")),
			TradingType:   lcswap.Ref(c.String("type")),
			PaymentMethod: lcswap.Ref(c.String("method")),
			Location:      c.String("location"),
			Country:       c.String("country"),
			Ordering:      c.String("ordering"),
		}
		if c.Bool("raw") {
			page, err := client.GetAdsRaw(c.Context, filter, listOptions(c))
			if err != nil {
				return err
			}
			return jsonOutput(page)
		}
		page, err := client.GetAds(c.Context, filter, listOptions(c))
		if err != nil {
			return err
		}
		display.Ads(os.Stdout, page, tableOptions())
		return nil
	},
}

var myAdsCommand = &cli.Command{
	Name:  "myads",
	Usage: "list your own ads",
	Flags: append([]cli.Flag{
		&cli.StringFlag{Name: "scope", Value: "all", Usage: "active, inactive or all"},
	}, listFlags...),
	Action: func(c *cli.Context) error {
		client, err := newClient(c)
		if err != nil {
			return err
		}
		page, err := client.GetMyAds(c.Context, lcswap.AdScope(c.String("scope")), listOptions(c))
		if err != nil {
			return err
		}
		display.MyAds(os.Stdout, page, tableOptions())
		return nil
	},
}

var adCommand = &cli.Command{
	Name:      "ad",
	Usage:     "show or manage a single ad",
	ArgsUsage: "<uuid>",
	Subcommands: []*cli.Command{
		{
			Name:      "pause",
			Usage:     "pause the ad",
			ArgsUsage: "<uuid>",
			Action:    adControlAction((*lcswap.Client).PauseAd),
		},
		{
			Name:      "resume",
			Usage:     "resume the ad",
			ArgsUsage: "<uuid>",
			Action:    adControlAction((*lcswap.Client).ResumeAd),
		},
		{
			Name:      "delete",
			Usage:     "delete the ad",
			ArgsUsage: "<uuid>",
			Action: func(c *cli.Context) error {
				id, err := uuidArg(c)
				if err != nil {
					return err
				}
				client, err := newClient(c)
				if err != nil {
					return err
				}
				if err := client.DeleteAd(c.Context, id); err != nil {
					return err
				}
				fmt.Printf("Deleted %s\n", id)
				return nil
			},
		},
	},
	Action: func(c *cli.Context) error {
		id, err := uuidArg(c)
		if err != nil {
			return err
		}
		client, err := newClient(c)
		if err != nil {
			return err
		}
		ad, err := client.GetAd(c.Context, id)
		if err != nil {
			return err
		}
		display.Ad(os.Stdout, ad, tableOptions())
		return nil
	},
}

var tradesCommand = &cli.Command{
	Name:  "trades",
	Usage: "list your trades",
	Flags: append([]cli.Flag{
		&cli.StringFlag{Name: "scope", Value: "all", Usage: "active, inactive or all"},
	}, listFlags...),
	Action: func(c *cli.Context) error {
		client, err := newClient(c)
		if err != nil {
			return err
		}

		var page *lcswap.Page[lcswap.Trade]
		switch c.String("scope") {
		case "active":
			page, err = client.GetActiveTrades(c.Context, listOptions(c))
		case "inactive":
			page, err = client.GetInactiveTrades(c.Context, listOptions(c))
		default:
			combined, cErr := client.GetAllTrades(c.Context, listOptions(c))
			if cErr != nil {
				return cErr
			}
			page = &lcswap.Page[lcswap.Trade]{Count: combined.Count, Results: combined.Results}
		}
		if err != nil {
			return err
		}
		display.Trades(os.Stdout, page, tableOptions())
		return nil
	},
}

var tradeCommand = &cli.Command{
	Name:      "trade",
	Usage:     "show or respond to a single trade",
	ArgsUsage: "<uuid>",
	Subcommands: []*cli.Command{
		{
			Name:      "accept",
			Usage:     "accept the trade",
			ArgsUsage: "<uuid>",
			Action:    tradeResponseAction((*lcswap.Client).AcceptTrade),
		},
		{
			Name:      "reject",
			Usage:     "reject the trade",
			ArgsUsage: "<uuid>",
			Action:    tradeResponseAction((*lcswap.Client).RejectTrade),
		},
		{
			Name:      "paid",
			Usage:     "mark the fiat side as paid",
			ArgsUsage: "<uuid>",
			Action:    tradeResponseAction((*lcswap.Client).MarkTradePaid),
		},
		{
			Name:      "confirm",
			Usage:     "confirm receipt of funds and release escrow",
			ArgsUsage: "<uuid>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "otp", Usage: "one-time passcode (generated from --otp-secret when empty)"},
			},
			Action: func(c *cli.Context) error {
				id, err := uuidArg(c)
				if err != nil {
					return err
				}
				client, err := newClient(c)
				if err != nil {
					return err
				}
				code, err := otpCode(c.String("otp"))
				if err != nil {
					return err
				}
				st, err := client.ConfirmTrade(c.Context, id, code)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %s\n", st.UUID, st.Status)
				return nil
			},
		},
	},
	Action: func(c *cli.Context) error {
		id, err := uuidArg(c)
		if err != nil {
			return err
		}
		client, err := newClient(c)
		if err != nil {
			return err
		}
		trade, err := client.GetTrade(c.Context, id)
		if err != nil {
			return err
		}
		display.Trade(os.Stdout, trade, tableOptions())
		return nil
	},
}

var otpCommand = &cli.Command{
	Name:  "otp",
	Usage: "print a one-time passcode for the configured secret",
	Action: func(c *cli.Context) error {
		code, err := otpCode("")
		if err != nil {
			return err
		}
		fmt.Println(code)
		return nil
	},
}
