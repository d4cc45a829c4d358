package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/pquerna/otp/totp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/localcoinswap/lcswap"
)

var errNoOTPSource = errors.New("no --otp given and no --otp-secret configured")

func newClient(c *cli.Context) (*lcswap.Client, error) {
	opts := []lcswap.Option{lcswap.WithVerbose(verbose)}
	if baseURL != "" {
		opts = append(opts, lcswap.WithBaseURL(baseURL))
	}
	if verbose {
		l := logrus.New()
		l.SetLevel(logrus.DebugLevel)
		opts = append(opts, lcswap.WithLogger(l))
	}
	return lcswap.New(c.Context, token, opts...)
}

func jsonOutput(in any) error {
	j, err := json.MarshalIndent(in, "", " ")
	if err != nil {
		return err
	}
	fmt.Println(string(j))
	return nil
}

// uuidArg validates the first positional argument as a UUID before any
// request goes out, so a typo fails locally instead of as a 404.
func uuidArg(c *cli.Context) (string, error) {
	arg := c.Args().First()
	if arg == "" {
		return "", cli.Exit("a uuid argument is required", 1)
	}
	if _, err := uuid.FromString(arg); err != nil {
		return "", fmt.Errorf("%q is not a valid uuid: %w", arg, err)
	}
	return arg, nil
}

// otpCode returns the explicit code when one was given, otherwise generates
// a TOTP from the configured secret.
func otpCode(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if otpSecret == "" {
		return "", errNoOTPSource
	}
	return totp.GenerateCode(otpSecret, time.Now())
}

func adControlAction(op func(*lcswap.Client, context.Context, string) (*lcswap.AdStatus, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		id, err := uuidArg(c)
		if err != nil {
			return err
		}
		client, err := newClient(c)
		if err != nil {
			return err
		}
		st, err := op(client, c.Context, id)
		if err != nil {
			return err
		}
		state := "paused"
		if st.IsActive {
			state = "active"
		}
		fmt.Printf("%s: %s\n", st.UUID, state)
		return nil
	}
}

func tradeResponseAction(op func(*lcswap.Client, context.Context, string) (*lcswap.TradeStatus, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		id, err := uuidArg(c)
		if err != nil {
			return err
		}
		client, err := newClient(c)
		if err != nil {
			return err
		}
		st, err := op(client, c.Context, id)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", st.UUID, st.Status)
		return nil
	}
}
