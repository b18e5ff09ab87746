package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"checkout-gateway/config"
	"checkout-gateway/internal/app"
	"checkout-gateway/internal/core/domain"
	"checkout-gateway/internal/core/ports"
	"checkout-gateway/pkg/apperror"
	"checkout-gateway/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// services are the on-chain operations the CLI drives.
type services struct {
	Checkout      ports.OnChainCheckoutService
	Confirmations ports.ConfirmationService
}

type serviceLoader func(configPath, logLevel string) (*services, error)

// loadServices builds the on-chain rail the same way the API server does.
// The CLI runs without Redis; every lookup goes to the ledger.
func loadServices(configPath, logLevel string) (*services, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config:\n%w", err)
	}
	// stdout carries command output; logs go to stderr.
	log := logger.NewWithWriter(logLevel, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	onchain, err := app.NewOnChain(cfg, nil, log)
	if err != nil {
		return nil, err
	}
	return &services{Checkout: onchain.Checkout, Confirmations: onchain.Confirmations}, nil
}

func newRootCmd(load serviceLoader, out io.Writer) *cobra.Command {
	var (
		configPath string
		logLevel   string
		asJSON     bool
	)

	rootCmd := &cobra.Command{
		Use:           "checkoutctl",
		Short:         "checkoutctl - quote, build and confirm on-chain checkout transfers",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ./config.yaml, env CKG_*)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")

	svc := func() (*services, error) { return load(configPath, logLevel) }
	newPrinter := func() printer { return printer{out: out, json: asJSON} }

	rootCmd.AddCommand(quoteCmd(svc, newPrinter))
	rootCmd.AddCommand(transferCmd(svc, newPrinter))
	rootCmd.AddCommand(linkCmd(svc, newPrinter))
	rootCmd.AddCommand(confirmCmd(svc, newPrinter))
	return rootCmd
}

func quoteCmd(svc func() (*services, error), p func() printer) *cobra.Command {
	var currency string
	cmd := &cobra.Command{
		Use:   "quote [fiat-amount]",
		Short: "Preview the asset amount for a fiat amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseFiat(args[0])
			if err != nil {
				return err
			}
			s, err := svc()
			if err != nil {
				return err
			}
			res, err := s.Checkout.Quote(cmd.Context(), ports.QuoteRequest{FiatAmount: amount, Currency: currency})
			if err != nil {
				return err
			}
			conv := res.Conversion
			return p().print(map[string]interface{}{
				"fiat_amount":    res.FiatAmount.String(),
				"currency":       res.Currency,
				"price":          conv.Quote.RealizedPrice().String(),
				"price_source":   string(conv.Quote.Source),
				"buffered_price": conv.BufferedPrice.String(),
				"asset_quantity": conv.Quantity,
				"asset_amount":   res.HumanReadableAmount,
			}, []string{"fiat_amount", "currency", "price", "price_source", "buffered_price", "asset_quantity", "asset_amount"})
		},
	}
	cmd.Flags().StringVar(&currency, "currency", "", "Fiat currency (default: the feed's quote currency)")
	return cmd
}

func transferCmd(svc func() (*services, error), p func() printer) *cobra.Command {
	var currency string
	cmd := &cobra.Command{
		Use:   "transfer [fiat-amount] [payer-address]",
		Short: "Build an unsigned transfer for a wallet to sign",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseFiat(args[0])
			if err != nil {
				return err
			}
			s, err := svc()
			if err != nil {
				return err
			}
			res, err := s.Checkout.CreateTransfer(cmd.Context(), domain.PaymentRequest{
				FiatAmount:   amount,
				Currency:     currency,
				PayerAddress: strings.TrimSpace(args[1]),
			})
			if err != nil {
				return err
			}
			d := res.Descriptor
			return p().print(map[string]interface{}{
				"unsigned_transfer_base64": d.Base64(),
				"asset_quantity":           d.AssetQuantity,
				"asset_amount":             res.HumanReadableAmount,
				"payee":                    d.Payee,
				"checkpoint":               d.Checkpoint.BlockID,
				"expires_at":               d.Checkpoint.ExpiresAt.UTC().Format(time.RFC3339),
				"checkout_ticket":          res.Ticket,
				"state":                    string(res.State),
			}, []string{"asset_quantity", "asset_amount", "payee", "checkpoint", "expires_at", "state", "unsigned_transfer_base64", "checkout_ticket"})
		},
	}
	cmd.Flags().StringVar(&currency, "currency", "", "Fiat currency (default: the feed's quote currency)")
	return cmd
}

func linkCmd(svc func() (*services, error), p func() printer) *cobra.Command {
	var memo string
	cmd := &cobra.Command{
		Use:   "link [fiat-amount]",
		Short: "Create a wallet transfer-request URL paying the merchant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseFiat(args[0])
			if err != nil {
				return err
			}
			s, err := svc()
			if err != nil {
				return err
			}
			res, err := s.Checkout.PaymentLink(cmd.Context(), ports.PaymentLinkRequest{FiatAmount: amount, Memo: memo})
			if err != nil {
				return err
			}
			return p().print(map[string]interface{}{
				"url":            res.URL,
				"asset_quantity": res.Conversion.Quantity,
			}, []string{"url", "asset_quantity"})
		},
	}
	cmd.Flags().StringVar(&memo, "memo", "", "Memo attached to the transfer (default: payment-<unix ms>)")
	return cmd
}

func confirmCmd(svc func() (*services, error), p func() printer) *cobra.Command {
	var wait time.Duration
	cmd := &cobra.Command{
		Use:   "confirm [signature]",
		Short: "Look up the finality of a broadcast transfer",
		Long: `Look up the finality of a broadcast transfer.

With --wait the lookup is repeated with backoff until the transfer is
confirmed or failed. A wait that runs out reports status unknown.
A failed transfer exits non-zero with the ledger error.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := svc()
			if err != nil {
				return err
			}
			sig := strings.TrimSpace(args[0])

			var rec *domain.ConfirmationRecord
			if wait > 0 {
				rec, err = s.Confirmations.WaitForFinality(cmd.Context(), sig, wait)
			} else {
				rec, err = s.Confirmations.Resolve(cmd.Context(), sig)
			}
			if err != nil {
				return err
			}

			fields := map[string]interface{}{
				"signature": rec.SignatureID,
				"status":    string(rec.Status),
			}
			order := []string{"signature", "status"}
			if rec.BlockTime != nil {
				fields["block_time"] = rec.BlockTime.UTC().Format(time.RFC3339)
				order = append(order, "block_time")
			}
			if len(rec.LedgerError) > 0 {
				fields["ledger_error"] = rec.LedgerError
				order = append(order, "ledger_error")
			}
			if err := p().print(fields, order); err != nil {
				return err
			}

			if rec.Status == domain.FinalityFailed {
				return apperror.ErrTransactionFailed(rec.SignatureID, rec.LedgerError)
			}
			return nil
		},
	}
	cmd.Flags().DurationVarP(&wait, "wait", "w", 0, "Wait up to this long for finality, e.g. 60s")
	return cmd
}

func parseFiat(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("fiat amount %q is not a decimal number", raw)
	}
	return amount, nil
}

// printer writes either aligned key/value lines or a JSON object.
type printer struct {
	out  io.Writer
	json bool
}

func (p printer) print(fields map[string]interface{}, order []string) error {
	if p.json {
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(fields)
	}
	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	for _, k := range order {
		v := fields[k]
		if raw, ok := v.(json.RawMessage); ok {
			v = string(raw)
		}
		fmt.Fprintf(tw, "%s:\t%v\n", k, v)
	}
	return tw.Flush()
}
