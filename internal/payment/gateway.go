package payment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// Gateway creates payment intents with the card processor. The client
// secret it returns is handed to the frontend to confirm the charge.
type Gateway interface {
	CreateIntent(ctx context.Context, amountUSD float64) (string, error)
}

// stripeGateway implements Gateway using the Stripe API.
type stripeGateway struct {
	logger zerolog.Logger
}

// NewStripeGateway configures the Stripe client with the account secret
// and returns a Gateway backed by it.
func NewStripeGateway(secretKey string, logger zerolog.Logger) Gateway {
	stripe.Key = secretKey
	return &stripeGateway{
		logger: logger.With().Str("component", "stripe-gateway").Logger(),
	}
}

// CreateIntent creates a card payment intent for the given dollar amount
// and returns its client secret. Stripe wants the amount in cents.
func (g *stripeGateway) CreateIntent(ctx context.Context, amountUSD float64) (string, error) {
	if amountUSD <= 0 {
		return "", fmt.Errorf("payment amount must be positive")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amountUSD * 100)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		g.logger.Error().Err(err).Float64("amount_usd", amountUSD).Msg("failed to create payment intent")
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	g.logger.Info().
		Str("intent_id", intent.ID).
		Int64("amount_cents", intent.Amount).
		Msg("payment intent created")

	return intent.ClientSecret, nil
}
