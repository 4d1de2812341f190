package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/fuelwatch/internal/domain"
)

// CheckParams is the immutable configuration of a balance check, built once
// at startup and injected into the use case.
type CheckParams struct {
	Threshold      decimal.Decimal
	Mode           domain.BalanceMode
	WalletID       string // optional explicit wallet id, strongly recommended
	Currency       domain.CurrencyFilter
	Location       *time.Location
	DirectionRules []domain.DirectionRule
	CreditKeywords []string
}

// CheckOutcome is what a completed run produced.
type CheckOutcome struct {
	Wallet    *domain.Wallet
	Balance   *domain.BalanceResult
	Alert     domain.AlertDecision
	Delivered bool
}

// CheckUseCase runs one balance check end to end: fetch, select, classify,
// aggregate, evaluate, notify. A run is single-threaded and stateless;
// retry happens by re-running the whole check.
type CheckUseCase struct {
	wallets    WalletProvider
	feed       TransactionProvider
	notifier   Notifier
	params     CheckParams
	classifier *domain.Classifier
	logger     zerolog.Logger
	now        func() time.Time
}

// NewCheckUseCase creates a new check use case.
func NewCheckUseCase(wallets WalletProvider, feed TransactionProvider, notifier Notifier, params CheckParams, logger zerolog.Logger) *CheckUseCase {
	if params.Location == nil {
		params.Location = time.Local
	}
	return &CheckUseCase{
		wallets:    wallets,
		feed:       feed,
		notifier:   notifier,
		params:     params,
		classifier: domain.NewClassifier(params.DirectionRules, params.CreditKeywords),
		logger:     logger,
		now:        time.Now,
	}
}

// Run executes a single run-to-completion check. Every failure is terminal
// and aborts the run without sending an alert; only a notifier delivery
// failure is tolerated, because by then the balance verdict already stands.
func (uc *CheckUseCase) Run(ctx context.Context) (*CheckOutcome, error) {
	now := uc.now().In(uc.params.Location)
	businessDate := now.Format("20060102")

	log := uc.logger.With().
		Str("run_id", ulid.Make().String()).
		Str("date", businessDate).
		Logger()

	log.Info().
		Str("mode", string(uc.params.Mode)).
		Str("timezone", now.Location().String()).
		Msg("starting balance check")

	// Both reads are always issued, snapshot first, because each is
	// validated on its own.
	wallets, err := uc.wallets.WalletRemains(ctx, businessDate)
	if err != nil {
		log.Error().Err(err).Msg("wallet snapshot request failed")
		return nil, fmt.Errorf("wallet snapshot: %w", err)
	}

	records, err := uc.feed.Transactions(ctx, businessDate)
	if err != nil {
		log.Error().Err(err).Msg("transaction feed request failed")
		return nil, fmt.Errorf("transaction feed: %w", err)
	}

	candidates := domain.FilterByCurrency(wallets, uc.params.Currency)
	wallet, err := domain.PickWallet(candidates, uc.params.WalletID)
	if err != nil {
		for _, w := range candidates {
			opening, source := w.OpeningBalance()
			log.Info().
				Str("wallet_id", w.ID).
				Str("wallet_name", w.Name).
				Str("goods_name", w.GoodsName).
				Str("value", w.Value.String()).
				Str("opening", opening.String()).
				Str("opening_source", source).
				Msg("candidate wallet")
		}
		log.Error().Err(err).Int("candidates", len(candidates)).Msg("wallet selection failed")
		return nil, err
	}

	opening, openingSource := wallet.OpeningBalance()
	log.Info().
		Str("wallet_id", wallet.ID).
		Str("wallet_name", wallet.Name).
		Str("opening", opening.String()).
		Str("opening_source", openingSource).
		Msg("wallet selected")

	classified := make([]domain.ClassifiedTransaction, 0, len(records))
	for _, rec := range records {
		tx := domain.ClassifiedTransaction{Matched: rec.MatchesWallet(wallet.Name)}
		if tx.Matched {
			tx.Amount, tx.Classified = uc.classifier.Classify(rec)
		}
		classified = append(classified, tx)
	}

	result, err := domain.Aggregate(opening, openingSource, uc.params.Mode, classified)
	if err != nil {
		log.Error().Err(err).Int("records", len(records)).Msg("aggregation refused to produce a balance")
		return nil, err
	}

	log.Info().
		Str("balance", result.BalanceForCheck.String()).
		Str("delta", result.Delta.String()).
		Int("matched", result.Matched).
		Int("classified", result.Classified).
		Int("unclassified", result.Unclassified).
		Msg("balance reconciled")

	decision := domain.EvaluateThreshold(result, uc.params.Threshold, now)
	outcome := &CheckOutcome{Wallet: wallet, Balance: result, Alert: decision}

	if !decision.Fires {
		log.Info().
			Str("threshold", uc.params.Threshold.String()).
			Msg("balance at or above threshold")
		return outcome, nil
	}

	log.Warn().
		Str("threshold", uc.params.Threshold.String()).
		Str("balance", result.BalanceForCheck.String()).
		Msg("balance below threshold, sending alert")

	if err := uc.notifier.Send(ctx, decision.Message); err != nil {
		// Delivery problems never change the run's verdict.
		log.Error().Err(err).Msg("alert delivery failed")
		return outcome, nil
	}

	outcome.Delivered = true
	log.Info().Msg("alert delivered")
	return outcome, nil
}
