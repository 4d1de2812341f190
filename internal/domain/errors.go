package domain

import "errors"

var (
	// Wallet selection errors
	ErrNoWallets       = errors.New("no wallets match the target currency")
	ErrAmbiguousWallet = errors.New("multiple wallets match; set an explicit wallet id")
	ErrWalletNotFound  = errors.New("configured wallet id not found")

	// Aggregation errors
	ErrNoClassifiedTransactions = errors.New("no transactions could be classified")
)
