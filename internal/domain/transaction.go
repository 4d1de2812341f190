package domain

import "github.com/shopspring/decimal"

// TransactionRecord is one row of the same-day transaction feed. The feed
// does not reliably state direction, and amounts arrive in two fields of
// mixed quality: a settled final amount and a provisional raw one.
type TransactionRecord struct {
	WalletName  string
	FinalAmount Amount // settled amount; absent until the operation is final
	RawAmount   Amount // provisional amount; zero means "not filled in yet"
	Direction   string // free-form direction hint
	GoodsName   string
	CardInfo    string
}

// MatchesWallet reports whether the record belongs to the named wallet.
// A blank name on either side matches: feeds for single-wallet contracts
// often omit the wallet column.
func (r *TransactionRecord) MatchesWallet(walletName string) bool {
	a, b := normalize(r.WalletName), normalize(walletName)
	return a == "" || b == "" || a == b
}

// ClassifiedTransaction is the classifier's verdict on one record.
type ClassifiedTransaction struct {
	Amount     decimal.Decimal // signed; negative is expenditure
	Matched    bool            // belongs to the selected wallet
	Classified bool            // an amount could be resolved
}
