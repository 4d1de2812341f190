package fuelcard

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iho/fuelwatch/internal/domain"
)

// flexString tolerates the API's habit of sending the same field as a JSON
// string or a bare number depending on backend version. Numbers keep their
// exact textual form, so no float rounding sneaks in.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	*f = flexString(data)
	return nil
}

func (f flexString) String() string { return string(f) }

// walletDTO is one wire wallet record. The snapshot schema varies between
// contracts, so it is decoded as a loose key set and probed.
type walletDTO map[string]flexString

func (d walletDTO) field(key string) string {
	return strings.TrimSpace(string(d[key]))
}

// availableKeys are the wire keys that may carry an explicit available
// amount, in priority order.
var availableKeys = []string{
	"Available",
	"AvailableValue",
	"AvailableSum",
	"SumAvailable",
	"RestAvailable",
	"ValueAvailable",
	"FreeValue",
	"BalanceAvailable",
	"SaldoAvailable",
}

// blockedKeys are the wire keys holding blocked or reserved amounts to
// subtract from the gross value.
var blockedKeys = []string{
	"Blocked",
	"BlockedValue",
	"BlockedSum",
	"Reserve",
	"Reserved",
	"ReservedValue",
	"Hold",
	"OnHold",
	"Frozen",
	"NotAvailable",
}

// toWallet converts one wire record into the domain snapshot, resolving the
// optional available and blocked fields the API spreads across many keys.
func toWallet(d walletDTO) *domain.Wallet {
	w := &domain.Wallet{
		ID:           d.field("WalletId"),
		Name:         d.field("WalletName"),
		GoodsName:    d.field("GoodsName"),
		CurrencyCode: d.field("CurrencyCode"),
		Value:        domain.ParseAmount(d.field("Value")),
	}
	if w.Name == "" {
		w.Name = d.field("Name")
	}

	for _, key := range availableKeys {
		if a := domain.ParseOptionalAmount(d.field(key)); a.Present {
			w.Available = a
			w.AvailableSource = key
			break
		}
	}

	var details []string
	for _, key := range blockedKeys {
		if a := domain.ParseOptionalAmount(d.field(key)); a.Present {
			w.Blocked = w.Blocked.Add(a.Value)
			details = append(details, fmt.Sprintf("%s=%s", key, a.Value))
		}
	}
	w.BlockedDetail = strings.Join(details, ";")

	return w
}

// transactionDTO is one wire transaction record.
type transactionDTO struct {
	WalletName    flexString `json:"WalletName"`
	FinalSum      flexString `json:"FinalSum"`
	Sum           flexString `json:"Sum"`
	OperationType flexString `json:"OperationType"`
	OperationName flexString `json:"OperationName"`
	GoodsName     flexString `json:"GoodsName"`
	CardInfo      flexString `json:"CardInfo"`
}

// toTransaction converts one wire record. Both operation fields feed the
// direction hint; the classifier scans them as one text.
func toTransaction(d transactionDTO) *domain.TransactionRecord {
	direction := strings.TrimSpace(string(d.OperationType))
	if name := strings.TrimSpace(string(d.OperationName)); name != "" {
		direction = strings.TrimSpace(direction + " " + name)
	}
	return &domain.TransactionRecord{
		WalletName:  strings.TrimSpace(string(d.WalletName)),
		FinalAmount: domain.ParseOptionalAmount(string(d.FinalSum)),
		RawAmount:   domain.ParseOptionalAmount(string(d.Sum)),
		Direction:   direction,
		GoodsName:   strings.TrimSpace(string(d.GoodsName)),
		CardInfo:    strings.TrimSpace(string(d.CardInfo)),
	}
}
