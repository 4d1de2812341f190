package fuelcard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
	}, zerolog.Nop())
}

func TestClient_WalletRemains(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/test-key", r.URL.Path)
		require.Equal(t, actionWalletRemains, r.URL.Query().Get("Action"))

		var req apiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "20250314", req.Date)
		require.Equal(t, "1.0", req.Version)

		// Mixed string/number fields, the way the real API behaves.
		w.Write([]byte(`{
			"status": 0,
			"remains": [
				{
					"WalletId": 123,
					"WalletName": "Паливо",
					"GoodsName": "Грн",
					"CurrencyCode": "980",
					"Value": "12 345,67",
					"Blocked": 345.67
				}
			]
		}`))
	})

	wallets, err := client.WalletRemains(context.Background(), "20250314")
	require.NoError(t, err)
	require.Len(t, wallets, 1)

	w := wallets[0]
	require.Equal(t, "123", w.ID)
	require.Equal(t, "Паливо", w.Name)
	require.Equal(t, "12345.67", w.Value.String())
	require.Equal(t, "345.67", w.Blocked.String())

	opening, source := w.OpeningBalance()
	require.Equal(t, "12000", opening.String())
	require.Equal(t, "value-minus-blocked:Blocked=345.67", source)
}

func TestClient_WalletRemainsErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "non-success status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"status": "42", "remains": [{"WalletId": "1"}]}`))
			},
			wantErr: `status "42"`,
		},
		{
			name: "empty wallet list",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"status": "0", "remains": []}`))
			},
			wantErr: "empty wallet list",
		},
		{
			name: "http error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: "HTTP 500",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(`{"status": "0", "remains": `))
			},
			wantErr: "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.WalletRemains(context.Background(), "20250314")
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClient_Transactions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, actionTransactions, r.URL.Query().Get("Action"))
		w.Write([]byte(`{
			"status": "0",
			"transactions": [
				{
					"WalletName": "Паливо",
					"FinalSum": "None",
					"Sum": 0,
					"OperationType": "Покупка",
					"GoodsName": "Бензин А-95"
				},
				{
					"FinalSum": "-250,50",
					"Sum": "-250,50",
					"CardInfo": "card *1234"
				}
			]
		}`))
	})

	records, err := client.Transactions(context.Background(), "20250314")
	require.NoError(t, err)
	require.Len(t, records, 2)

	// A not-ready final amount stays absent; the raw zero stays present.
	require.False(t, records[0].FinalAmount.Present)
	require.True(t, records[0].RawAmount.Present)
	require.True(t, records[0].RawAmount.Value.IsZero())
	require.Equal(t, "Покупка", records[0].Direction)

	require.True(t, records[1].FinalAmount.Present)
	require.Equal(t, "-250.5", records[1].FinalAmount.Value.String())
}

func TestClient_TransactionsEmptyFeedIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": "0", "transactions": []}`))
	})

	records, err := client.Transactions(context.Background(), "20250314")
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestClient_TransactionsStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status": "err", "transactions": []}`))
	})

	_, err := client.Transactions(context.Background(), "20250314")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), `status "err"`))
}
