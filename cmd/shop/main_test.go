package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBackend(t *testing.T, mux *http.ServeMux) string {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Setenv("BACKEND_BASE_URL", srv.URL)
	t.Setenv("SESSION_FILE", filepath.Join(t.TempDir(), "session.yaml"))
	t.Setenv("SESSION_STORE", "memory")
	return srv.URL
}

func runShop(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestFindCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "iphone 15", r.URL.Query().Get("name"))
		writeJSON(w, map[string]any{"content": []map[string]any{
			{"id": 15, "name": "iPhone 15", "price": 19990000},
		}})
	})
	setupBackend(t, mux)

	out, err := runShop(t, "find", "iphone", "15")

	require.NoError(t, err)
	assert.Contains(t, out, "iPhone 15")
	assert.Contains(t, out, "19.990.000 ₫")
	assert.Contains(t, out, "/product/15")
	assert.Contains(t, out, "/search?q=iphone+15")
}

func TestFindCommand_NoResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products/search", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"unexpected": true})
	})
	setupBackend(t, mux)

	out, err := runShop(t, "find", "nokia")

	require.NoError(t, err)
	assert.Contains(t, out, "No products found")
}

func TestQuoteCommand(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/installment/plans", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{
			"id":                 "zero",
			"partnerName":        "FE Credit",
			"downPaymentPercent": 30,
			"interestRate":       0,
			"allowedTenors":      []int{6, 12},
			"minPrice":           3000000,
			"active":             true,
		}})
	})
	setupBackend(t, mux)

	out, err := runShop(t, "quote", "20000000", "zero", "12")

	require.NoError(t, err)
	assert.Contains(t, out, "6.000.000 ₫")
	assert.Contains(t, out, "14.000.000 ₫")
	assert.Contains(t, out, "1.166.667 ₫")
	assert.Contains(t, out, "14.000.004 ₫")
}

func TestQuoteCommand_TenorNotOffered(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/installment/plans", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, []map[string]any{{"id": "zero", "allowedTenors": []int{6}, "minPrice": 1, "active": true}})
	})
	setupBackend(t, mux)

	_, err := runShop(t, "quote", "20000000", "zero", "9")

	require.Error(t, err)
}

func TestPayStatusCommand(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/payments/ORD-9/status", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			writeJSON(w, map[string]any{"status": "PENDING"})
			return
		}
		writeJSON(w, map[string]any{"status": "CAPTURED", "amount": 15990000})
	})
	setupBackend(t, mux)

	out, err := runShop(t, "pay-status", "ORD-9", "--interval", "1ms", "--max-attempts", "5")

	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())
	assert.Contains(t, out, "CAPTURED")
	assert.Contains(t, out, "15.990.000 ₫")
}

func TestPayStatusCommand_Exhausted(t *testing.T) {
	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/payments/ORD-7/status", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, map[string]any{"status": "PENDING"})
	})
	setupBackend(t, mux)

	out, err := runShop(t, "pay-status", "ORD-7", "--interval", "1ms", "--max-attempts", "3")

	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())
	assert.Contains(t, out, "shop pay-status ORD-7")
}

func TestLoginAndLogout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "an@example.vn", in["email"])
		writeJSON(w, map[string]any{
			"token": "tok-1",
			"user":  map[string]any{"id": "u1", "email": "an@example.vn", "fullName": "Nguyen An"},
		})
	})
	setupBackend(t, mux)

	out, err := runShop(t, "login", "AN@example.vn", "secret123")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Nguyen An")

	sess, err := shop.currentSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", sess.Token)

	out, err = runShop(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	out, err = runShop(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
}
