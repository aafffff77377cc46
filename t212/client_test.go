package t212

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

// testClient returns a client wired to a local server, with pacing and
// retry pauses removed.
func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New("test-key", "Test Account")
	c.base = srv.URL
	c.interval = 0
	c.retryWait = 0
	return c
}

func TestClient_GetPortfolio(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "test-key" {
			t.Errorf("Authorization = %q, want the API key", got)
		}
		if r.URL.Path != "/equity/portfolio" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[
			{"ticker":"NVDA_US_EQ","quantity":2.5,"averagePrice":100.1,"currentPrice":150.2,"currencyCode":"USD"},
			{"ticker":"VUAGl_EQ","quantity":10,"averagePrice":7500,"currentPrice":8712}
		]`))
	})
	entries, err := c.GetPortfolio()
	if err != nil {
		t.Fatalf("GetPortfolio() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("GetPortfolio() returned %d entries, want 2", len(entries))
	}
	e := entries[0]
	if e.Ticker != "NVDA_US_EQ" || e.CurrencyCode != "USD" {
		t.Errorf("entry = %+v", e)
	}
	if e.Quantity == nil || !e.Quantity.Equal(decimal.NewFromFloat(2.5)) {
		t.Errorf("Quantity = %v, want 2.5", e.Quantity)
	}
	// Omitted fields stay nil instead of defaulting to zero.
	if entries[1].CurrencyCode != "" {
		t.Errorf("CurrencyCode = %q, want empty", entries[1].CurrencyCode)
	}
}

func TestClient_Unauthorized(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	_, err := c.GetPortfolio()
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("GetPortfolio() error = %v, want ErrUnauthorized", err)
	}
}

func TestClient_RetryAfter429(t *testing.T) {
	calls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`[]`))
	})
	if _, err := c.GetPortfolio(); err != nil {
		t.Fatalf("GetPortfolio() error = %v, want success on retry", err)
	}
	if calls != 2 {
		t.Errorf("server saw %d calls, want 2", calls)
	}
}

func TestClient_RetryOnlyOnce(t *testing.T) {
	calls := 0
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	})
	if _, err := c.GetPortfolio(); err == nil {
		t.Fatal("GetPortfolio() succeeded against a permanently throttled server")
	}
	if calls != 2 {
		t.Errorf("server saw %d calls, want 2", calls)
	}
}

func TestClient_GetPositionDetails(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"top level name", `{"name":"Nvidia"}`, "Nvidia"},
		{"short name", `{"shortName":"NVDA"}`, "NVDA"},
		{"nested instrument name", `{"instrument":{"name":"Nvidia Corp"}}`, "Nvidia Corp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})
			got, err := c.GetPositionDetails("NVDA_US_EQ")
			if err != nil {
				t.Fatalf("GetPositionDetails() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("GetPositionDetails() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_GetPositionDetails_NoName(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ticker":"VUAGl_EQ"}`))
	})
	if _, err := c.GetPositionDetails("VUAGl_EQ"); err == nil {
		t.Fatal("GetPositionDetails() returned a name from a nameless payload")
	}
}

func TestClient_GetAccountCash(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"free":123.45,"invested":1000}`))
	})
	free, err := c.GetAccountCash()
	if err != nil {
		t.Fatalf("GetAccountCash() error = %v", err)
	}
	if !free.Equal(decimal.NewFromFloat(123.45)) {
		t.Errorf("GetAccountCash() = %v, want 123.45", free)
	}
}

func TestClient_GetAccountCash_MissingFree(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"invested":1000}`))
	})
	if _, err := c.GetAccountCash(); err == nil {
		t.Fatal("GetAccountCash() accepted a payload without a free balance")
	}
}

func TestClient_GetAccountInfo(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"currencyCode":"GBP","id":123}`))
	})
	currency, err := c.GetAccountInfo()
	if err != nil {
		t.Fatalf("GetAccountInfo() error = %v", err)
	}
	if currency != "GBP" {
		t.Errorf("GetAccountInfo() = %q, want GBP", currency)
	}
}
