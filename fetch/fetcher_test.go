package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetch_PDF(t *testing.T) {
	// WHAT: 200 + application/pdf classifies as StatusOK with the body.
	// WHY: Core probe path — everything downstream consumes Body.
	var gotUSN, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUSN = r.URL.Query().Get("USN")
		gotFormat = r.URL.Query().Get("__format")
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	f := New(Config{BaseURL: srv.URL})
	out := f.Fetch(context.Background(), "1DS23CS001")
	if out.Status != StatusOK {
		t.Fatalf("status: got %v, want StatusOK", out.Status)
	}
	if string(out.Body) != "%PDF-1.4 fake" {
		t.Errorf("body: got %q", string(out.Body))
	}
	if gotUSN != "1DS23CS001" {
		t.Errorf("USN param: got %q", gotUSN)
	}
	if gotFormat != "pdf" {
		t.Errorf("__format param: got %q", gotFormat)
	}
}

func TestFetch_Non200(t *testing.T) {
	// WHAT: 404 classifies as StatusNotFound, not an error.
	// WHY: An absent USN must not abort the scan.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := New(Config{BaseURL: srv.URL})
	if out := f.Fetch(context.Background(), "1DS23CS999"); out.Status != StatusNotFound {
		t.Errorf("status: got %v, want StatusNotFound", out.Status)
	}
}

func TestFetch_WrongContentType(t *testing.T) {
	// WHAT: 200 with text/html classifies as StatusNotFound.
	// WHY: The portal answers unknown USNs with an HTML error page and
	// status 200 — content type is the only reliable signal.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html>no such report</html>"))
	}))
	defer srv.Close()

	f := New(Config{BaseURL: srv.URL})
	if out := f.Fetch(context.Background(), "1DS23CS999"); out.Status != StatusNotFound {
		t.Errorf("status: got %v, want StatusNotFound", out.Status)
	}
}

func TestFetch_Timeout(t *testing.T) {
	// WHAT: A hanging portal classifies as StatusTransportError.
	// WHY: One slow probe degrades to "absent" instead of wedging the loop.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	f := New(Config{BaseURL: srv.URL, Timeout: 100 * time.Millisecond})
	out := f.Fetch(context.Background(), "1DS23CS001")
	if out.Status != StatusTransportError {
		t.Fatalf("status: got %v, want StatusTransportError", out.Status)
	}
	if out.Reason == "" {
		t.Error("transport errors should carry a reason")
	}
}

func TestFetch_ConnectionRefused(t *testing.T) {
	// WHAT: Unreachable portal classifies as StatusTransportError.
	// WHY: Network-level failure must never propagate as a hard error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := New(Config{BaseURL: url})
	if out := f.Fetch(context.Background(), "1DS23CS001"); out.Status != StatusTransportError {
		t.Errorf("status: got %v, want StatusTransportError", out.Status)
	}
}
