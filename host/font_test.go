package host

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestRegisterFont_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "font/ttf")
		w.Write(goregular.TTF)
	}))
	defer srv.Close()

	eng := &fakeEngine{}
	h := New(eng, WithHTTPClient(srv.Client()))

	if err := h.RegisterFont(context.Background(), srv.URL+"/inter.ttf"); err != nil {
		t.Fatalf("RegisterFont() error: %v", err)
	}

	if len(eng.fonts) != 1 {
		t.Fatalf("engine received %d fonts, want 1", len(eng.fonts))
	}
	if len(eng.fonts[0]) != len(goregular.TTF) {
		t.Errorf("engine received %d bytes, want %d", len(eng.fonts[0]), len(goregular.TTF))
	}
}

func TestRegisterFont_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	eng := &fakeEngine{}
	h := New(eng)

	if err := h.RegisterFont(context.Background(), url+"/font.ttf"); err == nil {
		t.Fatal("RegisterFont() against unreachable URL succeeded")
	}
	if len(eng.fonts) != 0 {
		t.Error("a font was registered despite the transport failure")
	}
}

func TestRegisterFont_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	eng := &fakeEngine{}
	h := New(eng, WithHTTPClient(srv.Client()))

	if err := h.RegisterFont(context.Background(), srv.URL+"/font.ttf"); err == nil {
		t.Fatal("RegisterFont() on 404 succeeded")
	}
	if len(eng.fonts) != 0 {
		t.Error("a font was registered despite the 404")
	}
}

func TestRegisterFont_EngineRejectionUnwrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a font"))
	}))
	defer srv.Close()

	engineErr := errors.New("invalid sfnt header")
	eng := &fakeEngine{fontErr: engineErr}
	h := New(eng, WithHTTPClient(srv.Client()))

	err := h.RegisterFont(context.Background(), srv.URL+"/bad.ttf")
	if !errors.Is(err, engineErr) {
		t.Errorf("error = %v, want the engine's error unwrapped", err)
	}
}

func TestRegisterFontData(t *testing.T) {
	eng := &fakeEngine{}
	h := New(eng)

	if err := h.RegisterFontData(goregular.TTF); err != nil {
		t.Fatalf("RegisterFontData() error: %v", err)
	}
	if len(eng.fonts) != 1 {
		t.Errorf("engine received %d fonts, want 1", len(eng.fonts))
	}
}
