package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/grcledger/grcledger/pkg/observability/logger"
	"github.com/grcledger/grcledger/pkg/server/router/gin"
	"github.com/grcledger/grcledger/pkg/testutil"
)

func newAuthAPI(t *testing.T) (http.Handler, *TokenIssuer) {
	t.Helper()
	log, err := logger.NewZapLogger(logger.Config{Level: logger.ErrorLevel, Format: logger.JSONFormat})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	issuer, err := NewTokenIssuer(TokenConfig{Secret: "test-secret"})
	if err != nil {
		t.Fatal(err)
	}
	users := NewUserStore(testutil.NewDocStore(), log)

	r := gin.NewRouter()
	NewHandler(users, issuer, log).Register(r.Group("/api"))
	return r, issuer
}

func postJSON(t *testing.T, h http.Handler, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	h, issuer := newAuthAPI(t)

	rec := postJSON(t, h, "/api/auth/register", RegisterRequest{
		Email:    "auditor@example.com",
		Password: "hunter2hunter2",
		FullName: "Test Auditor",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Token == "" || resp.UserID == "" {
		t.Fatalf("incomplete response: %+v", resp)
	}
	if resp.Email != "auditor@example.com" || resp.Role != "User" {
		t.Errorf("response = %+v", resp)
	}

	claims, err := issuer.Validate(resp.Token)
	if err != nil {
		t.Fatalf("returned token fails validation: %v", err)
	}
	if claims.Subject != resp.UserID {
		t.Errorf("token subject %q != userId %q", claims.Subject, resp.UserID)
	}
}

func TestRegisterEndpointConflict(t *testing.T) {
	h, _ := newAuthAPI(t)

	req := RegisterRequest{Email: "a@example.com", Password: "pw", FullName: "A"}
	if rec := postJSON(t, h, "/api/auth/register", req); rec.Code != http.StatusOK {
		t.Fatalf("first register status = %d", rec.Code)
	}
	if rec := postJSON(t, h, "/api/auth/register", req); rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", rec.Code)
	}
}

func TestRegisterEndpointValidation(t *testing.T) {
	h, _ := newAuthAPI(t)

	for _, req := range []RegisterRequest{
		{Password: "pw"},
		{Email: "a@example.com"},
	} {
		if rec := postJSON(t, h, "/api/auth/register", req); rec.Code != http.StatusBadRequest {
			t.Errorf("register %+v status = %d, want 400", req, rec.Code)
		}
	}
}

func TestLoginEndpoint(t *testing.T) {
	h, _ := newAuthAPI(t)

	register := RegisterRequest{Email: "a@example.com", Password: "correct horse", FullName: "A"}
	if rec := postJSON(t, h, "/api/auth/register", register); rec.Code != http.StatusOK {
		t.Fatalf("register status = %d", rec.Code)
	}

	t.Run("success", func(t *testing.T) {
		rec := postJSON(t, h, "/api/auth/login", LoginRequest{Email: "A@Example.com", Password: "correct horse"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		var resp AuthResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatal(err)
		}
		if resp.Token == "" {
			t.Error("login response carries no token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := postJSON(t, h, "/api/auth/login", LoginRequest{Email: "a@example.com", Password: "nope"})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		rec := postJSON(t, h, "/api/auth/login", LoginRequest{Email: "nobody@example.com", Password: "x"})
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})
}
