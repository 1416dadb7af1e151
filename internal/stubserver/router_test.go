package stubserver_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"pawpal-client/internal/stubserver"
)

func TestHTTP_AuthAndOwnership(t *testing.T) {
	ts := httptest.NewServer(stubserver.NewRouter(stubserver.Options{}))
	defer ts.Close()

	// 1) Registro de dos usuarios
	registerUser(t, ts.URL, "Ana", "Paz", "ana@x.com")
	registerUser(t, ts.URL, "Bruno", "Sol", "bruno@x.com")

	// 2) Registro duplicado => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/auth/register", "", map[string]any{
			"firstName": "Ana", "lastName": "Paz", "email": "ana@x.com",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate register, got %d", st)
		}
	}

	// 3) Login con contraseña mala => 401
	{
		st, _ := doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
			"email": "ana@x.com", "password": "wrong",
		})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 bad password, got %d", st)
		}
	}

	anaToken := loginUser(t, ts.URL, "ana@x.com", stubserver.InitialPassword)
	brunoToken := loginUser(t, ts.URL, "bruno@x.com", stubserver.InitialPassword)

	// 4) Un login fallido posterior queda contado en passwordAttempts
	{
		doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
			"email": "ana@x.com", "password": "wrong-again",
		})

		st, body := doReq(t, ts.URL, "GET", "/users/details", anaToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 details, got %d body=%s", st, string(body))
		}
		var u struct {
			PasswordAttempts int `json:"passwordAttempts"`
		}
		_ = json.Unmarshal(body, &u)
		if u.PasswordAttempts != 1 {
			t.Fatalf("expected 1 failed attempt, got %d", u.PasswordAttempts)
		}
	}

	// 5) Rutas protegidas sin token => 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/all", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d", st)
		}
	}

	// 6) Lista vacía => 204 sin body
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/all", anaToken, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 for empty list, got %d", st)
		}
		if len(bytes.TrimSpace(body)) != 0 {
			t.Fatalf("204 must not carry body, got %s", string(body))
		}
	}

	// 7) Ana crea una mascota
	petID := createPet(t, ts.URL, anaToken)

	// 8) Con datos, la lista es 200 y array
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/all", anaToken, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list, got %d", st)
		}
		var pets []map[string]any
		if err := json.Unmarshal(body, &pets); err != nil || len(pets) != 1 {
			t.Fatalf("expected array of 1 pet, got %s", string(body))
		}
	}

	// 9) Bruno no ve la mascota de Ana (404, no 403: no filtramos existencia)
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID, brunoToken, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for foreign pet, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/pets/"+petID, brunoToken, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 deleting foreign pet, got %d", st)
		}
	}

	// 10) Alta de mascota inválida => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/add", anaToken, map[string]any{
			"name": "", "type": "DOG",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for empty name, got %d", st)
		}
	}

	// 11) Turno: petId ajeno => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/veterinary-appointments/add", brunoToken, map[string]any{
			"petId": mustInt(t, petID), "localDateTime": "2026-09-01T10:30:00",
			"durationMinutes": 30, "cost": 25.0,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for foreign petId, got %d", st)
		}
	}

	// 12) Turno válido de Ana => 201 con localDateTime sin zona
	{
		st, body := doReq(t, ts.URL, "POST", "/api/veterinary-appointments/add", anaToken, map[string]any{
			"petId": mustInt(t, petID), "status": "SCHEDULED",
			"localDateTime": "2026-09-01T10:30:00", "durationMinutes": 30, "cost": 25.0,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 appointment, got %d body=%s", st, string(body))
		}
		var a struct {
			LocalDateTime string `json:"localDateTime"`
			Status        string `json:"status"`
		}
		_ = json.Unmarshal(body, &a)
		if a.LocalDateTime != "2026-09-01T10:30:00" {
			t.Fatalf("expected plain localDateTime, got %q", a.LocalDateTime)
		}
		if a.Status != "SCHEDULED" {
			t.Fatalf("expected SCHEDULED, got %q", a.Status)
		}
	}
}

func TestHTTP_TokenRejectedWithWrongSecret(t *testing.T) {
	tsA := httptest.NewServer(stubserver.NewRouter(stubserver.Options{JWTSecret: []byte("secret-a")}))
	defer tsA.Close()
	tsB := httptest.NewServer(stubserver.NewRouter(stubserver.Options{JWTSecret: []byte("secret-b")}))
	defer tsB.Close()

	registerUser(t, tsA.URL, "Ana", "Paz", "ana@x.com")
	token := loginUser(t, tsA.URL, "ana@x.com", stubserver.InitialPassword)

	// token firmado por A no sirve contra B
	st, _ := doReq(t, tsB.URL, "GET", "/users/details", token, nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 with foreign token, got %d", st)
	}
}

func registerUser(t *testing.T, baseURL, first, last, email string) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/register", "", map[string]any{
		"firstName": first, "lastName": last, "email": email,
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 register, got %d body=%s", st, string(body))
	}
}

func loginUser(t *testing.T, baseURL, email, password string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/login", "", map[string]any{
		"email": email, "password": password,
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
	}

	var resp struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Token == "" {
		t.Fatalf("login: missing token body=%s", string(body))
	}
	return resp.Token
}

func createPet(t *testing.T, baseURL, token string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets/add", token, map[string]any{
		"name": "Milo", "type": "DOG", "breed": "beagle", "isMale": true, "weight": 11.5,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID json.Number `json:"id"`
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	_ = dec.Decode(&resp)
	if resp.ID.String() == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID.String()
}

func mustInt(t *testing.T, s string) int64 {
	t.Helper()

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		t.Fatalf("invalid int %q", s)
	}
	return n
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
