package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestStats(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/stats" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"used": 3, "remaining": 7, "is_premium": false}`))
	})

	s, err := c.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if s.Used != 3 || s.Remaining != 7 || s.IsPremium {
		t.Errorf("Stats = %+v", s)
	}
}

func TestPredictSendsMultipartFile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			t.Errorf("path = %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("FormFile: %v", err)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if string(data) != "fake-jpeg" {
			t.Errorf("file data = %q", data)
		}
		if header.Filename != "scan.jpg" {
			t.Errorf("filename = %q", header.Filename)
		}
		if ct := header.Header.Get("Content-Type"); ct != "image/jpeg" {
			t.Errorf("part content type = %q", ct)
		}
		w.Write([]byte(`{"prediction":"Malin - Grade 2","confidence":87.3,"probabilities":{"Normal":5.1,"Bénin":7.6,"Malin":87.3}}`))
	})

	p, err := c.Predict(context.Background(), "scan.jpg", "image/jpeg", strings.NewReader("fake-jpeg"))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if p.Prediction != "Malin - Grade 2" || p.Confidence != 87.3 {
		t.Errorf("Prediction = %+v", p)
	}
	want := []ClassProbability{{"Normal", 5.1}, {"Bénin", 7.6}, {"Malin", 87.3}}
	if len(p.Probabilities) != len(want) {
		t.Fatalf("Probabilities = %+v", p.Probabilities)
	}
	for i := range want {
		if p.Probabilities[i] != want[i] {
			t.Errorf("Probabilities[%d] = %+v, want %+v", i, p.Probabilities[i], want[i])
		}
	}
}

func TestPredictionKeepsServerOrder(t *testing.T) {
	var p Prediction
	body := `{"prediction":"x","confidence":1,"probabilities":{"Zeta":1,"Alpha":2,"Mid":3},"category":"benign"}`
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	var got []string
	for _, cp := range p.Probabilities {
		got = append(got, cp.Class)
	}
	if strings.Join(got, ",") != "Zeta,Alpha,Mid" {
		t.Errorf("order = %v", got)
	}
	if p.Category != "benign" {
		t.Errorf("Category = %q", p.Category)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), `{"Zeta":1,"Alpha":2,"Mid":3}`) {
		t.Errorf("Marshal lost order: %s", out)
	}
}

func TestRejectionWithJSONDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"The file is empty"}`))
	})

	_, err := c.Predict(context.Background(), "a.png", "image/png", strings.NewReader(""))
	var rej *RejectionError
	if !errors.As(err, &rej) {
		t.Fatalf("expected RejectionError, got %v", err)
	}
	if rej.StatusCode != 400 || rej.Detail != "The file is empty" || !rej.IsJSON {
		t.Errorf("rejection = %+v", rej)
	}
}

func TestRejectionFallsBackToMessage(t *testing.T) {
	rej := newRejection(500, []byte(`{"message":"boom"}`))
	if rej.Detail != "boom" {
		t.Errorf("Detail = %q", rej.Detail)
	}
}

func TestRejectionWithListDetail(t *testing.T) {
	rej := newRejection(422, []byte(`{"detail":[{"loc":["body","email"],"msg":"field required"}]}`))
	if !strings.Contains(rej.Detail, "field required") {
		t.Errorf("Detail = %q", rej.Detail)
	}
}

func TestRejectionWithPlainText(t *testing.T) {
	rej := newRejection(502, []byte("Bad Gateway"))
	if rej.IsJSON || rej.Detail != "" || rej.Body != "Bad Gateway" {
		t.Errorf("rejection = %+v", rej)
	}
}

func TestMalformedSuccessBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>proxy page</html>"))
	})

	_, err := c.Predict(context.Background(), "a.png", "image/png", strings.NewReader("x"))
	var rej *RejectionError
	if !errors.As(err, &rej) {
		t.Fatalf("expected RejectionError, got %v", err)
	}
	if !rej.Malformed() || rej.Body != "<html>proxy page</html>" {
		t.Errorf("rejection = %+v", rej)
	}
}

func TestFetchErrorWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Stats(context.Background())
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FetchError, got %v", err)
	}
}

func TestLoginPostsFormFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		if r.FormValue("email") != "marie@example.com" || r.FormValue("password") != "radium" {
			t.Errorf("form = %v", r.MultipartForm.Value)
		}
		w.Write([]byte(`{"success":true,"user":{"email":"marie@example.com","name":"Marie","is_premium":true},"message":"ok"}`))
	})

	u, err := c.Login(context.Background(), Credentials{Email: "marie@example.com", Password: "radium"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Email != "marie@example.com" || !u.IsPremium {
		t.Errorf("user = %+v", u)
	}
}

func TestSignupPostsConfirmation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(1 << 20)
		if r.FormValue("password_confirm") != "pw" || r.FormValue("name") != "Marie" {
			t.Errorf("form = %v", r.MultipartForm.Value)
		}
		w.Write([]byte(`{"success":true,"user":{"email":"m@example.com","is_premium":false}}`))
	})

	if _, err := c.Signup(context.Background(), Registration{Name: "Marie", Email: "m@example.com", Password: "pw", PasswordConfirm: "pw"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}
}

func TestLoginRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect email or password"}`))
	})

	_, err := c.Login(context.Background(), Credentials{Email: "x", Password: "y"})
	var rej *RejectionError
	if !errors.As(err, &rej) || rej.Detail != "Incorrect email or password" {
		t.Errorf("err = %v", err)
	}
}

func TestProfile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"user":{"email":"m@example.com","is_premium":false},"stats":{"used":1,"remaining":9,"is_premium":false}}`))
	})
	p, err := c.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if p.User.Email != "m@example.com" || p.Stats.Remaining != 9 {
		t.Errorf("profile = %+v", p)
	}
}

func TestLogout(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = r.Method == http.MethodPost && r.URL.Path == "/api/auth/logout"
	})
	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if !called {
		t.Error("logout endpoint not called")
	}
}
