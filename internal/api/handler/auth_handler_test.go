package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/contactdesk/contact-manager/internal/core/domain"
	"github.com/contactdesk/contact-manager/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (*domain.User, error)
	loginFn  func(ctx context.Context, email, password string) (string, *domain.User, error)
	forgotFn func(ctx context.Context, email string) error
	verifyFn func(ctx context.Context, email, otp string) error
	resetFn  func(ctx context.Context, email, otp, newPassword string) error
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.forgotFn(ctx, email)
}

func (s *stubAuthService) VerifyOTP(ctx context.Context, email, otp string) error {
	return s.verifyFn(ctx, email, otp)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	return s.resetFn(ctx, email, otp, newPassword)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signupFn: func(_ context.Context, in ports.SignupInput) (*domain.User, error) {
			if in.Name != "Alice" || in.Email != "alice@example.com" || in.Password != "s3cret" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: "u1", Email: in.Email}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := jsonRequest(e, http.MethodPost, "/api/user/signup",
		`{"name":"Alice","email":"alice@example.com","password":"s3cret"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "User registered successfully" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if _, ok := resp["token"]; ok {
		t.Fatalf("signup must not return a token: %+v", resp)
	}
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	e := newTestEcho()
	called := false
	h := NewAuthHandler(&stubAuthService{
		signupFn: func(context.Context, ports.SignupInput) (*domain.User, error) {
			called = true
			return nil, nil
		},
	})

	c, _ := jsonRequest(e, http.MethodPost, "/api/user/signup", `{"email":"alice@example.com"}`)
	err := h.Signup(c)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "name is required") {
		t.Fatalf("expected json field name in message, got %q", err.Error())
	}
	if called {
		t.Fatal("service must not be called on invalid input")
	}
}

func TestAuthHandler_Signup_UserExists(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{
		signupFn: func(context.Context, ports.SignupInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	})

	c, _ := jsonRequest(e, http.MethodPost, "/api/user/signup",
		`{"name":"Bob","email":"bob@example.com","password":"pw"}`)
	if err := h.Signup(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Signup_MalformedJSON(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{})

	c, _ := jsonRequest(e, http.MethodPost, "/api/user/signup", `{"name":`)
	err := h.Signup(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "s3cret" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return "signed-token", &domain.User{ID: "u1"}, nil
		},
	})

	c, rec := jsonRequest(e, http.MethodPost, "/api/user/login",
		`{"email":"alice@example.com","password":"s3cret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["token"] != "signed-token" || resp["message"] != "Login successful" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	})

	c, rec := jsonRequest(e, http.MethodPost, "/api/user/login",
		`{"email":"alice@example.com","password":"nope"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("handler must not write on error, got %q", rec.Body.String())
	}
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	e := newTestEcho()
	var got string
	h := NewAuthHandler(&stubAuthService{
		forgotFn: func(_ context.Context, email string) error {
			got = email
			return nil
		},
	})

	c, rec := jsonRequest(e, http.MethodPost, "/api/user/forgot-password", `{"email":"alice@example.com"}`)
	if err := h.ForgotPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got != "alice@example.com" {
		t.Fatalf("unexpected email passed: %q", got)
	}
	if resp := decodeBody(t, rec); resp["message"] != "OTP sent to your email" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAuthHandler_ForgotPassword_DeliveryFailure(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{
		forgotFn: func(context.Context, string) error { return domain.ErrDeliveryFailure },
	})

	c, _ := jsonRequest(e, http.MethodPost, "/api/user/forgot-password", `{"email":"alice@example.com"}`)
	if err := h.ForgotPassword(c); !errors.Is(err, domain.ErrDeliveryFailure) {
		t.Fatalf("expected ErrDeliveryFailure, got %v", err)
	}
}

func TestAuthHandler_VerifyOTP(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{
		verifyFn: func(_ context.Context, email, otp string) error {
			if otp != "123456" {
				return domain.ErrInvalidOTP
			}
			return nil
		},
	})

	c, rec := jsonRequest(e, http.MethodPost, "/api/user/verify-otp", `{"email":"a@example.com","otp":"123456"}`)
	if err := h.VerifyOTP(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if resp := decodeBody(t, rec); resp["message"] != "OTP verified, proceed to reset password" {
		t.Fatalf("unexpected body: %+v", resp)
	}

	c, _ = jsonRequest(e, http.MethodPost, "/api/user/verify-otp", `{"email":"a@example.com","otp":"000000"}`)
	if err := h.VerifyOTP(c); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	e := newTestEcho()
	var gotPassword string
	h := NewAuthHandler(&stubAuthService{
		resetFn: func(_ context.Context, _, _, newPassword string) error {
			gotPassword = newPassword
			return nil
		},
	})

	c, rec := jsonRequest(e, http.MethodPost, "/api/user/reset-password",
		`{"email":"a@example.com","otp":"123456","newPassword":"fresh"}`)
	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotPassword != "fresh" {
		t.Fatalf("newPassword not forwarded: %q", gotPassword)
	}
	if resp := decodeBody(t, rec); resp["message"] != "Password reset successfully" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAuthHandler_ResetPassword_MissingNewPassword(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{})

	c, _ := jsonRequest(e, http.MethodPost, "/api/user/reset-password", `{"email":"a@example.com","otp":"123456"}`)
	err := h.ResetPassword(c)
	if !errors.Is(err, domain.ErrValidation) || !strings.Contains(err.Error(), "newPassword is required") {
		t.Fatalf("expected newPassword validation error, got %v", err)
	}
}
