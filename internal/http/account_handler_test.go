package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/asadalimcj/zearsports/internal/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

func (s *handlerSuite) sessionCookie() string {
	u, err := url.Parse(s.server.URL)
	s.Require().NoError(err)
	for _, c := range s.client.Jar.Cookies(u) {
		if c.Name == "zs_session" {
			return c.Value
		}
	}
	return ""
}

func (s *handlerSuite) TestProductReviews() {
	path := "/api/products/" + s.jacket.ID.String() + "/reviews"

	resp, raw := s.do(http.MethodPost, path, map[string]any{"comment": "Warm and light", "rating": "5"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(raw))

	var added reviewResponse
	s.decode(raw, &added)
	s.True(added.Success)
	s.Equal(domain.AnonymousReviewer, added.Review.Author)
	s.Equal("5.0", added.Rating)

	resp, raw = s.do(http.MethodPost, path, map[string]any{"author": "Vale", "comment": "Runs small", "rating": 4})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(raw))
	s.decode(raw, &added)
	s.Equal("4.5", added.Rating)

	resp, raw = s.do(http.MethodGet, "/api/products/"+s.jacket.ID.String(), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))
	var detail productDetailJSON
	s.decode(raw, &detail)
	s.Equal("4.5", detail.Product.Rating)
	s.Require().Len(detail.Reviews, 2)
	s.Equal("Vale", detail.Reviews[0].Author)

	resp, raw = s.do(http.MethodGet, "/api/products/"+s.gloves.ID.String(), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Contains(string(raw), `"reviews":[]`)

	tests := []struct {
		name       string
		path       string
		body       any
		wantStatus int
	}{
		{"rating out of range", path, map[string]any{"rating": 9}, http.StatusUnprocessableEntity},
		{"rating missing", path, map[string]any{"comment": "meh"}, http.StatusUnprocessableEntity},
		{"malformed body", path, "{", http.StatusBadRequest},
		{"unknown product", "/api/products/" + uuid.NewString() + "/reviews", map[string]any{"rating": 3}, http.StatusNotFound},
		{"bad product id", "/api/products/nope/reviews", map[string]any{"rating": 3}, http.StatusNotFound},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			resp, raw := s.do(http.MethodPost, tt.path, tt.body)
			s.Equal(tt.wantStatus, resp.StatusCode, string(raw))
		})
	}
}

func (s *handlerSuite) TestContactMessage() {
	body := map[string]string{
		"name":    gofakeit.Name(),
		"email":   gofakeit.Email(),
		"subject": "Sizing",
		"message": "Do the gloves run small?",
	}

	resp, raw := s.do(http.MethodPost, "/api/contact", body)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))
	s.JSONEq(`{"success":true,"message":"`+contactThanks+`"}`, string(raw))
	s.Require().Len(s.notifier.sent(), 1)
	s.Equal("Sizing", s.notifier.sent()[0].Subject)

	resp, raw = s.do(http.MethodPost, "/api/contact", map[string]string{"name": "x"})
	s.Require().Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	var verr errorResponse
	s.decode(raw, &verr)
	s.Contains(verr.Fields, "email")
	s.Contains(verr.Fields, "subject")
	s.Contains(verr.Fields, "message")

	s.notifier.fail(fmt.Errorf("%w: %w", domain.ErrNotification, errors.New("broker down")))
	resp, _ = s.do(http.MethodPost, "/api/contact", body)
	s.Equal(http.StatusBadGateway, resp.StatusCode)
	s.Len(s.notifier.sent(), 1)
}

func (s *handlerSuite) TestAccountFlow() {
	email := gofakeit.Email()

	resp, _ := s.do(http.MethodGet, "/api/users/account", nil)
	s.Require().Equal(http.StatusUnauthorized, resp.StatusCode)

	s.addToCart(s.jacket.ID, 1, "M", "black")
	anonymous := s.sessionCookie()
	s.Require().NotEmpty(anonymous)

	resp, raw := s.do(http.MethodPost, "/api/users/register", map[string]string{
		"firstName": "Ana", "lastName": "Silva", "email": strings.ToUpper(email),
		"password": "hunter22", "confirmPassword": "hunter22",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(raw))
	var registered userResponse
	s.decode(raw, &registered)
	s.Equal(domain.NormalizeEmail(email), registered.User.Email)

	signedIn := s.sessionCookie()
	s.NotEqual(anonymous, signedIn, "session id rotates on sign-in")
	s.Equal(1, s.getCart().Count, "cart follows the new session")

	order := checkoutBody()
	order["email"] = email
	resp, raw = s.do(http.MethodPost, "/api/orders", order)
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(raw))

	resp, raw = s.do(http.MethodGet, "/api/users/account", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))
	var account accountJSON
	s.decode(raw, &account)
	s.Equal(registered.User.ID, account.User.ID)
	s.Require().Len(account.Orders, 1)
	s.Equal("55.00", account.Orders[0].Items[0].Price.Amount)

	resp, raw = s.do(http.MethodPut, "/api/users/profile", map[string]any{
		"firstName": "Ana", "lastName": "Costa", "phone": "555-0100",
		"address": map[string]string{"city": "Faro", "country": "Portugal"},
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))
	var profile userResponse
	s.decode(raw, &profile)
	s.Equal("Costa", profile.User.LastName)
	s.Equal("Faro", profile.User.Address.City)

	resp, raw = s.do(http.MethodPut, "/api/users/password", map[string]string{
		"currentPassword": "wrong", "newPassword": "fresh-one", "confirmNewPassword": "fresh-one",
	})
	s.Require().Equal(http.StatusUnprocessableEntity, resp.StatusCode, string(raw))

	resp, raw = s.do(http.MethodPut, "/api/users/password", map[string]string{
		"currentPassword": "hunter22", "newPassword": "fresh-one", "confirmNewPassword": "fresh-one",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))

	s.addToCart(s.gloves.ID, 1, "", "")
	resp, _ = s.do(http.MethodPost, "/api/users/logout", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Empty(s.sessionCookie())

	resp, _ = s.do(http.MethodGet, "/api/users/account", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
	s.Zero(s.getCart().Count)

	resp, _ = s.do(http.MethodPost, "/api/users/login", map[string]string{"email": email, "password": "hunter22"})
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp, raw = s.do(http.MethodPost, "/api/users/login", map[string]string{"email": email, "password": "fresh-one"})
	s.Require().Equal(http.StatusOK, resp.StatusCode, string(raw))

	resp, _ = s.do(http.MethodGet, "/api/users/account", nil)
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *handlerSuite) TestRegisterRejections() {
	body := map[string]string{
		"firstName": "Ana", "lastName": "Silva", "email": gofakeit.Email(),
		"password": "hunter22", "confirmPassword": "hunter22",
	}
	resp, raw := s.do(http.MethodPost, "/api/users/register", body)
	s.Require().Equal(http.StatusCreated, resp.StatusCode, string(raw))

	tests := []struct {
		name      string
		change    func(map[string]string)
		wantField string
	}{
		{"duplicate email", func(map[string]string) {}, "email"},
		{"mismatched confirmation", func(b map[string]string) { b["email"] = gofakeit.Email(); b["confirmPassword"] = "other" }, "confirmPassword"},
		{"short password", func(b map[string]string) {
			b["email"] = gofakeit.Email()
			b["password"], b["confirmPassword"] = "abc", "abc"
		}, "password"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := make(map[string]string, len(body))
			for k, v := range body {
				req[k] = v
			}
			tt.change(req)

			resp, raw := s.do(http.MethodPost, "/api/users/register", req)
			s.Require().Equal(http.StatusUnprocessableEntity, resp.StatusCode, string(raw))
			var verr errorResponse
			s.decode(raw, &verr)
			s.Contains(verr.Fields, tt.wantField)
		})
	}
}
