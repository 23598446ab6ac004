package notifier

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/asadalimcj/zearsports/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"money": func(m domain.Money) string { return m.StringFixed() + " " + m.Currency.String() },
	"date":  func(t time.Time) string { return t.Format("Jan 2, 2006") },
}).ParseFS(templateFS, "templates/*.html"))

type Email struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// confirmationEmails returns the customer email, followed by the store copy when storeAddress is set.
func confirmationEmails(order domain.Order, storeAddress string) ([]Email, error) {
	customer, err := render("customer.html", order)
	if err != nil {
		return nil, err
	}

	emails := []Email{{
		To:      order.Customer.Email,
		Subject: "Order Confirmation - " + order.OrderNumber,
		HTML:    customer,
	}}

	if storeAddress == "" {
		return emails, nil
	}

	store, err := render("store.html", order)
	if err != nil {
		return nil, err
	}

	return append(emails, Email{
		To:      storeAddress,
		Subject: "New Order Placed - " + order.OrderNumber,
		HTML:    store,
	}), nil
}

// contactEmail addresses a contact form message to the store, replying to the sender.
func contactEmail(msg domain.ContactMessage, storeAddress string) (Email, error) {
	if storeAddress == "" {
		return Email{}, errors.New("no store address configured")
	}

	html, err := render("contact.html", msg)
	if err != nil {
		return Email{}, err
	}

	return Email{
		To:      storeAddress,
		ReplyTo: msg.Email,
		Subject: "Contact Form: " + msg.Subject,
		HTML:    html,
	}, nil
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
