package checkout

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/yashdharmal/shopline/internal/orders"
)

// CustomerForm is the checkout form state. Validate runs the same rules the
// server applies, plus the field-level shape checks shown inline in the UI.
type CustomerForm struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
	Country   string
}

var (
	phoneRe = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	zipRe   = regexp.MustCompile(`^[0-9]{2,9}$`)
)

// Validate returns one message per invalid field, keyed by field name.
// An empty map means the form may be submitted.
func (f *CustomerForm) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(strings.TrimSpace(f.Email)); err != nil {
		errs["email"] = "Please enter a valid email address"
	}
	if p := strings.NewReplacer("-", "", " ", "", "(", "", ")", "").Replace(strings.TrimSpace(f.Phone)); p == "" {
		errs["phone"] = "Phone number is required"
	} else if !phoneRe.MatchString(p) {
		errs["phone"] = "Please enter a valid phone number"
	}
	if a := strings.TrimSpace(f.Address); len(a) < 5 {
		errs["address"] = "Please enter a complete address"
	}
	if strings.TrimSpace(f.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(f.State) == "" {
		errs["state"] = "State is required"
	}
	if !zipRe.MatchString(strings.TrimSpace(f.ZipCode)) {
		errs["zipCode"] = "Please enter a valid zip code"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Details flattens the form into the wire shape the order API expects.
func (f *CustomerForm) Details() orders.CustomerDetails {
	return orders.CustomerDetails{
		Name:  strings.TrimSpace(f.FirstName + " " + f.LastName),
		Email: strings.TrimSpace(f.Email),
		Address: fmt.Sprintf("%s, %s, %s %s, %s",
			strings.TrimSpace(f.Address), strings.TrimSpace(f.City),
			strings.TrimSpace(f.State), strings.TrimSpace(f.ZipCode),
			strings.TrimSpace(f.Country)),
	}
}
