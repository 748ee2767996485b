package utils

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/idna"
)

var ErrInvalidURL = errors.New("invalid url")

var (
	urlValidate = validator.New()

	// Lenient on hyphens and underscores like browser URL parsers; still
	// rejects disallowed code points and broken punycode labels.
	hostProfile = idna.New(
		idna.MapForLookup(),
		idna.StrictDomainName(false),
		idna.ValidateLabels(false),
	)
)

// ValidatedURL is an absolute URL string that has passed ValidateURL. The zero
// value is not a valid URL.
type ValidatedURL struct {
	raw string
}

// String returns the URL exactly as the user supplied it.
func (u ValidatedURL) String() string {
	return u.raw
}

func (u ValidatedURL) IsZero() bool {
	return u.raw == ""
}

// ValidateURL checks that raw is a well-formed absolute URL and returns it
// unchanged. Errors wrap ErrInvalidURL.
//
// Examples:
//
//	ValidateURL("https://example.com/x") → ok
//	ValidateURL("mailto:ops@example.com") → ok (opaque)
//	ValidateURL("example.com")           → ErrInvalidURL (no scheme)
//	ValidateURL("http://")               → ErrInvalidURL (empty host)
//	ValidateURL("http://a.test:99999")   → ErrInvalidURL (port out of range)
func ValidateURL(raw string) (ValidatedURL, error) {
	if err := urlValidate.Var(raw, "required,url"); err != nil {
		return ValidatedURL{}, fmt.Errorf("%w: %q is not an absolute url", ErrInvalidURL, raw)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ValidatedURL{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if !u.IsAbs() {
		return ValidatedURL{}, fmt.Errorf("%w: %q has no scheme", ErrInvalidURL, raw)
	}

	hierarchical := u.Opaque == "" && strings.HasPrefix(raw[len(u.Scheme)+1:], "//")
	if hierarchical && !(u.Scheme == "file" && u.Host == "") {
		if err := validateHost(u.Hostname()); err != nil {
			return ValidatedURL{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
		}
		if err := validatePort(u.Port()); err != nil {
			return ValidatedURL{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
		}
	}

	return ValidatedURL{raw: raw}, nil
}

func validateHost(host string) error {
	if host == "" {
		return errors.New("empty host")
	}
	if net.ParseIP(host) != nil {
		return nil
	}
	if _, err := hostProfile.ToASCII(host); err != nil {
		return fmt.Errorf("host %q: %w", host, err)
	}
	return nil
}

// validatePort accepts an empty port or a decimal number in 0..65535.
func validatePort(port string) error {
	if port == "" {
		return nil
	}
	if _, err := strconv.ParseUint(port, 10, 16); err != nil {
		return fmt.Errorf("port %q out of range", port)
	}
	return nil
}
