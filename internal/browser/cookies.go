package browser

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/playwright-community/playwright-go"
)

// Cookie is one entry of a cookie export (the JSON shape browser cookie
// extensions write).
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite"`

	// Browser-extension exports name the expiry expirationDate.
	ExpirationDate float64 `json:"expirationDate"`
}

func LoadCookies(path string) ([]playwright.OptionalCookie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCookies(data)
}

func ParseCookies(data []byte) ([]playwright.OptionalCookie, error) {
	var cookies []Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, fmt.Errorf("invalid cookie file: %w", err)
	}

	pwCookies := make([]playwright.OptionalCookie, 0, len(cookies))
	for _, c := range cookies {
		if c.Name == "" || c.Domain == "" {
			continue
		}
		pwCookies = append(pwCookies, c.ToPlaywright())
	}
	return pwCookies, nil
}

func (c Cookie) ToPlaywright() playwright.OptionalCookie {
	path := c.Path
	if path == "" {
		path = "/"
	}
	pwCookie := playwright.OptionalCookie{
		Name:   c.Name,
		Value:  c.Value,
		Domain: playwright.String(c.Domain),
		Path:   playwright.String(path),
	}

	expires := c.Expires
	if expires <= 0 {
		expires = c.ExpirationDate
	}
	if expires > 0 {
		pwCookie.Expires = playwright.Float(expires)
	}
	if c.HTTPOnly {
		pwCookie.HttpOnly = playwright.Bool(true)
	}
	if c.Secure {
		pwCookie.Secure = playwright.Bool(true)
	}

	// Exports use both "lax" and "Lax"; "no_restriction" is Chrome's None.
	switch c.SameSite {
	case "Lax", "lax":
		pwCookie.SameSite = playwright.SameSiteAttributeLax
	case "Strict", "strict":
		pwCookie.SameSite = playwright.SameSiteAttributeStrict
	case "None", "none", "no_restriction":
		pwCookie.SameSite = playwright.SameSiteAttributeNone
	}

	return pwCookie
}
