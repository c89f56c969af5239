package bookingcom

import (
	"context"
	"fmt"
	"strings"
	"tripvault-backend/lib/htmlutil"
	"tripvault-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/codes"
)

type IdentityName struct {
	GivenName     string `json:"givenName"`
	FamilyName    string `json:"familyName"`
	FormattedName string `json:"formattedName"`
}

type PhoneNumber struct {
	Number string `json:"number"`
	Type   string `json:"type"`
}

type IdentityAddress struct {
	FormattedAddress string `json:"formattedAddress"`
}

type Identity struct {
	Name    IdentityName    `json:"name"`
	Email   string          `json:"email"`
	Phone   []PhoneNumber   `json:"phone,omitempty"`
	Address IdentityAddress `json:"address"`
}

const settingsPath = "/mysettings/personal_details"

// the settings page is served in the account's site locale; these
// matchers cover the titles the vendor renders there
var (
	emailTitleMatchers   = []string{"adressee-mail", "emailaddress"}
	phoneTitleMatchers   = []string{"téléphone", "phonenumber"}
	nameTitleMatchers    = []string{"nom", "name"}
	addressTitleMatchers = []string{"adresse", "address"}
)

// the vendor appends a verification badge to verified rows
var verifiedBadges = []string{"Vérifiée", "Verified"}

// Identity scrapes the personal-details settings rows into one
// identity record. Email doubles as the account identifier, a record
// without one is an error.
func (c *Client) Identity(ctx context.Context) (Identity, error) {
	ctx, span := tracer.Start(ctx, "client:Identity")
	defer span.End()

	doc, err := c.fetchDocument(ctx, settingsPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch settings page")
		return Identity{}, err
	}

	var identity Identity
	doc.Find("div.settings-row").Each(func(_ int, row *goquery.Selection) {
		title := htmlutil.CleanText(row.Find(`h2[id$="_title"]`).First().Text())
		value := htmlutil.CleanText(row.Find(`div[id$="_content"] > div`).First().Text())
		for _, badge := range verifiedBadges {
			value = strings.ReplaceAll(value, badge, "")
		}
		value = strings.Trim(value, " \t\n")
		if value == "" {
			return
		}

		// e-mail before the generic address matcher, "adresse" is a
		// prefix of "adresse e-mail"
		switch {
		case textutil.MatchName(title, emailTitleMatchers):
			identity.Email = value
		case textutil.MatchName(title, phoneTitleMatchers):
			// the site only registers numbers it can text, so every
			// stored number is a mobile
			identity.Phone = []PhoneNumber{{Number: value, Type: "mobile"}}
		case textutil.MatchName(title, nameTitleMatchers):
			identity.Name = splitFormattedName(value)
		case textutil.MatchName(title, addressTitleMatchers):
			identity.Address = IdentityAddress{
				FormattedAddress: htmlutil.CleanText(strings.ReplaceAll(value, ",", " ")),
			}
		}
	})

	if identity.Email == "" {
		span.SetStatus(codes.Error, "no account identifier found")
		return Identity{}, fmt.Errorf("settings page yielded no e-mail address, the scraper needs fixing")
	}
	return identity, nil
}

func splitFormattedName(formatted string) IdentityName {
	name := IdentityName{FormattedName: formatted}
	parts := strings.SplitN(formatted, " ", 2)
	name.GivenName = parts[0]
	if len(parts) > 1 {
		name.FamilyName = parts[1]
	}
	return name
}
