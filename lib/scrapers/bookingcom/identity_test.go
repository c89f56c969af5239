package bookingcom

import (
	"context"
	"testing"

	_ "embed"

	"github.com/stretchr/testify/require"
)

//go:embed testdata/settings.html
var settingsFixture string

func TestIdentity(t *testing.T) {
	server := fixtureServer(t, map[string]string{
		settingsPath: settingsFixture,
	})
	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	identity, err := client.Identity(context.Background())
	require.NoError(t, err)

	require.Equal(t, "Jane", identity.Name.GivenName)
	require.Equal(t, "Doe", identity.Name.FamilyName)
	require.Equal(t, "Jane Doe", identity.Name.FormattedName)
	// the verification badge must not leak into the value
	require.Equal(t, "jane.doe@example.com", identity.Email)
	require.Equal(t, []PhoneNumber{{Number: "+33612345678", Type: "mobile"}}, identity.Phone)
	require.Equal(t, "12 rue de la Paix 75002 Paris", identity.Address.FormattedAddress)
}

func TestIdentityWithoutEmailFails(t *testing.T) {
	server := fixtureServer(t, map[string]string{
		settingsPath: `<html><body>
			<div class="settings-row">
				<h2 id="name_title">Nom</h2>
				<div id="name_content"><div>Jane Doe</div></div>
			</div>
		</body></html>`,
	})
	client, err := NewClient(context.Background(), ClientOptions{BaseUrl: server.URL})
	require.NoError(t, err)

	_, err = client.Identity(context.Background())
	require.Error(t, err)
}
