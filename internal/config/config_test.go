package config

import "testing"

func TestClientCredentials(t *testing.T) {
	creds := OAuthCredentials{
		SalesforceClientID:     "sf-id",
		SalesforceClientSecret: "sf-secret",
		GoogleClientID:         "g-id",
		GoogleClientSecret:     "g-secret",
	}

	id, secret := creds.ClientCredentials("salesforce")
	if id != "sf-id" || secret != "sf-secret" {
		t.Errorf("unexpected salesforce credentials: %q / %q", id, secret)
	}

	// Both the integration id and the callback platform name resolve to
	// the same Google credentials.
	for _, platform := range []string{"google", "google_workspace"} {
		id, secret := creds.ClientCredentials(platform)
		if id != "g-id" || secret != "g-secret" {
			t.Errorf("platform %q: unexpected credentials: %q / %q", platform, id, secret)
		}
	}

	id, secret = creds.ClientCredentials("fax_machine")
	if id != "" || secret != "" {
		t.Errorf("unknown platform should yield empty credentials, got %q / %q", id, secret)
	}
}
