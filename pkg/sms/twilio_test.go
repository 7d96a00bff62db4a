package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/salescoach-dev/sales-coach/pkg/config"
)

func TestGenerateCode_SixDigits(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9]{6}$`)
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.True(t, pattern.MatchString(code), "got %q", code)
	}
}

func TestSendVerificationCode_PostsForm(t *testing.T) {
	var gotTo, gotFrom string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotTo = r.PostFormValue("To")
		gotFrom = r.PostFormValue("From")
		user, _, ok := r.BasicAuth()
		if !ok || user != "AC123" {
			t.Fatalf("missing basic auth")
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer ts.Close()

	client := NewTwilioClient(&config.TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "secret",
		FromNumber: "+15005550006",
		BaseURL:    ts.URL,
	})

	err := client.SendVerificationCode(context.Background(), "+819012345678", "123456")
	require.NoError(t, err)
	require.Equal(t, "+819012345678", gotTo)
	require.Equal(t, "+15005550006", gotFrom)
}

func TestSendVerificationCode_DevModeWithoutCredentials(t *testing.T) {
	client := NewTwilioClient(&config.TwilioConfig{})
	require.False(t, client.Configured())
	// Without credentials delivery is a logged no-op, never an error
	require.NoError(t, client.SendVerificationCode(context.Background(), "+819012345678", "123456"))
}

func TestMaskPhone(t *testing.T) {
	require.Equal(t, "****5678", MaskPhone("+819012345678"))
	require.Equal(t, "123", MaskPhone("123"))
}
