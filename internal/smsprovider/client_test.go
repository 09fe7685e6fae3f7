package smsprovider_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizzytext/goalcontract/internal/smsprovider"
)

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "e164 passes through", in: "+15551230000", want: "+15551230000"},
		{name: "bare ten digits", in: "5551230000", want: "+15551230000"},
		{name: "dashes stripped", in: "555-123-0000", want: "+15551230000"},
		{name: "spaces and parens stripped", in: "(555) 123 0000", want: "+15551230000"},
		{name: "too short", in: "12345", wantErr: true},
		{name: "letters", in: "555CALLNOW", wantErr: true},
		{name: "eleven digits without plus", in: "15551230000", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := smsprovider.NormalizeNumber(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, smsprovider.ErrInvalidNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSend_MissingCredentials(t *testing.T) {
	client := smsprovider.NewClient("", "", "", false, time.Second)

	_, err := client.Send(context.Background(), "5551230000", "hello")

	require.ErrorIs(t, err, smsprovider.ErrNotConfigured)
}

func TestSend_InvalidNumberBeforeAnyNetworkCall(t *testing.T) {
	client := smsprovider.NewClient("AC123", "token", "+15550001111", false, time.Second)

	_, err := client.Send(context.Background(), "not-a-number", "hello")

	require.ErrorIs(t, err, smsprovider.ErrInvalidNumber)
}

func TestSend_SimulateMode(t *testing.T) {
	client := smsprovider.NewClient("", "", "", true, time.Second)

	ref, err := client.Send(context.Background(), "5551230000", "hello")

	require.NoError(t, err)
	assert.Equal(t, "simulated", ref)
}
