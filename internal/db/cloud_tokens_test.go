package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

type fakeCredential struct {
	scopes []string
	err    error
}

func (f *fakeCredential) GetToken(_ context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	f.scopes = opts.Scopes
	if f.err != nil {
		return azcore.AccessToken{}, f.err
	}
	return azcore.AccessToken{Token: "entra-token", ExpiresOn: time.Unix(1700000000, 0)}, nil
}

func TestAzureCredentialSource(t *testing.T) {
	cred := &fakeCredential{}
	tok, err := azureCredentialSource(cred)(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "entra-token", tok.Value)
	assert.Equal(t, time.Unix(1700000000, 0), tok.Expires)
	assert.Equal(t, []string{AzureMySQLScope}, cred.scopes)
}

func TestAzureCredentialSource_Error(t *testing.T) {
	_, err := azureCredentialSource(&fakeCredential{err: errors.New("no identity")})(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no identity")
}

func TestRDSTokenSource_RequiresRegionAndUser(t *testing.T) {
	_, err := rdsTokenSource(&wp2csv.ConnectionConfig{Host: "db", Username: "wp"})
	assert.ErrorContains(t, err, "region")

	_, err = rdsTokenSource(&wp2csv.ConnectionConfig{Host: "db", AWSRegion: "eu-west-1"})
	assert.ErrorContains(t, err, "user")

	src, err := rdsTokenSource(&wp2csv.ConnectionConfig{Host: "db", Username: "wp", AWSRegion: "eu-west-1"})
	require.NoError(t, err)
	assert.NotNil(t, src)
}
