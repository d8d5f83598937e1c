package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/rds/auth"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// Token is a short-lived credential sent as the MySQL password.
type Token struct {
	Value   string
	Expires time.Time
}

// TokenSource issues a fresh Token for each connection attempt.
type TokenSource func(ctx context.Context) (Token, error)

const (
	// AzureMySQLScope is the OAuth scope for Azure Database for MySQL.
	AzureMySQLScope = "https://ossrdbms-aad.database.windows.net/.default"

	rdsTokenLifetime = 15 * time.Minute
)

// rdsTokenSource signs RDS IAM tokens with the default AWS credential chain.
func rdsTokenSource(cfg *wp2csv.ConnectionConfig) (TokenSource, error) {
	if cfg.AWSRegion == "" {
		return nil, errors.New("AWS IAM auth requires a region ($AWS_REGION)")
	}
	if cfg.Username == "" {
		return nil, errors.New("AWS IAM auth requires a database user")
	}
	endpoint, region, user := cfg.Address(), cfg.AWSRegion, cfg.Username

	return func(ctx context.Context) (Token, error) {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
		if err != nil {
			return Token{}, fmt.Errorf("load AWS config: %w", err)
		}
		signed, err := auth.BuildAuthToken(ctx, endpoint, region, user, awsCfg.Credentials)
		if err != nil {
			return Token{}, fmt.Errorf("build RDS auth token: %w", err)
		}
		return Token{Value: signed, Expires: time.Now().Add(rdsTokenLifetime)}, nil
	}, nil
}

// azureTokenSource uses a service principal when tenant, client and secret
// are all set, and the DefaultAzureCredential chain otherwise.
func azureTokenSource(cfg *wp2csv.ConnectionConfig) (TokenSource, error) {
	var (
		cred azcore.TokenCredential
		err  error
	)
	if cfg.AzureTenantID != "" && cfg.AzureClientID != "" && cfg.AzureClientSecret != "" {
		cred, err = azidentity.NewClientSecretCredential(cfg.AzureTenantID, cfg.AzureClientID, cfg.AzureClientSecret, nil)
	} else {
		cred, err = azidentity.NewDefaultAzureCredential(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("create Azure credential: %w", err)
	}
	return azureCredentialSource(cred), nil
}

func azureCredentialSource(cred azcore.TokenCredential) TokenSource {
	return func(ctx context.Context) (Token, error) {
		tok, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{AzureMySQLScope}})
		if err != nil {
			return Token{}, fmt.Errorf("Azure token request: %w", err)
		}
		return Token{Value: tok.Token, Expires: tok.ExpiresOn}, nil
	}
}
