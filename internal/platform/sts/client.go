package sts

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Identity is the caller identity of the active credentials.
type Identity struct {
	Account string
	ARN     string
	UserID  string
	Region  string
}

// Client wraps the STS API.
type Client struct {
	sts    *sts.Client
	region string
}

// NewClient creates an STS client from the default credential chain.
func NewClient(ctx context.Context, region, profile string) (*Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, config.WithRegion(region))
	}
	if profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Client{sts: sts.NewFromConfig(cfg), region: cfg.Region}, nil
}

// CallerIdentity returns who the credentials belong to.
func (c *Client) CallerIdentity(ctx context.Context) (*Identity, error) {
	out, err := c.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to get caller identity: %w", err)
	}
	return &Identity{
		Account: aws.ToString(out.Account),
		ARN:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
		Region:  c.region,
	}, nil
}

// CheckAccount fails when the credentials belong to a different account
// than the one a deployment is pinned to. An empty want accepts any.
func (id *Identity) CheckAccount(want string) error {
	if want == "" || want == id.Account {
		return nil
	}
	return fmt.Errorf("credentials belong to account %s, deployment targets %s", id.Account, want)
}
