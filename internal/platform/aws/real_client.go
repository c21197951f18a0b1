package aws

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// RealClient implements InfrastructureManager against the AWS APIs.
type RealClient struct {
	ec2    *ec2.Client
	eks    *eks.Client
	iam    *iam.Client
	sts    *sts.Client
	region string
}

// NewRealClient creates a client for the given region using the default
// credential chain (environment, shared config, instance profile).
func NewRealClient(ctx context.Context, region string) (*RealClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &RealClient{
		ec2:    ec2.NewFromConfig(cfg),
		eks:    eks.NewFromConfig(cfg),
		iam:    iam.NewFromConfig(cfg),
		sts:    sts.NewFromConfig(cfg),
		region: region,
	}, nil
}

// Region returns the region this client operates in.
func (c *RealClient) Region() string {
	return c.region
}
