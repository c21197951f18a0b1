package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// CallerIdentity returns the account ID and ARN of the calling identity.
func (c *RealClient) CallerIdentity(ctx context.Context) (string, string, error) {
	out, err := c.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve caller identity: %w", err)
	}
	return awssdk.ToString(out.Account), awssdk.ToString(out.Arn), nil
}
