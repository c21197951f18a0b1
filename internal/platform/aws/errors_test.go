package aws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/smithy-go"
)

// apiError is a minimal smithy.APIError for tests.
type apiError struct {
	code string
}

func (e *apiError) Error() string                 { return e.code }
func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return e.code }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

func TestIsNotFound(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"eks resource not found", &ekstypes.ResourceNotFoundException{}, true},
		{"iam no such entity", &iamtypes.NoSuchEntityException{}, true},
		{"ec2 vpc not found code", &apiError{code: "InvalidVpcID.NotFound"}, true},
		{"ec2 key pair not found code", &apiError{code: "InvalidKeyPair.NotFound"}, true},
		{"wrapped not found", fmt.Errorf("outer: %w", &apiError{code: "InvalidSubnetID.NotFound"}), true},
		{"unrelated api error", &apiError{code: "UnauthorizedOperation"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IsNotFound(tt.err))
		})
	}
}

func TestIsAlreadyExists(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"eks in use", &ekstypes.ResourceInUseException{}, true},
		{"iam exists", &iamtypes.EntityAlreadyExistsException{}, true},
		{"key pair duplicate", &apiError{code: "InvalidKeyPair.Duplicate"}, true},
		{"unrelated", &apiError{code: "InvalidVpcID.NotFound"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, IsAlreadyExists(tt.err))
		})
	}
}

func TestIsDependencyViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDependencyViolation(&apiError{code: "DependencyViolation"}))
	assert.False(t, IsDependencyViolation(&apiError{code: "InvalidVpcID.NotFound"}))
	assert.False(t, IsDependencyViolation(nil))
}
