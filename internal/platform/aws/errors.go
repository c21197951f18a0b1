package aws

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"

	ekstypes "github.com/aws/aws-sdk-go-v2/service/eks/types"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
)

// errorCode extracts the API error code from an AWS SDK error, or "".
func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// IsNotFound reports whether err indicates a missing resource.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}

	var eksNotFound *ekstypes.ResourceNotFoundException
	if errors.As(err, &eksNotFound) {
		return true
	}
	var iamNotFound *iamtypes.NoSuchEntityException
	if errors.As(err, &iamNotFound) {
		return true
	}

	// EC2 has no typed not-found errors, only .NotFound code suffixes
	// (InvalidVpcID.NotFound, InvalidKeyPair.NotFound, ...).
	switch code := errorCode(err); code {
	case "":
		return false
	default:
		return strings.HasSuffix(code, ".NotFound")
	}
}

// IsAlreadyExists reports whether err indicates the resource exists.
func IsAlreadyExists(err error) bool {
	if err == nil {
		return false
	}

	var inUse *ekstypes.ResourceInUseException
	if errors.As(err, &inUse) {
		return true
	}
	var iamExists *iamtypes.EntityAlreadyExistsException
	if errors.As(err, &iamExists) {
		return true
	}

	switch errorCode(err) {
	case "InvalidKeyPair.Duplicate", "ResourceAlreadyExistsException":
		return true
	}
	return false
}

// IsDependencyViolation reports whether err indicates a resource still has
// dependents and deletion must be retried after they are gone.
func IsDependencyViolation(err error) bool {
	return errorCode(err) == "DependencyViolation"
}
