// Package aws wraps the AWS APIs used for provisioning.
//
// All operations are idempotent Ensure/Delete pairs: Ensure looks the
// resource up by name or tag first and only creates it when missing, so
// re-applying an unchanged configuration makes zero changes. Resources are
// discovered for teardown through the eksail.io/cluster tag.
//
// The manager interfaces in client.go decouple provisioning logic from the
// SDK; FakeClient provides an in-memory implementation for tests.
package aws
