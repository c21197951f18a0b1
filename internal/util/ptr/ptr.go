// Package ptr provides helper functions for creating pointers to primitive types.
package ptr

// Bool returns a pointer to the given bool value.
func Bool(b bool) *bool { return &b }

// Int32 returns a pointer to the given int32 value.
func Int32(n int32) *int32 { return &n }

// String returns a pointer to the given string value.
func String(s string) *string { return &s }
