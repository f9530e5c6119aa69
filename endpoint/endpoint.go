// Package endpoint maps a delivery target selector to the webhook URL the
// sale event is posted to.
package endpoint

import (
	"errors"
	"fmt"
)

// Target names a delivery destination.
type Target string

const (
	// TargetMake is the Make.com scenario webhook.
	TargetMake Target = "make"

	// TargetN8N is the n8n workflow webhook.
	TargetN8N Target = "n8n"

	// TargetCustom posts to a URL supplied with the submission.
	TargetCustom Target = "custom"
)

// Named returns the targets that resolve through configuration, in display
// order.
func Named() []Target {
	return []Target{TargetMake, TargetN8N}
}

// Valid reports whether t is one of the known targets.
func (t Target) Valid() bool {
	switch t {
	case TargetMake, TargetN8N, TargetCustom:
		return true
	}
	return false
}

// Default webhook URLs used when no override is configured.
const (
	DefaultMakeURL = "https://hook.eu2.make.com/l40rs4j6o8qljifrsc12pvcngq9hczjq"
	DefaultN8NURL  = "https://primary-production-1cd8.up.railway.app/webhook/webhook-phone-automation"
)

// Environment variables that override the default URLs.
const (
	EnvMakeURL = "MAKE_WEBHOOK_URL"
	EnvN8NURL  = "N8N_WEBHOOK_URL"
)

var defaults = map[Target]string{
	TargetMake: DefaultMakeURL,
	TargetN8N:  DefaultN8NURL,
}

var envKeys = map[Target]string{
	TargetMake: EnvMakeURL,
	TargetN8N:  EnvN8NURL,
}

// Resolution errors.
var (
	// ErrResolution matches every error returned by Resolve.
	ErrResolution = errors.New("endpoint: resolution failed")

	// ErrCustomURLRequired is returned for the custom target without a URL.
	ErrCustomURLRequired = errors.New("custom webhook URL is required when using custom endpoint")

	// ErrUnknownTarget is returned for a selector outside the known set.
	ErrUnknownTarget = errors.New("unknown webhook endpoint")
)

// ResolveError reports why a target could not be resolved.
type ResolveError struct {
	Target Target
	Err    error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve %q: %v", string(e.Target), e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrResolution) match any ResolveError.
func (e *ResolveError) Is(target error) bool { return target == ErrResolution }
