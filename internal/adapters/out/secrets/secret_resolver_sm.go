// internal/adapters/out/secrets/secret_resolver_sm.go
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
)

const (
	SchemeSecretManager = "sm://"
	SchemeEnv           = "env://"
)

var (
	ErrSecretManagerNotConfigured = errors.New("secrets: secret manager not configured")
	ErrEmptySecret                = errors.New("secrets: empty secret payload")
)

// secretAccessor is the subset of *secretmanager.Client used here.
type secretAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

// IsSecretManagerRef reports whether ref must be read from Secret Manager.
func IsSecretManagerRef(ref string) bool {
	return strings.HasPrefix(strings.TrimSpace(ref), SchemeSecretManager)
}

// SecretResolverSM resolves configuration values that may hold a reference:
//
//	sm://<secret>[/<version>]  Secret Manager, version defaults to latest
//	env://<VAR>                environment variable
//	anything else              used as-is
type SecretResolverSM struct {
	SM        secretAccessor
	ProjectID string
	Getenv    func(string) string
}

func NewSecretResolverSM(sm *secretmanager.Client, projectID string) *SecretResolverSM {
	r := &SecretResolverSM{ProjectID: strings.TrimSpace(projectID), Getenv: os.Getenv}
	if sm != nil {
		r.SM = sm
	}
	return r
}

func (r *SecretResolverSM) Resolve(ctx context.Context, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case strings.HasPrefix(ref, SchemeSecretManager):
		return r.access(ctx, strings.TrimPrefix(ref, SchemeSecretManager))
	case strings.HasPrefix(ref, SchemeEnv):
		getenv := os.Getenv
		if r != nil && r.Getenv != nil {
			getenv = r.Getenv
		}
		name := strings.TrimSpace(strings.TrimPrefix(ref, SchemeEnv))
		v := strings.TrimSpace(getenv(name))
		if v == "" {
			return "", fmt.Errorf("%w (env %s)", ErrEmptySecret, name)
		}
		return v, nil
	default:
		return ref, nil
	}
}

func (r *SecretResolverSM) access(ctx context.Context, path string) (string, error) {
	if r == nil || r.SM == nil || r.ProjectID == "" {
		return "", ErrSecretManagerNotConfigured
	}
	secretID, version, _ := strings.Cut(strings.Trim(strings.TrimSpace(path), "/"), "/")
	if secretID == "" {
		return "", fmt.Errorf("secrets: empty secret id in %q", SchemeSecretManager+path)
	}
	if version == "" {
		version = "latest"
	}

	name := "projects/" + r.ProjectID + "/secrets/" + secretID + "/versions/" + version
	resp, err := r.SM.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("secrets: AccessSecretVersion failed (%s): %w", name, err)
	}
	if resp == nil || resp.Payload == nil || len(strings.TrimSpace(string(resp.Payload.Data))) == 0 {
		return "", fmt.Errorf("%w (%s)", ErrEmptySecret, name)
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}
