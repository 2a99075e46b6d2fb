package auth

import "context"

type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
