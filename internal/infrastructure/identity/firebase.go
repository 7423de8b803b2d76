// Package identity provides credential-service adapters used at registration
// time. The production adapter is Firebase Auth; a local fallback mints ids
// without an external call.
package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseProvider creates identities in Firebase Auth. The returned uid is
// shared with the user document in the document store.
type FirebaseProvider struct {
	client *auth.Client
}

func NewFirebaseProvider(ctx context.Context, credentialsFile string) (*FirebaseProvider, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}

	return &FirebaseProvider{client: client}, nil
}

func (p *FirebaseProvider) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	record, err := p.client.CreateUser(ctx, (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName))
	if err != nil {
		return "", fmt.Errorf("create firebase user: %w", err)
	}
	return record.UID, nil
}
