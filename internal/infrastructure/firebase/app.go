package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"thgamestore/pkg/logger"
)

// CredentialsOption prefers an inline service account JSON from the
// environment and falls back to a credentials file. Without either the
// client uses application default credentials.
func CredentialsOption(credentialsPath string) (option.ClientOption, bool, error) {
	if raw := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); raw != "" {
		logger.Info("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(raw)), true, nil
	}
	if credentialsPath == "" {
		return nil, false, nil
	}
	if _, err := os.Stat(credentialsPath); err != nil {
		return nil, false, fmt.Errorf("service account file %s: %w", credentialsPath, err)
	}
	logger.Info("Using Firebase service account from file: %s", credentialsPath)
	return option.WithCredentialsFile(credentialsPath), true, nil
}

// NewFirestoreClient initializes the Firebase app and returns its
// Firestore client.
func NewFirestoreClient(ctx context.Context, projectID, credentialsPath string) (*firestore.Client, error) {
	var opts []option.ClientOption
	opt, ok, err := CredentialsOption(credentialsPath)
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, opt)
	}

	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return client, nil
}
