package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/sxclient/internal/client/models"
)

// CredentialProvider supplies the access token for outbound requests. An
// empty token means "not configured".
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

type Client interface {
	// TestAuth returns nil when the server accepts the token.
	TestAuth(ctx context.Context) error

	// Export returns the ZIP export body. The caller must close it.
	Export(ctx context.Context) (io.ReadCloser, error)

	// ListFiles returns the caller's files in server order.
	ListFiles(ctx context.Context) ([]models.File, error)

	// Rename sets the original filename of the file served at filePath.
	Rename(ctx context.Context, filePath string, name string) error
}
