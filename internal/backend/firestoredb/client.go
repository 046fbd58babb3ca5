// Package firestoredb implements store.Store over the Cloud Firestore REST API.
package firestoredb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"golang.org/x/oauth2"
	firestore "google.golang.org/api/firestore/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"todolist/internal/auth"
	"todolist/internal/config"
	"todolist/internal/store"
)

const (
	// PageSize is the number of documents fetched per list request.
	PageSize = 300

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second
)

// Client implements store.Store against one Firestore collection.
type Client struct {
	svc        *firestore.Service
	parent     string // projects/{project}/databases/{database}/documents
	collection string
}

// New creates a Firestore client from the config's settings.
// With an api_key setting requests are keyed; otherwise oauth_client.json
// and token.json must exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	s := cfg.Settings
	if s.ProjectID == "" {
		return nil, fmt.Errorf("project_id not set (edit %s or set TODOLIST_PROJECT_ID)", cfg.SettingsPath())
	}

	var opts []option.ClientOption
	if s.APIKey != "" {
		opts = append(opts, option.WithAPIKey(s.APIKey))
	} else {
		ts, err := auth.TokenSource(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v (run: todolist login)", store.ErrAuth, err)
		}
		opts = append(opts, option.WithHTTPClient(oauth2.NewClient(ctx, ts)))
	}

	svc, err := firestore.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore service: %w", err)
	}
	return newClient(svc, s), nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, s config.Settings, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := firestore.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return newClient(svc, s), nil
}

func newClient(svc *firestore.Service, s config.Settings) *Client {
	database := s.DatabaseID
	if database == "" {
		database = config.DefaultDatabaseID
	}
	collection := s.Collection
	if collection == "" {
		collection = config.DefaultCollection
	}
	return &Client{
		svc:        svc,
		parent:     fmt.Sprintf("projects/%s/databases/%s/documents", s.ProjectID, database),
		collection: collection,
	}
}

// docName returns the full resource name of a task document.
func (c *Client) docName(id string) string {
	return c.parent + "/" + c.collection + "/" + id
}

// List returns every document in the collection.
func (c *Client) List(ctx context.Context) ([]store.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []store.Task
	call := c.svc.Projects.Databases.Documents.List(c.parent, c.collection).PageSize(PageSize)
	err := call.Pages(ctx, func(resp *firestore.ListDocumentsResponse) error {
		for _, doc := range resp.Documents {
			result = append(result, decodeDocument(doc))
		}
		return nil
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return result, nil
}

// Create adds a document with a server-assigned id.
func (c *Client) Create(ctx context.Context, rec store.Record) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	created, err := c.svc.Projects.Databases.Documents.CreateDocument(c.parent, c.collection, recordDocument(rec)).Context(ctx).Do()
	if err != nil {
		return "", wrapError(err)
	}
	return path.Base(created.Name), nil
}

// Update patches exactly the fields p sets. The document must exist.
func (c *Client) Update(ctx context.Context, id string, p store.Patch) error {
	if p.Empty() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.svc.Projects.Databases.Documents.Patch(c.docName(id), patchDocument(p)).
		UpdateMaskFieldPaths(p.Fields()...).
		CurrentDocumentExists(true).
		Context(ctx).
		Do()
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// Delete removes a document. The document must exist.
func (c *Client) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	_, err := c.svc.Projects.Databases.Documents.Delete(c.docName(id)).
		CurrentDocumentExists(true).
		Context(ctx).
		Do()
	if err != nil {
		return wrapError(err)
	}
	return nil
}

// wrapError maps API errors onto the store sentinels.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "context deadline exceeded") {
		return store.ErrTimeout
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: token expired or revoked (run: todolist login)", store.ErrAuth)
		case http.StatusNotFound:
			return store.ErrNotFound
		}
		if apiErr.Message != "" {
			return fmt.Errorf("firestore: %s (%d)", apiErr.Message, apiErr.Code)
		}
	}

	return err
}
