package datasource

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
)

// Opener opens the raw bytes of a readings document
type Opener interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	fmt.Stringer
}

// FileOpener opens a readings document from the local filesystem
type FileOpener string

func (f FileOpener) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(string(f))
}

func (f FileOpener) String() string {
	return string(f)
}

// GCSOpener opens a readings document stored as a Cloud Storage object
type GCSOpener struct {
	Client *storage.Client
	Bucket string
	Object string
}

func (g GCSOpener) Open(ctx context.Context) (io.ReadCloser, error) {
	if g.Client == nil {
		return nil, fmt.Errorf("no storage client for %s", g)
	}
	return g.Client.Bucket(g.Bucket).Object(g.Object).NewReader(ctx)
}

func (g GCSOpener) String() string {
	return fmt.Sprintf("gs://%s/%s", g.Bucket, g.Object)
}
