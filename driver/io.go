package driver

import (
	"context"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/klauspost/compress/gzip"
)

// openInput opens path (local or remote, via file.Open) for reading and
// transparently wraps it in a gzip reader when the path ends in ".gz".
// The returned closer closes both the gzip reader (if any) and the
// underlying file.
func openInput(ctx context.Context, path string) (io.Reader, func() error, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, nil, errors.E(err, "open", path)
	}
	r := f.Reader(ctx)
	if !strings.HasSuffix(path, ".gz") {
		return r, func() error { return f.Close(ctx) }, nil
	}
	gz, err := gzip.NewReader(r)
	if err != nil {
		_ = f.Close(ctx)
		return nil, nil, errors.E(err, "gzip open", path)
	}
	return gz, func() error {
		gzErr := gz.Close()
		closeErr := f.Close(ctx)
		if gzErr != nil {
			return errors.E(gzErr, "gzip close", path)
		}
		return closeErr
	}, nil
}

// createOutput creates path for writing, gzip-compressing it when the
// path ends in ".gz".
func createOutput(ctx context.Context, path string) (io.Writer, func() error, error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, nil, errors.E(err, "create", path)
	}
	w := f.Writer(ctx)
	if !strings.HasSuffix(path, ".gz") {
		return w, func() error { return f.Close(ctx) }, nil
	}
	gz := gzip.NewWriter(w)
	return gz, func() error {
		gzErr := gz.Close()
		closeErr := f.Close(ctx)
		if gzErr != nil {
			return errors.E(gzErr, "gzip close", path)
		}
		return closeErr
	}, nil
}
