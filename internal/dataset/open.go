package dataset

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"strings"
)

// Load reads samples from a CSV file (optionally gzipped) or,
// for paths ending in "-idx3-ubyte.gz", from an IDX image file and its labels.
func Load(ctx context.Context, path string, threads, limit int) ([]Sample, error) {
	if strings.HasSuffix(path, idxImagesSuffix) {
		return LoadIDX(path, IDXLabelsPath(path), limit)
	}
	return LoadCSV(ctx, path, threads, limit)
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (f *gzipFile) Close() error {
	var err = f.Reader.Close()
	if fileErr := f.file.Close(); err == nil {
		err = fileErr
	}
	return err
}

func openFile(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return file, nil
	}
	reader, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return &gzipFile{Reader: reader, file: file}, nil
}
