package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/chrisdamba/parcelperf/internal/cloudwriter"
	"github.com/chrisdamba/parcelperf/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// ParquetSink writes one parquet file per report, locally or to cloud
// storage depending on configuration.
type ParquetSink struct {
	dir                string
	folder             string
	mu                 sync.Mutex
	writers            map[string]*writer.ParquetWriter
	files              map[string]source.ParquetFile
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

func NewParquetSink(cfg *models.Config) (*ParquetSink, error) {
	p := &ParquetSink{
		dir:     filepath.Join(cfg.OutputPath, cfg.OutputFolder),
		folder:  cfg.OutputFolder,
		writers: make(map[string]*writer.ParquetWriter),
		files:   make(map[string]source.ParquetFile),
	}

	if cfg.OutputDestination != "local" {
		var factory cloudwriter.CloudWriterFactory
		var err error

		switch cfg.CloudStorage.Provider {
		case "s3":
			factory, err = cloudwriter.NewS3WriterFactory(cfg.CloudStorage.Region)
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", cfg.CloudStorage.Provider)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}

		p.cloudWriterFactory = factory
		p.cloudBucketName = cfg.CloudStorage.BucketName
	}

	return p, nil
}

func (p *ParquetSink) WriteRow(row models.MetricRow) error {
	name := row.Report()

	p.mu.Lock()
	pw, ok := p.writers[name]
	if !ok {
		var err error
		pw, err = p.createWriter(name)
		if err != nil {
			p.mu.Unlock()
			return fmt.Errorf("failed to create parquet writer: %w", err)
		}
	}
	p.mu.Unlock()

	if err := pw.Write(row); err != nil {
		return fmt.Errorf("failed to write %s row: %w", name, err)
	}
	return nil
}

func (p *ParquetSink) createWriter(name string) (*writer.ParquetWriter, error) {
	var fw source.ParquetFile
	var err error
	if p.cloudWriterFactory != nil {
		objectPath := filepath.Join(p.folder, name+".parquet")
		cw, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = &cloudParquetFile{cloudWriter: cw}
	} else {
		if err := os.MkdirAll(p.dir, os.ModePerm); err != nil {
			return nil, err
		}
		fw, err = local.NewLocalFileWriter(filepath.Join(p.dir, name+".parquet"))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	sc, err := GetSchema(name)
	if err != nil {
		return nil, err
	}

	pw, err := writer.NewParquetWriter(fw, nil, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}
	pw.SchemaHandler = sc

	p.writers[name] = pw
	p.files[name] = fw
	return pw, nil
}

func (p *ParquetSink) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for name, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			lastErr = fmt.Errorf("failed to finish %s.parquet: %w", name, err)
		}
		if f, ok := p.files[name]; ok {
			if err := f.Close(); err != nil {
				lastErr = err
			}
		}
	}
	return lastErr
}

// cloudParquetFile adapts a CloudWriter to parquet-go's file interface.
// Cloud objects are write-once: reads and open/create round-trips are not
// supported, and seeking from the end is rejected.
type cloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func (c *cloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *cloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *cloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *cloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *cloudParquetFile) Write(p []byte) (n int, err error) {
	return c.cloudWriter.Write(p)
}

func (c *cloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
