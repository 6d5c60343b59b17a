// Package repository provides read-only access to the trained model artifacts
package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/abelzeko/water-quality/internal/config"
	"github.com/abelzeko/water-quality/internal/entities"
	"github.com/abelzeko/water-quality/internal/model"
)

// ArtifactRepository defines the interface for loading the model and its column schema
type ArtifactRepository interface {
	LoadSchema() (entities.FeatureSchema, error)
	LoadModel() (model.Regressor, error)
	// Sources lists the files backing the artifacts
	Sources() []string
	Close() error
}

// Open returns the SQLite bundle repository when a bundle is configured, the file repository otherwise
func Open(cfg config.ArtifactConfig, logger *zap.SugaredLogger) (ArtifactRepository, error) {
	if cfg.BundlePath != "" {
		return NewSQLiteArtifactRepository(cfg.BundlePath, logger)
	}
	return NewFileArtifactRepository(cfg.ModelPath, cfg.ColumnsPath, logger), nil
}

// FileArtifactRepository reads the artifacts from two files.
// Supported formats are .json, .yaml and .yml, each optionally gzip-compressed (.gz).
type FileArtifactRepository struct {
	modelPath   string
	columnsPath string
	logger      *zap.SugaredLogger
}

// NewFileArtifactRepository creates a repository over a model file and a columns file
func NewFileArtifactRepository(modelPath, columnsPath string, logger *zap.SugaredLogger) *FileArtifactRepository {
	return &FileArtifactRepository{
		modelPath:   modelPath,
		columnsPath: columnsPath,
		logger:      logger,
	}
}

// LoadSchema reads the ordered column list
func (r *FileArtifactRepository) LoadSchema() (entities.FeatureSchema, error) {
	var columns []string
	if err := decodeFile(r.columnsPath, &columns); err != nil {
		return entities.FeatureSchema{}, err
	}

	schema, err := entities.NewFeatureSchema(columns)
	if err != nil {
		return entities.FeatureSchema{}, fmt.Errorf("columns artifact %s: %w", r.columnsPath, err)
	}
	r.logger.Infof("Loaded %d model columns from %s", schema.Len(), r.columnsPath)
	return schema, nil
}

// LoadModel reads and builds the regressor
func (r *FileArtifactRepository) LoadModel() (model.Regressor, error) {
	var doc model.Document
	if err := decodeFile(r.modelPath, &doc); err != nil {
		return nil, err
	}

	reg, err := model.Build(&doc)
	if err != nil {
		return nil, fmt.Errorf("model artifact %s: %w", r.modelPath, err)
	}
	r.logger.Infof("Loaded %s model (version %q, %d features) from %s", doc.Kind, doc.Version, reg.NumFeatures(), r.modelPath)
	return reg, nil
}

// Sources returns the model and columns paths
func (r *FileArtifactRepository) Sources() []string {
	return []string{r.modelPath, r.columnsPath}
}

// Close is a no-op; files are read fully on load
func (r *FileArtifactRepository) Close() error {
	return nil
}

func decodeFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open artifact: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	name := path
	if strings.HasSuffix(name, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("failed to decompress %s: %w", path, err)
		}
		defer zr.Close()
		src = zr
		name = strings.TrimSuffix(name, ".gz")
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: artifact %s is empty", entities.ErrSchemaMismatch, path)
	}

	switch ext := filepath.Ext(name); ext {
	case ".json":
		err = json.Unmarshal(data, v)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		return fmt.Errorf("%w: unsupported artifact format %q", entities.ErrSchemaMismatch, ext)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to decode %s: %v", entities.ErrSchemaMismatch, path, err)
	}
	return nil
}
