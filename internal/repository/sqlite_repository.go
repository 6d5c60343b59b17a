package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/abelzeko/water-quality/internal/entities"
	"github.com/abelzeko/water-quality/internal/model"
)

// Bundle layout. The predictor only ever reads it.
const (
	bundleColumnsTable = "model_columns"
	bundleModelTable   = "model_artifact"
)

// SQLiteArtifactRepository reads the model and its columns from a single SQLite bundle
type SQLiteArtifactRepository struct {
	db     *sql.DB
	DBPath string
	logger *zap.SugaredLogger
}

// NewSQLiteArtifactRepository opens the bundle read-only and checks that both tables exist
func NewSQLiteArtifactRepository(dbPath string, logger *zap.SugaredLogger) (*SQLiteArtifactRepository, error) {
	logger.Infof("Opening artifact bundle at %s", dbPath)
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact bundle: %w", err)
	}

	for _, table := range []string{bundleColumnsTable, bundleModelTable} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			db.Close()
			if err == sql.ErrNoRows {
				return nil, fmt.Errorf("%w: bundle %s has no %s table", entities.ErrSchemaMismatch, dbPath, table)
			}
			return nil, fmt.Errorf("failed to inspect artifact bundle: %w", err)
		}
	}

	return &SQLiteArtifactRepository{
		db:     db,
		DBPath: dbPath,
		logger: logger,
	}, nil
}

// Close closes the database connection
func (r *SQLiteArtifactRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Sources returns the bundle path
func (r *SQLiteArtifactRepository) Sources() []string {
	return []string{r.DBPath}
}

// LoadSchema reads the column names ordered by position
func (r *SQLiteArtifactRepository) LoadSchema() (entities.FeatureSchema, error) {
	rows, err := r.db.Query(`SELECT name FROM model_columns ORDER BY position`)
	if err != nil {
		return entities.FeatureSchema{}, fmt.Errorf("failed to query model columns: %w", err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return entities.FeatureSchema{}, fmt.Errorf("failed to scan row: %w", err)
		}
		columns = append(columns, name)
	}

	if err := rows.Err(); err != nil {
		return entities.FeatureSchema{}, fmt.Errorf("error during row iteration: %w", err)
	}

	schema, err := entities.NewFeatureSchema(columns)
	if err != nil {
		return entities.FeatureSchema{}, fmt.Errorf("bundle %s: %w", r.DBPath, err)
	}
	r.logger.Infof("Loaded %d model columns from bundle %s", schema.Len(), r.DBPath)
	return schema, nil
}

// LoadModel reads the most recent model row and builds the regressor from its JSON payload
func (r *SQLiteArtifactRepository) LoadModel() (model.Regressor, error) {
	var payload []byte
	err := r.db.QueryRow(`SELECT payload FROM model_artifact ORDER BY id DESC LIMIT 1`).Scan(&payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: bundle %s has no model", entities.ErrSchemaMismatch, r.DBPath)
		}
		return nil, fmt.Errorf("failed to query model artifact: %w", err)
	}

	var doc model.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to decode model payload: %v", entities.ErrSchemaMismatch, err)
	}

	reg, err := model.Build(&doc)
	if err != nil {
		return nil, fmt.Errorf("bundle %s: %w", r.DBPath, err)
	}
	r.logger.Infof("Loaded %s model (version %q) from bundle %s", doc.Kind, doc.Version, r.DBPath)
	return reg, nil
}
