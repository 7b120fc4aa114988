// Package index orchestrates the record store against the stub-file
// directory: "does this problem already have a local stub" and "record
// that it now does".
package index

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/yhlin/leetcoder/internal/db"
	"github.com/yhlin/leetcoder/internal/logging"
	"github.com/yhlin/leetcoder/internal/models"
)

// Index reconciles store bookkeeping with actual filesystem presence.
type Index struct {
	store        *db.Store
	solutionsDir string
	log          *logrus.Logger
}

// New creates an Index over store and the stub-file directory.
func New(store *db.Store, solutionsDir string) *Index {
	return &Index{
		store:        store,
		solutionsDir: solutionsDir,
		log:          logging.Get(),
	}
}

// Exists reports whether problem id has a stub file that is actually
// present on disk. A bookkeeping record whose backing file has been
// deleted out-of-band is stale: it is purged as a side effect and Exists
// returns false. Reconciliation is lazy; there is no background sweep.
func (ix *Index) Exists(id int) (bool, error) {
	filename, err := ix.store.AddedFilename(id)
	if err != nil {
		return false, err
	}
	if filename == "" {
		return false, nil
	}

	path := filepath.Join(ix.solutionsDir, filename)
	if _, err := os.Stat(path); err == nil {
		return true, nil
	}

	ix.log.WithFields(logrus.Fields{"id": id, "filename": filename}).
		Debug("stub file missing on disk, purging stale record")
	if err := ix.store.DeleteAdded(id); err != nil {
		return false, err
	}
	return false, nil
}

// Add records that a stub file was generated for the problem. The caller
// is expected to have written the file already. The underlying store
// rejects problems it does not know about.
func (ix *Index) Add(p *models.Problem, filename string) error {
	return ix.store.MarkAdded(p.ID, filename)
}

// SearchByTitle returns added problems matching keyword against title or
// slug, case-insensitively.
func (ix *Index) SearchByTitle(keyword string) ([]*models.AddedRecord, error) {
	return ix.store.SearchAddedByTitle(keyword)
}

// SearchByTag returns added problems matching the term against any tag.
func (ix *Index) SearchByTag(tag string) ([]*models.AddedRecord, error) {
	return ix.store.SearchAddedByTag(tag)
}

// All returns every added problem ordered by ID.
func (ix *Index) All() ([]*models.AddedRecord, error) {
	return ix.store.ListAdded()
}

// Statistics aggregates counts over added problems.
func (ix *Index) Statistics() (*db.Statistics, error) {
	return ix.store.Statistics()
}
