package store

import (
	"strings"
	"sync"

	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/models"
	"fjacquet/quickspend/internal/parsererror"
)

const categoriesStore = "categories"

type categoriesFile struct {
	Categories []models.Category `yaml:"categories"`
	LastID     int               `yaml:"last_id,omitempty"`
}

// CategoryRegistry owns the list of spending categories. Ids 1 to 15 are the
// reserved defaults; user categories are numbered after the highest id ever
// assigned, never below 16. The high-water mark is persisted with the list, so
// a removed category's id is not handed out again.
type CategoryRegistry struct {
	mu         sync.RWMutex
	path       string
	categories []models.Category
	lastID     int
	logger     logging.Logger
}

// NewCategoryRegistry loads the registry from path. A missing, empty or malformed
// file yields the default categories; a malformed file is logged, not returned.
func NewCategoryRegistry(path string, logger logging.Logger) *CategoryRegistry {
	r := &CategoryRegistry{path: path, logger: logging.OrDefault(logger)}
	r.categories, r.lastID = r.load()
	return r
}

func (r *CategoryRegistry) load() ([]models.Category, int) {
	defaults := append([]models.Category(nil), models.DefaultCategories...)
	if r.path == "" {
		return defaults, highestID(defaults, 0)
	}

	var file categoriesFile
	found, err := readYAML(categoriesStore, r.path, &file)
	if err != nil {
		r.logger.WithError(err).Warn("Categories file unreadable, using defaults",
			logging.Field{Key: logging.FieldFile, Value: r.path})
		return defaults, highestID(defaults, 0)
	}
	if !found || len(file.Categories) == 0 {
		return defaults, highestID(defaults, 0)
	}

	valid := make([]models.Category, 0, len(file.Categories))
	for _, c := range file.Categories {
		c.Name = strings.TrimSpace(c.Name)
		if c.ID <= 0 || c.Name == "" {
			r.logger.Warn("Skipping invalid category entry",
				logging.Field{Key: logging.FieldCategoryID, Value: c.ID},
				logging.Field{Key: logging.FieldFile, Value: r.path})
			continue
		}
		valid = append(valid, c)
	}
	r.logger.Debug("Loaded categories",
		logging.Field{Key: logging.FieldCount, Value: len(valid)},
		logging.Field{Key: logging.FieldFile, Value: r.path})
	return valid, highestID(valid, file.LastID)
}

// ListCategories returns a snapshot of the registry in storage order.
func (r *CategoryRegistry) ListCategories() []models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Category(nil), r.categories...)
}

// ResolveIDByName returns the id of the category with exactly this name, or
// Miscellaneous when there is none.
func (r *CategoryRegistry) ResolveIDByName(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.categories {
		if c.Name == name {
			return c.ID
		}
	}
	return models.MiscellaneousCategoryID
}

// FindByName looks a category up by name, ignoring case and surrounding spaces.
func (r *CategoryRegistry) FindByName(name string) (models.Category, bool) {
	name = strings.TrimSpace(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return models.Category{}, false
}

// NameByID returns the category name, or "Unknown".
func (r *CategoryRegistry) NameByID(id int) string {
	if c, ok := r.Lookup(id); ok {
		return c.Name
	}
	return models.UnknownCategoryName
}

func (r *CategoryRegistry) Lookup(id int) (models.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.categories {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// Add creates a category with the next free id. Names are trimmed and must be unique.
func (r *CategoryRegistry) Add(name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, &parsererror.ValidationError{Field: "category", Reason: "name must not be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOfName(name, 0) >= 0 {
		return models.Category{}, &parsererror.ValidationError{Field: "category", Value: name, Reason: "already exists"}
	}

	created := models.Category{ID: max(r.lastID, models.MiscellaneousCategoryID) + 1, Name: name}

	updated := append(append([]models.Category(nil), r.categories...), created)
	if err := r.commit(updated, created.ID); err != nil {
		return models.Category{}, err
	}
	r.logger.Info("Category added",
		logging.Field{Key: logging.FieldCategoryID, Value: created.ID},
		logging.Field{Key: logging.FieldCategory, Value: created.Name})
	return created, nil
}

// Rename changes a category's name while keeping its id.
func (r *CategoryRegistry) Rename(id int, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &parsererror.ValidationError{Field: "category", Reason: "name must not be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOfID(id)
	if idx < 0 {
		return &parsererror.ValidationError{Field: "category id", Value: itoa(id), Reason: "not found"}
	}
	if r.indexOfName(name, id) >= 0 {
		return &parsererror.ValidationError{Field: "category", Value: name, Reason: "already exists"}
	}

	updated := append([]models.Category(nil), r.categories...)
	updated[idx].Name = name
	return r.commit(updated, r.lastID)
}

// Remove deletes a category. Miscellaneous cannot be removed since every
// unresolved transaction falls back to it.
func (r *CategoryRegistry) Remove(id int) error {
	if id == models.MiscellaneousCategoryID {
		return &parsererror.ValidationError{Field: "category id", Value: itoa(id), Reason: "the fallback category cannot be removed"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOfID(id)
	if idx < 0 {
		return &parsererror.ValidationError{Field: "category id", Value: itoa(id), Reason: "not found"}
	}

	updated := make([]models.Category, 0, len(r.categories)-1)
	updated = append(updated, r.categories[:idx]...)
	updated = append(updated, r.categories[idx+1:]...)
	return r.commit(updated, r.lastID)
}

// commit persists updated and swaps it in. Callers hold the write lock.
func (r *CategoryRegistry) commit(updated []models.Category, lastID int) error {
	if err := writeYAML(categoriesStore, r.path, categoriesFile{Categories: updated, LastID: lastID}); err != nil {
		return err
	}
	r.categories = updated
	r.lastID = lastID
	return nil
}

// highestID returns the largest of floor and every id in categories.
func highestID(categories []models.Category, floor int) int {
	for _, c := range categories {
		floor = max(floor, c.ID)
	}
	return floor
}

func (r *CategoryRegistry) indexOfID(id int) int {
	for i, c := range r.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// indexOfName finds name among categories other than exceptID.
func (r *CategoryRegistry) indexOfName(name string, exceptID int) int {
	for i, c := range r.categories {
		if c.Name == name && c.ID != exceptID {
			return i
		}
	}
	return -1
}
