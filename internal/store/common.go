package store

import (
	"sort"
	"strconv"
	"sync"

	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/models"
	"fjacquet/quickspend/internal/parsererror"
)

const commonStore = "common transactions"

const (
	minTrackedLength    = 3
	minSuggestionCount  = 2
	maxSuggestions      = 10
	frequentNoticeCount = 3
)

type commonFile struct {
	Transactions []models.CommonTransaction `yaml:"transactions"`
	Frequency    []models.KeywordFrequency  `yaml:"frequency,omitempty"`
}

// CommonTransactionStore holds user-registered descriptions in insertion order,
// plus a frequency count of everything the user entered. Keys are normalized
// (trimmed, lower-cased) on every call. Put overwrites an existing entry in place.
type CommonTransactionStore struct {
	mu        sync.RWMutex
	path      string
	entries   []models.CommonTransaction
	index     map[string]int
	frequency []models.KeywordFrequency
	freqIndex map[string]int
	logger    logging.Logger
}

// NewCommonTransactionStore loads the store from path. A missing or malformed
// file yields an empty store; a malformed one is logged.
func NewCommonTransactionStore(path string, logger logging.Logger) *CommonTransactionStore {
	s := &CommonTransactionStore{
		path:      path,
		index:     map[string]int{},
		freqIndex: map[string]int{},
		logger:    logging.OrDefault(logger),
	}
	if path == "" {
		return s
	}

	var file commonFile
	if _, err := readYAML(commonStore, path, &file); err != nil {
		s.logger.WithError(err).Warn("Common transactions file unreadable, starting empty",
			logging.Field{Key: logging.FieldFile, Value: path})
		return s
	}

	for _, e := range file.Transactions {
		key := models.NormalizeKey(e.Key)
		if key == "" {
			continue
		}
		e.Key = key
		s.set(e)
	}
	for _, f := range file.Frequency {
		key := models.NormalizeKey(f.Description)
		if key == "" || f.Count <= 0 {
			continue
		}
		s.bump(key, f.Count)
	}
	return s
}

// Get returns the entry registered under key.
func (s *CommonTransactionStore) Get(key string) (models.CommonTransaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[models.NormalizeKey(key)]
	if !ok {
		return models.CommonTransaction{}, false
	}
	return cloneCommon(s.entries[i]), true
}

// Put registers entry under key, replacing any previous entry.
func (s *CommonTransactionStore) Put(key string, entry models.CommonTransaction) error {
	key = models.NormalizeKey(key)
	if key == "" {
		return &parsererror.ValidationError{Field: "common transaction", Reason: "description must not be empty"}
	}
	entry = cloneCommon(entry)
	entry.Key = key
	if entry.Description == "" {
		entry.Description = key
	}
	entry.Type = models.ParseTransactionType(string(entry.Type))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(entry)
	return s.persist()
}

// Remove deletes key and reports whether it existed.
func (s *CommonTransactionStore) Remove(key string) (bool, error) {
	key = models.NormalizeKey(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[key]
	if !ok {
		return false, nil
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.reindex()
	return true, s.persist()
}

// All returns every entry in insertion order.
func (s *CommonTransactionStore) All() []models.CommonTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CommonTransaction, len(s.entries))
	for i, e := range s.entries {
		out[i] = cloneCommon(e)
	}
	return out
}

func (s *CommonTransactionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// TrackKeyword counts one more use of description. Descriptions shorter than
// three characters are ignored.
func (s *CommonTransactionStore) TrackKeyword(description string) error {
	key := models.NormalizeKey(description)
	if len([]rune(key)) < minTrackedLength {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.bump(key, 1)
	if count == frequentNoticeCount {
		if _, registered := s.index[key]; !registered {
			s.logger.Info("Frequent transaction detected, consider adding it as a common transaction",
				logging.Field{Key: logging.FieldDescription, Value: key},
				logging.Field{Key: logging.FieldCount, Value: count})
		}
	}
	return s.persist()
}

// SuggestedKeywords returns up to ten descriptions entered at least twice that are
// not yet common transactions, most frequent first.
func (s *CommonTransactionStore) SuggestedKeywords() []models.KeywordFrequency {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.KeywordFrequency
	for _, f := range s.frequency {
		if f.Count < minSuggestionCount {
			continue
		}
		if _, registered := s.index[f.Description]; registered {
			continue
		}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func (s *CommonTransactionStore) set(entry models.CommonTransaction) {
	if i, ok := s.index[entry.Key]; ok {
		s.entries[i] = entry
		return
	}
	s.index[entry.Key] = len(s.entries)
	s.entries = append(s.entries, entry)
}

func (s *CommonTransactionStore) bump(key string, n int) int {
	if i, ok := s.freqIndex[key]; ok {
		s.frequency[i].Count += n
		return s.frequency[i].Count
	}
	s.freqIndex[key] = len(s.frequency)
	s.frequency = append(s.frequency, models.KeywordFrequency{Description: key, Count: n})
	return n
}

func (s *CommonTransactionStore) reindex() {
	s.index = make(map[string]int, len(s.entries))
	for i, e := range s.entries {
		s.index[e.Key] = i
	}
}

// persist writes the whole store. Callers hold the write lock.
func (s *CommonTransactionStore) persist() error {
	return writeYAML(commonStore, s.path, commonFile{Transactions: s.entries, Frequency: s.frequency})
}

func cloneCommon(e models.CommonTransaction) models.CommonTransaction {
	e.Amount = models.CopyAmount(e.Amount)
	return e
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
