// Package highscore keeps the best score across runs.
package highscore

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	scoresObject   = "scores"
	scoresProperty = "best"
)

// Record is the persisted score history.
type Record struct {
	Best      int `yaml:"best"`
	Rounds    int `yaml:"rounds"`
	LastScore int `yaml:"last_score"`
}

// Store reads and writes the record through gdata. With a nil manager the
// record lives in memory only.
type Store struct {
	manager *gdata.Manager
	record  Record
}

// Open creates the gdata manager for appName. Failures leave the store in
// memory-only mode.
func Open(appName string) *Store {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[HighScore] gdata unavailable, scores will not persist: %v", err)
		manager = nil
	}
	s, err := NewStore(manager)
	if err != nil {
		log.Printf("[HighScore] %v; starting fresh", err)
	}
	return s
}

// NewStore loads the saved record, if any. The returned store is usable even
// when err is non-nil.
func NewStore(manager *gdata.Manager) (*Store, error) {
	s := &Store{manager: manager}
	if manager == nil || !manager.ObjectPropExists(scoresObject, scoresProperty) {
		return s, nil
	}

	data, err := manager.LoadObjectProp(scoresObject, scoresProperty)
	if err != nil {
		return s, fmt.Errorf("highscore: load: %w", err)
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return s, fmt.Errorf("highscore: decode: %w", err)
	}
	s.record = rec
	return s, nil
}

// Submit records a finished round and reports whether it set a new best.
func (s *Store) Submit(score int) (bool, error) {
	if s == nil {
		return false, nil
	}
	s.record.Rounds++
	s.record.LastScore = score
	newBest := score > s.record.Best
	if newBest {
		s.record.Best = score
	}
	return newBest, s.save()
}

func (s *Store) save() error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.record)
	if err != nil {
		return fmt.Errorf("highscore: encode: %w", err)
	}
	if err := s.manager.SaveObjectProp(scoresObject, scoresProperty, data); err != nil {
		return fmt.Errorf("highscore: save: %w", err)
	}
	return nil
}

func (s *Store) Best() int {
	if s == nil {
		return 0
	}
	return s.record.Best
}

func (s *Store) Record() Record {
	if s == nil {
		return Record{}
	}
	return s.record
}

// Persistent reports whether scores survive a restart.
func (s *Store) Persistent() bool {
	return s != nil && s.manager != nil
}
