package library

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"phototag/internal/filesystem"
	"phototag/internal/logging"
	"phototag/internal/metrics"
	"phototag/internal/tags"
	"phototag/internal/thumbcache"
)

// Listener is called after every committed change to the library.
type Listener func()

// Store owns the photo index. The in-memory collection is the working copy;
// every mutation rewrites the index file atomically before it becomes visible.
type Store struct {
	path string

	mu      sync.RWMutex
	entries []PhotoEntry
	writes  int

	// save persists a full snapshot. Replaced in tests.
	save func(entries []PhotoEntry) error

	listenerMu     sync.Mutex
	listeners      []registeredListener
	nextListenerID int

	// notifyMu guards the dispatch state below. It is never held while a
	// listener runs.
	notifyMu    sync.Mutex
	dispatching bool
	pending     int
}

type registeredListener struct {
	id int
	fn Listener
}

// New creates a store backed by the index file at path. Call Load before use.
func New(path string) *Store {
	s := &Store{path: path}
	s.save = s.writeIndex
	return s
}

// Path returns the index file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the index file into memory, replacing the current collection.
//
// A missing or empty file yields an empty library. A file that cannot be
// decoded is renamed to "<path>.corrupt-<timestamp>" and the library starts
// empty; the returned *CorruptIndexError matches ErrCorruptIndex and the store
// remains usable. Other read errors are returned unchanged.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.entries = nil
		logging.Debug("Library index %s does not exist, starting empty", s.path)
		metrics.LibraryEntries.Set(0)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read library index: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.entries = nil
		metrics.LibraryEntries.Set(0)
		return nil
	}

	entries, err := decodeIndex(data)
	if err != nil {
		s.entries = nil
		metrics.LibraryEntries.Set(0)
		metrics.LibraryCorruptIndexRecoveries.Inc()

		backup := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().Format("20060102-150405"))
		if renameErr := os.Rename(s.path, backup); renameErr != nil {
			logging.Error("Failed to move corrupt library index aside: %v", renameErr)
			backup = ""
		}
		corrupt := &CorruptIndexError{Path: s.path, BackupPath: backup, Err: err}
		logging.Warn("%v", corrupt)
		return corrupt
	}

	s.entries = entries
	metrics.LibraryEntries.Set(float64(len(entries)))
	logging.Debug("Loaded %d photos from %s", len(entries), s.path)
	return nil
}

// decodeIndex parses index data and enforces entry invariants: ids present
// and unique, tags free of duplicates.
func decodeIndex(data []byte) ([]PhotoEntry, error) {
	var decoded []PhotoEntry
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(decoded))
	entries := make([]PhotoEntry, 0, len(decoded))
	for i, entry := range decoded {
		if strings.TrimSpace(entry.ID) == "" {
			return nil, fmt.Errorf("entry %d has no id", i)
		}
		if seen[entry.ID] {
			logging.Warn("Library index contains duplicate id %s, keeping first occurrence", entry.ID)
			continue
		}
		seen[entry.ID] = true
		entry.Tags = tags.Dedupe(entry.Tags)
		entries = append(entries, entry)
	}
	return entries, nil
}

// writeIndex serializes the full collection and atomically replaces the index file.
func (s *Store) writeIndex(entries []PhotoEntry) error {
	if entries == nil {
		entries = []PhotoEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal library index: %w", err)
	}
	return filesystem.WriteFileAtomic(s.path, data, 0o644)
}

// All returns a copy of every entry in index order.
func (s *Store) All() []PhotoEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]PhotoEntry, len(s.entries))
	for i, entry := range s.entries {
		result[i] = entry.Clone()
	}
	return result
}

// Get returns a copy of the entry with id.
func (s *Store) Get(id string) (PhotoEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.entries[i].Clone(), true
	}
	return PhotoEntry{}, false
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// TagSummaries returns every distinct tag with its usage count, ordered by
// case-insensitive tag text. Tags that differ only in case are ordered by
// their raw text.
func (s *Store) TagSummaries() []TagSummary {
	s.mu.RLock()
	counts := make(map[string]int)
	for _, entry := range s.entries {
		for _, tag := range entry.Tags {
			counts[tag]++
		}
	}
	s.mu.RUnlock()

	summaries := make([]TagSummary, 0, len(counts))
	for tag, count := range counts {
		summaries = append(summaries, TagSummary{Tag: tag, Count: count})
	}
	sort.Slice(summaries, func(i, j int) bool {
		li, lj := strings.ToLower(summaries[i].Tag), strings.ToLower(summaries[j].Tag)
		if li != lj {
			return li < lj
		}
		return summaries[i].Tag < summaries[j].Tag
	})
	return summaries
}

// Recent returns every entry, most recent first.
func (s *Store) Recent() []PhotoEntry {
	return s.filterSorted(func(*PhotoEntry) bool { return true })
}

// Untagged returns entries without tags, most recent first.
func (s *Store) Untagged() []PhotoEntry {
	return s.filterSorted(func(p *PhotoEntry) bool { return len(p.Tags) == 0 })
}

// ByTag returns entries carrying tag (exact match after trimming, as stored
// tags are), most recent first.
func (s *Store) ByTag(tag string) []PhotoEntry {
	tag = strings.TrimSpace(tag)
	return s.filterSorted(func(p *PhotoEntry) bool { return p.HasTag(tag) })
}

// filterSorted copies matching entries and orders them by effective sort date
// descending. The sort is stable, so ties keep index order.
func (s *Store) filterSorted(match func(*PhotoEntry) bool) []PhotoEntry {
	s.mu.RLock()
	result := make([]PhotoEntry, 0)
	for i := range s.entries {
		if match(&s.entries[i]) {
			result = append(result, s.entries[i].Clone())
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SortDate().After(result[j].SortDate())
	})
	return result
}

// Stats summarises the library for metrics collection.
func (s *Store) Stats() metrics.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	distinct := make(map[string]struct{})
	stats := metrics.Stats{TotalPhotos: len(s.entries)}
	for _, entry := range s.entries {
		if len(entry.Tags) == 0 {
			stats.Untagged++
		}
		if entry.ThumbnailPath == "" {
			stats.MissingThumbnails++
		}
		for _, tag := range entry.Tags {
			distinct[tag] = struct{}{}
		}
	}
	stats.TotalTags = len(distinct)
	return stats
}

// AddImported appends a newly imported entry, persists the index and
// notifies listeners. If the write fails the entry is not added.
func (s *Store) AddImported(entry PhotoEntry) error {
	if strings.TrimSpace(entry.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEntry)
	}
	entry = entry.Clone()
	entry.Tags = tags.Dedupe(entry.Tags)

	return s.mutate("add_imported", func(next []PhotoEntry) ([]PhotoEntry, bool, error) {
		if indexOf(next, entry.ID) >= 0 {
			return nil, false, fmt.Errorf("%w: %s", ErrDuplicateID, entry.ID)
		}
		return append(next, entry), true, nil
	})
}

// SetTags replaces the tag set of one entry. Unknown ids and unchanged tag
// sets are no-ops.
func (s *Store) SetTags(id string, newTags []string) error {
	normalized := tags.Dedupe(newTags)

	return s.mutate("set_tags", func(next []PhotoEntry) ([]PhotoEntry, bool, error) {
		i := indexOf(next, id)
		if i < 0 || equalTags(next[i].Tags, normalized) {
			return next, false, nil
		}
		next[i].Tags = normalized
		return next, true, nil
	})
}

// AddTags merges tagsToAdd into every entry named in ids. Merged tag sets are
// sorted by case-sensitive text. Entries that already carry every tag are left
// untouched, and a batch that changes nothing neither writes nor notifies.
func (s *Store) AddTags(ids []string, tagsToAdd []string) error {
	toAdd := tags.Dedupe(tagsToAdd)
	if len(toAdd) == 0 || len(ids) == 0 {
		return nil
	}
	targets := idSet(ids)

	return s.mutate("add_tags", func(next []PhotoEntry) ([]PhotoEntry, bool, error) {
		changed := false
		for i := range next {
			if !targets[next[i].ID] {
				continue
			}
			merged, grew := unionSorted(next[i].Tags, toAdd)
			if !grew {
				continue
			}
			next[i].Tags = merged
			changed = true
		}
		return next, changed, nil
	})
}

// SetThumbnail records a regenerated thumbnail path for one entry. Unknown
// ids and unchanged paths are no-ops.
func (s *Store) SetThumbnail(id, path string) error {
	return s.mutate("set_thumbnail", func(next []PhotoEntry) ([]PhotoEntry, bool, error) {
		i := indexOf(next, id)
		if i < 0 || next[i].ThumbnailPath == path {
			return next, false, nil
		}
		next[i].ThumbnailPath = path
		return next, true, nil
	})
}

// DeleteTagGlobally removes tag from every entry. The tag is trimmed like
// stored tags; a blank tag matches nothing.
func (s *Store) DeleteTagGlobally(tag string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil
	}
	return s.mutate("delete_tag", func(next []PhotoEntry) ([]PhotoEntry, bool, error) {
		changed := false
		for i := range next {
			if !next[i].HasTag(tag) {
				continue
			}
			kept := make([]string, 0, len(next[i].Tags)-1)
			for _, t := range next[i].Tags {
				if t != tag {
					kept = append(kept, t)
				}
			}
			next[i].Tags = kept
			changed = true
		}
		return next, changed, nil
	})
}

// DeletePhotos removes entries from the index. Original files are never
// touched. When removeThumbnails is set, thumbnail files of removed entries
// are deleted after the index write commits; failures there are ignored.
func (s *Store) DeletePhotos(ids []string, removeThumbnails bool) error {
	if len(ids) == 0 {
		return nil
	}
	targets := idSet(ids)

	var thumbnails []string
	err := s.mutate("delete_photos", func(next []PhotoEntry) ([]PhotoEntry, bool, error) {
		kept := make([]PhotoEntry, 0, len(next))
		thumbnails = thumbnails[:0]
		for _, entry := range next {
			if targets[entry.ID] {
				if entry.ThumbnailPath != "" {
					thumbnails = append(thumbnails, entry.ThumbnailPath)
				}
				continue
			}
			kept = append(kept, entry)
		}
		return kept, len(kept) != len(next), nil
	}, func() {
		if !removeThumbnails {
			return
		}
		for _, path := range thumbnails {
			if err := thumbcache.Remove(path); err != nil {
				logging.Debug("Ignoring thumbnail removal failure for %s: %v", path, err)
			}
		}
	})
	return err
}

// AddListener registers fn to run after every committed change. The returned
// function unregisters it.
func (s *Store) AddListener(fn Listener) func() {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	id := s.nextListenerID
	s.nextListenerID++
	s.listeners = append(s.listeners, registeredListener{id: id, fn: fn})

	return func() {
		s.listenerMu.Lock()
		defer s.listenerMu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// mutate runs one serialized read-modify-write cycle. fn receives a shallow
// copy of the collection; it must replace, never modify in place, any slice
// field it changes. When fn reports a change the copy is written to disk and
// only then swapped in. afterCommit hooks run once the data lock is released,
// before listeners are notified.
func (s *Store) mutate(op string, fn func(next []PhotoEntry) ([]PhotoEntry, bool, error), afterCommit ...func()) error {
	s.mu.Lock()

	next := append([]PhotoEntry(nil), s.entries...)
	next, changed, err := fn(next)
	if err != nil || !changed {
		s.mu.Unlock()
		return err
	}

	start := time.Now()
	err = s.save(next)
	metrics.LibraryWriteDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		s.mu.Unlock()
		metrics.LibraryWritesTotal.WithLabelValues(op, "error").Inc()
		logging.Error("Failed to persist library index (%s): %v", op, err)
		return &PersistError{Op: op, Err: err}
	}

	s.entries = next
	s.writes++
	metrics.LibraryWritesTotal.WithLabelValues(op, "success").Inc()
	metrics.LibraryEntries.Set(float64(len(next)))
	s.mu.Unlock()

	for _, hook := range afterCommit {
		hook()
	}
	s.notify()
	return nil
}

// notify runs every listener once per committed change. Rounds never
// overlap: when a round is already running, on this goroutine (a listener
// that mutates the store) or another, the change is queued and the running
// dispatcher delivers it after the current round. Panics are recovered and
// logged so one bad listener neither reaches the caller nor stops the others.
func (s *Store) notify() {
	s.notifyMu.Lock()
	s.pending++
	if s.dispatching {
		s.notifyMu.Unlock()
		return
	}
	s.dispatching = true
	for s.pending > 0 {
		s.pending--
		s.notifyMu.Unlock()

		s.listenerMu.Lock()
		listeners := append([]registeredListener(nil), s.listeners...)
		s.listenerMu.Unlock()
		for _, l := range listeners {
			runListener(l.fn)
		}

		s.notifyMu.Lock()
	}
	s.dispatching = false
	s.notifyMu.Unlock()
}

func runListener(fn Listener) {
	defer func() {
		if r := recover(); r != nil {
			metrics.LibraryListenerPanics.Inc()
			logging.Error("Library listener panicked: %v", r)
		}
	}()
	fn()
}

func (s *Store) indexOf(id string) int {
	return indexOf(s.entries, id)
}

func indexOf(entries []PhotoEntry, id string) int {
	for i := range entries {
		if entries[i].ID == id {
			return i
		}
	}
	return -1
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func equalTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// unionSorted returns existing ∪ add sorted by text, and whether add
// contributed anything new.
func unionSorted(existing, add []string) ([]string, bool) {
	set := make(map[string]struct{}, len(existing)+len(add))
	for _, t := range existing {
		set[t] = struct{}{}
	}
	grew := false
	for _, t := range add {
		if _, ok := set[t]; !ok {
			set[t] = struct{}{}
			grew = true
		}
	}
	if !grew {
		return existing, false
	}

	merged := make([]string, 0, len(set))
	for t := range set {
		merged = append(merged, t)
	}
	sort.Strings(merged)
	return merged, true
}
