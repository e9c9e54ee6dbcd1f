package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/driftline/castaway/internal/storage"
)

var (
	ErrSlotNotFound = errors.New("save slot not found")
	ErrBadSlotName  = errors.New("slot name must be letters, digits or dashes")
)

var slotNamePattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// SlotInfo is one entry in the save index. The save file itself lives next
// to the index under the slot-name.json convention.
type SlotInfo struct {
	SlotName     string    `json:"slot_name"`
	PlayerName   string    `json:"player_name"`
	Chapter      int       `json:"chapter"`
	ChapterTitle string    `json:"chapter_title"`
	Timestamp    time.Time `json:"timestamp"`
	Filename     string    `json:"filename"`
}

type slotIndex struct {
	Slots []SlotInfo `json:"slots"`
}

// SlotManager owns the save slots: snapshot files through the asset store,
// plus the separate index document listing them. Saves are synchronous;
// the manager serializes concurrent sessions itself.
type SlotManager struct {
	saves     storage.Storer[*GameState]
	indexPath string
	now       func() time.Time

	mu    sync.Mutex
	index slotIndex
}

func NewSlotManager(saves storage.Storer[*GameState], indexPath string) (*SlotManager, error) {
	m := &SlotManager{
		saves:     saves,
		indexPath: indexPath,
		now:       time.Now,
	}

	data, err := os.ReadFile(indexPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading save index: %w", err)
		}
		return m, nil
	}

	if err := json.Unmarshal(data, &m.index); err != nil {
		return nil, fmt.Errorf("parsing save index: %w", err)
	}

	return m, nil
}

// Save writes a snapshot under slotName and records it in the index,
// replacing any previous save in the same slot.
func (m *SlotManager) Save(slotName string, gs *GameState, chapterTitle string) error {
	if !slotNamePattern.MatchString(slotName) {
		return ErrBadSlotName
	}
	if err := gs.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid snapshot: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.saves.Save(slotName, gs); err != nil {
		return fmt.Errorf("writing save file: %w", err)
	}

	info := SlotInfo{
		SlotName:     slotName,
		PlayerName:   gs.PlayerName,
		Chapter:      gs.CurrentChapter,
		ChapterTitle: chapterTitle,
		Timestamp:    m.now(),
		Filename:     slotName + ".json",
	}

	replaced := false
	for i := range m.index.Slots {
		if m.index.Slots[i].SlotName == slotName {
			m.index.Slots[i] = info
			replaced = true
			break
		}
	}
	if !replaced {
		m.index.Slots = append(m.index.Slots, info)
	}

	return m.writeIndex()
}

// Load returns the snapshot saved under slotName, or ErrSlotNotFound.
func (m *SlotManager) Load(slotName string) (*GameState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	gs := m.saves.Get(slotName)
	if gs == nil {
		return nil, ErrSlotNotFound
	}
	return gs, nil
}

// Delete removes both the save file and its index entry.
func (m *SlotManager) Delete(slotName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.saves.Delete(slotName); err != nil {
		return err
	}

	for i := range m.index.Slots {
		if m.index.Slots[i].SlotName == slotName {
			m.index.Slots = append(m.index.Slots[:i], m.index.Slots[i+1:]...)
			break
		}
	}

	return m.writeIndex()
}

// Slots lists all save slots, most recent first.
func (m *SlotManager) Slots() []SlotInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]SlotInfo, len(m.index.Slots))
	copy(out, m.index.Slots)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

func (m *SlotManager) writeIndex() error {
	data, err := json.MarshalIndent(&m.index, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling save index: %w", err)
	}
	if err := storage.AtomicWrite(m.indexPath, data, 0644); err != nil {
		return fmt.Errorf("writing save index: %w", err)
	}
	return nil
}
