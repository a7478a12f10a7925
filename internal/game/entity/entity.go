// Package entity implements the actors that walk around a prop scene.
package entity

import "sort"

// Manager manages all characters in the scene.
type Manager struct {
	characters map[uint32]*Character
	player     *Character
	nextID     uint32
}

// NewManager creates a new character manager.
func NewManager() *Manager {
	return &Manager{
		characters: make(map[uint32]*Character),
		nextID:     1,
	}
}

// Add registers a character and assigns it an ID if it has none.
func (m *Manager) Add(c *Character) uint32 {
	if c.ID == 0 {
		c.ID = m.nextID
	}
	if c.ID >= m.nextID {
		m.nextID = c.ID + 1
	}
	m.characters[c.ID] = c
	return c.ID
}

// Remove removes a character.
func (m *Manager) Remove(id uint32) {
	if m.player != nil && m.player.ID == id {
		m.player = nil
	}
	delete(m.characters, id)
}

// Get returns a character by ID.
func (m *Manager) Get(id uint32) *Character {
	return m.characters[id]
}

// SetPlayer adds c and marks it as the locally controlled character.
func (m *Manager) SetPlayer(c *Character) {
	m.Add(c)
	m.player = c
}

// Player returns the local player.
func (m *Manager) Player() *Character {
	return m.player
}

// All returns all characters ordered by ID.
func (m *Manager) All() []*Character {
	result := make([]*Character, 0, len(m.characters))
	for _, c := range m.characters {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Count returns the total number of characters.
func (m *Manager) Count() int {
	return len(m.characters)
}
