// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

// Package employee holds the in-memory employee collection that the shell
// commands operate on.
package employee

import (
	"fmt"
	"slices"
	"sync"
)

// Employee is a single record. It is never modified after creation.
type Employee struct {
	ID       int    `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Position string `json:"position" yaml:"position"`
}

func (e Employee) String() string {
	return fmt.Sprintf("%d. %s - %s", e.ID, e.Name, e.Position)
}

// Store owns an ordered list of employees and the counter used to number
// them. Ids start at 1 and are never reused, even after a removal.
type Store struct {
	mu        sync.RWMutex
	lastID    int
	employees []Employee
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a new employee and returns its id.
func (s *Store) Add(name, position string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	s.employees = append(s.employees, Employee{ID: s.lastID, Name: name, Position: position})
	return s.lastID
}

// Remove deletes the employee with the given id. It reports false and leaves
// the store untouched when no such employee exists.
func (s *Store) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.employees, func(e Employee) bool { return e.ID == id })
	if idx < 0 {
		return false
	}
	s.employees = slices.Delete(s.employees, idx, idx+1)
	return true
}

// List returns a copy of the employees in insertion order.
func (s *Store) List() []Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.employees)
}

// Len returns the number of employees currently stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.employees)
}
