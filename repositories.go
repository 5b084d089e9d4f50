/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entityquery

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// repositorySet holds the named repositories of one entity type
type repositorySet[T any] struct {
	mu    sync.RWMutex
	repos map[string]*Repository[T]
}

func newRepositorySet[T any]() *repositorySet[T] {
	return &repositorySet[T]{
		repos: make(map[string]*Repository[T]),
	}
}

func (s *repositorySet[T]) register(key string, repo *Repository[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.repos[key]; exists {
		return fmt.Errorf("repository with key %q already registered", key)
	}
	s.repos[key] = repo
	return nil
}

func (s *repositorySet[T]) get(key string) (*Repository[T], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	repo, exists := s.repos[key]
	if !exists {
		return nil, fmt.Errorf("repository with key %q not found", key)
	}
	return repo, nil
}

func (s *repositorySet[T]) remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.repos[key]; !exists {
		return fmt.Errorf("repository with key %q not found", key)
	}
	delete(s.repos, key)
	return nil
}

func (s *repositorySet[T]) keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.repos))
	for k := range s.repos {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Repositories keeps named repositories for any number of entity types. The same key
// may be used for different types, e.g. one repository per store.
type Repositories struct {
	mu   sync.Mutex
	sets map[reflect.Type]any
}

// NewRepositories creates an empty Repositories
func NewRepositories() *Repositories {
	return &Repositories{
		sets: make(map[reflect.Type]any),
	}
}

func setOf[T any](rs *Repositories) *repositorySet[T] {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	typ := reflect.TypeOf((*T)(nil)).Elem()
	if set, exists := rs.sets[typ]; exists {
		return set.(*repositorySet[T])
	}

	set := newRepositorySet[T]()
	rs.sets[typ] = set
	return set
}

// Register adds repo for type T under key
func Register[T any](rs *Repositories, key string, repo *Repository[T]) error {
	return setOf[T](rs).register(key, repo)
}

// Get retrieves the repository for type T registered under key
func Get[T any](rs *Repositories, key string) (*Repository[T], error) {
	return setOf[T](rs).get(key)
}

// Remove deletes the repository for type T registered under key
func Remove[T any](rs *Repositories, key string) error {
	return setOf[T](rs).remove(key)
}

// Keys returns the sorted keys registered for type T
func Keys[T any](rs *Repositories) []string {
	return setOf[T](rs).keys()
}
