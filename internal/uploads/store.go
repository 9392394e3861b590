// Package uploads keeps uploaded files in memory for the life of the
// process and hands out blob: references to them.
package uploads

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// File is an uploaded file.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

type Store struct {
	files *cache.Cache
}

func NewStore() *Store {
	return &Store{files: cache.New(cache.NoExpiration, 0)}
}

// Put stores a file and returns its id. An empty content type is sniffed.
func (s *Store) Put(name, contentType string, data []byte) string {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	id := uuid.NewString()
	s.files.Set(id, File{Name: name, ContentType: contentType, Data: data}, cache.NoExpiration)
	return id
}

func (s *Store) File(id string) (File, bool) {
	v, ok := s.files.Get(id)
	if !ok {
		return File{}, false
	}
	return v.(File), true
}

// Get returns the bytes of an uploaded file.
func (s *Store) Get(id string) ([]byte, bool) {
	f, ok := s.File(id)
	return f.Data, ok
}

func (s *Store) Delete(id string) {
	s.files.Delete(id)
}

func (s *Store) Len() int {
	return s.files.ItemCount()
}
