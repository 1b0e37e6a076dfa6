// Package storage persists raw media blobs. The rest of the system only ever
// sees the path string a Save call returns.
package storage

type Storage interface {
	// Save persists the blob under the given file name and returns the path
	// by which the file can later be fetched.
	Save(data []byte, filename string) (string, error)
}
