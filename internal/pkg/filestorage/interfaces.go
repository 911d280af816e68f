package filestorage

import "mime/multipart"

// Storage key categories. Keys are namespaced by the logical kind of
// artifact so one bucket/directory can hold all of them.
const (
	CategoryProjectDocuments = "project-documents"
	CategoryDocumentForms    = "Document"
	CategoryOldProjects      = "old_projects"
	CategoryProfileImages    = "profile-images"
)

// StoredFile describes an artifact after a successful save.
type StoredFile struct {
	Key string // category-prefixed key, e.g. project-documents/1700000000000_proposal.pdf
	URL string // retrievable URL for the artifact
}

// Storage is the document-store contract consumed by the workflow:
// put a blob under a collision-resistant key and get a retrievable URL
// back, delete by URL. Implementations own the physical medium.
type Storage interface {
	Save(fileHeader *multipart.FileHeader, category string) (*StoredFile, error)
	Delete(fileURL, category string) error
}
