package source

type (
	// FileID uniquely identifies a document within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a loaded document.
	FileFlags uint8
	// Digest is the sha256 of a document or of a cache key.
	Digest [32]byte
)

const (
	// FileVirtual indicates the document was added from memory (test, stdin, request body).
	FileVirtual FileFlags = 1 << iota // не с диска
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single document.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    Digest
	Flags   FileFlags
}
