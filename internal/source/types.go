package source

type (
	// FileID uniquely identifies a document within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a document.
	FileFlags uint8
)

const (
	// FileVirtual indicates the document was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHasBOM marks a document that starts with a UTF-8 byte order mark.
	FileHasBOM
	// FileHasCRLF marks a document that uses \r\n line endings somewhere.
	FileHasCRLF
)

// File captures metadata and content for a single document.
// Content is kept byte-for-byte as read so it can be written back unchanged.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a document.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
