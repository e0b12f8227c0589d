package domain

// SourceType identifies where a corpus document came from.
type SourceType string

// Available source types.
const (
	// SourceTypeUpload is a document uploaded by an operator.
	SourceTypeUpload SourceType = "upload"

	// SourceTypeURL is a document fetched from an external URL.
	SourceTypeURL SourceType = "url"
)

// IsValid returns true if the source type is recognised.
func (s SourceType) IsValid() bool {
	switch s {
	case SourceTypeUpload, SourceTypeURL:
		return true
	default:
		return false
	}
}

// DocumentStatus is the lifecycle state of a user document.
type DocumentStatus string

// Available document states.
const (
	// DocumentStatusPending means text extraction has not completed.
	DocumentStatusPending DocumentStatus = "pending"

	// DocumentStatusReady means normalised text is available at PathText.
	DocumentStatusReady DocumentStatus = "ready"
)

// UserDocument is a submitted document eligible for checking. Extraction
// from the raw container is an external collaborator; the core only ever
// reads the normalised text at PathText.
type UserDocument struct {
	ID        int64
	Owner     string
	Title     string
	MIMEType  string
	SizeBytes int64
	Status    DocumentStatus

	// PathRaw is the stored upload, empty when discarded after extraction.
	PathRaw string

	// PathText is the UTF-8, LF-terminated normalised text file.
	PathText string
}

// CorpusDocument is one reference document. Only active rows participate in
// checks; membership is snapshotted at check start.
type CorpusDocument struct {
	ID         int64
	Title      string
	SourceType SourceType
	SourceRef  string
	PathText   string
	IsActive   bool
}
