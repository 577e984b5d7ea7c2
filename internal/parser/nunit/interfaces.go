package nunit

// FileReader abstracts reading a report file so the parser can be tested
// without touching the file system. Implementations return UTF-8 content.
type FileReader interface {
	ReadReport(path string) ([]byte, error)
}
