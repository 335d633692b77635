package catalogsummary

// Summary is the read model of the catalog home page.
type Summary struct {
	NumBooks           int
	NumAuthors         int
	NumGenres          int
	NumLanguages       int
	NumCopies          int
	NumCopiesAvailable int

	// NumVisits is the number of visits of this session before the current one.
	NumVisits int
}
