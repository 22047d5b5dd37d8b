package ragview

// Response is a sealed interface over the three shapes the backend returns.
// The unexported marker method prevents external implementations.
type Response interface {
	isResponse()
}

// Status and mode values carried by backend responses.
const (
	StatusOK    = "ok"
	StatusError = "error"

	ModeExtractOnly = "extract-only"
)

// Page is a Confluence page as reported by the backend. In query mode only
// the pages referenced by the answer are returned, without content.
type Page struct {
	PageID    string
	Title     string
	ParentID  string
	Depth     *int
	SourceURL string
	Content   string
}

// QueryResponse is the answer to a natural-language query.
type QueryResponse struct {
	Status             string
	Answer             string
	Provider           string
	RetrievedPageCount int
	Sources            []Page
	RootPageURLs       []string
	RootPageURL        string // legacy single-URL field
}

func (QueryResponse) isResponse() {}

// RootURLs returns the root page URLs, falling back to the legacy single URL.
func (r QueryResponse) RootURLs() []string {
	return rootURLs(r.RootPageURLs, r.RootPageURL)
}

// RenderInput builds the rendering input for the answer body.
func (r QueryResponse) RenderInput() RenderInput {
	return RenderInput{Text: r.Answer, Sources: SourceRefs(r.Sources)}
}

// ExtractionResponse lists the pages retrieved without generating an answer.
type ExtractionResponse struct {
	Status             string
	Mode               string
	RetrievedPageCount int
	Pages              []Page
	RootPageURLs       []string
	RootPageURL        string // legacy single-URL field
}

func (ExtractionResponse) isResponse() {}

// RootURLs returns the root page URLs, falling back to the legacy single URL.
func (r ExtractionResponse) RootURLs() []string {
	return rootURLs(r.RootPageURLs, r.RootPageURL)
}

// ErrorResponse reports a backend-side failure.
type ErrorResponse struct {
	Message string
}

func (ErrorResponse) isResponse() {}

// Status returns StatusError.
func (ErrorResponse) Status() string { return StatusError }

// Interface compliance checks.
var (
	_ Response = QueryResponse{}
	_ Response = ExtractionResponse{}
	_ Response = ErrorResponse{}
)

func rootURLs(urls []string, legacy string) []string {
	if len(urls) > 0 {
		return urls
	}
	if legacy != "" {
		return []string{legacy}
	}
	return nil
}
