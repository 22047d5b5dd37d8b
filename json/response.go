package json

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/ragview"
)

// responseDTO is the union of every field the backend may send. Status and
// Mode select the concrete ragview.Response.
type responseDTO struct {
	Status             string    `json:"status"`
	Mode               string    `json:"mode,omitempty"`
	Message            string    `json:"message,omitempty"`
	Answer             *string   `json:"answer,omitempty"`
	Provider           string    `json:"provider,omitempty"`
	RetrievedPageCount *int      `json:"retrievedPageCount,omitempty"`
	Sources            []pageDTO `json:"sources,omitempty"`
	Pages              []pageDTO `json:"pages,omitempty"`
	RootPageURLs       []string  `json:"rootPageUrls,omitempty"`
	RootPageURL        string    `json:"rootPageUrl,omitempty"`
}

type pageDTO struct {
	PageID    looseString `json:"pageId,omitempty"`
	Title     string      `json:"title,omitempty"`
	ParentID  looseString `json:"parentId,omitempty"`
	Depth     *int        `json:"depth,omitempty"`
	SourceURL string      `json:"sourceUrl,omitempty"`
	Content   string      `json:"content,omitempty"`
}

// looseString accepts a JSON string, number or null. Page IDs arrive as
// either depending on the backend version.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*s = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		*s = looseString(n.String())
		return nil
	}
}

// UnmarshalResponse decodes a backend payload. A status of "error" yields
// an ErrorResponse, a mode of "extract-only" an ExtractionResponse, and
// anything else a QueryResponse.
func UnmarshalResponse(data []byte) (ragview.Response, error) {
	var dto responseDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("unmarshal response: %v: %w", err, ragview.ErrDecode)
	}
	switch {
	case dto.Status == ragview.StatusError:
		return ragview.ErrorResponse{Message: dto.Message}, nil
	case dto.Mode == ragview.ModeExtractOnly:
		return ragview.ExtractionResponse{
			Status:             dto.Status,
			Mode:               dto.Mode,
			RetrievedPageCount: intValue(dto.RetrievedPageCount),
			Pages:              unmarshalPages(dto.Pages),
			RootPageURLs:       dto.RootPageURLs,
			RootPageURL:        dto.RootPageURL,
		}, nil
	default:
		var answer string
		if dto.Answer != nil {
			answer = *dto.Answer
		}
		return ragview.QueryResponse{
			Status:             dto.Status,
			Answer:             answer,
			Provider:           dto.Provider,
			RetrievedPageCount: intValue(dto.RetrievedPageCount),
			Sources:            unmarshalPages(dto.Sources),
			RootPageURLs:       dto.RootPageURLs,
			RootPageURL:        dto.RootPageURL,
		}, nil
	}
}

// MarshalResponse encodes a Response in the backend's wire format.
func MarshalResponse(resp ragview.Response) ([]byte, error) {
	var dto responseDTO
	switch r := resp.(type) {
	case ragview.QueryResponse:
		answer := r.Answer
		count := r.RetrievedPageCount
		dto = responseDTO{
			Status:             statusOr(r.Status),
			Answer:             &answer,
			Provider:           r.Provider,
			RetrievedPageCount: &count,
			Sources:            marshalPages(r.Sources),
			RootPageURLs:       r.RootPageURLs,
			RootPageURL:        r.RootPageURL,
		}
	case ragview.ExtractionResponse:
		count := r.RetrievedPageCount
		dto = responseDTO{
			Status:             statusOr(r.Status),
			Mode:               ragview.ModeExtractOnly,
			RetrievedPageCount: &count,
			Pages:              marshalPages(r.Pages),
			RootPageURLs:       r.RootPageURLs,
			RootPageURL:        r.RootPageURL,
		}
	case ragview.ErrorResponse:
		dto = responseDTO{Status: ragview.StatusError, Message: r.Message}
	default:
		return nil, fmt.Errorf("unknown response type %T", resp)
	}
	return json.MarshalIndent(dto, "", "  ")
}

func unmarshalPages(dtos []pageDTO) []ragview.Page {
	if len(dtos) == 0 {
		return nil
	}
	pages := make([]ragview.Page, len(dtos))
	for i, d := range dtos {
		pages[i] = ragview.Page{
			PageID:    string(d.PageID),
			Title:     d.Title,
			ParentID:  string(d.ParentID),
			Depth:     d.Depth,
			SourceURL: d.SourceURL,
			Content:   d.Content,
		}
	}
	return pages
}

func marshalPages(pages []ragview.Page) []pageDTO {
	if len(pages) == 0 {
		return nil
	}
	dtos := make([]pageDTO, len(pages))
	for i, p := range pages {
		dtos[i] = pageDTO{
			PageID:    looseString(p.PageID),
			Title:     p.Title,
			ParentID:  looseString(p.ParentID),
			Depth:     p.Depth,
			SourceURL: p.SourceURL,
			Content:   p.Content,
		}
	}
	return dtos
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func statusOr(s string) string {
	if s == "" {
		return ragview.StatusOK
	}
	return s
}
