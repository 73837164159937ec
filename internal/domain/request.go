package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// Request is a captured or hand-built HTTP request.
type Request struct {
	Method   string            `json:"method" expr:"method"`
	URL      string            `json:"url" expr:"url"`
	Headers  map[string]string `json:"headers" expr:"headers"`
	Body     string            `json:"body" expr:"body"`
	Response *Response         `json:"response,omitempty" expr:"response"`
}

// Response is the reply observed for a Request.
type Response struct {
	Status  int               `json:"status" expr:"status"`
	Headers map[string]string `json:"headers" expr:"headers"`
	Body    string            `json:"body" expr:"body"`
}

// NewRequest builds a GET request for rawURL.
func NewRequest(rawURL string) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("url %q needs a scheme and host", rawURL)
	}
	return &Request{
		Method:  "GET",
		URL:     u.String(),
		Headers: map[string]string{"Host": u.Host},
	}, nil
}

// Host returns the host part of the request URL.
func (r *Request) Host() string {
	u, err := url.Parse(r.URL)
	if err != nil {
		return ""
	}
	return u.Host
}

// Summary is the one-line form used in listings.
func (r *Request) Summary() string {
	status := "-"
	if r.Response != nil {
		status = fmt.Sprintf("%d", r.Response.Status)
	}
	return fmt.Sprintf("%s %s %s", r.Method, r.URL, status)
}

// Length is the body size in bytes.
func (r *Response) Length() int {
	return len(r.Body)
}

// RequestSet is an ordered list of requests.
type RequestSet []*Request

// Filter keeps the requests whose URL contains substr.
func (s RequestSet) Filter(substr string) RequestSet {
	var out RequestSet
	for _, r := range s {
		if strings.Contains(r.URL, substr) {
			out = append(out, r)
		}
	}
	return out
}

// Last returns the most recent request, or nil.
func (s RequestSet) Last() *Request {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

// Count is the number of requests in the set.
func (s RequestSet) Count() int {
	return len(s)
}
