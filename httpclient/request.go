package httpclient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"strings"
)

// Request describes one outbound call.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is joined onto the client's BaseURL, or used as-is when it is
	// already an absolute URL.
	Path string
	// Headers are merged over the client's default headers.
	Headers map[string]string
	// Query parameters, set on the final URL.
	Query map[string]string
	// Body may be an io.Reader, []byte, string, url.Values (sent
	// form-encoded, as token endpoints require), or any JSON-marshalable
	// value.
	Body any
	// Auth overrides the client-level credential for this call.
	Auth *AuthConfig
}

// encodedBody renders Body into a reader plus the content type it implies.
func (r Request) encodedBody() (io.Reader, string, error) {
	switch v := r.Body.(type) {
	case nil:
		return nil, "", nil
	case io.Reader:
		return v, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	case url.Values:
		return strings.NewReader(v.Encode()), "application/x-www-form-urlencoded", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// Response carries a fully read reply.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode/100 == 2
}

// IsError reports a 4xx or 5xx status.
func (r *Response) IsError() bool {
	return r.StatusCode/100 >= 4
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}
