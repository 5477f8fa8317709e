package backend

import (
	"encoding/json"
	"io"
	"net/http"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// decodeResponse parses the body as JSON before looking at the status, so a
// malformed body is a transport-class failure whatever the status was.
func decodeResponse(resp *http.Response) (json.RawMessage, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &RequestError{
			StatusCode: resp.StatusCode,
			Message:    defaultFailureMessage,
		}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil {
			if eb.Error != "" {
				reqErr.Message = eb.Error
			}
			reqErr.Code = eb.Code
		}
		return nil, reqErr
	}

	return raw, nil
}
