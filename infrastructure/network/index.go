package network

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var defaultRequestTimeout = 30 * time.Second

// NetworkController is a thin HTTP client bound to one upstream base URL.
type NetworkController struct {
	BaseUrl string
}

func (controller *NetworkController) Get(path string, headers *map[string]string, queryParams *map[string]string) (*[]byte, *int, error) {
	req, err := http.NewRequest(http.MethodGet, controller.BaseUrl+path, nil)
	if err != nil {
		return nil, nil, err
	}
	return controller.dispatch(req, headers, queryParams, nil)
}

func (controller *NetworkController) Post(path string, headers *map[string]string, body any, queryParams *map[string]string, isUrlEncoded bool, timeout *time.Duration) (*[]byte, *int, error) {
	var payload io.Reader
	contentType := "application/json"
	if body != nil {
		if isUrlEncoded {
			fields, ok := body.(map[string]string)
			if !ok {
				return nil, nil, errors.New("url encoded payloads must be passed as map[string]string")
			}
			form := url.Values{}
			for key, value := range fields {
				form.Set(key, value)
			}
			payload = strings.NewReader(form.Encode())
			contentType = "application/x-www-form-urlencoded"
		} else {
			encoded, err := json.Marshal(body)
			if err != nil {
				return nil, nil, err
			}
			payload = bytes.NewBuffer(encoded)
		}
	}
	req, err := http.NewRequest(http.MethodPost, controller.BaseUrl+path, payload)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return controller.dispatch(req, headers, queryParams, timeout)
}

func (controller *NetworkController) dispatch(req *http.Request, headers *map[string]string, queryParams *map[string]string, timeout *time.Duration) (*[]byte, *int, error) {
	if headers != nil {
		for key, value := range *headers {
			req.Header.Set(key, value)
		}
	}
	if queryParams != nil {
		query := req.URL.Query()
		for key, value := range *queryParams {
			query.Set(key, value)
		}
		req.URL.RawQuery = query.Encode()
	}

	requestTimeout := defaultRequestTimeout
	if timeout != nil {
		requestTimeout = *timeout
	}
	client := http.Client{Timeout: requestTimeout}
	res, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &res.StatusCode, err
	}
	return &responseBody, &res.StatusCode, nil
}
