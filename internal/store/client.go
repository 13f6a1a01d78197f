package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
)

// ErrNotFound indica que el recurso no existe en el store (404).
var ErrNotFound = errors.New("recurso no encontrado")

// StatusError es una respuesta no exitosa del store.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("el store respondió con estado %d", e.Code)
}

// restClient habla JSON con una colección del store REST (json-server).
// Cada llamada es un único ciclo request/response, sin reintentos.
type restClient struct {
	baseURL string
	http    *http.Client
	log     *logrus.Entry
}

func newRESTClient(baseURL string, log *logrus.Logger) *restClient {
	return &restClient{
		baseURL: baseURL,
		http:    &http.Client{},
		log:     log.WithField("component", "store"),
	}
}

func (c *restClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{"method": method, "url": u}).Warn("request al store falló")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.WithFields(logrus.Fields{"method": method, "url": u, "status": resp.StatusCode}).Warn("respuesta no exitosa del store")
		return &StatusError{Code: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return err
		}
	}
	return nil
}
