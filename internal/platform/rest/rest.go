// Package rest es el cliente HTTP compartido por los adapters que hablan con
// las APIs REST del platform hosteado (auth y data). Maneja URL base, API key
// y decodificación de respuestas; la clasificación de errores queda en cada adapter.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxErrorBody = 16 * 1024

// Client habla con una API REST del platform.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient crea un cliente. Si hc es nil usa uno con timeout 10s.
func NewClient(baseURL, apiKey string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    hc,
	}
}

// Request describe una llamada.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	// Bearer reemplaza la API key en Authorization (token del usuario).
	Bearer string
	Header http.Header
}

// Response conserva status y body crudo para que el adapter clasifique.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// OK indica status 2xx.
func (r *Response) OK() bool { return r.Status/100 == 2 }

// Decode decodifica el body JSON en v.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return fmt.Errorf("empty response body (status %d)", r.Status)
	}
	return json.Unmarshal(r.Body, v)
}

// APIError es el formato de error de las APIs del platform. Cubre las dos
// variantes que existen en la práctica (error/error_description y code/error_code/msg)
// más el formato de la data API (code/message/details/hint).
type APIError struct {
	Status           int    `json:"-"`
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Err              string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Details          string `json:"details"`
	Hint             string `json:"hint"`
}

// CodeString devuelve el código simbólico más específico disponible.
func (e *APIError) CodeString() string {
	if e.ErrorCode != "" {
		return e.ErrorCode
	}
	if s, ok := e.Code.(string); ok && s != "" {
		return s
	}
	return e.Err
}

func (e *APIError) Error() string {
	msg := e.Msg
	for _, m := range []string{e.Message, e.ErrorDescription, e.Err} {
		if msg == "" {
			msg = m
		}
	}
	if c := e.CodeString(); c != "" {
		return fmt.Sprintf("http %d %s: %s", e.Status, c, msg)
	}
	return fmt.Sprintf("http %d: %s", e.Status, msg)
}

// APIError parsea el body de error. Nunca devuelve nil.
func (r *Response) APIError() *APIError {
	ae := &APIError{Status: r.Status}
	_ = json.Unmarshal(r.Body, ae)
	return ae
}

// Do ejecuta la llamada. Solo devuelve error en fallas de transporte o de
// armado del request; un status no-2xx vuelve en Response.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	u := c.baseURL + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	hr, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hr.Header.Add(k, v)
		}
	}
	hr.Header.Set("apikey", c.apiKey)
	bearer := c.apiKey
	if req.Bearer != "" {
		bearer = req.Bearer
	}
	hr.Header.Set("Authorization", "Bearer "+bearer)
	hr.Header.Set("Accept", "application/json")
	if req.Body != nil {
		hr.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(hr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	limit := int64(1 << 20)
	if resp.StatusCode/100 != 2 {
		limit = maxErrorBody
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: b}, nil
}
