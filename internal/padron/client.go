// Package padron implements the client for the AFIP padrón A5 web service
// (personaServiceA5) and the extraction of taxpayer data from its XML
// responses.
//
// The service speaks SOAP 1.1 over HTTPS. Authentication is not performed
// here: a token and sign pair obtained out-of-band (WSAA) is embedded
// verbatim in every request. The client issues exactly one POST per lookup,
// with no retries and no caching; timeouts are whatever the injected
// *http.Client enforces.
package padron

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
)

// Credentials carries the pre-obtained authentication material embedded in
// every outbound request. It is constructed once at startup and never
// mutated afterwards.
type Credentials struct {
	// Token is the WSAA authentication token.
	Token string
	// Sign is the signature paired with Token.
	Sign string
	// CUITRepresentada identifies the entity on whose behalf queries run.
	CUITRepresentada string
}

// Client performs getPersona_v2 lookups against a fixed service URL.
// It is safe for concurrent use.
type Client struct {
	url   string
	creds Credentials
	http  *http.Client
}

// NewClient returns a Client bound to the given service URL and credentials.
// If httpClient is nil, http.DefaultClient is used.
func NewClient(url string, creds Credentials, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{url: url, creds: creds, http: httpClient}
}

// soapEnvelope is the getPersona_v2 request document. Marshalling through
// typed structs XML-escapes every value, so caller-supplied identifiers can
// never break out of their element.
type soapEnvelope struct {
	XMLName xml.Name `xml:"soapenv:Envelope"`
	NSSoap  string   `xml:"xmlns:soapenv,attr"`
	NSA5    string   `xml:"xmlns:a5,attr"`
	Header  struct{} `xml:"soapenv:Header"`
	Body    soapBody `xml:"soapenv:Body"`
}

type soapBody struct {
	GetPersona getPersonaV2 `xml:"a5:getPersona_v2"`
}

type getPersonaV2 struct {
	Token            string `xml:"token"`
	Sign             string `xml:"sign"`
	CUITRepresentada string `xml:"cuitRepresentada"`
	IDPersona        string `xml:"idPersona"`
}

const (
	nsSoapEnv = "http://schemas.xmlsoap.org/soap/envelope/"
	nsA5      = "http://a5.soap.ws.server.puc.sr/"
)

// GetPersona queries the padrón for the given CUIT and returns the raw XML
// response body. The CUIT is treated as an opaque value; no format
// validation is applied. A non-2xx status is an error.
func (c *Client) GetPersona(ctx context.Context, cuit string) ([]byte, error) {
	envelope := soapEnvelope{
		NSSoap: nsSoapEnv,
		NSA5:   nsA5,
		Body: soapBody{
			GetPersona: getPersonaV2{
				Token:            c.creds.Token,
				Sign:             c.creds.Sign,
				CUITRepresentada: c.creds.CUITRepresentada,
				IDPersona:        cuit,
			},
		},
	}

	payload, err := xml.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("padron: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("padron: build request: %w", err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	// Required by the service even though the operation is addressed in the body.
	req.Header.Set("SOAPAction", "")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("padron: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("padron: read response: %w", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("padron: unexpected status %d", resp.StatusCode)
	}
	return body, nil
}
