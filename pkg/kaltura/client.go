package kaltura

// Package kaltura is a client for the slice of the Kaltura api_v3 surface
// that the app-token tools consume. It is a typed wrapper over the JSON
// transport, not a general SDK.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cyclopcam/logs"
	"github.com/cyclopcam/www"
)

// clientTag identifies this tool in the platform's request logs.
const clientTag = "go:kapptokens-1.0"

type Client struct {
	ServiceURL string // eg https://www.kaltura.com (no trailing slash)
	PartnerID  int
	UserAgent  string // Optional User-Agent override (some deployments sit behind a WAF that rejects non-browser agents)

	ks    string
	log   logs.Log
	debug bool

	// Page size used by ListAllAppTokens. Zero means the default.
	listPageSize int
}

// NewClient creates a client bound to one service endpoint and partner.
// log may be nil, in which case the client is silent.
func NewClient(log logs.Log, serviceURL string, partnerID int) *Client {
	return &Client{
		ServiceURL: strings.TrimSuffix(serviceURL, "/"),
		PartnerID:  partnerID,
		log:        log,
	}
}

// SetKS replaces the ambient session string that is attached to every
// subsequent API call.
func (c *Client) SetKS(ks string) {
	c.ks = ks
}

// KS returns the current ambient session string.
func (c *Client) KS() string {
	return c.ks
}

// SetDebug enables logging of request and response bodies.
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// callService posts one api_v3 action and decodes the result into out.
// The platform replies HTTP 200 even on failure, with a KalturaAPIException
// envelope as the body, so we sniff for that before decoding the result.
func (c *Client) callService(service, action string, params map[string]any, out any) error {
	body := map[string]any{
		"format":    1, // JSON response
		"clientTag": clientTag,
	}
	if c.ks != "" {
		body["ks"] = c.ks
	}
	for k, v := range params {
		body[k] = v
	}
	bodyB, err := json.Marshal(body)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%v/api_v3/service/%v/action/%v", c.ServiceURL, service, action)
	if c.debug && c.log != nil {
		c.log.Debugf("POST %v %v", url, string(bodyB))
	}
	req, err := http.NewRequest("POST", url, bytes.NewReader(bodyB))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	resp, err := www.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if c.debug && c.log != nil {
		c.log.Debugf("%v.%v response: %v", service, action, string(raw))
	}
	if apiErr := sniffAPIError(raw); apiErr != nil {
		return apiErr
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("Error decoding %v.%v response: %w", service, action, err)
		}
	}
	return nil
}

// objectParam serializes v and tags it with the objectType discriminator that
// the api_v3 deserializer requires on object-valued parameters.
func objectParam(objectType string, v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	m := map[string]any{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	m["objectType"] = objectType
	return m, nil
}
