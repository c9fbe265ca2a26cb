package kaltura

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// StartSession starts an administrative (or user) session from the partner's
// shared secret. On success the returned KS becomes the client's ambient
// session.
func (c *Client) StartSession(secret, userID string, sessionType SessionType, expiry int, privileges string) (string, error) {
	params := map[string]any{
		"secret":     secret,
		"userId":     userID,
		"type":       int(sessionType),
		"partnerId":  c.PartnerID,
		"expiry":     expiry,
		"privileges": privileges,
	}
	ks := ""
	if err := c.callService("session", "start", params, &ks); err != nil {
		return "", err
	}
	c.ks = ks
	return ks, nil
}

// StartWidgetSession starts an unprivileged widget session. The only use we
// have for these is as the nonce source of the app-token handshake.
func (c *Client) StartWidgetSession(widgetID string) (*StartWidgetSessionResponse, error) {
	resp := StartWidgetSessionResponse{}
	if err := c.callService("session", "startWidgetSession", map[string]any{"widgetId": widgetID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TokenSessionOptions selects the richer appToken.startSession call shape.
// nil means the minimal (id, hash) form, which older API revisions require.
type TokenSessionOptions struct {
	SessionType SessionType
	PartnerID   int
}

// StartAppTokenSession is the raw appToken.startSession call. Most callers
// want StartTokenSession, which performs the whole handshake.
func (c *Client) StartAppTokenSession(id, tokenHash string, opts *TokenSessionOptions) (*SessionInfo, error) {
	params := map[string]any{
		"id":        id,
		"tokenHash": tokenHash,
	}
	if opts != nil {
		params["userId"] = ""
		params["type"] = int(opts.SessionType)
		params["partnerId"] = opts.PartnerID
	}
	info := SessionInfo{}
	if err := c.callService("apptoken", "startSession", params, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// StartTokenSession derives a privileged session from an app token, without
// ever transmitting the token's secret value:
//
//  1. Start an unprivileged widget session. The widget id for a partner is
//     the partner id with an underscore prefix (partner 12345 -> "_12345").
//  2. Hash the widget KS concatenated with the token value (SHA-256,
//     lowercase hex). The hash proves possession of the secret, and binding
//     it to the ephemeral widget KS prevents replay across sessions.
//  3. Call appToken.startSession with the token id and the hash.
//
// On success the privileged KS becomes the client's ambient session, scoped
// to the privileges declared on the app token.
func (c *Client) StartTokenSession(tokenID, tokenValue string, opts *TokenSessionOptions) (string, error) {
	widgetID := "_" + strconv.Itoa(c.PartnerID)
	widget, err := c.StartWidgetSession(widgetID)
	if err != nil {
		return "", err
	}
	if widget.KS == "" {
		return "", &HandshakeError{Step: "widget"}
	}
	c.ks = widget.KS

	info, err := c.StartAppTokenSession(tokenID, TokenHash(widget.KS, tokenValue), opts)
	if err != nil {
		return "", err
	}
	if info.KS == "" {
		return "", &HandshakeError{Step: "apptoken"}
	}
	c.ks = info.KS
	return info.KS, nil
}

// TokenHash computes the proof-of-possession hash for appToken.startSession.
func TokenHash(widgetKS, tokenValue string) string {
	sum := sha256.Sum256([]byte(widgetKS + tokenValue))
	return hex.EncodeToString(sum[:])
}
