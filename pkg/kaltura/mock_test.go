package kaltura

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/cyclopcam/logs"
)

const mockPartnerID = 12345

// mockAPI is an in-process stand-in for the api_v3 endpoint. It implements
// just enough of the session and apptoken services to exercise the client,
// including the platform's habit of returning errors with HTTP 200.
type mockAPI struct {
	t      *testing.T
	server *httptest.Server

	calls  []string // "service.action", in invocation order
	tokens map[string]*AppToken
	nextID int

	adminKS  string
	widgetKS string
	tokenKS  string

	// lastStartSessionParams is the body of the most recent
	// apptoken.startSession call.
	lastStartSessionParams map[string]any
}

func newMockAPI(t *testing.T) *mockAPI {
	m := &mockAPI{
		t:        t,
		tokens:   map[string]*AppToken{},
		adminKS:  "admin-ks",
		widgetKS: "widget-ks",
		tokenKS:  "token-ks",
	}
	m.server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.server.Close)
	return m
}

func (m *mockAPI) newClient(t *testing.T) *Client {
	return NewClient(logs.NewTestingLog(t), m.server.URL, mockPartnerID)
}

func (m *mockAPI) callCount(serviceAction string) int {
	n := 0
	for _, call := range m.calls {
		if call == serviceAction {
			n++
		}
	}
	return n
}

func (m *mockAPI) send(w http.ResponseWriter, result any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		m.t.Errorf("mockAPI failed to encode response: %v", err)
	}
}

func (m *mockAPI) sendError(w http.ResponseWriter, code, message string) {
	m.send(w, map[string]any{
		"objectType": "KalturaAPIException",
		"code":       code,
		"message":    message,
	})
}

func (m *mockAPI) handle(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// api_v3/service/{service}/action/{action}
	if len(parts) != 5 || parts[0] != "api_v3" || parts[1] != "service" || parts[3] != "action" {
		m.t.Errorf("mockAPI received unexpected path %v", r.URL.Path)
		http.NotFound(w, r)
		return
	}
	service, action := parts[2], parts[4]
	m.calls = append(m.calls, service+"."+action)

	body := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		m.t.Errorf("mockAPI failed to decode request body: %v", err)
		return
	}
	if body["format"] != float64(1) {
		m.t.Errorf("mockAPI expected format=1, got %v", body["format"])
	}

	switch service + "." + action {
	case "session.start":
		if asString(body["secret"]) == "" {
			m.sendError(w, "START_SESSION_ERROR", "Error while starting session")
			return
		}
		m.send(w, m.adminKS)
	case "session.startWidgetSession":
		if body["widgetId"] != fmt.Sprintf("_%v", mockPartnerID) {
			m.sendError(w, "INVALID_WIDGET_ID", fmt.Sprintf("Invalid widget id %v", body["widgetId"]))
			return
		}
		m.send(w, map[string]any{
			"objectType": "KalturaStartWidgetSessionResponse",
			"partnerId":  mockPartnerID,
			"ks":         m.widgetKS,
		})
	case "apptoken.add":
		obj, _ := body["appToken"].(map[string]any)
		m.nextID++
		token := &AppToken{
			ID:                fmt.Sprintf("0_token%v", m.nextID),
			Token:             fmt.Sprintf("secretvalue%v", m.nextID),
			PartnerID:         mockPartnerID,
			Status:            AppTokenStatusActive,
			SessionType:       SessionType(asInt(obj["sessionType"])),
			SessionPrivileges: asString(obj["sessionPrivileges"]),
			HashType:          AppTokenHashType(asString(obj["hashType"])),
			Description:       asString(obj["description"]),
		}
		m.tokens[token.ID] = token
		m.send(w, token)
	case "apptoken.get":
		token := m.tokens[asString(body["id"])]
		if token == nil {
			m.sendError(w, "APP_TOKEN_ID_NOT_FOUND", fmt.Sprintf("App token id \"%v\" not found", body["id"]))
			return
		}
		m.send(w, token)
	case "apptoken.update":
		token := m.tokens[asString(body["id"])]
		if token == nil {
			m.sendError(w, "APP_TOKEN_ID_NOT_FOUND", fmt.Sprintf("App token id \"%v\" not found", body["id"]))
			return
		}
		obj, _ := body["appToken"].(map[string]any)
		if v, ok := obj["sessionPrivileges"]; ok {
			token.SessionPrivileges = asString(v)
		}
		if v, ok := obj["description"]; ok {
			token.Description = asString(v)
		}
		m.send(w, token)
	case "apptoken.delete":
		token := m.tokens[asString(body["id"])]
		if token == nil {
			m.sendError(w, "APP_TOKEN_ID_NOT_FOUND", fmt.Sprintf("App token id \"%v\" not found", body["id"]))
			return
		}
		delete(m.tokens, asString(body["id"]))
		m.send(w, nil)
	case "apptoken.list":
		pager, _ := body["pager"].(map[string]any)
		pageSize := asInt(pager["pageSize"])
		pageIndex := asInt(pager["pageIndex"])
		if pageSize == 0 {
			pageSize = 30
		}
		if pageIndex == 0 {
			pageIndex = 1
		}
		ids := []string{}
		for id := range m.tokens {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		start := (pageIndex - 1) * pageSize
		objects := []AppToken{}
		for i := start; i < len(ids) && i < start+pageSize; i++ {
			objects = append(objects, *m.tokens[ids[i]])
		}
		m.send(w, map[string]any{
			"objectType": "KalturaAppTokenListResponse",
			"objects":    objects,
			"totalCount": len(m.tokens),
		})
	case "apptoken.startSession":
		if body["ks"] != m.widgetKS {
			m.sendError(w, "INVALID_KS", "Expected the widget session as ambient KS")
			return
		}
		m.lastStartSessionParams = body
		token := m.tokens[asString(body["id"])]
		if token == nil {
			m.sendError(w, "APP_TOKEN_ID_NOT_FOUND", fmt.Sprintf("App token id \"%v\" not found", body["id"]))
			return
		}
		if asString(body["tokenHash"]) != TokenHash(m.widgetKS, token.Token) {
			m.sendError(w, "INVALID_APP_TOKEN_HASH", "Invalid hash for app token")
			return
		}
		m.send(w, map[string]any{
			"objectType": "KalturaSessionInfo",
			"ks":         m.tokenKS,
			"partnerId":  mockPartnerID,
			"privileges": token.SessionPrivileges,
		})
	default:
		m.sendError(w, "SERVICE_FORBIDDEN", fmt.Sprintf("Unknown action %v.%v", service, action))
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	f, _ := v.(float64)
	return int(f)
}
