package kaltura

// SessionType distinguishes user sessions from administrative sessions.
type SessionType int

const (
	SessionTypeUser  SessionType = 0
	SessionTypeAdmin SessionType = 2
)

// AppTokenHashType selects the digest used in the app-token session handshake.
type AppTokenHashType string

const (
	HashTypeSHA1   AppTokenHashType = "SHA1"
	HashTypeSHA256 AppTokenHashType = "SHA256"
	HashTypeSHA512 AppTokenHashType = "SHA512"
	HashTypeMD5    AppTokenHashType = "MD5"
)

type AppTokenStatus int

const (
	AppTokenStatusDisabled AppTokenStatus = 1
	AppTokenStatusActive   AppTokenStatus = 2
	AppTokenStatusDeleted  AppTokenStatus = 3
)

// AppToken is a server-stored credential object carrying a secret value and a
// declared set of session privileges. The id and token value are assigned by
// the server; the client only fills in description, privileges, session type
// and hash type on create.
type AppToken struct {
	ID                string           `json:"id,omitempty"`
	Token             string           `json:"token,omitempty"`
	PartnerID         int              `json:"partnerId,omitempty"`
	CreatedAt         int64            `json:"createdAt,omitempty"`
	UpdatedAt         int64            `json:"updatedAt,omitempty"`
	Status            AppTokenStatus   `json:"status,omitempty"`
	Expiry            int64            `json:"expiry,omitempty"`
	SessionType       SessionType      `json:"sessionType"`
	SessionUserID     string           `json:"sessionUserId,omitempty"`
	SessionDuration   int              `json:"sessionDuration,omitempty"`
	SessionPrivileges string           `json:"sessionPrivileges,omitempty"`
	HashType          AppTokenHashType `json:"hashType,omitempty"`
	Description       string           `json:"description,omitempty"`
}

type AppTokenFilter struct {
	IDEqual     string         `json:"idEqual,omitempty"`
	StatusEqual AppTokenStatus `json:"statusEqual,omitempty"`
}

type FilterPager struct {
	PageSize  int `json:"pageSize,omitempty"`
	PageIndex int `json:"pageIndex,omitempty"`
}

type AppTokenListResponse struct {
	Objects    []AppToken `json:"objects"`
	TotalCount int        `json:"totalCount"`
}

type StartWidgetSessionResponse struct {
	PartnerID int    `json:"partnerId"`
	KS        string `json:"ks"`
	UserID    string `json:"userId"`
}

// SessionInfo is the result of appToken.startSession.
type SessionInfo struct {
	KS          string      `json:"ks"`
	SessionType SessionType `json:"sessionType"`
	PartnerID   int         `json:"partnerId"`
	UserID      string      `json:"userId"`
	Expiry      int64       `json:"expiry"`
	Privileges  string      `json:"privileges"`
}
