package model

type ConnectRequest struct {
	// Accounts exposed by the wallet extension of the client, in extension
	// order.
	Accounts []string `json:"accounts"`

	// ExtensionError is the error message reported by the extension, if any.
	ExtensionError string `json:"extension_error"`

	// DeviceID scopes the saved profiles of the client. A new device id is
	// generated when it is empty.
	DeviceID string `json:"device_id"`
}

type ConnectResponse struct {
	AccessToken string   `json:"access_token"`
	DeviceID    string   `json:"device_id"`
	Address     string   `json:"address"`
	Placeholder bool     `json:"placeholder"`
	Profile     *Profile `json:"profile"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

// AccessToken is the object carried by the access token.
type AccessToken struct {
	SessionID string `json:"session_id"`
	DeviceID  string `json:"device_id"`
}

func (r ConnectResponse) AccessTokenInfo() string {
	return r.AccessToken
}
