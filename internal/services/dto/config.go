package dto

// ClientConfig is the public, non-secret configuration a browser client
// needs to bootstrap its connection.
type ClientConfig struct {
	BackendURL     string `json:"backendUrl"`
	BackendAnonKey string `json:"backendAnonKey"`
}
