package domain

// Screen describes one micro-frontend a tenant's shell loads at runtime via
// module federation.
type Screen struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Scope  string `json:"scope"`
	Module string `json:"module"`
}
