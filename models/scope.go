package models

// Scope scope registry entry
type Scope struct {
	Name        string
	Description string
	Default     bool
}

// GetName scope name
func (s *Scope) GetName() string {
	return s.Name
}

// GetDescription human readable description
func (s *Scope) GetDescription() string {
	return s.Description
}

// IsDefault whether the scope is granted by default
func (s *Scope) IsDefault() bool {
	return s.Default
}
