package core

// Parameter describes a single setting exposed for display.
type Parameter struct {
	Key         string
	Label       string
	Value       string
	Description string
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the current set of settings.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}
