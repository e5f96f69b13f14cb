package config

// Page identifies a top-level screen
type Page int

const (
	PageActions Page = iota
	PageIdentities
	PageSettings
	PageDeployments
)
