package domain

// ResourceKind is the closed set of resources the access resolver knows
// about. New kinds must be added here and handled explicitly; unknown
// kinds are always denied.
type ResourceKind string

const (
	ResourceAccount     ResourceKind = "ACCOUNT"
	ResourceUser        ResourceKind = "USER"
	ResourceTransaction ResourceKind = "TRANSACTION"
)
