package domain

import "context"

// InstancesQuery is the request sent to the reasoner's instances endpoint
type InstancesQuery struct {
	KBName            string
	Expression        string
	Prefixes          PrefixMap
	Direct            bool
	IncludeDeprecated bool
}

// ReasonerClient defines the interface for interacting with a DL reasoning service
type ReasonerClient interface {
	Instances(ctx context.Context, query InstancesQuery) ([]InstanceURI, error)
}
