package domain

import (
	"encoding/json"
	"maps"
)

// Namespaces used by the container ontology catalogs
const (
	ContainerNS = "https://sift.net/container-ontology/container-ontology#"
	OMNS        = "http://www.ontology-of-units-of-measure.org/resource/om-2/"
)

// StrateosAvailability restricts a class expression to containers available at Strateos
const StrateosAvailability = "(cont:availableAt value <https://sift.net/container-ontology/strateos-catalog#Strateos>)"

// InstanceURI identifies an individual in the knowledgebase
type InstanceURI string

// PrefixMap maps a namespace prefix to its full URI
type PrefixMap map[string]string

// JSON serializes the prefix map the way the reasoner expects it.
// Keys are emitted in sorted order.
func (p PrefixMap) JSON() (string, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]string(p))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DefaultPrefixes returns the prefixes used by the container ontology
func DefaultPrefixes() PrefixMap {
	return PrefixMap{
		"cont": ContainerNS,
		"om":   OMNS,
	}
}

// ClassExpressionSpec is a Manchester-syntax class expression together with
// the prefixes needed to resolve its shorthand terms
type ClassExpressionSpec struct {
	QueryString string    `json:"queryString"`
	PrefixMap   PrefixMap `json:"prefixMap,omitempty"`
}

// NewClassExpressionSpec creates a spec holding its own copy of prefixes
func NewClassExpressionSpec(query string, prefixes PrefixMap) ClassExpressionSpec {
	return ClassExpressionSpec{
		QueryString: query,
		PrefixMap:   maps.Clone(prefixes),
	}
}

// MatchRequest represents a container matching request.
// An empty AddlConditions means no additional conditions.
type MatchRequest struct {
	Spec           ClassExpressionSpec
	KBName         string
	AddlConditions string
}

// MatchOutcome is the result of a matching query. Exactly one of
// Instances (success, possibly empty) or Err (failure) is meaningful.
type MatchOutcome struct {
	Instances []InstanceURI
	Err       error
}

// Matched builds a successful outcome
func Matched(instances []InstanceURI) *MatchOutcome {
	if instances == nil {
		instances = []InstanceURI{}
	}
	return &MatchOutcome{Instances: instances}
}

// Failed builds a failed outcome
func Failed(err error) *MatchOutcome {
	return &MatchOutcome{Err: err}
}

// OK reports whether the query reached the reasoner and got a usable answer
func (o *MatchOutcome) OK() bool {
	return o != nil && o.Err == nil
}

// Result unpacks the outcome into the usual value/error pair
func (o *MatchOutcome) Result() ([]InstanceURI, error) {
	if o == nil {
		return nil, ErrReasonerFailure
	}
	if o.Err != nil {
		return nil, o.Err
	}
	return o.Instances, nil
}
